package dto

import (
	"time"

	"github.com/lexcontract/lexcontract-api/internal/models"
)

// RoleDTO represents a role in API responses
type RoleDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"nombre"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint       `json:"id"`
	FirstName      string     `json:"nombre"`
	LastName       string     `json:"apellido"`
	NationalID     string     `json:"cedula"`
	Phone          string     `json:"celular"`
	Email          string     `json:"correo"`
	Status         string     `json:"estado"`
	FailedAttempts int        `json:"intentos_fallidos"`
	Bio            string     `json:"biografia"`
	LastLogin      *time.Time `json:"ultima_conexion"`
	CreatedAt      time.Time  `json:"fecha_creacion"`
	Roles          []RoleDTO  `json:"roles"`
}

// TokenDTO is the login response
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToRoleDTO converts a Role model to RoleDTO
func ToRoleDTO(role models.Role) RoleDTO {
	return RoleDTO{
		ID:   role.ID,
		Name: role.Name,
	}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	roles := make([]RoleDTO, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = ToRoleDTO(r)
	}

	return UserDTO{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		NationalID:     user.NationalID,
		Phone:          user.Phone,
		Email:          user.Email,
		Status:         user.Status,
		FailedAttempts: user.FailedAttempts,
		Bio:            user.Bio,
		LastLogin:      user.LastLogin,
		CreatedAt:      user.CreatedAt,
		Roles:          roles,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}
