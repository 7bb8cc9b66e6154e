package dto

import (
	"github.com/lexcontract/lexcontract-api/internal/models"
)

// ClientDTO represents a client in API responses
type ClientDTO struct {
	ID         uint   `json:"id"`
	NationalID string `json:"cedula"`
	FirstName  string `json:"nombre"`
	LastName   string `json:"apellido"`
	Phone      string `json:"celular"`
	Email      string `json:"correo"`
	Address    string `json:"direccion"`
	City       string `json:"ciudad"`
	Status     string `json:"estado"`
	IsDeleted  bool   `json:"is_deleted"`
	OwnerID    *uint  `json:"usuario_id"`
}

// ToClientDTO converts a Client model to ClientDTO
func ToClientDTO(client models.Client) ClientDTO {
	return ClientDTO{
		ID:         client.ID,
		NationalID: client.NationalID,
		FirstName:  client.FirstName,
		LastName:   client.LastName,
		Phone:      client.Phone,
		Email:      client.Email,
		Address:    client.Address,
		City:       client.City,
		Status:     client.Status,
		IsDeleted:  client.IsDeleted,
		OwnerID:    client.OwnerID,
	}
}

// ToClientDTOs converts a slice of clients
func ToClientDTOs(clients []models.Client) []ClientDTO {
	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = ToClientDTO(c)
	}
	return dtos
}
