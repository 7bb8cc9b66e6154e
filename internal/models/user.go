package models

import (
	"strings"
	"time"
)

type User struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	FirstName      string     `gorm:"type:varchar(100);not null" json:"nombre"`
	LastName       string     `gorm:"type:varchar(100);not null" json:"apellido"`
	NationalID     string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"cedula"`
	Phone          string     `gorm:"type:varchar(20)" json:"celular"`
	Email          string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"correo"`
	PasswordHash   string     `gorm:"type:varchar(255);not null" json:"-"`
	Status         string     `gorm:"type:varchar(20);not null;default:'Activo'" json:"estado"`
	FailedAttempts int        `gorm:"not null;default:0" json:"intentos_fallidos"`
	Bio            string     `gorm:"type:text" json:"biografia"`
	LastLogin      *time.Time `json:"ultima_conexion"`
	CreatedAt      time.Time  `json:"fecha_creacion"`
	UpdatedAt      time.Time  `json:"-"`

	// Relations
	Roles     []Role     `gorm:"many2many:user_roles" json:"roles,omitempty"`
	Contracts []Contract `gorm:"foreignKey:LawyerID" json:"-"`
}

// FullName returns "nombre apellido" for notification templates.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user holds a role, matched case-insensitively.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}
