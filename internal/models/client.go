package models

import "time"

type Client struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	NationalID string    `gorm:"type:varchar(20);index;not null" json:"cedula"`
	FirstName  string    `gorm:"type:varchar(200);not null" json:"nombre"`
	LastName   string    `gorm:"type:varchar(100);not null" json:"apellido"`
	Phone      string    `gorm:"type:varchar(20)" json:"celular"`
	Email      string    `gorm:"type:varchar(100)" json:"correo"`
	Address    string    `gorm:"type:varchar(255)" json:"direccion"`
	City       string    `gorm:"type:varchar(100)" json:"ciudad"`
	Status     string    `gorm:"type:varchar(20);not null;default:'Activo'" json:"estado"`
	IsDeleted  bool      `gorm:"not null;default:false" json:"is_deleted"`
	OwnerID    *uint     `gorm:"index" json:"usuario_id"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`

	// Relations
	Owner     *User      `gorm:"foreignKey:OwnerID" json:"-"`
	Contracts []Contract `gorm:"foreignKey:ClientID" json:"-"`
}
