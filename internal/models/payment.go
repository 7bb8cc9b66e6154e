package models

import "time"

// Payment rows are fully derived from their contract's stored payment plan.
// The synchronizer deletes and recreates them on every contract write; they
// are never created directly by a caller.
type Payment struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	ContractID    string     `gorm:"type:varchar(50);index;not null" json:"contrato_id"`
	Kind          string     `gorm:"type:varchar(20)" json:"tipo_pago"`
	ContractTotal float64    `gorm:"type:numeric(15,2)" json:"monto_total_contrato"`
	Amount        float64    `gorm:"type:numeric(15,2)" json:"monto_abono"`
	DueDate       *time.Time `gorm:"type:date" json:"fecha_vencimiento"`
	PaidDate      *time.Time `gorm:"type:date" json:"fecha_pago"`
	Status        string     `gorm:"type:varchar(20);not null;default:'PENDIENTE'" json:"estado"`

	Contract Contract `gorm:"foreignKey:ContractID" json:"-"`
}
