package models

import (
	"time"

	"gorm.io/datatypes"
)

// Contract is the polymorphic row backing both finalized contracts and the
// reusable library (clauses and templates). Kind and IsLibrary discriminate;
// library rows never link a client or lawyer.
type Contract struct {
	ID         string         `gorm:"type:varchar(50);primarykey" json:"id"`
	Title      string         `gorm:"type:varchar(255)" json:"titulo"`
	ClientID   *uint          `gorm:"index" json:"cliente_id"`
	LawyerID   *uint          `gorm:"index" json:"abogado_id"`
	TemplateID *string        `gorm:"type:varchar(50)" json:"plantilla_id"`
	Status     string         `gorm:"type:varchar(20);not null;default:'BORRADOR'" json:"estado"`
	Kind       string         `gorm:"type:varchar(50)" json:"tipo"`
	IsLibrary  bool           `gorm:"not null;default:false" json:"es_biblioteca"`
	Date       time.Time      `gorm:"type:date" json:"fecha"`
	Total      float64        `gorm:"type:numeric(15,2)" json:"total"`
	Clauses    datatypes.JSON `json:"clauses"`
	ExtraVars  datatypes.JSON `json:"variables_adicionales"`
	IsDeleted  bool           `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt  time.Time      `json:"-"`
	UpdatedAt  time.Time      `json:"-"`

	// Relations
	Client   *Client   `gorm:"foreignKey:ClientID" json:"cliente,omitempty"`
	Lawyer   *User     `gorm:"foreignKey:LawyerID" json:"abogado,omitempty"`
	Payments []Payment `gorm:"foreignKey:ContractID" json:"pagos,omitempty"`
}

func (Contract) TableName() string { return "contracts" }
