package dto

import (
	"encoding/json"
	"time"

	"github.com/lexcontract/lexcontract-api/internal/models"
)

// ContractDTO represents a contract or library item in API responses. The
// clauses and variables payloads pass through untouched.
type ContractDTO struct {
	ID         string          `json:"id"`
	Title      string          `json:"titulo"`
	ClientID   *uint           `json:"cliente_id"`
	LawyerID   *uint           `json:"abogado_id"`
	TemplateID *string         `json:"plantilla_id"`
	Status     string          `json:"estado"`
	Kind       string          `json:"tipo"`
	IsLibrary  bool            `json:"es_biblioteca"`
	Date       string          `json:"fecha"`
	Total      float64         `json:"total"`
	Clauses    json.RawMessage `json:"clauses"`
	ExtraVars  json.RawMessage `json:"variables_adicionales"`
	Payments   []PaymentDTO    `json:"pagos,omitempty"`
}

// PaymentDTO represents a derived payment row in API responses
type PaymentDTO struct {
	ID            uint    `json:"id"`
	ContractID    string  `json:"contrato_id"`
	Kind          string  `json:"tipo_pago"`
	ContractTotal float64 `json:"monto_total_contrato"`
	Amount        float64 `json:"monto_abono"`
	DueDate       *string `json:"fecha_vencimiento"`
	PaidDate      *string `json:"fecha_pago"`
	Status        string  `json:"estado"`
}

// ToContractDTO converts a Contract model to ContractDTO
func ToContractDTO(contract models.Contract) ContractDTO {
	dto := ContractDTO{
		ID:         contract.ID,
		Title:      contract.Title,
		ClientID:   contract.ClientID,
		LawyerID:   contract.LawyerID,
		TemplateID: contract.TemplateID,
		Status:     contract.Status,
		Kind:       contract.Kind,
		IsLibrary:  contract.IsLibrary,
		Date:       contract.Date.Format("2006-01-02"),
		Total:      contract.Total,
		Clauses:    json.RawMessage(contract.Clauses),
		ExtraVars:  json.RawMessage(contract.ExtraVars),
	}

	if len(contract.Payments) > 0 {
		dto.Payments = ToPaymentDTOs(contract.Payments)
	}

	return dto
}

// ToContractDTOs converts a slice of contracts
func ToContractDTOs(contracts []models.Contract) []ContractDTO {
	dtos := make([]ContractDTO, len(contracts))
	for i, c := range contracts {
		dtos[i] = ToContractDTO(c)
	}
	return dtos
}

// ToPaymentDTO converts a Payment model to PaymentDTO
func ToPaymentDTO(payment models.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            payment.ID,
		ContractID:    payment.ContractID,
		Kind:          payment.Kind,
		ContractTotal: payment.ContractTotal,
		Amount:        payment.Amount,
		DueDate:       formatDate(payment.DueDate),
		PaidDate:      formatDate(payment.PaidDate),
		Status:        payment.Status,
	}
}

// ToPaymentDTOs converts a slice of payments
func ToPaymentDTOs(payments []models.Payment) []PaymentDTO {
	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = ToPaymentDTO(p)
	}
	return dtos
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
