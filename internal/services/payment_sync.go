package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/lexcontract/lexcontract-api/internal/constants"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/lexcontract/lexcontract-api/internal/repository"
	"gorm.io/gorm"
)

// SyncContractPayments regenerates the contract's payment rows from its
// stored payment plan. All existing rows are deleted and the set derived from
// variables_adicionales is inserted in their place; the caller is expected to
// run this inside the same transaction as the contract write. Library items
// never carry payments.
func SyncContractPayments(tx *gorm.DB, contract *models.Contract) error {
	if contract.IsLibrary {
		return nil
	}

	payments := derivePayments(contract)
	return repository.NewPaymentRepository(tx).ReplaceForContract(contract.ID, payments)
}

func derivePayments(contract *models.Contract) []models.Payment {
	var vars map[string]interface{}
	if len(contract.ExtraVars) > 0 {
		// A malformed payload degrades to "no plan stored", same as absent
		_ = json.Unmarshal(contract.ExtraVars, &vars)
	}

	modality, _ := vars["modalidadPago"].(string)
	installments, _ := vars["installments"].([]interface{})

	if modality == "unico" || len(installments) == 0 {
		if contract.Total <= 0 {
			return nil
		}
		due := contract.Date
		return []models.Payment{{
			ContractID:    contract.ID,
			Kind:          constants.PaymentKindSingle,
			ContractTotal: contract.Total,
			Amount:        contract.Total,
			DueDate:       &due,
			Status:        constants.PaymentStatusPending,
		}}
	}

	payments := make([]models.Payment, 0, len(installments))
	for _, entry := range installments {
		inst, _ := entry.(map[string]interface{})

		payments = append(payments, models.Payment{
			ContractID:    contract.ID,
			Kind:          constants.PaymentKindInstallment,
			ContractTotal: contract.Total,
			Amount:        parseAmount(inst["monto"]),
			DueDate:       parseDueDate(inst["fecha"]),
			Status:        constants.PaymentStatusPending,
		})
	}
	return payments
}

// parseAmount accepts numbers or numeric strings with thousands separators
// ("1,000"). Anything unparsable counts as 0.
func parseAmount(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func parseDueDate(value interface{}) *time.Time {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
