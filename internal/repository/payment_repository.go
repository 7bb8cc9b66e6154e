package repository

import (
	"github.com/lexcontract/lexcontract-api/internal/models"
	"gorm.io/gorm"
)

// GormPaymentRepository is a GORM implementation of PaymentRepository
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

// ReplaceForContract deletes every payment row of the contract and inserts
// the given set. Runs as a transaction; when the caller already holds one,
// GORM turns this into a savepoint.
func (r *GormPaymentRepository) ReplaceForContract(contractID string, payments []models.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", contractID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if len(payments) == 0 {
			return nil
		}
		return tx.Create(&payments).Error
	})
}

// ListByContract lists a contract's payment rows
func (r *GormPaymentRepository) ListByContract(contractID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("contract_id = ?", contractID).
		Order("id").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
