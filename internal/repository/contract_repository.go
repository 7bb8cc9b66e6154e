package repository

import (
	"github.com/lexcontract/lexcontract-api/internal/database"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"gorm.io/gorm"
)

// GormContractRepository is a GORM implementation of ContractRepository
type GormContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new ContractRepository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &GormContractRepository{db: db}
}

// Create creates a new contract or library item
func (r *GormContractRepository) Create(contract *models.Contract) error {
	return r.db.Create(contract).Error
}

// FindByID finds a contract by its string ID, deleted rows included
func (r *GormContractRepository) FindByID(id string) (*models.Contract, error) {
	var contract models.Contract
	if err := r.db.Where("id = ?", id).First(&contract).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

// FindLibraryItem finds a non-deleted library row by ID
func (r *GormContractRepository) FindLibraryItem(id string) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.Scopes(database.NotDeleted).
		Where("id = ? AND is_library = ?", id, true).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// List retrieves non-deleted contracts matching the filter
func (r *GormContractRepository) List(filter ContractFilter) ([]models.Contract, error) {
	query := r.db.Scopes(database.NotDeleted).
		Where("is_library = ?", filter.Library)

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.LawyerID != nil {
		query = query.Where("lawyer_id = ?", *filter.LawyerID)
	}

	var contracts []models.Contract
	err := query.Scopes(database.Paginate(filter.Offset, filter.Limit)).
		Order("created_at DESC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// Update persists changes to a contract
func (r *GormContractRepository) Update(contract *models.Contract) error {
	return r.db.Save(contract).Error
}

// SoftDelete marks a contract deleted
func (r *GormContractRepository) SoftDelete(contract *models.Contract) error {
	contract.IsDeleted = true
	return r.db.Model(contract).UpdateColumn("is_deleted", true).Error
}

// IDsByPrefix returns the IDs of all rows whose ID starts with prefix.
// Deleted rows are included so their sequence numbers stay reserved.
func (r *GormContractRepository) IDsByPrefix(prefix string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Contract{}).
		Where("id LIKE ?", prefix+"%").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Count counts non-deleted, non-library contracts
func (r *GormContractRepository) Count(filter ContractCountFilter) (int64, error) {
	query := r.db.Model(&models.Contract{}).
		Scopes(database.NotDeleted).
		Where("is_library = ?", false)

	if filter.LawyerID != nil {
		query = query.Where("lawyer_id = ?", *filter.LawyerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
