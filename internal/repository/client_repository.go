package repository

import (
	"github.com/lexcontract/lexcontract-api/internal/database"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"gorm.io/gorm"
)

// GormClientRepository is a GORM implementation of ClientRepository
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client
func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// FindByID finds a non-deleted client owned by ownerID
func (r *GormClientRepository) FindByID(id uint, ownerID uint) (*models.Client, error) {
	var client models.Client
	err := r.db.Scopes(database.NotDeleted).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// FindAnyByID finds a client owned by ownerID including soft-deleted rows
func (r *GormClientRepository) FindAnyByID(id uint, ownerID uint) (*models.Client, error) {
	var client models.Client
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByNationalID finds a non-deleted client by national ID. A deleted
// client's national ID is free for reuse, so deleted rows never match.
func (r *GormClientRepository) FindByNationalID(nationalID string) (*models.Client, error) {
	var client models.Client
	err := r.db.Scopes(database.NotDeleted).
		Where("national_id = ?", nationalID).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// ExistsByEmail reports whether another non-deleted client uses the email
func (r *GormClientRepository) ExistsByEmail(email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Client{}).
		Scopes(database.NotDeleted).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List retrieves the owner's non-deleted clients
func (r *GormClientRepository) List(ownerID uint, offset, limit int) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.Scopes(database.NotDeleted, database.Paginate(offset, limit)).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// Update persists changes to a client
func (r *GormClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// NextID returns max(id)+1, used as a read-only preview
func (r *GormClientRepository) NextID() (uint, error) {
	var maxID *uint
	err := r.db.Model(&models.Client{}).
		Select("MAX(id)").
		Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	if maxID == nil {
		return 1, nil
	}
	return *maxID + 1, nil
}

// Count counts non-deleted clients, optionally scoped to an owner
func (r *GormClientRepository) Count(ownerID *uint) (int64, error) {
	query := r.db.Model(&models.Client{}).Scopes(database.NotDeleted)
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
