package repository

import (
	"github.com/lexcontract/lexcontract-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with roles preloaded
func (r *GormUserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email with roles preloaded
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByNationalID finds a user by national ID
func (r *GormUserRepository) FindByNationalID(nationalID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("national_id = ?", nationalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users with offset/limit, roles preloaded
func (r *GormUserRepository) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	query := r.db.Preload("Roles").Order("id")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ReplaceRoles replaces the user's role set
func (r *GormUserRepository) ReplaceRoles(user *models.User, roles []models.Role) error {
	if err := r.db.Model(user).Association("Roles").Replace(roles); err != nil {
		return err
	}
	user.Roles = roles
	return nil
}

// IncrementFailedAttempts atomically bumps the failed-login counter and
// returns the new value. The increment is a single SQL expression so racing
// requests never lose updates.
func (r *GormUserRepository) IncrementFailedAttempts(id uint) (int, error) {
	err := r.db.Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("failed_attempts", gorm.Expr("failed_attempts + 1")).Error
	if err != nil {
		return 0, err
	}

	var attempts int
	err = r.db.Model(&models.User{}).
		Where("id = ?", id).
		Pluck("failed_attempts", &attempts).Error
	if err != nil {
		return 0, err
	}
	return attempts, nil
}

// FindRolesByIDs finds roles by their IDs
func (r *GormUserRepository) FindRolesByIDs(ids []uint) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// ListRoles lists all roles
func (r *GormUserRepository) ListRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
