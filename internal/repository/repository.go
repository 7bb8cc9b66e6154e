package repository

import (
	"github.com/lexcontract/lexcontract-api/internal/models"
)

// UserRepository defines the interface for user and role data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with roles preloaded
	FindByID(id uint) (*models.User, error)

	// FindByEmail finds a user by email with roles preloaded
	FindByEmail(email string) (*models.User, error)

	// FindByNationalID finds a user by national ID
	FindByNationalID(nationalID string) (*models.User, error)

	// List retrieves users with offset/limit
	List(offset, limit int) ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// ReplaceRoles replaces the user's role set
	ReplaceRoles(user *models.User, roles []models.Role) error

	// IncrementFailedAttempts atomically bumps the failed-login counter and
	// returns the new value
	IncrementFailedAttempts(id uint) (int, error)

	// FindRolesByIDs finds roles by their IDs
	FindRolesByIDs(ids []uint) ([]models.Role, error)

	// ListRoles lists all roles
	ListRoles() ([]models.Role, error)
}

// ClientRepository defines the interface for client data access. Lookups are
// owner-scoped and exclude soft-deleted rows unless stated otherwise.
type ClientRepository interface {
	// Create creates a new client
	Create(client *models.Client) error

	// FindByID finds a non-deleted client owned by ownerID
	FindByID(id uint, ownerID uint) (*models.Client, error)

	// FindAnyByID finds a client owned by ownerID including soft-deleted rows
	FindAnyByID(id uint, ownerID uint) (*models.Client, error)

	// FindByNationalID finds a non-deleted client by national ID regardless
	// of owner
	FindByNationalID(nationalID string) (*models.Client, error)

	// ExistsByEmail reports whether another non-deleted client uses the email
	ExistsByEmail(email string, excludeID uint) (bool, error)

	// List retrieves the owner's non-deleted clients
	List(ownerID uint, offset, limit int) ([]models.Client, error)

	// Update persists changes to a client
	Update(client *models.Client) error

	// NextID returns max(id)+1, used as a read-only preview
	NextID() (uint, error)

	// Count counts non-deleted clients, optionally scoped to an owner
	Count(ownerID *uint) (int64, error)
}

// ContractFilter holds filtering options for listing contracts
type ContractFilter struct {
	Library  bool
	Kind     string
	LawyerID *uint
	Offset   int
	Limit    int
}

// ContractCountFilter holds filtering options for contract counts
type ContractCountFilter struct {
	LawyerID *uint
	Status   string
}

// ContractRepository defines the interface for contract/library data access
type ContractRepository interface {
	// Create creates a new contract or library item
	Create(contract *models.Contract) error

	// FindByID finds a contract by its string ID, deleted rows included
	FindByID(id string) (*models.Contract, error)

	// FindLibraryItem finds a non-deleted library row by ID
	FindLibraryItem(id string) (*models.Contract, error)

	// List retrieves non-deleted contracts matching the filter
	List(filter ContractFilter) ([]models.Contract, error)

	// Update persists changes to a contract
	Update(contract *models.Contract) error

	// SoftDelete marks a contract deleted
	SoftDelete(contract *models.Contract) error

	// IDsByPrefix returns the IDs of all rows whose ID starts with prefix,
	// deleted rows included so their sequence numbers stay reserved
	IDsByPrefix(prefix string) ([]string, error)

	// Count counts non-deleted, non-library contracts
	Count(filter ContractCountFilter) (int64, error)
}

// PaymentRepository defines the interface for derived payment rows
type PaymentRepository interface {
	// ReplaceForContract deletes every payment row of the contract and
	// inserts the given set
	ReplaceForContract(contractID string, payments []models.Payment) error

	// ListByContract lists a contract's payment rows
	ListByContract(contractID string) ([]models.Payment, error)
}
