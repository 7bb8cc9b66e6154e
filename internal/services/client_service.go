package services

import (
	"errors"
	"fmt"

	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/lexcontract/lexcontract-api/internal/repository"
	"github.com/lexcontract/lexcontract-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound        = errors.New("cliente no encontrado")
	ErrClientNationalIDTaken = errors.New("ya existe un cliente con esta cédula")
	ErrClientEmailTaken      = errors.New("el correo ya está registrado por otro cliente")
)

// ClientService handles the client registry. Every operation is scoped to
// the owning user.
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents the required information to create a client
type CreateClientInput struct {
	NationalID string
	FirstName  string
	LastName   string
	Phone      string
	Email      string
	Address    string
	City       string
}

// UpdateClientInput is a sparse patch: nil fields stay untouched. Unlike
// users, a client's national ID may change, subject to the uniqueness check.
type UpdateClientInput struct {
	NationalID *string
	FirstName  *string
	LastName   *string
	Phone      *string
	Email      *string
	Address    *string
	City       *string
	Status     *string
}

// CreateClient validates formats and national-ID uniqueness among non-deleted
// clients, then persists the record under the calling user.
func (s *ClientService) CreateClient(ownerID uint, input CreateClientInput) (*models.Client, error) {
	if err := utils.ValidateNationalID(input.NationalID); err != nil {
		return nil, err
	}
	if err := utils.ValidatePhone(input.Phone); err != nil {
		return nil, err
	}

	if _, err := s.clientRepo.FindByNationalID(input.NationalID); err == nil {
		return nil, ErrClientNationalIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check national id: %w", err)
	}

	client := &models.Client{
		NationalID: input.NationalID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Phone:      input.Phone,
		Email:      input.Email,
		Address:    input.Address,
		City:       input.City,
		OwnerID:    &ownerID,
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// GetClient returns a non-deleted client of the owner.
func (s *ClientService) GetClient(id, ownerID uint) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return client, nil
}

// ListClients returns the owner's non-deleted clients.
func (s *ClientService) ListClients(ownerID uint, offset, limit int) ([]models.Client, error) {
	return s.clientRepo.List(ownerID, offset, limit)
}

// NextClientID previews the next numeric client ID.
func (s *ClientService) NextClientID() (uint, error) {
	return s.clientRepo.NextID()
}

// UpdateClient applies a sparse patch with uniqueness checks on changed
// email and national ID.
func (s *ClientService) UpdateClient(id, ownerID uint, input UpdateClientInput) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	if input.Email != nil && *input.Email != client.Email && *input.Email != "" {
		taken, err := s.clientRepo.ExistsByEmail(*input.Email, client.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, ErrClientEmailTaken
		}
	}
	if input.NationalID != nil && *input.NationalID != client.NationalID {
		if err := utils.ValidateNationalID(*input.NationalID); err != nil {
			return nil, err
		}
		if _, err := s.clientRepo.FindByNationalID(*input.NationalID); err == nil {
			return nil, ErrClientNationalIDTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check national id: %w", err)
		}
		client.NationalID = *input.NationalID
	}

	if input.FirstName != nil {
		client.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		client.LastName = *input.LastName
	}
	if input.Phone != nil {
		if err := utils.ValidatePhone(*input.Phone); err != nil {
			return nil, err
		}
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.City != nil {
		client.City = *input.City
	}
	if input.Status != nil {
		client.Status = *input.Status
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// DeleteClient sets the soft-delete flag. The record keeps its data and can
// be restored later.
func (s *ClientService) DeleteClient(id, ownerID uint) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	client.IsDeleted = true
	if err := s.clientRepo.Update(client); err != nil {
		return nil, fmt.Errorf("failed to delete client: %w", err)
	}
	return client, nil
}

// RestoreClient clears the soft-delete flag and nothing else.
func (s *ClientService) RestoreClient(id, ownerID uint) (*models.Client, error) {
	client, err := s.clientRepo.FindAnyByID(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	client.IsDeleted = false
	if err := s.clientRepo.Update(client); err != nil {
		return nil, fmt.Errorf("failed to restore client: %w", err)
	}
	return client, nil
}
