package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lexcontract/lexcontract-api/internal/constants"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/lexcontract/lexcontract-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrContractNotFound    = errors.New("contrato no encontrado")
	ErrTemplateNotFound    = errors.New("plantilla no encontrada")
	ErrLibraryItemNotFound = errors.New("elemento de biblioteca no encontrado")
)

// ContractService handles the contract/library lifecycle and drives payment
// synchronization. It owns a DB handle rather than repositories because ID
// generation, the contract write, and the payment replace must share one
// transaction.
type ContractService struct {
	db *gorm.DB
}

// NewContractService creates a new ContractService
func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{db: db}
}

// CreateContractInput represents input for creating a contract
type CreateContractInput struct {
	ID        string
	Title     string
	ClientID  *uint
	LawyerID  *uint
	Status    string
	Kind      string
	Date      *time.Time
	Total     float64
	Clauses   datatypes.JSON
	ExtraVars datatypes.JSON
}

// CreateLibraryItemInput represents input for creating a clause or template
type CreateLibraryItemInput struct {
	Title        string
	Text         string
	Clauses      datatypes.JSON
	PracticeArea string
}

// GenerateFromTemplateInput represents input for instantiating a template
type GenerateFromTemplateInput struct {
	ClientID  *uint
	LawyerID  *uint
	ExtraVars datatypes.JSON
}

// UpdateContractInput represents a sparse patch: nil fields stay untouched.
type UpdateContractInput struct {
	Title     *string
	ClientID  *uint
	LawyerID  *uint
	Status    *string
	Kind      *string
	Text      *string
	Date      *time.Time
	Total     *float64
	Clauses   datatypes.JSON
	ExtraVars datatypes.JSON
}

// GenerateID produces the next identifier for a category prefix, of the form
// {PREFIX}-{year}-{seq}: one greater than the highest existing sequence for
// that prefix and calendar year, zero-padded to three digits. Existing IDs
// with unparsable suffixes are skipped.
func (s *ContractService) GenerateID(prefixBase string) (string, error) {
	return s.generateID(s.db, prefixBase)
}

func (s *ContractService) generateID(tx *gorm.DB, prefixBase string) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", prefixBase, time.Now().Year())

	ids, err := repository.NewContractRepository(tx).IDsByPrefix(prefix)
	if err != nil {
		return "", fmt.Errorf("failed to scan existing ids: %w", err)
	}

	maxNum := 0
	for _, id := range ids {
		num, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil {
			continue
		}
		if num > maxNum {
			maxNum = num
		}
	}

	return fmt.Sprintf("%s%03d", prefix, maxNum+1), nil
}

// CreateContract creates a contract, generating its ID when absent, and
// synchronizes payments. Everything runs in one transaction so concurrent
// generation for the same prefix serializes on the backing store.
func (s *ContractService) CreateContract(input CreateContractInput) (*models.Contract, error) {
	var contract *models.Contract

	err := s.db.Transaction(func(tx *gorm.DB) error {
		id := input.ID
		if id == "" {
			var err error
			if id, err = s.generateID(tx, constants.PrefixContract); err != nil {
				return err
			}
		}

		kind := input.Kind
		if kind == "" {
			kind = constants.KindContract
		}
		status := input.Status
		if status == "" {
			status = constants.ContractStatusDraft
		}
		date := time.Now().Truncate(24 * time.Hour)
		if input.Date != nil {
			date = *input.Date
		}

		contract = &models.Contract{
			ID:        id,
			Title:     input.Title,
			ClientID:  input.ClientID,
			LawyerID:  input.LawyerID,
			Status:    status,
			Kind:      kind,
			Date:      date,
			Total:     input.Total,
			Clauses:   input.Clauses,
			ExtraVars: input.ExtraVars,
		}

		if err := repository.NewContractRepository(tx).Create(contract); err != nil {
			return fmt.Errorf("failed to create contract: %w", err)
		}

		return SyncContractPayments(tx, contract)
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// CreateLibraryItem creates a reusable clause or template. Clauses get a
// single {titulo, texto} payload; templates keep the caller-supplied clause
// list. Library items carry no client, lawyer, or payments.
func (s *ContractService) CreateLibraryItem(input CreateLibraryItemInput, kind string) (*models.Contract, error) {
	var item *models.Contract

	err := s.db.Transaction(func(tx *gorm.DB) error {
		prefixBase := constants.PrefixClause
		if kind == constants.KindTemplate {
			prefixBase = constants.PrefixTemplate
		}

		id, err := s.generateID(tx, prefixBase)
		if err != nil {
			return err
		}

		clauses := input.Clauses
		if kind == constants.KindClause {
			clauses, err = json.Marshal(map[string]string{
				"titulo": input.Title,
				"texto":  input.Text,
			})
			if err != nil {
				return err
			}
		}

		area := input.PracticeArea
		if area == "" {
			area = "Insolvencia Económica"
		}
		extraVars, err := json.Marshal(map[string]string{"areaPractica": area})
		if err != nil {
			return err
		}

		item = &models.Contract{
			ID:        id,
			Title:     input.Title,
			Kind:      kind,
			IsLibrary: true,
			Status:    constants.ContractStatusActive,
			Date:      time.Now().Truncate(24 * time.Hour),
			Total:     0,
			Clauses:   clauses,
			ExtraVars: extraVars,
		}

		return repository.NewContractRepository(tx).Create(item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GenerateFromTemplate instantiates a contract from a library template:
// fresh CNT identifier, derived title, deep-copied clause payload, and the
// caller's client/lawyer/variables. Payments are synchronized afterwards.
func (s *ContractService) GenerateFromTemplate(templateID string, input GenerateFromTemplateInput) (*models.Contract, error) {
	var contract *models.Contract

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewContractRepository(tx)

		template, err := repo.FindByID(templateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return fmt.Errorf("failed to find template: %w", err)
		}
		if !template.IsLibrary || template.Kind != constants.KindTemplate {
			return ErrTemplateNotFound
		}

		id, err := s.generateID(tx, constants.PrefixContract)
		if err != nil {
			return err
		}

		contract = &models.Contract{
			ID:         id,
			Title:      fmt.Sprintf("Contrato basado en %s", template.Title),
			ClientID:   input.ClientID,
			LawyerID:   input.LawyerID,
			TemplateID: &template.ID,
			Kind:       constants.KindContract,
			Status:     constants.ContractStatusDraft,
			Date:       time.Now().Truncate(24 * time.Hour),
			Clauses:    append(datatypes.JSON(nil), template.Clauses...),
			ExtraVars:  input.ExtraVars,
		}

		if err := repo.Create(contract); err != nil {
			return fmt.Errorf("failed to create contract: %w", err)
		}

		return SyncContractPayments(tx, contract)
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// UpdateContract applies a sparse patch and re-runs payment synchronization.
// Library rows get field remapping instead of direct writes: raw clause text
// goes into the clause payload, and a kind change becomes the areaPractica
// tag inside a fresh variables map.
func (s *ContractService) UpdateContract(id string, input UpdateContractInput) (*models.Contract, error) {
	var contract *models.Contract

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewContractRepository(tx)

		var err error
		contract, err = repo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContractNotFound
			}
			return fmt.Errorf("failed to find contract: %w", err)
		}

		if contract.IsLibrary {
			if contract.Kind == constants.KindClause && input.Text != nil {
				title := contract.Title
				if input.Title != nil {
					title = *input.Title
				}
				payload, err := json.Marshal(map[string]string{
					"titulo": title,
					"texto":  *input.Text,
				})
				if err != nil {
					return err
				}
				contract.Clauses = payload
			}

			if input.Kind != nil {
				vars := map[string]interface{}{}
				if len(contract.ExtraVars) > 0 {
					_ = json.Unmarshal(contract.ExtraVars, &vars)
				}
				vars["areaPractica"] = *input.Kind
				payload, err := json.Marshal(vars)
				if err != nil {
					return err
				}
				contract.ExtraVars = payload
			}
		}

		if input.Title != nil {
			contract.Title = *input.Title
		}
		if input.ClientID != nil {
			contract.ClientID = input.ClientID
		}
		if input.LawyerID != nil {
			contract.LawyerID = input.LawyerID
		}
		if input.Status != nil {
			contract.Status = *input.Status
		}
		if input.Kind != nil && !contract.IsLibrary {
			contract.Kind = *input.Kind
		}
		if input.Date != nil {
			contract.Date = *input.Date
		}
		if input.Total != nil {
			contract.Total = *input.Total
		}
		if input.Clauses != nil {
			contract.Clauses = input.Clauses
		}
		if input.ExtraVars != nil {
			contract.ExtraVars = input.ExtraVars
		}

		if err := repo.Update(contract); err != nil {
			return fmt.Errorf("failed to update contract: %w", err)
		}

		return SyncContractPayments(tx, contract)
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// GetContract returns a contract by ID
func (s *ContractService) GetContract(id string) (*models.Contract, error) {
	contract, err := repository.NewContractRepository(s.db).FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return contract, nil
}

// ListContracts returns non-library contracts. Admins see the whole firm;
// everyone else only contracts where they are the lawyer.
func (s *ContractService) ListContracts(caller *models.User, offset, limit int) ([]models.Contract, error) {
	filter := repository.ContractFilter{Offset: offset, Limit: limit}
	if !caller.HasRole(constants.RoleAdmin) {
		filter.LawyerID = &caller.ID
	}
	return repository.NewContractRepository(s.db).List(filter)
}

// ListLibrary returns non-deleted library items of a kind
func (s *ContractService) ListLibrary(kind string) ([]models.Contract, error) {
	return repository.NewContractRepository(s.db).List(repository.ContractFilter{
		Library: true,
		Kind:    kind,
	})
}

// DeleteContract soft-deletes a contract. There is no restore path.
func (s *ContractService) DeleteContract(id string) error {
	repo := repository.NewContractRepository(s.db)

	contract, err := repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContractNotFound
		}
		return fmt.Errorf("failed to find contract: %w", err)
	}

	return repo.SoftDelete(contract)
}

// DeleteLibraryItem soft-deletes a clause or template; non-library rows are
// not visible to this operation.
func (s *ContractService) DeleteLibraryItem(id string) error {
	repo := repository.NewContractRepository(s.db)

	item, err := repo.FindLibraryItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLibraryItemNotFound
		}
		return fmt.Errorf("failed to find library item: %w", err)
	}

	return repo.SoftDelete(item)
}

// ListPayments returns the derived payment rows of a contract
func (s *ContractService) ListPayments(contractID string) ([]models.Payment, error) {
	return repository.NewPaymentRepository(s.db).ListByContract(contractID)
}
