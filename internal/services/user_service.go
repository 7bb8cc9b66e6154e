package services

import (
	"errors"
	"fmt"

	"github.com/lexcontract/lexcontract-api/internal/constants"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/lexcontract/lexcontract-api/internal/repository"
	"github.com/lexcontract/lexcontract-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken      = errors.New("el correo ya está registrado")
	ErrNationalIDTaken = errors.New("la cédula ya está registrada")
	ErrRoleNotFound    = errors.New("uno o más roles no existen")
)

// UserService handles user administration.
type UserService struct {
	userRepo repository.UserRepository
	notifier Notifier
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, notifier Notifier) *UserService {
	return &UserService{
		userRepo: userRepo,
		notifier: notifier,
	}
}

// CreateUserInput represents the required information to create a user
type CreateUserInput struct {
	FirstName  string
	LastName   string
	NationalID string
	Phone      string
	Email      string
	Password   string
	Bio        string
	RoleIDs    []uint
}

// UpdateUserInput is a sparse patch: nil fields stay untouched. The national
// ID is immutable after creation and deliberately absent here.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Email     *string
	Password  *string
	Bio       *string
	Status    *string
	RoleIDs   *[]uint
}

// CreateUser validates formats and uniqueness, resolves role references, and
// persists the user. A welcome mail goes out best-effort.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if err := utils.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}
	if err := utils.ValidateNationalID(input.NationalID); err != nil {
		return nil, err
	}
	if err := utils.ValidatePhone(input.Phone); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.userRepo.FindByNationalID(input.NationalID); err == nil {
		return nil, ErrNationalIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check national id: %w", err)
	}

	roles, err := s.resolveRoles(input.RoleIDs)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		NationalID:   input.NationalID,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Status:       constants.UserStatusActive,
		Bio:          input.Bio,
		Roles:        roles,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.notifier.SendWelcome(user.Email, user.FullName())
	return user, nil
}

// UpdateUser applies a sparse patch. Setting status to Activo also clears
// the failed-login counter; a role-ID list replaces the whole role set.
func (s *UserService) UpdateUser(id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*input.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = *input.Email
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		if err := utils.ValidatePhone(*input.Phone); err != nil {
			return nil, err
		}
		user.Phone = *input.Phone
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Password != nil && *input.Password != "" {
		if err := utils.ValidatePasswordStrength(*input.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	if input.Status != nil {
		user.Status = *input.Status
		if *input.Status == constants.UserStatusActive {
			user.FailedAttempts = 0
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if input.RoleIDs != nil {
		roles, err := s.resolveRoles(*input.RoleIDs)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.ReplaceRoles(user, roles); err != nil {
			return nil, fmt.Errorf("failed to replace roles: %w", err)
		}
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves users with offset/limit.
func (s *UserService) ListUsers(offset, limit int) ([]models.User, error) {
	return s.userRepo.List(offset, limit)
}

// ListLawyers returns users holding the lawyer role.
func (s *UserService) ListLawyers() ([]models.User, error) {
	users, err := s.userRepo.List(0, constants.MaxPageSize)
	if err != nil {
		return nil, err
	}

	lawyers := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.HasRole(constants.RoleLawyer) {
			lawyers = append(lawyers, u)
		}
	}
	return lawyers, nil
}

// ListRoles lists all roles.
func (s *UserService) ListRoles() ([]models.Role, error) {
	return s.userRepo.ListRoles()
}

func (s *UserService) resolveRoles(roleIDs []uint) ([]models.Role, error) {
	roles, err := s.userRepo.FindRolesByIDs(roleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find roles: %w", err)
	}
	if len(roles) != len(roleIDs) {
		return nil, ErrRoleNotFound
	}
	return roles, nil
}
