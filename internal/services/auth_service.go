package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lexcontract/lexcontract-api/internal/config"
	"github.com/lexcontract/lexcontract-api/internal/constants"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/lexcontract/lexcontract-api/internal/repository"
	"github.com/lexcontract/lexcontract-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("correo o contraseña incorrectos")
	ErrAccountBlocked       = errors.New("cuenta bloqueada temporalmente")
	ErrAccountInactive      = errors.New("su cuenta ha sido desactivada, contacte al administrador")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrInvalidResetToken    = errors.New("token inválido o expirado")
	ErrWrongCurrentPassword = errors.New("la contraseña actual es incorrecta")
)

const actionResetPassword = "reset_password"

// AuthService handles login, the account lockout state machine, and the
// password reset flow.
type AuthService struct {
	userRepo repository.UserRepository
	notifier Notifier

	secret       string
	tokenTTL     time.Duration
	resetURLBase string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, notifier Notifier, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		notifier:     notifier,
		secret:       cfg.JWTSecret,
		tokenTTL:     time.Duration(cfg.TokenExpireMinutes) * time.Minute,
		resetURLBase: cfg.ResetURLBase,
	}
}

// Login verifies credentials and returns a signed access token. Three
// consecutive failures block the account; blocked and inactive accounts are
// rejected before the password is even checked.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	switch user.Status {
	case constants.UserStatusBlocked:
		return "", ErrAccountBlocked
	case constants.UserStatusInactive:
		return "", ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		attempts, err := s.userRepo.IncrementFailedAttempts(user.ID)
		if err != nil {
			return "", fmt.Errorf("failed to record login failure: %w", err)
		}
		if attempts >= constants.MaxFailedAttempts {
			user.FailedAttempts = attempts
			user.Status = constants.UserStatusBlocked
			if err := s.userRepo.Update(user); err != nil {
				return "", fmt.Errorf("failed to block account: %w", err)
			}
			return "", ErrAccountBlocked
		}
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	user.FailedAttempts = 0
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		return "", fmt.Errorf("failed to record login: %w", err)
	}

	return utils.NewAccessToken(s.secret, strconv.FormatUint(uint64(user.ID), 10), "", s.tokenTTL)
}

// ForgotPassword issues a short-lived reset token and mails the link. The
// result is identical whether or not the email exists, so callers cannot
// enumerate accounts.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, err := utils.NewAccessToken(
		s.secret,
		strconv.FormatUint(uint64(user.ID), 10),
		actionResetPassword,
		constants.ResetTokenLifetime*time.Minute,
	)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/%s", s.resetURLBase, token)
	s.notifier.SendPasswordReset(user.Email, user.FullName(), resetLink)
	return nil
}

// ResetPassword verifies a reset token, applies the new password, and
// reactivates the account: state goes to Activo and the failed-login counter
// to zero, even when the account was blocked.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	claims, err := utils.ParseAccessToken(s.secret, token)
	if err != nil || claims.Action != actionResetPassword {
		return ErrInvalidResetToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return ErrInvalidResetToken
	}

	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	user.Status = constants.UserStatusActive
	user.FailedAttempts = 0

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// ChangePassword verifies the current password before applying a new one.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrWrongCurrentPassword
	}

	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// ResolveSubject maps a verified token subject to a user. Current tokens
// carry the numeric ID; tokens issued before the encoding change carry the
// email, kept as a fallback so they stay valid until expiry.
func (s *AuthService) ResolveSubject(subject string) (*models.User, error) {
	if id, err := strconv.ParseUint(subject, 10, 64); err == nil {
		user, err := s.userRepo.FindByID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		return user, nil
	}

	user, err := s.userRepo.FindByEmail(subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// VerifyToken parses and validates an access token.
func (s *AuthService) VerifyToken(token string) (*utils.TokenClaims, error) {
	return utils.ParseAccessToken(s.secret, token)
}
