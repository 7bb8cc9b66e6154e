package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lexcontract/lexcontract-api/internal/dto"
	apierrors "github.com/lexcontract/lexcontract-api/internal/errors"
	"github.com/lexcontract/lexcontract-api/internal/middleware"
	"github.com/lexcontract/lexcontract-api/internal/services"
	"github.com/lexcontract/lexcontract-api/internal/utils"
)

// UserHandler coordinates user and role HTTP handlers.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

type createUserRequest struct {
	FirstName  string `json:"nombre" binding:"required"`
	LastName   string `json:"apellido" binding:"required"`
	NationalID string `json:"cedula" binding:"required"`
	Phone      string `json:"celular"`
	Email      string `json:"correo" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Bio        string `json:"biografia"`
	RoleIDs    []uint `json:"roles_ids"`
}

type updateUserRequest struct {
	FirstName *string `json:"nombre"`
	LastName  *string `json:"apellido"`
	Phone     *string `json:"celular"`
	Email     *string `json:"correo"`
	Password  *string `json:"password"`
	Bio       *string `json:"biografia"`
	Status    *string `json:"estado"`
	RoleIDs   *[]uint `json:"roles_ids"`
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateMe applies a sparse patch to the authenticated user's own profile.
// Status and role changes are reserved for administrators.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	updated, err := h.userService.UpdateUser(user.ID, services.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
		Bio:       req.Bio,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*updated))
}

// ChangePassword updates the authenticated user's password after verifying
// the current one.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type changePasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	if err := h.authService.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contraseña actualizada exitosamente"})
}

// ListLawyers returns the users holding the lawyer role.
func (h *UserHandler) ListLawyers(c *gin.Context) {
	lawyers, err := h.userService.ListLawyers()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(lawyers))
}

// ListRoles returns all defined roles.
func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.userService.ListRoles()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	out := make([]dto.RoleDTO, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.ToRoleDTO(r))
	}
	c.JSON(http.StatusOK, out)
}

// CreateUser registers a new user. Admin only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		Email:      req.Email,
		Password:   req.Password,
		Bio:        req.Bio,
		RoleIDs:    req.RoleIDs,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers returns all users. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	offset, limit := paginationParams(c)
	users, err := h.userService.ListUsers(offset, limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns a user by ID. Admin only.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser applies a sparse patch to any user. Admin only.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.userService.UpdateUser(id, services.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
		Bio:       req.Bio,
		Status:    req.Status,
		RoleIDs:   req.RoleIDs,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrNationalIDTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrRoleNotFound):
		apierrors.InvalidReference(c, err.Error())
	case errors.Is(err, utils.ErrInvalidNationalID),
		errors.Is(err, utils.ErrInvalidPhone),
		isPasswordPolicyError(err):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
