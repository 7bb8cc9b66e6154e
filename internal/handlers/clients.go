package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lexcontract/lexcontract-api/internal/dto"
	apierrors "github.com/lexcontract/lexcontract-api/internal/errors"
	"github.com/lexcontract/lexcontract-api/internal/middleware"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/lexcontract/lexcontract-api/internal/services"
	"github.com/lexcontract/lexcontract-api/internal/utils"
)

// ClientHandler coordinates client HTTP handlers. Every route is scoped to
// the authenticated lawyer's own clients.
type ClientHandler struct {
	clientService *services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

type createClientRequest struct {
	NationalID string `json:"cedula" binding:"required"`
	FirstName  string `json:"nombre" binding:"required"`
	LastName   string `json:"apellido" binding:"required"`
	Phone      string `json:"celular"`
	Email      string `json:"correo"`
	Address    string `json:"direccion"`
	City       string `json:"ciudad"`
}

type updateClientRequest struct {
	NationalID *string `json:"cedula"`
	FirstName  *string `json:"nombre"`
	LastName   *string `json:"apellido"`
	Phone      *string `json:"celular"`
	Email      *string `json:"correo"`
	Address    *string `json:"direccion"`
	City       *string `json:"ciudad"`
	Status     *string `json:"estado"`
}

// CreateClient registers a client under the authenticated user.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	client, err := h.clientService.CreateClient(user.ID, services.CreateClientInput{
		NationalID: req.NationalID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		City:       req.City,
	})
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientDTO(*client))
}

// ListClients returns the caller's non-deleted clients.
func (h *ClientHandler) ListClients(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	offset, limit := paginationParams(c)
	clients, err := h.clientService.ListClients(user.ID, offset, limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientDTOs(clients))
}

// NextClientID previews the numeric identifier the next client would get.
func (h *ClientHandler) NextClientID(c *gin.Context) {
	next, err := h.clientService.NextClientID()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_id": next})
}

// GetClient returns one of the caller's clients.
func (h *ClientHandler) GetClient(c *gin.Context) {
	h.withClient(c, func(user *models.User, id uint) (*models.Client, error) {
		return h.clientService.GetClient(id, user.ID)
	})
}

// UpdateClient applies a sparse patch to one of the caller's clients.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	h.withClient(c, func(user *models.User, id uint) (*models.Client, error) {
		return h.clientService.UpdateClient(id, user.ID, services.UpdateClientInput{
			NationalID: req.NationalID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Phone:      req.Phone,
			Email:      req.Email,
			Address:    req.Address,
			City:       req.City,
			Status:     req.Status,
		})
	})
}

// DeleteClient soft-deletes one of the caller's clients.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	h.withClient(c, func(user *models.User, id uint) (*models.Client, error) {
		return h.clientService.DeleteClient(id, user.ID)
	})
}

// RestoreClient reverses a soft delete.
func (h *ClientHandler) RestoreClient(c *gin.Context) {
	h.withClient(c, func(user *models.User, id uint) (*models.Client, error) {
		return h.clientService.RestoreClient(id, user.ID)
	})
}

// withClient factors the shared shape of the single-client routes: resolve
// the caller, parse the path ID, run the operation, and render the client.
func (h *ClientHandler) withClient(c *gin.Context, op func(user *models.User, id uint) (*models.Client, error)) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "")
		return
	}

	client, err := op(user, id)
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClientDTO(*client))
}

func respondClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrClientNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrClientNationalIDTaken),
		errors.Is(err, services.ErrClientEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, utils.ErrInvalidNationalID),
		errors.Is(err, utils.ErrInvalidPhone):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
