package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexcontract/lexcontract-api/internal/constants"
	"github.com/lexcontract/lexcontract-api/internal/dto"
	apierrors "github.com/lexcontract/lexcontract-api/internal/errors"
	"github.com/lexcontract/lexcontract-api/internal/middleware"
	"github.com/lexcontract/lexcontract-api/internal/services"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// ContractHandler coordinates contract and library HTTP handlers.
type ContractHandler struct {
	contractService *services.ContractService
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(contractService *services.ContractService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
	}
}

type createContractRequest struct {
	Title     string         `json:"titulo" binding:"required"`
	ClientID  *uint          `json:"cliente_id"`
	LawyerID  *uint          `json:"abogado_id"`
	Status    string         `json:"estado"`
	Kind      string         `json:"tipo"`
	Date      *string        `json:"fecha"`
	Total     float64        `json:"total"`
	Clauses   datatypes.JSON `json:"clauses"`
	ExtraVars datatypes.JSON `json:"variables_adicionales"`
}

type updateContractRequest struct {
	Title     *string        `json:"titulo"`
	ClientID  *uint          `json:"cliente_id"`
	LawyerID  *uint          `json:"abogado_id"`
	Status    *string        `json:"estado"`
	Kind      *string        `json:"tipo"`
	Text      *string        `json:"texto"`
	Date      *string        `json:"fecha"`
	Total     *float64       `json:"total"`
	Clauses   datatypes.JSON `json:"clauses"`
	ExtraVars datatypes.JSON `json:"variables_adicionales"`
}

type createLibraryItemRequest struct {
	Title        string         `json:"titulo" binding:"required"`
	Text         string         `json:"texto"`
	Clauses      datatypes.JSON `json:"clauses"`
	Kind         string         `json:"tipo"`
	PracticeArea string         `json:"areaPractica"`
}

// CreateContract creates a contract, generating its identifier when the
// caller does not supply one, and derives its payment rows.
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		apierrors.BadRequest(c, "fecha inválida, use el formato AAAA-MM-DD")
		return
	}

	contract, err := h.contractService.CreateContract(services.CreateContractInput{
		Title:     req.Title,
		ClientID:  req.ClientID,
		LawyerID:  req.LawyerID,
		Status:    req.Status,
		Kind:      req.Kind,
		Date:      date,
		Total:     req.Total,
		Clauses:   req.Clauses,
		ExtraVars: req.ExtraVars,
	})
	if err != nil {
		respondContractError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToContractDTO(*contract))
}

// ListContracts returns non-library contracts: all of them for admins, own
// contracts for everyone else.
func (h *ContractHandler) ListContracts(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	offset, limit := paginationParams(c)
	contracts, err := h.contractService.ListContracts(user, offset, limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractDTOs(contracts))
}

// GetContract returns a contract by ID.
func (h *ContractHandler) GetContract(c *gin.Context) {
	contract, err := h.contractService.GetContract(c.Param("id"))
	if err != nil {
		respondContractError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContractDTO(*contract))
}

// UpdateContract applies a sparse patch and re-derives payments.
func (h *ContractHandler) UpdateContract(c *gin.Context) {
	var req updateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		apierrors.BadRequest(c, "fecha inválida, use el formato AAAA-MM-DD")
		return
	}

	contract, err := h.contractService.UpdateContract(c.Param("id"), services.UpdateContractInput{
		Title:     req.Title,
		ClientID:  req.ClientID,
		LawyerID:  req.LawyerID,
		Status:    req.Status,
		Kind:      req.Kind,
		Text:      req.Text,
		Date:      date,
		Total:     req.Total,
		Clauses:   req.Clauses,
		ExtraVars: req.ExtraVars,
	})
	if err != nil {
		respondContractError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContractDTO(*contract))
}

// DeleteContract soft-deletes a contract.
func (h *ContractHandler) DeleteContract(c *gin.Context) {
	if err := h.contractService.DeleteContract(c.Param("id")); err != nil {
		respondContractError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contrato eliminado exitosamente"})
}

// ListPayments returns the derived payment rows of a contract.
func (h *ContractHandler) ListPayments(c *gin.Context) {
	if _, err := h.contractService.GetContract(c.Param("id")); err != nil {
		respondContractError(c, err)
		return
	}

	payments, err := h.contractService.ListPayments(c.Param("id"))
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentDTOs(payments))
}

// GenerateFromTemplate instantiates a contract from a library template.
func (h *ContractHandler) GenerateFromTemplate(c *gin.Context) {
	type generateRequest struct {
		ClientID  *uint          `json:"cliente_id"`
		LawyerID  *uint          `json:"abogado_id"`
		ExtraVars datatypes.JSON `json:"variables_adicionales"`
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	contract, err := h.contractService.GenerateFromTemplate(c.Param("id"), services.GenerateFromTemplateInput{
		ClientID:  req.ClientID,
		LawyerID:  req.LawyerID,
		ExtraVars: req.ExtraVars,
	})
	if err != nil {
		respondContractError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToContractDTO(*contract))
}

// ListClauses returns the non-deleted clause library.
func (h *ContractHandler) ListClauses(c *gin.Context) {
	h.listLibrary(c, constants.KindClause)
}

// ListTemplates returns the non-deleted template library.
func (h *ContractHandler) ListTemplates(c *gin.Context) {
	h.listLibrary(c, constants.KindTemplate)
}

func (h *ContractHandler) listLibrary(c *gin.Context, kind string) {
	items, err := h.contractService.ListLibrary(kind)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractDTOs(items))
}

// CreateClause adds a reusable clause to the library.
func (h *ContractHandler) CreateClause(c *gin.Context) {
	h.createLibraryItem(c, constants.KindClause)
}

// CreateTemplate adds a reusable template to the library.
func (h *ContractHandler) CreateTemplate(c *gin.Context) {
	h.createLibraryItem(c, constants.KindTemplate)
}

func (h *ContractHandler) createLibraryItem(c *gin.Context, kind string) {
	var req createLibraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	// The practice area arrives as "tipo" on the wire; "areaPractica" is
	// accepted too since the update remap stores it under that name.
	practiceArea := req.Kind
	if practiceArea == "" {
		practiceArea = req.PracticeArea
	}

	item, err := h.contractService.CreateLibraryItem(services.CreateLibraryItemInput{
		Title:        req.Title,
		Text:         req.Text,
		Clauses:      req.Clauses,
		PracticeArea: practiceArea,
	}, kind)
	if err != nil {
		respondContractError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToContractDTO(*item))
}

// UpdateLibraryItem applies a sparse patch to a clause or template.
func (h *ContractHandler) UpdateLibraryItem(c *gin.Context) {
	var req updateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	item, err := h.contractService.UpdateContract(c.Param("id"), services.UpdateContractInput{
		Title:     req.Title,
		Status:    req.Status,
		Kind:      req.Kind,
		Text:      req.Text,
		Clauses:   req.Clauses,
		ExtraVars: req.ExtraVars,
	})
	if err != nil {
		respondContractError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContractDTO(*item))
}

// DeleteLibraryItem soft-deletes a clause or template.
func (h *ContractHandler) DeleteLibraryItem(c *gin.Context) {
	if err := h.contractService.DeleteLibraryItem(c.Param("id")); err != nil {
		respondContractError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Elemento eliminado exitosamente"})
}

// parseDate converts an optional AAAA-MM-DD string into a time pointer. The
// second return reports whether the input was well-formed.
func parseDate(value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

func respondContractError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContractNotFound),
		errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrLibraryItemNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
