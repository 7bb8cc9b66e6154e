package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lexcontract/lexcontract-api/internal/dto"
	apierrors "github.com/lexcontract/lexcontract-api/internal/errors"
	"github.com/lexcontract/lexcontract-api/internal/middleware"
	"github.com/lexcontract/lexcontract-api/internal/services"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats returns firm-wide totals alongside the caller's own counts.
func (h *StatsHandler) GetStats(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	firm, err := h.statsService.GetFirmStats()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	mine, err := h.statsService.GetUserStats(user.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.StatsDTO{
		FirmStats: firm,
		UserStats: mine,
	})
}
