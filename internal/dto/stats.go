package dto

import (
	"github.com/lexcontract/lexcontract-api/internal/services"
)

// StatsDTO is the dashboard stats response
type StatsDTO struct {
	FirmStats *services.FirmStats `json:"firmStats"`
	UserStats *services.UserStats `json:"userStats"`
}
