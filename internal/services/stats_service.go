package services

import (
	"fmt"

	"github.com/lexcontract/lexcontract-api/internal/constants"
	"github.com/lexcontract/lexcontract-api/internal/repository"
)

// FirmStats are firm-wide counts over non-deleted, non-library rows.
type FirmStats struct {
	TotalContracts int64 `json:"totalContracts"`
	TotalClients   int64 `json:"totalClients"`
}

// ContractStatusStats breaks a user's contracts down by state.
type ContractStatusStats struct {
	Expired   int64 `json:"expired"`
	Drafts    int64 `json:"drafts"`
	Completed int64 `json:"completed"`
}

// UserStats are the caller-scoped counts.
type UserStats struct {
	MyContracts    int64               `json:"myContracts"`
	MyClients      int64               `json:"myClients"`
	ContractStatus ContractStatusStats `json:"contractStatus"`
}

// StatsService aggregates read-only counts. No mutation, no side effects.
type StatsService struct {
	contractRepo repository.ContractRepository
	clientRepo   repository.ClientRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(contractRepo repository.ContractRepository, clientRepo repository.ClientRepository) *StatsService {
	return &StatsService{
		contractRepo: contractRepo,
		clientRepo:   clientRepo,
	}
}

// GetFirmStats returns firm-wide contract and client counts.
func (s *StatsService) GetFirmStats() (*FirmStats, error) {
	contracts, err := s.contractRepo.Count(repository.ContractCountFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count contracts: %w", err)
	}
	clients, err := s.clientRepo.Count(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	return &FirmStats{
		TotalContracts: contracts,
		TotalClients:   clients,
	}, nil
}

// GetUserStats returns the caller's contract/client counts and the per-state
// contract breakdown.
func (s *StatsService) GetUserStats(userID uint) (*UserStats, error) {
	myContracts, err := s.contractRepo.Count(repository.ContractCountFilter{LawyerID: &userID})
	if err != nil {
		return nil, fmt.Errorf("failed to count contracts: %w", err)
	}
	myClients, err := s.clientRepo.Count(&userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	byStatus := ContractStatusStats{}
	for status, target := range map[string]*int64{
		constants.ContractStatusExpired:   &byStatus.Expired,
		constants.ContractStatusDraft:     &byStatus.Drafts,
		constants.ContractStatusCompleted: &byStatus.Completed,
	} {
		count, err := s.contractRepo.Count(repository.ContractCountFilter{
			LawyerID: &userID,
			Status:   status,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to count contracts by status: %w", err)
		}
		*target = count
	}

	return &UserStats{
		MyContracts:    myContracts,
		MyClients:      myClients,
		ContractStatus: byStatus,
	}, nil
}
