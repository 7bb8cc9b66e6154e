package services

import (
	"testing"

	"github.com/lexcontract/lexcontract-api/internal/constants"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/lexcontract/lexcontract-api/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestStatsService_CountsExcludeLibraryAndDeleted(t *testing.T) {
	db := newTestDB(t)
	contractService := NewContractService(db)
	clientService := NewClientService(repository.NewClientRepository(db))
	service := NewStatsService(repository.NewContractRepository(db), repository.NewClientRepository(db))

	lawyerID := uint(1)
	otherID := uint(2)

	mkContract := func(title, status string, owner uint) *models.Contract {
		c, err := contractService.CreateContract(CreateContractInput{
			Title:    title,
			Status:   status,
			LawyerID: &owner,
		})
		require.NoError(t, err)
		return c
	}

	mkContract("Borrador propio", constants.ContractStatusDraft, lawyerID)
	mkContract("Vencido propio", constants.ContractStatusExpired, lawyerID)
	mkContract("Terminado propio", constants.ContractStatusCompleted, lawyerID)
	mkContract("De otro abogado", constants.ContractStatusDraft, otherID)

	deleted := mkContract("Eliminado", constants.ContractStatusDraft, lawyerID)
	require.NoError(t, contractService.DeleteContract(deleted.ID))

	_, err := contractService.CreateLibraryItem(CreateLibraryItemInput{Title: "Cláusula"}, constants.KindClause)
	require.NoError(t, err)

	_, err = clientService.CreateClient(lawyerID, CreateClientInput{
		NationalID: "1098765432",
		FirstName:  "Carlos",
		LastName:   "Ruiz",
	})
	require.NoError(t, err)
	_, err = clientService.CreateClient(otherID, CreateClientInput{
		NationalID: "2087654321",
		FirstName:  "Elena",
		LastName:   "Mora",
	})
	require.NoError(t, err)

	firm, err := service.GetFirmStats()
	require.NoError(t, err)
	require.EqualValues(t, 4, firm.TotalContracts)
	require.EqualValues(t, 2, firm.TotalClients)

	mine, err := service.GetUserStats(lawyerID)
	require.NoError(t, err)
	require.EqualValues(t, 3, mine.MyContracts)
	require.EqualValues(t, 1, mine.MyClients)
	require.EqualValues(t, 1, mine.ContractStatus.Drafts)
	require.EqualValues(t, 1, mine.ContractStatus.Expired)
	require.EqualValues(t, 1, mine.ContractStatus.Completed)
}
