package services

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/lexcontract/lexcontract-api/internal/constants"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func mustJSON(t *testing.T, v interface{}) datatypes.JSON {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}

func loadPayments(t *testing.T, db *gorm.DB, contractID string) []models.Payment {
	t.Helper()
	var payments []models.Payment
	require.NoError(t, db.Where("contract_id = ?", contractID).Order("id").Find(&payments).Error)
	return payments
}

func TestContractService_GenerateIDSequence(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)
	year := time.Now().Year()

	first, err := service.CreateContract(CreateContractInput{Title: "Asesoría tributaria"})
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("CNT-%d-001", year), first.ID)

	second, err := service.CreateContract(CreateContractInput{Title: "Litigio laboral"})
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("CNT-%d-002", year), second.ID)
}

func TestContractService_GenerateIDIsReadOnly(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)
	year := time.Now().Year()

	// Previewing an identifier writes nothing, so repeated calls agree
	first, err := service.GenerateID(constants.PrefixTemplate)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("PLT-%d-001", year), first)

	second, err := service.GenerateID(constants.PrefixTemplate)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// Prefixes are independent sequences
	require.NoError(t, db.Create(&models.Contract{
		ID:    fmt.Sprintf("LIB-%d-004", year),
		Title: "Cláusula existente",
		Kind:  constants.KindClause,
	}).Error)

	clauseID, err := service.GenerateID(constants.PrefixClause)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("LIB-%d-005", year), clauseID)

	templateID, err := service.GenerateID(constants.PrefixTemplate)
	require.NoError(t, err)
	require.Equal(t, first, templateID)
}

func TestContractService_GenerateIDSkipsUnparsableSuffixes(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)
	year := time.Now().Year()

	require.NoError(t, db.Create(&models.Contract{
		ID:    fmt.Sprintf("CNT-%d-borrador", year),
		Title: "Identificador manual",
		Kind:  constants.KindContract,
	}).Error)
	require.NoError(t, db.Create(&models.Contract{
		ID:    fmt.Sprintf("CNT-%d-007", year),
		Title: "Contrato existente",
		Kind:  constants.KindContract,
	}).Error)

	contract, err := service.CreateContract(CreateContractInput{Title: "Nuevo contrato"})
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("CNT-%d-008", year), contract.ID)
}

func TestContractService_GenerateIDCountsDeletedRows(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)
	year := time.Now().Year()

	contract, err := service.CreateContract(CreateContractInput{Title: "Contrato efímero"})
	require.NoError(t, err)
	require.NoError(t, service.DeleteContract(contract.ID))

	// Deleted rows keep their sequence number reserved
	next, err := service.CreateContract(CreateContractInput{Title: "Contrato siguiente"})
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("CNT-%d-002", year), next.ID)
}

func TestContractService_SinglePaymentFromTotal(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)

	contract, err := service.CreateContract(CreateContractInput{
		Title: "Pago único",
		Total: 1000,
		ExtraVars: mustJSON(t, map[string]interface{}{
			"modalidadPago": "unico",
		}),
	})
	require.NoError(t, err)

	payments := loadPayments(t, db, contract.ID)
	require.Len(t, payments, 1)
	require.Equal(t, constants.PaymentKindSingle, payments[0].Kind)
	require.Equal(t, 1000.0, payments[0].Amount)
	require.Equal(t, 1000.0, payments[0].ContractTotal)
	require.Equal(t, constants.PaymentStatusPending, payments[0].Status)
	require.NotNil(t, payments[0].DueDate)
}

func TestContractService_NoPaymentsWhenTotalZero(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)

	contract, err := service.CreateContract(CreateContractInput{Title: "Sin valor"})
	require.NoError(t, err)

	require.Empty(t, loadPayments(t, db, contract.ID))
}

func TestContractService_InstallmentAmountsParsed(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)

	contract, err := service.CreateContract(CreateContractInput{
		Title: "Pago por abonos",
		Total: 1500,
		ExtraVars: mustJSON(t, map[string]interface{}{
			"modalidadPago": "abonos",
			"installments": []map[string]interface{}{
				{"monto": "1,000", "fecha": "2026-09-15"},
				{"monto": 500, "fecha": "2026-10-15"},
				{"monto": "no-numérico"},
			},
		}),
	})
	require.NoError(t, err)

	payments := loadPayments(t, db, contract.ID)
	require.Len(t, payments, 3)
	for _, p := range payments {
		require.Equal(t, constants.PaymentKindInstallment, p.Kind)
		require.Equal(t, 1500.0, p.ContractTotal)
	}
	require.Equal(t, 1000.0, payments[0].Amount)
	require.NotNil(t, payments[0].DueDate)
	require.Equal(t, "2026-09-15", payments[0].DueDate.Format("2006-01-02"))
	require.Equal(t, 500.0, payments[1].Amount)
	require.Equal(t, 0.0, payments[2].Amount)
	require.Nil(t, payments[2].DueDate)
}

func TestContractService_UpdateRegeneratesPayments(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)

	contract, err := service.CreateContract(CreateContractInput{
		Title: "Plan cambiante",
		Total: 900,
		ExtraVars: mustJSON(t, map[string]interface{}{
			"modalidadPago": "abonos",
			"installments": []map[string]interface{}{
				{"monto": 300}, {"monto": 300}, {"monto": 300},
			},
		}),
	})
	require.NoError(t, err)
	require.Len(t, loadPayments(t, db, contract.ID), 3)

	_, err = service.UpdateContract(contract.ID, UpdateContractInput{
		ExtraVars: mustJSON(t, map[string]interface{}{
			"modalidadPago": "unico",
		}),
	})
	require.NoError(t, err)

	payments := loadPayments(t, db, contract.ID)
	require.Len(t, payments, 1)
	require.Equal(t, constants.PaymentKindSingle, payments[0].Kind)
}

func TestContractService_LibraryItemCarriesNoPayments(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)

	item, err := service.CreateLibraryItem(CreateLibraryItemInput{
		Title: "Cláusula de confidencialidad",
		Text:  "Las partes se obligan a no divulgar...",
	}, constants.KindClause)
	require.NoError(t, err)
	require.True(t, item.IsLibrary)
	require.Empty(t, loadPayments(t, db, item.ID))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(item.Clauses, &payload))
	require.Equal(t, "Cláusula de confidencialidad", payload["titulo"])
	require.Equal(t, "Las partes se obligan a no divulgar...", payload["texto"])
}

func TestContractService_GenerateFromTemplate(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)
	year := time.Now().Year()

	template, err := service.CreateLibraryItem(CreateLibraryItemInput{
		Title: "Plantilla de prestación de servicios",
		Clauses: mustJSON(t, []map[string]string{
			{"titulo": "Objeto", "texto": "El contratista se obliga a..."},
		}),
	}, constants.KindTemplate)
	require.NoError(t, err)

	clientID := uint(7)
	lawyerID := uint(3)
	contract, err := service.GenerateFromTemplate(template.ID, GenerateFromTemplateInput{
		ClientID: &clientID,
		LawyerID: &lawyerID,
		ExtraVars: mustJSON(t, map[string]interface{}{
			"modalidadPago": "unico",
		}),
	})
	require.NoError(t, err)

	require.Equal(t, fmt.Sprintf("CNT-%d-001", year), contract.ID)
	require.Equal(t, "Contrato basado en Plantilla de prestación de servicios", contract.Title)
	require.Equal(t, constants.ContractStatusDraft, contract.Status)
	require.False(t, contract.IsLibrary)
	require.NotNil(t, contract.TemplateID)
	require.Equal(t, template.ID, *contract.TemplateID)
	require.Equal(t, &clientID, contract.ClientID)
	require.JSONEq(t, string(template.Clauses), string(contract.Clauses))
}

func TestContractService_GenerateFromTemplateRejectsNonTemplates(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)

	clause, err := service.CreateLibraryItem(CreateLibraryItemInput{
		Title: "Cláusula suelta",
		Text:  "Texto",
	}, constants.KindClause)
	require.NoError(t, err)

	_, err = service.GenerateFromTemplate(clause.ID, GenerateFromTemplateInput{})
	require.ErrorIs(t, err, ErrTemplateNotFound)

	contract, err := service.CreateContract(CreateContractInput{Title: "Contrato normal"})
	require.NoError(t, err)

	_, err = service.GenerateFromTemplate(contract.ID, GenerateFromTemplateInput{})
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = service.GenerateFromTemplate("PLT-2099-999", GenerateFromTemplateInput{})
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestContractService_UpdateClauseRemapsTextAndKind(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)

	clause, err := service.CreateLibraryItem(CreateLibraryItemInput{
		Title: "Cláusula penal",
		Text:  "Texto original",
	}, constants.KindClause)
	require.NoError(t, err)

	newText := "Texto corregido"
	newKind := "Derecho Comercial"
	updated, err := service.UpdateContract(clause.ID, UpdateContractInput{
		Text: &newText,
		Kind: &newKind,
	})
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(updated.Clauses, &payload))
	require.Equal(t, "Texto corregido", payload["texto"])

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(updated.ExtraVars, &vars))
	require.Equal(t, "Derecho Comercial", vars["areaPractica"])

	// The discriminator itself never changes for library rows
	require.Equal(t, constants.KindClause, updated.Kind)
}

func TestContractService_UpdateTemplateReplacesClauseList(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)

	template, err := service.CreateLibraryItem(CreateLibraryItemInput{
		Title: "Plantilla de mandato",
		Clauses: mustJSON(t, []map[string]string{
			{"titulo": "Objeto", "texto": "v1"},
		}),
	}, constants.KindTemplate)
	require.NoError(t, err)

	revised := mustJSON(t, []map[string]string{
		{"titulo": "Objeto", "texto": "v2"},
		{"titulo": "Honorarios", "texto": "El mandante pagará..."},
	})
	updated, err := service.UpdateContract(template.ID, UpdateContractInput{
		Clauses: revised,
	})
	require.NoError(t, err)
	require.JSONEq(t, string(revised), string(updated.Clauses))

	// The stored row changed too, not just the returned value
	var stored models.Contract
	require.NoError(t, db.First(&stored, "id = ?", template.ID).Error)
	require.JSONEq(t, string(revised), string(stored.Clauses))
	require.True(t, stored.IsLibrary)
}

func TestContractService_ListContractsScopedByRole(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)

	adminRole := models.Role{Name: constants.RoleAdmin}
	lawyerRole := models.Role{Name: constants.RoleLawyer}
	require.NoError(t, db.Create(&adminRole).Error)
	require.NoError(t, db.Create(&lawyerRole).Error)

	admin := models.User{FirstName: "Ana", Email: "ana@firma.co", NationalID: "100", Roles: []models.Role{adminRole}}
	lawyer := models.User{FirstName: "Luis", Email: "luis@firma.co", NationalID: "200", Roles: []models.Role{lawyerRole}}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&lawyer).Error)

	_, err := service.CreateContract(CreateContractInput{Title: "De Luis", LawyerID: &lawyer.ID})
	require.NoError(t, err)
	_, err = service.CreateContract(CreateContractInput{Title: "De otro", LawyerID: &admin.ID})
	require.NoError(t, err)

	all, err := service.ListContracts(&admin, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 2)

	own, err := service.ListContracts(&lawyer, 0, 100)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, "De Luis", own[0].Title)
}

func TestContractService_DeleteLibraryItemIgnoresContracts(t *testing.T) {
	db := newTestDB(t)
	service := NewContractService(db)

	contract, err := service.CreateContract(CreateContractInput{Title: "Contrato normal"})
	require.NoError(t, err)

	err = service.DeleteLibraryItem(contract.ID)
	require.ErrorIs(t, err, ErrLibraryItemNotFound)

	clause, err := service.CreateLibraryItem(CreateLibraryItemInput{Title: "Cláusula"}, constants.KindClause)
	require.NoError(t, err)
	require.NoError(t, service.DeleteLibraryItem(clause.ID))

	items, err := service.ListLibrary(constants.KindClause)
	require.NoError(t, err)
	require.Empty(t, items)
}
