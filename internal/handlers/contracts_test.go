package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lexcontract/lexcontract-api/internal/constants"
	"github.com/lexcontract/lexcontract-api/internal/dto"
	"github.com/lexcontract/lexcontract-api/internal/middleware"
	"github.com/lexcontract/lexcontract-api/internal/repository"
	"github.com/lexcontract/lexcontract-api/internal/services"
	"github.com/stretchr/testify/require"
)

type contractTestEnv struct {
	authTestEnv
	token string
}

func setupContractTestEnv(t *testing.T) contractTestEnv {
	t.Helper()
	env := setupAuthTestEnv(t)

	authService := services.NewAuthService(repository.NewUserRepository(env.db), recordingNotifier{}, testConfig())
	contractHandler := NewContractHandler(services.NewContractService(env.db))

	contracts := env.router.Group("/api/contracts")
	contracts.Use(middleware.RequireAuth(authService))
	{
		contracts.GET("/clausulas", contractHandler.ListClauses)
		contracts.GET("/plantillas", contractHandler.ListTemplates)
		contracts.POST("/clausula", contractHandler.CreateClause)
		contracts.POST("/plantilla", contractHandler.CreateTemplate)
		contracts.DELETE("/clausula/:id", contractHandler.DeleteLibraryItem)
		contracts.POST("/generar-desde-plantilla/:id", contractHandler.GenerateFromTemplate)

		contracts.POST("", contractHandler.CreateContract)
		contracts.GET("", contractHandler.ListContracts)
		contracts.GET("/:id", contractHandler.GetContract)
		contracts.GET("/:id/pagos", contractHandler.ListPayments)
	}

	env.createUser(t, "laura@firma.co", "Segura123", constants.UserStatusActive, constants.RoleAdmin)
	w := env.login(t, "laura@firma.co", "Segura123")
	require.Equal(t, http.StatusOK, w.Code)

	var token dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))

	return contractTestEnv{authTestEnv: env, token: token.AccessToken}
}

func (env contractTestEnv) do(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestCreateContractDerivesPayments(t *testing.T) {
	env := setupContractTestEnv(t)
	year := time.Now().Year()

	w := env.do(t, http.MethodPost, "/api/contracts", map[string]interface{}{
		"titulo": "Asesoría tributaria",
		"total":  1500,
		"variables_adicionales": map[string]interface{}{
			"modalidadPago": "abonos",
			"installments": []map[string]interface{}{
				{"monto": "1,000", "fecha": "2026-09-15"},
				{"monto": 500, "fecha": "2026-10-15"},
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var contract dto.ContractDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contract))
	require.Equal(t, fmt.Sprintf("CNT-%d-001", year), contract.ID)
	require.Equal(t, constants.ContractStatusDraft, contract.Status)

	w = env.do(t, http.MethodGet, "/api/contracts/"+contract.ID+"/pagos", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payments []dto.PaymentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payments))
	require.Len(t, payments, 2)
	require.Equal(t, constants.PaymentKindInstallment, payments[0].Kind)
	require.Equal(t, 1000.0, payments[0].Amount)
	require.Equal(t, 500.0, payments[1].Amount)
}

func TestCreateContractRejectsBadDate(t *testing.T) {
	env := setupContractTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/contracts", map[string]interface{}{
		"titulo": "Fecha rota",
		"fecha":  "15/09/2026",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLibraryLifecycle(t *testing.T) {
	env := setupContractTestEnv(t)
	year := time.Now().Year()

	w := env.do(t, http.MethodPost, "/api/contracts/clausula", map[string]interface{}{
		"titulo": "Cláusula de confidencialidad",
		"texto":  "Las partes se obligan a no divulgar...",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var clause dto.ContractDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clause))
	require.Equal(t, fmt.Sprintf("LIB-%d-001", year), clause.ID)
	require.True(t, clause.IsLibrary)

	w = env.do(t, http.MethodGet, "/api/contracts/clausulas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var clauses []dto.ContractDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clauses))
	require.Len(t, clauses, 1)

	w = env.do(t, http.MethodDelete, "/api/contracts/clausula/"+clause.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/contracts/clausulas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	clauses = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clauses))
	require.Empty(t, clauses)
}

func TestCreateTemplateBindsPracticeAreaFromTipo(t *testing.T) {
	env := setupContractTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/contracts/plantilla", map[string]interface{}{
		"titulo": "Plantilla laboral",
		"tipo":   "Derecho Laboral",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var template dto.ContractDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &template))

	var vars map[string]string
	require.NoError(t, json.Unmarshal(template.ExtraVars, &vars))
	require.Equal(t, "Derecho Laboral", vars["areaPractica"])
}

func TestGenerateFromTemplateEndpoint(t *testing.T) {
	env := setupContractTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/contracts/plantilla", map[string]interface{}{
		"titulo": "Plantilla de arrendamiento",
		"clauses": []map[string]string{
			{"titulo": "Objeto", "texto": "El arrendador entrega..."},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var template dto.ContractDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &template))

	w = env.do(t, http.MethodPost, "/api/contracts/generar-desde-plantilla/"+template.ID, map[string]interface{}{
		"variables_adicionales": map[string]interface{}{"modalidadPago": "unico"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var contract dto.ContractDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contract))
	require.Equal(t, "Contrato basado en Plantilla de arrendamiento", contract.Title)
	require.False(t, contract.IsLibrary)
	require.NotNil(t, contract.TemplateID)
	require.Equal(t, template.ID, *contract.TemplateID)

	// Unknown templates are a 404, not an empty contract
	w = env.do(t, http.MethodPost, "/api/contracts/generar-desde-plantilla/PLT-2099-999", map[string]interface{}{})
	require.Equal(t, http.StatusNotFound, w.Code)
}
