package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lexcontract/lexcontract-api/internal/config"
	"github.com/lexcontract/lexcontract-api/internal/constants"
	"github.com/lexcontract/lexcontract-api/internal/database"
	"github.com/lexcontract/lexcontract-api/internal/dto"
	"github.com/lexcontract/lexcontract-api/internal/middleware"
	"github.com/lexcontract/lexcontract-api/internal/models"
	"github.com/lexcontract/lexcontract-api/internal/repository"
	"github.com/lexcontract/lexcontract-api/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		TokenExpireMinutes: 60,
		ResetURLBase:       "http://localhost:5173/reset-password",
	}
}

// recordingNotifier keeps notification mail out of handler tests.
type recordingNotifier struct{}

func (recordingNotifier) SendWelcome(email, fullName string) {}

func (recordingNotifier) SendPasswordReset(email, fullName, resetLink string) {}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Client{},
		&models.Contract{},
		&models.Payment{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	cfg := testConfig()
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, recordingNotifier{}, cfg)
	userService := services.NewUserService(userRepo, recordingNotifier{})

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService, authService)

	r := gin.New()
	r.POST("/api/auth/token", authHandler.Login)

	users := r.Group("/api/users")
	users.Use(middleware.RequireAuth(authService))
	{
		users.GET("/me", userHandler.Me)
		users.GET("", middleware.RequireAdmin(), userHandler.ListUsers)
	}

	return authTestEnv{db: db, router: r}
}

func (env authTestEnv) createUser(t *testing.T, email, password, status string, roles ...string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		FirstName:    "Laura",
		LastName:     "Gómez",
		NationalID:   email[:1] + "012345678",
		Email:        email,
		PasswordHash: string(hashed),
		Status:       status,
	}
	for _, name := range roles {
		var role models.Role
		err := env.db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error
		require.NoError(t, err)
		user.Roles = append(user.Roles, role)
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env authTestEnv) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"correo":   email,
		"password": password,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env authTestEnv) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestLoginAndAccessProtectedRoute(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "laura@firma.co", "Segura123", constants.UserStatusActive)

	w := env.login(t, "laura@firma.co", "Segura123")
	require.Equal(t, http.StatusOK, w.Code)

	var token dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.AccessToken)
	require.Equal(t, "bearer", token.TokenType)

	me := env.get(t, "/api/users/me", token.AccessToken)
	require.Equal(t, http.StatusOK, me.Code)

	var profile dto.UserDTO
	require.NoError(t, json.Unmarshal(me.Body.Bytes(), &profile))
	require.Equal(t, "laura@firma.co", profile.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "laura@firma.co", "Segura123", constants.UserStatusActive)

	w := env.login(t, "laura@firma.co", "incorrecta")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.login(t, "nadie@firma.co", "Segura123")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginBlocksAfterRepeatedFailures(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "laura@firma.co", "Segura123", constants.UserStatusActive)

	for i := 0; i < constants.MaxFailedAttempts-1; i++ {
		w := env.login(t, "laura@firma.co", "incorrecta")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := env.login(t, "laura@firma.co", "incorrecta")
	require.Equal(t, http.StatusForbidden, w.Code)

	// Correct credentials no longer work either
	w = env.login(t, "laura@firma.co", "Segura123")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.get(t, "/api/users/me", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.get(t, "/api/users/me", "no-es-un-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeactivatedAccountLosesAccess(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "laura@firma.co", "Segura123", constants.UserStatusActive)

	w := env.login(t, "laura@firma.co", "Segura123")
	require.Equal(t, http.StatusOK, w.Code)

	var token dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))

	// Deactivation takes effect on the next request, not at token expiry
	require.NoError(t, env.db.Model(user).Update("status", constants.UserStatusInactive).Error)

	me := env.get(t, "/api/users/me", token.AccessToken)
	require.Equal(t, http.StatusForbidden, me.Code)
}

func TestAdminRouteRejectsNonAdmins(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "laura@firma.co", "Segura123", constants.UserStatusActive, constants.RoleLawyer)
	env.createUser(t, "admin@firma.co", "Segura123", constants.UserStatusActive, constants.RoleAdmin)

	w := env.login(t, "laura@firma.co", "Segura123")
	require.Equal(t, http.StatusOK, w.Code)
	var lawyerToken dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lawyerToken))

	list := env.get(t, "/api/users", lawyerToken.AccessToken)
	require.Equal(t, http.StatusForbidden, list.Code)

	w = env.login(t, "admin@firma.co", "Segura123")
	require.Equal(t, http.StatusOK, w.Code)
	var adminToken dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adminToken))

	list = env.get(t, "/api/users", adminToken.AccessToken)
	require.Equal(t, http.StatusOK, list.Code)
}
