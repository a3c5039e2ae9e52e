package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/camrado/pritok/internal/apperror"
	"github.com/camrado/pritok/internal/app"
	"github.com/camrado/pritok/internal/config"
	"github.com/camrado/pritok/internal/db"
	"github.com/camrado/pritok/internal/model"
	"github.com/camrado/pritok/internal/repository"
	"github.com/camrado/pritok/internal/service"
)

func newTestApp(t *testing.T, rateLimit int) (*app.App, http.Handler) {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	// A single connection is required because every in-memory SQLite
	// connection is its own database.
	database.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	t.Cleanup(func() { _ = database.Close() })

	userRepository := repository.NewUserRepository(database)
	sessionRepository := repository.NewSessionRepository(database)
	cascadeRepository := repository.NewCascadeRepository(database)
	categoryRepository := repository.NewCategoryRepository(database)
	purchaseRepository := repository.NewPurchaseRepository(database)

	emailService := service.NewEmailService("", "noreply@test.local", "support@test.local", "Pritok", true)
	verificationService := service.NewVerificationService(userRepository, emailService)
	authService := service.NewAuthService(userRepository, sessionRepository, verificationService, "test-secret")

	a := &app.App{
		Cfg: &config.Config{
			AppEnv:         "development",
			AuthRateLimit:  rateLimit,
			AuthRateWindow: time.Minute,
		},
		DB:                  database,
		AuthService:         authService,
		VerificationService: verificationService,
		UserService:         service.NewUserService(userRepository, cascadeRepository, emailService),
		EmailService:        emailService,
		CategoryService:     service.NewCategoryService(categoryRepository),
		PurchaseService:     service.NewPurchaseService(purchaseRepository),
	}

	return a, SetupRoutes(a)
}

func do(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

type errorBody struct {
	Error struct {
		Code    apperror.Code `json:"code"`
		Message string        `json:"message"`
	} `json:"error"`
}

func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code apperror.Code) {
	t.Helper()

	var body errorBody
	decodeBody(t, rec, &body)
	require.Equal(t, code, body.Error.Code)
	assert.Equal(t, apperror.Status(code), rec.Code)
}

type authBody struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// signUp registers an account over HTTP and returns its token.
func signUp(t *testing.T, h http.Handler, email string) authBody {
	t.Helper()

	rec := do(t, h, "POST", "/users", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "sufficiently-long",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body authBody
	decodeBody(t, rec, &body)
	require.NotEmpty(t, body.Token)
	return body
}

// verify flips the account to verified directly in storage so record
// routes open up without walking the email flow.
func verify(t *testing.T, a *app.App, email string) {
	t.Helper()

	_, err := a.DB.Exec(`UPDATE users SET is_verified = 1, verification_code = NULL WHERE email = $1`, email)
	require.NoError(t, err)
}

func TestSignUpAndMe(t *testing.T) {
	_, h := newTestApp(t, 100)

	signedUp := signUp(t, h, "a@x.com")

	rec := do(t, h, "GET", "/users/me", signedUp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me model.User
	decodeBody(t, rec, &me)
	assert.Equal(t, "a@x.com", me.Email)
	assert.False(t, me.IsVerified)

	// The password hash never leaves the server
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthenticationErrors(t *testing.T) {
	_, h := newTestApp(t, 100)

	rec := do(t, h, "GET", "/users/me", "", nil)
	requireErrorCode(t, rec, apperror.CodeMalformedCredential)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)

	rec = do(t, h, "GET", "/users/me", "not-a-jwt", nil)
	requireErrorCode(t, rec, apperror.CodeUnauthenticated)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnverifiedAccountCannotReachRecords(t *testing.T) {
	_, h := newTestApp(t, 100)
	signedUp := signUp(t, h, "a@x.com")

	rec := do(t, h, "GET", "/category", signedUp.Token, nil)
	requireErrorCode(t, rec, apperror.CodeVerificationRequired)

	rec = do(t, h, "POST", "/purchase", signedUp.Token, map[string]any{
		"date": "2024-01-05", "category": "Food", "item": "Coffee", "price": 3.5, "quantity": 2,
	})
	requireErrorCode(t, rec, apperror.CodeVerificationRequired)
}

func TestVerificationFlow(t *testing.T) {
	a, h := newTestApp(t, 100)
	signedUp := signUp(t, h, "a@x.com")

	var code string
	require.NoError(t, a.DB.Get(&code, `SELECT verification_code FROM users WHERE email = $1`, "a@x.com"))
	require.Len(t, code, 6)

	rec := do(t, h, "POST", "/users/me/verify", signedUp.Token, map[string]string{
		"verificationKey": "000000",
	})
	requireErrorCode(t, rec, apperror.CodeInvalidCode)

	rec = do(t, h, "POST", "/users/me/verify", signedUp.Token, map[string]string{
		"verificationKey": code,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, "POST", "/category", signedUp.Token, map[string]string{
		"name": "Food", "description": "groceries",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// A second confirmation attempt reports the account as done
	rec = do(t, h, "POST", "/users/me/verify", signedUp.Token, map[string]string{
		"verificationKey": code,
	})
	requireErrorCode(t, rec, apperror.CodeAlreadyVerified)
}

func TestPurchaseLifecycle(t *testing.T) {
	a, h := newTestApp(t, 100)
	signedUp := signUp(t, h, "a@x.com")
	verify(t, a, "a@x.com")

	rec := do(t, h, "POST", "/purchase", signedUp.Token, map[string]any{
		"date": "2024-01-05", "category": "Food", "item": "Coffee", "price": 3.5, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Purchase
	decodeBody(t, rec, &created)
	assert.Equal(t, 7.0, created.TotalPrice)

	for day, item := range map[string]string{"2024-01-02": "Bread", "2024-01-09": "Milk"} {
		rec = do(t, h, "POST", "/purchase", signedUp.Token, map[string]any{
			"date": day, "category": "Food", "item": item, "price": 1.0, "quantity": 1,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// Listing is date ordered
	rec = do(t, h, "GET", "/purchase", signedUp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []model.Purchase
	decodeBody(t, rec, &listed)
	require.Len(t, listed, 3)
	assert.Equal(t, "Bread", listed[0].Item)
	assert.Equal(t, "Milk", listed[2].Item)

	// Search, range and pagination combine
	rec = do(t, h, "GET", "/purchase?search=coffee", signedUp.Token, nil)
	decodeBody(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Coffee", listed[0].Item)

	rec = do(t, h, "GET", "/purchase?fromDate=2024-01-05&toDate=2024-01-09&skip=1&limit=5", signedUp.Token, nil)
	decodeBody(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Milk", listed[0].Item)

	rec = do(t, h, "GET", "/purchase/page-num?limit=2", signedUp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pages struct {
		Pages int `json:"pages"`
	}
	decodeBody(t, rec, &pages)
	assert.Equal(t, 2, pages.Pages)

	rec = do(t, h, "GET", "/purchase/page-num", signedUp.Token, nil)
	requireErrorCode(t, rec, apperror.CodeInvalidFields)

	// Updating quantity recomputes the total
	rec = do(t, h, "PUT", "/purchase/"+created.ID, signedUp.Token, map[string]any{"quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.Purchase
	decodeBody(t, rec, &updated)
	assert.Equal(t, 10.5, updated.TotalPrice)

	// Unknown patch keys are rejected
	rec = do(t, h, "PUT", "/purchase/"+created.ID, signedUp.Token, map[string]any{"author": "someone-else"})
	requireErrorCode(t, rec, apperror.CodeInvalidFields)

	rec = do(t, h, "DELETE", "/purchase/"+created.ID, signedUp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, "GET", "/purchase/"+created.ID, signedUp.Token, nil)
	requireErrorCode(t, rec, apperror.CodeNotFound)
}

func TestRecordsAreOwnerScoped(t *testing.T) {
	a, h := newTestApp(t, 100)
	alice := signUp(t, h, "a@x.com")
	verify(t, a, "a@x.com")
	bob := signUp(t, h, "b@x.com")
	verify(t, a, "b@x.com")

	rec := do(t, h, "POST", "/purchase", alice.Token, map[string]any{
		"date": "2024-01-05", "category": "Food", "item": "Coffee", "price": 3.5, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Purchase
	decodeBody(t, rec, &created)

	rec = do(t, h, "GET", "/purchase/"+created.ID, bob.Token, nil)
	requireErrorCode(t, rec, apperror.CodeNotFound)

	rec = do(t, h, "GET", "/purchase", bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestLogoutRevokesToken(t *testing.T) {
	_, h := newTestApp(t, 100)
	signedUp := signUp(t, h, "a@x.com")

	rec := do(t, h, "POST", "/users/logout", signedUp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, "GET", "/users/me", signedUp.Token, nil)
	requireErrorCode(t, rec, apperror.CodeUnauthenticated)
}

func TestContactUsRequiresMessage(t *testing.T) {
	_, h := newTestApp(t, 100)

	rec := do(t, h, "POST", "/users/contact-us", "", map[string]string{
		"name": "Alice", "email": "a@x.com", "purpose": "feedback",
	})
	requireErrorCode(t, rec, apperror.CodeInvalidFields)

	rec = do(t, h, "POST", "/users/contact-us", "", map[string]string{
		"name": "Alice", "email": "a@x.com", "purpose": "feedback", "message": "hello",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRateLimit(t *testing.T) {
	_, h := newTestApp(t, 3)

	for i := 0; i < 3; i++ {
		rec := do(t, h, "POST", "/users/login", "", map[string]string{
			"email": fmt.Sprintf("nobody%d@x.com", i), "password": "whatever-long",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := do(t, h, "POST", "/users/login", "", map[string]string{
		"email": "nobody@x.com", "password": "whatever-long",
	})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
