package service

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/camrado/pritok/internal/db"
	"github.com/camrado/pritok/internal/model"
	"github.com/camrado/pritok/internal/repository"
)

const testJWTSecret = "test-secret"

// newTestDB opens a migrated in-memory database. A single connection is
// required because every in-memory SQLite connection is its own database.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	t.Cleanup(func() { _ = database.Close() })
	return database
}

type testServices struct {
	db           *sqlx.DB
	auth         *AuthService
	verification *VerificationService
	users        *UserService
	categories   *CategoryService
	purchases    *PurchaseService
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	database := newTestDB(t)

	userRepo := repository.NewUserRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	cascadeRepo := repository.NewCascadeRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	purchaseRepo := repository.NewPurchaseRepository(database)

	// Dev mode logs emails instead of sending them
	emailService := NewEmailService("", "noreply@test.local", "support@test.local", "Pritok", true)
	verificationService := NewVerificationService(userRepo, emailService)
	authService := NewAuthService(userRepo, sessionRepo, verificationService, testJWTSecret)
	userService := NewUserService(userRepo, cascadeRepo, emailService)

	return &testServices{
		db:           database,
		auth:         authService,
		verification: verificationService,
		users:        userService,
		categories:   NewCategoryService(categoryRepo),
		purchases:    NewPurchaseService(purchaseRepo),
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
	}
}

// signUpVerified registers an account and marks it verified so record
// operations are not gated.
func signUpVerified(t *testing.T, ts *testServices, email string) *model.User {
	t.Helper()

	user, _, err := ts.auth.SignUp("Test User", email, "sufficiently-long")
	require.NoError(t, err)

	user.IsVerified = true
	user.VerificationCode = nil
	require.NoError(t, ts.userRepo.Update(user))

	return user
}
