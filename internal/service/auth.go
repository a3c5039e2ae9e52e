package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/camrado/pritok/internal/apperror"
	"github.com/camrado/pritok/internal/model"
	"github.com/camrado/pritok/internal/repository"
	"github.com/camrado/pritok/internal/validation"
)

const bearerPrefix = "Bearer "

// AuthService owns account registration, credential checks and the
// session lifecycle. A bearer token is a signed JWT, but it only grants
// access while its session row exists: revocation takes effect on the
// very next request.
type AuthService struct {
	userRepository      repository.UserRepository
	sessionRepository   repository.SessionRepository
	verificationService *VerificationService
	jwtSecret           string
}

func NewAuthService(
	userRepository repository.UserRepository,
	sessionRepository repository.SessionRepository,
	verificationService *VerificationService,
	jwtSecret string,
) *AuthService {
	return &AuthService{
		userRepository:      userRepository,
		sessionRepository:   sessionRepository,
		verificationService: verificationService,
		jwtSecret:           jwtSecret,
	}
}

// SignUp registers a new account, opens its first session and kicks off
// email verification. The verification email is fire-and-forget: signup
// succeeds even when delivery fails.
func (s *AuthService) SignUp(name, email, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateName(name)
	if err != nil {
		return nil, "", apperror.InvalidFields(err.Error())
	}
	err = validation.ValidateEmail(email)
	if err != nil {
		return nil, "", apperror.InvalidFields(err.Error())
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, "", apperror.InvalidFields(err.Error())
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedBytes),
		CreatedAt:    time.Now(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", apperror.DuplicateKey("this email is already taken")
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	err = s.verificationService.RequestCode(user)
	if err != nil {
		// The account exists and is usable, verification can be retried
		slog.Warn("failed to start email verification", "error", err, "user_id", user.ID)
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login checks the credentials and opens a new session. The failure is
// the same for an unknown email and a wrong password.
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", apperror.Unauthenticated("unable to login")
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, "", apperror.Unauthenticated("unable to login")
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// IssueToken signs a new bearer token and persists its session before
// returning. Tokens carry no expiry; they are valid until revoked.
func (s *AuthService) IssueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     time.Now().Unix(),
		"jti":     uuid.New().String(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	err = s.sessionRepository.Create(&model.Session{UserID: userID, Token: token})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return token, nil
}

// ResolveBearer authenticates an Authorization header value. A header
// without the Bearer prefix is a malformed credential; an undecodable or
// revoked token is unauthenticated.
func (s *AuthService) ResolveBearer(header string) (*model.User, string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, "", apperror.MalformedCredential("authorization header must use the Bearer scheme")
	}

	token := strings.TrimPrefix(header, bearerPrefix)

	user, err := s.ResolveToken(token)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ResolveToken maps a bearer token back to its account.
func (s *AuthService) ResolveToken(token string) (*model.User, error) {
	_, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, apperror.Unauthenticated("token cannot be decoded")
	}

	session, err := s.sessionRepository.ByToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, apperror.Unauthenticated("please authenticate")
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	user, err := s.userRepository.ByID(session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.Unauthenticated("please authenticate")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Logout revokes the presented token only; other sessions stay active.
func (s *AuthService) Logout(userID, token string) error {
	err := s.sessionRepository.Delete(userID, token)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// LogoutAll revokes every session of the account.
func (s *AuthService) LogoutAll(userID string) error {
	err := s.sessionRepository.DeleteAllForUser(userID)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}
