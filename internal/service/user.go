package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/camrado/pritok/internal/apperror"
	"github.com/camrado/pritok/internal/model"
	"github.com/camrado/pritok/internal/repository"
	"github.com/camrado/pritok/internal/validation"
)

// ProfilePatch carries the fields an account may change about itself.
// Nil means the field was not supplied.
type ProfilePatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type UserService struct {
	userRepository    repository.UserRepository
	cascadeRepository repository.CascadeRepository
	emailService      *EmailService
}

func NewUserService(
	userRepository repository.UserRepository,
	cascadeRepository repository.CascadeRepository,
	emailService *EmailService,
) *UserService {
	return &UserService{
		userRepository:    userRepository,
		cascadeRepository: cascadeRepository,
		emailService:      emailService,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes the account's name or email. The email can only
// change while the account is unverified, because verification attests
// the address on file.
func (s *UserService) UpdateProfile(user *model.User, patch ProfilePatch) error {
	if patch.Name == nil && patch.Email == nil {
		return apperror.InvalidFields("nothing to update")
	}

	if patch.Email != nil && user.IsVerified {
		return apperror.AlreadyVerified("you've already confirmed your e-mail")
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		err := validation.ValidateName(name)
		if err != nil {
			return apperror.InvalidFields(err.Error())
		}
		user.Name = name
	}

	if patch.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*patch.Email))
		err := validation.ValidateEmail(email)
		if err != nil {
			return apperror.InvalidFields(err.Error())
		}
		user.Email = email
	}

	err := s.userRepository.Update(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return apperror.DuplicateKey("this email is already taken")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// UpdatePassword replaces the password after checking the current one.
func (s *UserService) UpdatePassword(user *model.User, currentPassword, newPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword))
	if err != nil {
		return apperror.InvalidFields("current password is not correct")
	}

	if currentPassword == newPassword {
		return apperror.InvalidFields("new password cannot be the same as old one")
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return apperror.InvalidFields(err.Error())
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashedBytes)
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// DeleteAccount removes the account and everything it owns in one
// transaction.
func (s *UserService) DeleteAccount(userID string) error {
	err := s.cascadeRepository.DeleteAccount(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.NotFound("user not found")
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	slog.Info("account deleted", "user_id", userID)
	return nil
}

// RelayContactMessage forwards a contact-us submission to the support
// inbox. Delivery failures are logged, never surfaced: the endpoint
// always acknowledges.
func (s *UserService) RelayContactMessage(name, email, purpose, message string) {
	err := s.emailService.SendContactMessage(name, email, purpose, message)
	if err != nil {
		slog.Warn("failed to relay contact message", "error", err, "from", email)
	}
}
