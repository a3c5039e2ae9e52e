package service

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/camrado/pritok/internal/apperror"
	"github.com/camrado/pritok/internal/model"
	"github.com/camrado/pritok/internal/repository"
)

// VerificationService drives the account confirmation state machine:
// unverified accounts hold a pending 6-digit code that can be re-rolled
// until an exact match flips the account to verified.
type VerificationService struct {
	userRepository repository.UserRepository
	emailService   *EmailService
}

func NewVerificationService(userRepository repository.UserRepository, emailService *EmailService) *VerificationService {
	return &VerificationService{
		userRepository: userRepository,
		emailService:   emailService,
	}
}

// RequestCode rolls a fresh code, stores it and mails it out. The stored
// code is the source of truth; a lost email is recovered by requesting
// again.
func (s *VerificationService) RequestCode(user *model.User) error {
	if user.IsVerified {
		return apperror.AlreadyVerified("you've already confirmed your e-mail")
	}

	firstCode := user.VerificationCode == nil

	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	user.VerificationCode = &code
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if firstCode {
		err = s.emailService.SendVerificationEmail(user.Email, user.Name, code)
	} else {
		err = s.emailService.SendVerificationReminderEmail(user.Email, user.Name, code)
	}
	if err != nil {
		// The code is stored; delivery can be retried by requesting again
		slog.Warn("failed to send verification email", "error", err, "user_id", user.ID)
	}

	return nil
}

// ConfirmCode checks the submitted code. A mismatch leaves the stored
// code and the verification state untouched.
func (s *VerificationService) ConfirmCode(user *model.User, submitted string) error {
	if user.IsVerified {
		return apperror.AlreadyVerified("you've already confirmed your e-mail")
	}

	if user.VerificationCode == nil || submitted == "" || submitted != *user.VerificationCode {
		return apperror.InvalidCode("confirmation key is not correct")
	}

	user.IsVerified = true
	user.VerificationCode = nil
	err := s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to mark account verified: %w", err)
	}

	slog.Info("account verified", "user_id", user.ID)
	return nil
}

// generateVerificationCode draws a 6-digit code uniformly from
// [100000, 999999].
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
