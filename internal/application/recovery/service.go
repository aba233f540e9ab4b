package recovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medilink-notifier/internal/domain"
	"github.com/medilink-notifier/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type ResetInput struct {
	Email       string
	NewPassword string
	Code        string
}

type Service interface {
	// ResetPassword checks the submitted verification code against the directory
	// record for Email and, when it is valid, replaces the credential and clears the code.
	ResetPassword(ctx context.Context, in ResetInput) error
}

type directory interface {
	FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error)
	ResetCredential(ctx context.Context, rec *domain.UserRecord, passwordHash, code string, now time.Time) error
}

type ServiceDeps struct {
	Directory  directory
	Now        func() time.Time // defaults to time.Now
	BcryptCost int              // defaults to bcrypt.DefaultCost
}

type service struct {
	dir  directory
	now  func() time.Time
	cost int
}

func NewService(deps ServiceDeps) Service {
	s := &service{dir: deps.Directory, now: deps.Now, cost: deps.BcryptCost}
	if s.now == nil {
		s.now = time.Now
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	return s
}

func (s *service) ResetPassword(ctx context.Context, in ResetInput) error {
	if in.Email == "" || in.NewPassword == "" || in.Code == "" {
		return fmt.Errorf("email, new password and verification code are required: %w", domain.ErrMissingInput)
	}

	rec, err := s.dir.FindByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	if rec.VerificationCode == nil || *rec.VerificationCode != in.Code {
		logger.Log.Infow("password reset rejected", "reason", "code mismatch", "partition", rec.Partition, "user_id", rec.UserID)
		return fmt.Errorf("code mismatch: %w", domain.ErrInvalidCode)
	}

	now := s.now()
	if rec.CodeExpiresAt == nil || rec.CodeExpiresAt.Before(now) {
		logger.Log.Infow("password reset rejected", "reason", "code expired", "partition", rec.Partition, "user_id", rec.UserID)
		return fmt.Errorf("code expired: %w", domain.ErrCodeExpired)
	}

	if rec.CodeType == nil || !rec.CodeType.AllowsPasswordReset() {
		logger.Log.Infow("password reset rejected", "reason", "code purpose", "partition", rec.Partition, "user_id", rec.UserID)
		return fmt.Errorf("code purpose does not allow a password reset: %w", domain.ErrInvalidCodePurpose)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("new password is too long: %w", domain.ErrBadRequest)
		}
		return fmt.Errorf("hash password: %v: %w", err, domain.ErrCredentialUpdateFailed)
	}

	if err := s.dir.ResetCredential(ctx, rec, string(hash), in.Code, now); err != nil {
		if errors.Is(err, domain.ErrInvalidCode) || errors.Is(err, domain.ErrUnexpected) {
			return err
		}
		logger.Log.Errorw("credential update failed", "partition", rec.Partition, "user_id", rec.UserID, "error", err)
		return fmt.Errorf("%v: %w", err, domain.ErrCredentialUpdateFailed)
	}

	logger.Log.Infow("password reset", "partition", rec.Partition, "user_id", rec.UserID)
	return nil
}
