package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medilink-notifier/internal/domain"
	"github.com/medilink-notifier/internal/pkg/logger"
)

// Partition names, in search order.
const (
	PartitionUsers         = "users"
	PartitionPatients      = "patients"
	PartitionPractitioners = "practitioners"
)

// Store is one directory partition.
type Store interface {
	Get(ctx context.Context, userID string) (*domain.UserRecord, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error)
	ResetCredential(ctx context.Context, userID, passwordHash, code string, now time.Time) error
}

// TokenCache is an optional read-through cache for push tokens.
type TokenCache interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID, token string) error
}

type Partition struct {
	Name  string
	Store Store
}

// Resolver searches the partitions in a fixed order; the first hit wins.
type Resolver struct {
	partitions []Partition
	cache      TokenCache
}

// NewResolver keeps partitions in the order given. cache may be nil.
func NewResolver(partitions []Partition, cache TokenCache) *Resolver {
	return &Resolver{partitions: append([]Partition(nil), partitions...), cache: cache}
}

// Partitions returns the partition names in search order.
func (r *Resolver) Partitions() []string {
	names := make([]string, len(r.partitions))
	for i, p := range r.partitions {
		names[i] = p.Name
	}
	return names
}

// NormalizeEmail trims and lower-cases an address for lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail returns the record from the first partition holding email.
// A provider error stops the search: skipping a partition could return a
// later match the ordering says should lose.
func (r *Resolver) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", domain.ErrMissingInput)
	}
	for _, p := range r.partitions {
		rec, err := p.Store.GetByEmail(ctx, email)
		if err == nil {
			rec.Partition = p.Name
			logger.Log.Debugw("directory match", "partition", p.Name, "user_id", rec.UserID)
			return rec, nil
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			continue
		}
		return nil, fmt.Errorf("search %s: %v: %w", p.Name, err, domain.ErrUnexpected)
	}
	return nil, fmt.Errorf("no partition holds %s: %w", email, domain.ErrUserNotFound)
}

// FindToken returns the push token of userID from the first partition whose
// record carries one. Lookup failures in a partition are logged and skipped.
func (r *Resolver) FindToken(ctx context.Context, userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("user id is required: %w", domain.ErrMissingInput)
	}

	if r.cache != nil {
		tok, err := r.cache.Get(ctx, userID)
		if err == nil && tok != "" {
			return tok, nil
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warnw("token cache read failed", "user_id", userID, "error", err)
		}
	}

	for _, p := range r.partitions {
		rec, err := p.Store.Get(ctx, userID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Log.Warnw("token lookup failed", "partition", p.Name, "user_id", userID, "error", err)
			}
			continue
		}
		if rec.FCMToken == nil || *rec.FCMToken == "" {
			continue
		}
		tok := *rec.FCMToken
		if r.cache != nil {
			if err := r.cache.Set(ctx, userID, tok); err != nil {
				logger.Log.Warnw("token cache write failed", "user_id", userID, "error", err)
			}
		}
		return tok, nil
	}
	return "", fmt.Errorf("FCM token not found for this user: %w", domain.ErrNotFound)
}

// ResetCredential routes the conditional credential write to the partition rec was read from.
func (r *Resolver) ResetCredential(ctx context.Context, rec *domain.UserRecord, passwordHash, code string, now time.Time) error {
	for _, p := range r.partitions {
		if p.Name == rec.Partition {
			return p.Store.ResetCredential(ctx, rec.UserID, passwordHash, code, now)
		}
	}
	return fmt.Errorf("unknown partition %q: %w", rec.Partition, domain.ErrUnexpected)
}
