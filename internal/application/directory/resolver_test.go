package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medilink-notifier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockStore struct{ mock.Mock }

func (m *mockStore) Get(ctx context.Context, userID string) (*domain.UserRecord, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.UserRecord); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) GetByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.UserRecord); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) ResetCredential(ctx context.Context, userID, hash, code string, now time.Time) error {
	return m.Called(ctx, userID, hash, code, now).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *mockCache) Set(ctx context.Context, userID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

// --- helpers ---

func newResolver(users, patients, practitioners *mockStore, cache TokenCache) *Resolver {
	return NewResolver([]Partition{
		{Name: PartitionUsers, Store: users},
		{Name: PartitionPatients, Store: patients},
		{Name: PartitionPractitioners, Store: practitioners},
	}, cache)
}

func notFound() error { return domain.ErrUserNotFound }

func strPtr(s string) *string { return &s }

// --- Partitions ---

func TestPartitions_FixedOrder(t *testing.T) {
	r := newResolver(&mockStore{}, &mockStore{}, &mockStore{}, nil)
	assert.Equal(t, []string{"users", "patients", "practitioners"}, r.Partitions())
}

// --- FindByEmail ---

func TestFindByEmail_NormalizesAndFindsInOnePartition(t *testing.T) {
	users, patients, practitioners := &mockStore{}, &mockStore{}, &mockStore{}
	users.On("GetByEmail", mock.Anything, "doc@clinic.fr").Return(nil, notFound())
	patients.On("GetByEmail", mock.Anything, "doc@clinic.fr").Return(nil, notFound())
	practitioners.On("GetByEmail", mock.Anything, "doc@clinic.fr").Return(&domain.UserRecord{UserID: "d1"}, nil)

	rec, err := newResolver(users, patients, practitioners, nil).FindByEmail(context.Background(), "  Doc@Clinic.FR ")

	require.NoError(t, err)
	assert.Equal(t, "d1", rec.UserID)
	assert.Equal(t, PartitionPractitioners, rec.Partition)
	users.AssertExpectations(t)
	patients.AssertExpectations(t)
}

func TestFindByEmail_FirstMatchWins(t *testing.T) {
	users, patients, practitioners := &mockStore{}, &mockStore{}, &mockStore{}
	users.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, notFound())
	patients.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.UserRecord{UserID: "p1"}, nil)

	rec, err := newResolver(users, patients, practitioners, nil).FindByEmail(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.Equal(t, "p1", rec.UserID)
	practitioners.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestFindByEmail_NoneFound(t *testing.T) {
	users, patients, practitioners := &mockStore{}, &mockStore{}, &mockStore{}
	for _, s := range []*mockStore{users, patients, practitioners} {
		s.On("GetByEmail", mock.Anything, "x@y.z").Return(nil, notFound())
	}

	_, err := newResolver(users, patients, practitioners, nil).FindByEmail(context.Background(), "x@y.z")

	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestFindByEmail_ProviderErrorStopsSearch(t *testing.T) {
	users, patients, practitioners := &mockStore{}, &mockStore{}, &mockStore{}
	users.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, errors.New("throttled"))

	_, err := newResolver(users, patients, practitioners, nil).FindByEmail(context.Background(), "a@b.com")

	assert.True(t, errors.Is(err, domain.ErrUnexpected))
	patients.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestFindByEmail_Empty(t *testing.T) {
	_, err := newResolver(&mockStore{}, &mockStore{}, &mockStore{}, nil).FindByEmail(context.Background(), "  ")
	assert.True(t, errors.Is(err, domain.ErrMissingInput))
}

// --- FindToken ---

func TestFindToken_SkipsEmptyTokenAndErrors(t *testing.T) {
	users, patients, practitioners := &mockStore{}, &mockStore{}, &mockStore{}
	users.On("Get", mock.Anything, "u1").Return(&domain.UserRecord{UserID: "u1"}, nil)
	patients.On("Get", mock.Anything, "u1").Return(nil, errors.New("timeout"))
	practitioners.On("Get", mock.Anything, "u1").Return(&domain.UserRecord{UserID: "u1", FCMToken: strPtr("tok")}, nil)

	tok, err := newResolver(users, patients, practitioners, nil).FindToken(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}

func TestFindToken_NotFound(t *testing.T) {
	users, patients, practitioners := &mockStore{}, &mockStore{}, &mockStore{}
	users.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	patients.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	practitioners.On("Get", mock.Anything, "u1").Return(&domain.UserRecord{FCMToken: strPtr("")}, nil)

	_, err := newResolver(users, patients, practitioners, nil).FindToken(context.Background(), "u1")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "FCM token not found for this user")
}

func TestFindToken_CacheHitSkipsDirectory(t *testing.T) {
	users := &mockStore{}
	cache := &mockCache{}
	cache.On("Get", mock.Anything, "u1").Return("cached", nil)

	tok, err := newResolver(users, &mockStore{}, &mockStore{}, cache).FindToken(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "cached", tok)
	users.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestFindToken_CacheMissPopulates(t *testing.T) {
	users := &mockStore{}
	users.On("Get", mock.Anything, "u1").Return(&domain.UserRecord{FCMToken: strPtr("fresh")}, nil)
	cache := &mockCache{}
	cache.On("Get", mock.Anything, "u1").Return("", domain.ErrNotFound)
	cache.On("Set", mock.Anything, "u1", "fresh").Return(nil)

	tok, err := newResolver(users, &mockStore{}, &mockStore{}, cache).FindToken(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	cache.AssertExpectations(t)
}

func TestFindToken_CacheFailuresIgnored(t *testing.T) {
	users := &mockStore{}
	users.On("Get", mock.Anything, "u1").Return(&domain.UserRecord{FCMToken: strPtr("fresh")}, nil)
	cache := &mockCache{}
	cache.On("Get", mock.Anything, "u1").Return("", errors.New("redis down"))
	cache.On("Set", mock.Anything, "u1", "fresh").Return(errors.New("redis down"))

	tok, err := newResolver(users, &mockStore{}, &mockStore{}, cache).FindToken(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
}

func TestFindToken_EmptyID(t *testing.T) {
	_, err := newResolver(&mockStore{}, &mockStore{}, &mockStore{}, nil).FindToken(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrMissingInput))
}

// --- ResetCredential ---

func TestResetCredential_RoutesToMatchedPartition(t *testing.T) {
	users, patients := &mockStore{}, &mockStore{}
	now := time.Now()
	patients.On("ResetCredential", mock.Anything, "p1", "hash", "123456", now).Return(nil)

	err := newResolver(users, patients, &mockStore{}, nil).ResetCredential(context.Background(),
		&domain.UserRecord{UserID: "p1", Partition: PartitionPatients}, "hash", "123456", now)

	require.NoError(t, err)
	patients.AssertExpectations(t)
	users.AssertNotCalled(t, "ResetCredential", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResetCredential_UnknownPartition(t *testing.T) {
	err := newResolver(&mockStore{}, &mockStore{}, &mockStore{}, nil).ResetCredential(context.Background(),
		&domain.UserRecord{UserID: "x", Partition: "admins"}, "h", "c", time.Now())
	assert.True(t, errors.Is(err, domain.ErrUnexpected))
}
