package service

import (
	"context"
	"sync"
	"time"

	"github.com/ccna35/simple-crud-app/internal/domain"
	"github.com/ccna35/simple-crud-app/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type verificationTokensMock struct {
	mock.Mock
}

func (m *verificationTokensMock) Create(ctx context.Context, token *domain.VerificationToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *verificationTokensMock) GetByToken(ctx context.Context, token string) (*domain.VerificationToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationToken), args.Error(1)
}

func (m *verificationTokensMock) DeleteByToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *verificationTokensMock) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *verificationTokensMock) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type usersRepoMock struct {
	mock.Mock
}

func (m *usersRepoMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *usersRepoMock) GetAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *usersRepoMock) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *usersRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *usersRepoMock) GetByCredentials(ctx context.Context, email string, passwordHash string) (*domain.User, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *usersRepoMock) Update(ctx context.Context, id uuid.UUID, input repository.UpdateUserInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *usersRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *usersRepoMock) MarkVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error {
	args := m.Called(ctx, id, verifiedAt)
	return args.Error(0)
}

type refreshSessionsMock struct {
	mock.Mock
}

func (m *refreshSessionsMock) Create(ctx context.Context, session *domain.RefreshSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *refreshSessionsMock) GetByToken(ctx context.Context, refreshToken uuid.UUID) (*domain.RefreshSession, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshSession), args.Error(1)
}

func (m *refreshSessionsMock) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type notifierMock struct {
	mock.Mock
}

func (m *notifierMock) SendVerificationEmail(ctx context.Context, email string, verificationURL string, expiresIn time.Duration) error {
	args := m.Called(ctx, email, verificationURL, expiresIn)
	return args.Error(0)
}

type verificationsMock struct {
	mock.Mock
}

func (m *verificationsMock) GenerateVerificationToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *verificationsMock) SendVerificationEmail(ctx context.Context, userID uuid.UUID, email string) bool {
	args := m.Called(ctx, userID, email)
	return args.Bool(0)
}

func (m *verificationsMock) VerifyUser(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *verificationsMock) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *verificationsMock) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// memTokenStore is an in-memory VerificationTokens implementation for the
// lifecycle scenario tests.
type memTokenStore struct {
	mu      sync.Mutex
	byToken map[string]domain.VerificationToken
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{byToken: make(map[string]domain.VerificationToken)}
}

func (s *memTokenStore) Create(ctx context.Context, token *domain.VerificationToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byToken[token.Token]; exists {
		return domain.ErrDuplicateEntry
	}
	record := *token
	record.CreatedAt = time.Now()
	s.byToken[token.Token] = record
	return nil
}

func (s *memTokenStore) GetByToken(ctx context.Context, token string) (*domain.VerificationToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byToken[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

func (s *memTokenStore) DeleteByToken(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byToken[token]; !ok {
		return false, nil
	}
	delete(s.byToken, token)
	return true, nil
}

func (s *memTokenStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, record := range s.byToken {
		if record.UserID == userID {
			delete(s.byToken, t)
		}
	}
	return nil
}

func (s *memTokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for t, record := range s.byToken {
		if record.ExpiresAt.Before(now) {
			delete(s.byToken, t)
			count++
		}
	}
	return count, nil
}

func (s *memTokenStore) countForUser(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, record := range s.byToken {
		if record.UserID == userID {
			n++
		}
	}
	return n
}

// memUserDirectory is an in-memory Users implementation; only the methods the
// verification flow touches are backed by state, the rest are unreachable in
// these tests.
type memUserDirectory struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserDirectory(users ...*domain.User) *memUserDirectory {
	dir := &memUserDirectory{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		dir.users[u.ID] = u
	}
	return dir
}

func (d *memUserDirectory) Create(ctx context.Context, user *domain.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[user.ID] = user
	return nil
}

func (d *memUserDirectory) GetAll(ctx context.Context) ([]domain.User, error) {
	panic("not used in tests")
}

func (d *memUserDirectory) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (d *memUserDirectory) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	panic("not used in tests")
}

func (d *memUserDirectory) GetByCredentials(ctx context.Context, email string, passwordHash string) (*domain.User, error) {
	panic("not used in tests")
}

func (d *memUserDirectory) Update(ctx context.Context, id uuid.UUID, input repository.UpdateUserInput) error {
	panic("not used in tests")
}

func (d *memUserDirectory) Delete(ctx context.Context, id uuid.UUID) error {
	panic("not used in tests")
}

func (d *memUserDirectory) MarkVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[id]
	if !ok {
		return domain.ErrNoRowsAffected
	}
	user.IsVerified = true
	at := verifiedAt
	user.VerifiedAt = &at
	return nil
}

// noopNotifier accepts every dispatch.
type noopNotifier struct{}

func (noopNotifier) SendVerificationEmail(ctx context.Context, email string, verificationURL string, expiresIn time.Duration) error {
	return nil
}
