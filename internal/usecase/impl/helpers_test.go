package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	cfg.Session.Secret = "test_session_secret_key_very_long_for_testing"
	cfg.Session.TTL = time.Hour
	cfg.Session.Issuer = "storefront-test"

	return cfg
}

// recordingMetrics counts outcomes in memory.
type recordingMetrics struct {
	mu            sync.Mutex
	registrations map[string]int
	logins        map[string]int
	rejected      int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		registrations: make(map[string]int),
		logins:        make(map[string]int),
	}
}

func (m *recordingMetrics) RecordRegistration(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations[outcome]++
}

func (m *recordingMetrics) RecordLogin(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins[outcome]++
}

func (m *recordingMetrics) RecordSessionRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected++
}

func (m *recordingMetrics) registration(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.registrations[outcome]
}

func (m *recordingMetrics) login(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.logins[outcome]
}

// accountFixture wires an account service over the memory store with real
// bcrypt (minimum cost) and real JWT sessions.
type accountFixture struct {
	store    *memory.Store
	hasher   service.PasswordHasher
	sessions service.SessionAuthority
	metrics  *recordingMetrics
	params   AccountServiceParams
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	cfg := newTestConfig()
	sessions, err := auth.NewJWTSessionAuthority(cfg)
	require.NoError(t, err)

	store := memory.NewStore()
	f := &accountFixture{
		store:    store,
		hasher:   auth.NewBcryptHasher(cfg),
		sessions: sessions,
		metrics:  newRecordingMetrics(),
	}
	f.params = AccountServiceParams{
		TxManager:      memory.NewTransactionManager(store),
		CredentialRepo: memory.NewCredentialRepository(store),
		IdentityRepo:   memory.NewIdentityRepository(store),
		Hasher:         f.hasher,
		Sessions:       sessions,
		Metrics:        f.metrics,
		Logger:         newDiscardLogger(),
	}

	return f
}

func (f *accountFixture) service() *accountService {
	return NewAccountService(f.params).(*accountService)
}

// --- testify mocks for failure injection ---

type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	args := m.Called(ctx, email)
	cred, _ := args.Get(0).(*entity.Credential)

	return cred, args.Error(1)
}

func (m *MockCredentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	return m.Called(ctx, credential).Error(0)
}

type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	args := m.Called(ctx, id)
	identity, _ := args.Get(0).(*entity.Identity)

	return identity, args.Error(1)
}

func (m *MockIdentityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	args := m.Called(ctx, email)
	identity, _ := args.Get(0).(*entity.Identity)

	return identity, args.Error(1)
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type MockSessionAuthority struct {
	mock.Mock
}

func (m *MockSessionAuthority) Issue(identityID uuid.UUID) (string, *entity.Session, error) {
	args := m.Called(identityID)
	session, _ := args.Get(1).(*entity.Session)

	return args.String(0), session, args.Error(2)
}

func (m *MockSessionAuthority) Resolve(token string) (*entity.Session, error) {
	args := m.Called(token)
	session, _ := args.Get(0).(*entity.Session)

	return session, args.Error(1)
}
