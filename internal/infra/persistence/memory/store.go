// Package memory is a process-local store driver used for local development
// and tests. It follows the same repository contracts as the postgres driver.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

// state is one consistent snapshot of every table.
type state struct {
	credentials     map[string]entity.Credential
	identities      map[uuid.UUID]entity.Identity
	identityByEmail map[string]uuid.UUID
	reviews         []entity.Review
	products        map[int64]entity.Product
}

func newState() *state {
	return &state{
		credentials:     make(map[string]entity.Credential),
		identities:      make(map[uuid.UUID]entity.Identity),
		identityByEmail: make(map[string]uuid.UUID),
		products:        make(map[int64]entity.Product),
	}
}

func (s *state) clone() *state {
	return &state{
		credentials:     maps.Clone(s.credentials),
		identities:      maps.Clone(s.identities),
		identityByEmail: maps.Clone(s.identityByEmail),
		reviews:         slices.Clone(s.reviews),
		products:        maps.Clone(s.products),
	}
}

// accessor runs fn against the state a repository is bound to.
type accessor func(ctx context.Context, write bool, fn func(*state) error) error

// Store holds the tables behind a single RWMutex. A transaction keeps the
// write lock for its whole duration and works on a private copy, which is
// swapped in only on commit.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) access(ctx context.Context, write bool, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if write {
		s.mu.Lock()
		defer s.mu.Unlock()
	} else {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}

	return fn(s.state)
}

// SeedProducts loads catalog rows. Existing ids are overwritten.
func (s *Store) SeedProducts(products ...*entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range products {
		if p != nil {
			s.state.products[p.ID] = *p
		}
	}
}

// Counts reports the number of credentials and identities. Tests use it to
// check that the two tables never drift apart.
func (s *Store) Counts() (credentials, identities int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.state.credentials), len(s.state.identities)
}

type transactionManager struct {
	store *Store
}

// NewTransactionManager returns a TransactionManager over the store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

type repositoryFactory struct {
	access accessor
}

func (f *repositoryFactory) CredentialRepo() repository.CredentialRepository {
	return &credentialRepository{access: f.access}
}

func (f *repositoryFactory) IdentityRepo() repository.IdentityRepository {
	return &identityRepository{access: f.access}
}

// Execute serialises transactions. Writes made by fn land on a staged copy
// and become visible only if fn returns nil.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	staged := tm.store.state.clone()
	factory := &repositoryFactory{
		access: func(ctx context.Context, _ bool, op func(*state) error) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return op(staged)
		},
	}

	if err := fn(factory); err != nil {
		return err
	}

	tm.store.state = staged

	return nil
}
