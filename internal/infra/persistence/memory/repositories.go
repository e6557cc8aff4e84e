package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type credentialRepository struct {
	access accessor
}

// NewCredentialRepository returns a CredentialRepository outside any transaction.
func NewCredentialRepository(store *Store) repository.CredentialRepository {
	return &credentialRepository{access: store.access}
}

func (repo *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var found entity.Credential
	err := repo.access(ctx, false, func(s *state) error {
		cred, ok := s.credentials[email]
		if !ok {
			return repository.ErrCredentialNotFound
		}
		found = cred

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &found, nil
}

func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	return repo.access(ctx, true, func(s *state) error {
		if _, exists := s.credentials[credential.Email]; exists {
			return domainerrors.ErrDuplicateRegistration.WrapMessage("credential email already exists")
		}
		if credential.CreatedAt.IsZero() {
			credential.CreatedAt = time.Now().UTC()
		}
		s.credentials[credential.Email] = *credential

		return nil
	})
}

type identityRepository struct {
	access accessor
}

// NewIdentityRepository returns an IdentityRepository outside any transaction.
func NewIdentityRepository(store *Store) repository.IdentityRepository {
	return &identityRepository{access: store.access}
}

func (repo *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	var found entity.Identity
	err := repo.access(ctx, false, func(s *state) error {
		identity, ok := s.identities[id]
		if !ok {
			return repository.ErrIdentityNotFound
		}
		found = identity

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &found, nil
}

func (repo *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	var found entity.Identity
	err := repo.access(ctx, false, func(s *state) error {
		id, ok := s.identityByEmail[email]
		if !ok {
			return repository.ErrIdentityNotFound
		}
		found = s.identities[id]

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &found, nil
}

func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	if identity.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate identity id")
		}
		identity.ID = id
	}
	if identity.Joined.IsZero() {
		identity.Joined = time.Now().UTC()
	}

	return repo.access(ctx, true, func(s *state) error {
		if _, exists := s.identityByEmail[identity.Email]; exists {
			return domainerrors.ErrDuplicateRegistration.WrapMessage("identity email already exists")
		}
		if _, exists := s.identities[identity.ID]; exists {
			return domainerrors.ErrDuplicateRegistration.WrapMessage("identity id already exists")
		}
		s.identities[identity.ID] = *identity
		s.identityByEmail[identity.Email] = identity.ID

		return nil
	})
}

type reviewRepository struct {
	access accessor
}

// NewReviewRepository returns a ReviewRepository.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{access: store.access}
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate review id")
		}
		review.ID = id
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	return repo.access(ctx, true, func(s *state) error {
		if _, ok := s.identities[review.UserID]; !ok {
			return domainerrors.ErrNotFound.WrapMessage("review author not found")
		}
		s.reviews = append(s.reviews, *review)

		return nil
	})
}

func (repo *reviewRepository) FindWithAuthor(ctx context.Context, id uuid.UUID) (*entity.ReviewWithAuthor, error) {
	var found *entity.ReviewWithAuthor
	err := repo.access(ctx, false, func(s *state) error {
		for _, r := range s.reviews {
			if r.ID != id {
				continue
			}
			author, ok := s.identities[r.UserID]
			if !ok {
				break
			}
			found = &entity.ReviewWithAuthor{Review: r, UserName: author.Name}

			return nil
		}

		return repository.ErrReviewNotFound
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func (repo *reviewRepository) ListWithAuthors(ctx context.Context) ([]*entity.ReviewWithAuthor, error) {
	var list []*entity.ReviewWithAuthor
	err := repo.access(ctx, false, func(s *state) error {
		list = make([]*entity.ReviewWithAuthor, 0, len(s.reviews))
		for _, r := range s.reviews {
			// Inner join: a review whose author is gone is not listed.
			author, ok := s.identities[r.UserID]
			if !ok {
				continue
			}
			list = append(list, &entity.ReviewWithAuthor{Review: r, UserName: author.Name})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(list, func(a, b *entity.ReviewWithAuthor) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return list, nil
}

type productRepository struct {
	access accessor
}

// NewProductRepository returns a ProductRepository.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{access: store.access}
}

func (repo *productRepository) ListByType(ctx context.Context, productType string) ([]*entity.Product, error) {
	var list []*entity.Product
	err := repo.access(ctx, false, func(s *state) error {
		list = make([]*entity.Product, 0)
		for _, p := range s.products {
			if p.Type == productType {
				product := p
				list = append(list, &product)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(list, func(a, b *entity.Product) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return list, nil
}

func (repo *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	var found entity.Product
	err := repo.access(ctx, false, func(s *state) error {
		p, ok := s.products[id]
		if !ok {
			return repository.ErrProductNotFound
		}
		found = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &found, nil
}
