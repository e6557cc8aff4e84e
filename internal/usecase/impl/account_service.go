// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// timingPassword is hashed once and compared against on unknown emails, so a
// miss costs the same bcrypt work as a wrong password.
const timingPassword = "storefront-timing-equaliser"

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager      repository.TransactionManager
	credentialRepo repository.CredentialRepository
	identityRepo   repository.IdentityRepository
	hasher         service.PasswordHasher
	sessions       service.SessionAuthority
	metrics        service.MetricsCollector
	logger         *slog.Logger
	dummyHash      func() string
	now            func() time.Time
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	CredentialRepo repository.CredentialRepository
	IdentityRepo   repository.IdentityRepository
	Hasher         service.PasswordHasher
	Sessions       service.SessionAuthority
	Metrics        service.MetricsCollector
	Logger         *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	hasher := params.Hasher

	return &accountService{
		txManager:      params.TxManager,
		credentialRepo: params.CredentialRepo,
		identityRepo:   params.IdentityRepo,
		hasher:         hasher,
		sessions:       params.Sessions,
		metrics:        params.Metrics,
		logger:         params.Logger,
		dummyHash: sync.OnceValue(func() string {
			hash, err := hasher.Hash(timingPassword)
			if err != nil {
				return ""
			}

			return hash
		}),
		now: time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register hashes the password, then writes the credential and the identity
// in one transaction. The identity takes the email exactly as the credential
// insert committed it. A taken email is detected by the insert failing.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || name == "" || input.Password == "" {
		srv.metrics.RecordRegistration(service.OutcomeError)

		return nil, domainerrors.ErrValidationFailed.WrapMessage("email, name and password are required")
	}
	if len(input.Password) > maxPasswordBytes {
		srv.metrics.RecordRegistration(service.OutcomeError)

		return nil, domainerrors.ErrValidationFailed.WithDetails("password must be at most 72 bytes")
	}

	srv.log(ctx).Debug("Starting registration", slog.String("email", email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))
		srv.metrics.RecordRegistration(service.OutcomeError)

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var registered *entity.Identity
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		credential := &entity.Credential{Email: email, PasswordHash: hash}
		if err := repoFactory.CredentialRepo().Create(ctx, credential); err != nil {
			return errors.Wrap(err, "failed to create credential")
		}

		identity := &entity.Identity{
			Email:  credential.Email,
			Name:   name,
			Joined: srv.now().UTC(),
		}
		if err := repoFactory.IdentityRepo().Create(ctx, identity); err != nil {
			return errors.Wrap(err, "failed to create identity")
		}

		registered = identity

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateRegistration) {
			srv.log(ctx).Warn("Registration rejected", slog.String("email", email), slog.String("reason", "duplicate"))
			srv.metrics.RecordRegistration(service.OutcomeDuplicate)
		} else {
			srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))
			srv.metrics.RecordRegistration(service.OutcomeError)
		}

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Info("Registration completed", slog.Any("userID", registered.ID))
	srv.metrics.RecordRegistration(service.OutcomeSuccess)

	return &usecase.RegisterOutput{Identity: registered}, nil
}

// Login looks the credential up, verifies the password and resolves the
// identity by email. Unknown email and wrong password fail identically.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		srv.metrics.RecordLogin(service.OutcomeError)

		return nil, domainerrors.ErrValidationFailed.WrapMessage("email and password are required")
	}

	credential, err := srv.credentialRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			srv.hasher.Check(input.Password, srv.dummyHash())

			return nil, srv.rejectLogin(ctx, email)
		}
		srv.log(ctx).Error("Failed to load credential", slog.Any("error", err))
		srv.metrics.RecordLogin(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to load credential")
	}

	if !srv.hasher.Check(input.Password, credential.PasswordHash) {
		return nil, srv.rejectLogin(ctx, email)
	}

	identity, err := srv.identityRepo.FindByEmail(ctx, credential.Email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			srv.log(ctx).Error("Credential has no identity", slog.String("email", credential.Email))
			srv.metrics.RecordLogin(service.OutcomeIntegrityViolation)

			return nil, errors.Wrap(domainerrors.ErrIntegrityViolation, "credential without identity")
		}
		srv.log(ctx).Error("Failed to load identity", slog.Any("error", err))
		srv.metrics.RecordLogin(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to load identity")
	}

	token, session, err := srv.sessions.Issue(identity.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session", slog.Any("userID", identity.ID), slog.Any("error", err))
		srv.metrics.RecordLogin(service.OutcomeError)

		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", identity.ID))
	srv.metrics.RecordLogin(service.OutcomeSuccess)

	return &usecase.LoginOutput{
		Identity: identity,
		Token:    token,
		Session:  session,
	}, nil
}

func (srv *accountService) rejectLogin(ctx context.Context, email string) error {
	srv.log(ctx).Warn("Login failed", slog.String("email", email))
	srv.metrics.RecordLogin(service.OutcomeInvalidCredentials)

	return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
}
