package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type profileService struct {
	identityRepo repository.IdentityRepository
	logger       *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Logger       *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		identityRepo: params.IdentityRepo,
		logger:       params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the identity. Only its owner may read it.
func (srv *profileService) GetProfile(ctx context.Context, input usecase.GetProfileInput) (*entity.Identity, error) {
	if input.RequesterID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "profile requires a session")
	}
	if input.RequesterID != input.ID {
		srv.log(ctx).Warn("Profile access denied", slog.Any("requesterID", input.RequesterID), slog.Any("profileID", input.ID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "profile belongs to another identity")
	}

	identity, err := srv.identityRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "profile not found")
		}

		return nil, errors.Wrap(err, "failed to find profile")
	}

	return identity, nil
}
