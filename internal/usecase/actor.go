package usecase

import (
	"context"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

// loadActor materializes the explicit actor every core operation receives.
// A caller authenticated by the identity collaborator but without a profile
// record yet acts with the default role.
func loadActor(ctx context.Context, userRepo repository.UserRepository, actorID string) (entity.Actor, error) {
	if actorID == "" {
		return entity.Actor{}, errors.Unauthorized("Authentication required", nil)
	}
	user, err := userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return entity.Actor{ID: actorID, Role: entity.RoleUser}, nil
		}
		return entity.Actor{}, err
	}
	return user.Actor(), nil
}
