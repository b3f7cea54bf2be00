package match

import (
	"context"
	"fmt"
	"time"

	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/repository"
	"github.com/climblink/backend/internal/token"
)

type UseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	log         *logger.Logger
}

func NewUseCase(
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// View is one confirmed match from the caller's perspective.
type View struct {
	ID        int       `json:"id"`
	ProfileID string    `json:"profileId"`
	Name      string    `json:"name"`
	DeviceID  string    `json:"deviceId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListForDevice returns the caller's active matches, newest first, with the
// partner resolved into its public shape.
func (uc *UseCase) ListForDevice(ctx context.Context, deviceID string) ([]View, error) {
	user, err := uc.profileRepo.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	matches, err := uc.matchRepo.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	views := make([]View, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.OtherUserID(user.ID)
		if !ok {
			continue
		}
		partner, err := uc.profileRepo.GetByID(ctx, otherID)
		if err != nil {
			uc.log.Warn("match partner profile missing", "profile_id", otherID, "error", err)
			continue
		}
		views = append(views, View{
			ID:        m.ID,
			ProfileID: token.Encode(partner.ID),
			Name:      partner.Name,
			DeviceID:  partner.DeviceID,
			CreatedAt: m.CreatedAt,
		})
	}
	return views, nil
}
