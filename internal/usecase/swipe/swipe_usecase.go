package swipe

import (
	"context"
	"fmt"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/repository"
	"github.com/climblink/backend/internal/token"
)

type UseCase struct {
	swipeRepo   repository.SwipeRepository
	profileRepo repository.ProfileRepository
	log         *logger.Logger
}

func NewUseCase(
	swipeRepo repository.SwipeRepository,
	profileRepo repository.ProfileRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		swipeRepo:   swipeRepo,
		profileRepo: profileRepo,
		log:         log,
	}
}

// Response is the result of recording a decision. Matched is true only when
// this like completed a reciprocal like pair.
type Response struct {
	Swipe   *domain.Swipe `json:"swipe"`
	Matched bool          `json:"matched"`
	Match   *domain.Match `json:"match,omitempty"`
}

// Record upserts a decision. Both parties must resolve to existing
// profiles; the swiped side is addressed by its public token.
func (uc *UseCase) Record(ctx context.Context, swiperDeviceID, swipedProfileToken string, action domain.SwipeAction) (*Response, error) {
	if !action.Valid() {
		return nil, domain.ErrInvalidAction
	}

	swiper, err := uc.profileRepo.GetByDeviceID(ctx, swiperDeviceID)
	if err != nil {
		return nil, err
	}

	swipedID, err := token.Decode(swipedProfileToken)
	if err != nil {
		return nil, err
	}
	swiped, err := uc.profileRepo.GetByID(ctx, swipedID)
	if err != nil {
		return nil, err
	}

	if swiper.ID == swiped.ID {
		return nil, domain.ErrCannotSwipeSelf
	}

	swipe := &domain.Swipe{
		SwiperID: swiper.ID,
		SwipedID: swiped.ID,
		Action:   action,
	}
	match, err := uc.swipeRepo.Record(ctx, swipe)
	if err != nil {
		return nil, fmt.Errorf("record swipe: %w", err)
	}

	if match != nil {
		uc.log.Info("mutual like completed a match",
			"match_id", match.ID, "user1_id", match.User1ID, "user2_id", match.User2ID)
	}

	return &Response{
		Swipe:   swipe,
		Matched: match != nil,
		Match:   match,
	}, nil
}

// PassedIDs returns every profile id the decider has a pass recorded
// against. An empty ledger yields an empty set, not an error.
func (uc *UseCase) PassedIDs(ctx context.Context, deciderID int) ([]int, error) {
	return uc.swipeRepo.ListDecided(ctx, deciderID, domain.ActionPass)
}

// LikedIDs returns every profile id the decider has a like recorded against.
func (uc *UseCase) LikedIDs(ctx context.Context, deciderID int) ([]int, error) {
	return uc.swipeRepo.ListDecided(ctx, deciderID, domain.ActionLike)
}
