package repository

import (
	"context"

	"github.com/climblink/backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	GetByDeviceID(ctx context.Context, deviceID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// ListCandidates returns every profile, most recently created first.
	ListCandidates(ctx context.Context) ([]*domain.Profile, error)
}

type SwipeRepository interface {
	// Record upserts the decision keyed by (swiper, swiped). When a like
	// completes a reciprocal like pair it creates the match in the same
	// transaction and returns it; otherwise the match is nil.
	Record(ctx context.Context, swipe *domain.Swipe) (*domain.Match, error)
	// ListDecided returns the ids of every profile the swiper has the given
	// decision recorded against. An empty ledger is not an error.
	ListDecided(ctx context.Context, swiperID int, action domain.SwipeAction) ([]int, error)
	GetByUsers(ctx context.Context, swiperID, swipedID int) (*domain.Swipe, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// Conversation returns all messages between the two profiles, oldest
	// first.
	Conversation(ctx context.Context, id1, id2 int) ([]*domain.Message, error)
	// ListForUser returns every message the profile sent or received, newest
	// first.
	ListForUser(ctx context.Context, userID int) ([]*domain.Message, error)
	// MarkRead flips unread messages from sender to recipient and returns
	// how many rows changed.
	MarkRead(ctx context.Context, senderID, recipientID int) (int, error)
}

type MatchRepository interface {
	GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error)
	ListForUser(ctx context.Context, userID int) ([]*domain.Match, error)
}
