package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/repository"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

// Record upserts the decision and, when a like completes a reciprocal like
// pair, creates the match inside the same transaction. Last write wins on
// the (swiper, swiped) key; the storage constraint settles concurrent
// writes.
func (r *swipeRepository) Record(ctx context.Context, swipe *domain.Swipe) (*domain.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin swipe transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := `
		INSERT INTO swipes (swiper_id, swiped_id, action)
		VALUES ($1, $2, $3)
		ON CONFLICT (swiper_id, swiped_id)
		DO UPDATE SET action = EXCLUDED.action, created_at = CURRENT_TIMESTAMP
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, upsert, swipe.SwiperID, swipe.SwipedID, swipe.Action).
		Scan(&swipe.ID, &swipe.CreatedAt); err != nil {
		return nil, fmt.Errorf("upsert swipe: %w", err)
	}

	var match *domain.Match
	if swipe.Action == domain.ActionLike {
		var reciprocal bool
		check := `
			SELECT EXISTS (
				SELECT 1 FROM swipes
				WHERE swiper_id = $1 AND swiped_id = $2 AND action = 'like'
			)
		`
		if err := tx.QueryRowContext(ctx, check, swipe.SwipedID, swipe.SwiperID).Scan(&reciprocal); err != nil {
			return nil, fmt.Errorf("check reciprocal like: %w", err)
		}

		if reciprocal {
			user1ID, user2ID := swipe.SwiperID, swipe.SwipedID
			if user1ID > user2ID {
				user1ID, user2ID = user2ID, user1ID
			}
			insert := `
				INSERT INTO matches (user1_id, user2_id, is_active)
				VALUES ($1, $2, true)
				ON CONFLICT (user1_id, user2_id)
				DO UPDATE SET is_active = true
				RETURNING id, user1_id, user2_id, is_active, created_at
			`
			match = &domain.Match{}
			if err := tx.QueryRowContext(ctx, insert, user1ID, user2ID).Scan(
				&match.ID, &match.User1ID, &match.User2ID, &match.IsActive, &match.CreatedAt,
			); err != nil {
				return nil, fmt.Errorf("create match: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit swipe transaction: %w", err)
	}
	return match, nil
}

func (r *swipeRepository) ListDecided(ctx context.Context, swiperID int, action domain.SwipeAction) ([]int, error) {
	var ids []int
	query := `SELECT swiped_id FROM swipes WHERE swiper_id = $1 AND action = $2`
	err := r.db.SelectContext(ctx, &ids, query, swiperID, action)
	return ids, err
}

func (r *swipeRepository) GetByUsers(ctx context.Context, swiperID, swipedID int) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `SELECT * FROM swipes WHERE swiper_id = $1 AND swiped_id = $2`
	err := r.db.GetContext(ctx, &swipe, query, swiperID, swipedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &swipe, nil
}
