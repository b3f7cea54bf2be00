package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	var match domain.Match
	query := `SELECT * FROM matches WHERE user1_id = $1 AND user2_id = $2`
	err := r.db.GetContext(ctx, &match, query, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListForUser(ctx context.Context, userID int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND is_active = true
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}
