package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/climblink/backend/internal/domain"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestSwipeRepositoryRecordUpsertsWithoutMatch(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSwipeRepository(db)

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO swipes (swiper_id, swiped_id, action)")).
		WithArgs(1, 2, domain.ActionPass).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, now))
	mock.ExpectCommit()

	swipe := &domain.Swipe{SwiperID: 1, SwipedID: 2, Action: domain.ActionPass}
	match, err := repo.Record(context.Background(), swipe)
	require.NoError(t, err)
	require.Nil(t, match)
	require.Equal(t, 10, swipe.ID)
	require.Equal(t, now, swipe.CreatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSwipeRepositoryRecordLikeChecksReciprocal(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSwipeRepository(db)

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO swipes (swiper_id, swiped_id, action)")).
		WithArgs(1, 2, domain.ActionLike).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, now))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectCommit()

	swipe := &domain.Swipe{SwiperID: 1, SwipedID: 2, Action: domain.ActionLike}
	match, err := repo.Record(context.Background(), swipe)
	require.NoError(t, err)
	require.Nil(t, match)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSwipeRepositoryRecordMutualLikeCreatesNormalizedMatch(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSwipeRepository(db)

	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO swipes (swiper_id, swiped_id, action)")).
		WithArgs(5, 3, domain.ActionLike).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(12, now))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(3, 5).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO matches (user1_id, user2_id, is_active)")).
		WithArgs(3, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user1_id", "user2_id", "is_active", "created_at"}).
			AddRow(7, 3, 5, true, now))
	mock.ExpectCommit()

	swipe := &domain.Swipe{SwiperID: 5, SwipedID: 3, Action: domain.ActionLike}
	match, err := repo.Record(context.Background(), swipe)
	require.NoError(t, err)
	require.NotNil(t, match)
	require.Equal(t, 3, match.User1ID)
	require.Equal(t, 5, match.User2ID)
	require.True(t, match.IsActive)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSwipeRepositoryListDecided(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSwipeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT swiped_id FROM swipes WHERE swiper_id = $1 AND action = $2")).
		WithArgs(1, domain.ActionPass).
		WillReturnRows(sqlmock.NewRows([]string{"swiped_id"}).AddRow(2).AddRow(4))

	ids, err := repo.ListDecided(context.Background(), 1, domain.ActionPass)
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, ids)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSwipeRepositoryGetByUsersNoRows(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSwipeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM swipes WHERE swiper_id = $1 AND swiped_id = $2")).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "swiper_id", "swiped_id", "action", "created_at"}))

	swipe, err := repo.GetByUsers(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Nil(t, swipe)

	require.NoError(t, mock.ExpectationsWereMet())
}
