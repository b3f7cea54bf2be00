package swipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/repository/repositorytest"
	"github.com/climblink/backend/internal/token"
)

func newTestUseCase(t *testing.T) (*UseCase, *repositorytest.ProfileRepo, *repositorytest.SwipeRepo) {
	t.Helper()
	profiles := repositorytest.NewProfileRepo()
	swipes := repositorytest.NewSwipeRepo()
	profiles.Add(&domain.Profile{ID: 1, DeviceID: "device-1", Name: "A"})
	profiles.Add(&domain.Profile{ID: 2, DeviceID: "device-2", Name: "B"})
	return NewUseCase(swipes, profiles, logger.NewNop()), profiles, swipes
}

func TestRecordRejectsInvalidAction(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Record(context.Background(), "device-1", token.Encode(2), "superlike")
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestRecordUnknownPartiesAreNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Record(context.Background(), "ghost-device", token.Encode(2), domain.ActionLike)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = uc.Record(context.Background(), "device-1", token.Encode(99), domain.ActionLike)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRecordRejectsSelfSwipe(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Record(context.Background(), "device-1", token.Encode(1), domain.ActionLike)
	assert.ErrorIs(t, err, domain.ErrCannotSwipeSelf)
}

func TestRecordIsIdempotentPerPair(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Record(context.Background(), "device-1", token.Encode(2), domain.ActionPass)
	require.NoError(t, err)
	_, err = uc.Record(context.Background(), "device-1", token.Encode(2), domain.ActionPass)
	require.NoError(t, err)

	passed, err := uc.PassedIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, passed)
}

func TestRecordUpsertOverwritesPriorDecision(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Record(context.Background(), "device-1", token.Encode(2), domain.ActionPass)
	require.NoError(t, err)
	_, err = uc.Record(context.Background(), "device-1", token.Encode(2), domain.ActionLike)
	require.NoError(t, err)

	passed, err := uc.PassedIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, passed)

	liked, err := uc.LikedIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, liked)
}

func TestRecordMutualLikeCreatesMatch(t *testing.T) {
	uc, _, swipes := newTestUseCase(t)

	resp, err := uc.Record(context.Background(), "device-1", token.Encode(2), domain.ActionLike)
	require.NoError(t, err)
	assert.False(t, resp.Matched)
	assert.Nil(t, resp.Match)

	resp, err = uc.Record(context.Background(), "device-2", token.Encode(1), domain.ActionLike)
	require.NoError(t, err)
	assert.True(t, resp.Matched)
	require.NotNil(t, resp.Match)
	assert.Equal(t, 1, resp.Match.User1ID)
	assert.Equal(t, 2, resp.Match.User2ID)

	assert.Len(t, swipes.Matches(), 1)
}

func TestRecordLikeAfterOthersPassDoesNotMatch(t *testing.T) {
	uc, _, swipes := newTestUseCase(t)

	_, err := uc.Record(context.Background(), "device-1", token.Encode(2), domain.ActionPass)
	require.NoError(t, err)

	resp, err := uc.Record(context.Background(), "device-2", token.Encode(1), domain.ActionLike)
	require.NoError(t, err)
	assert.False(t, resp.Matched)
	assert.Empty(t, swipes.Matches())
}

func TestRecordAcceptsBareIntegerToken(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	resp, err := uc.Record(context.Background(), "device-1", "2", domain.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Swipe.SwipedID)
}

func TestEmptyLedgerIsNotAnError(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	passed, err := uc.PassedIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, passed)
}
