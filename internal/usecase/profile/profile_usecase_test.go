package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/repository/repositorytest"
)

func newTestUseCase(t *testing.T) (*UseCase, *repositorytest.ProfileRepo) {
	t.Helper()
	profiles := repositorytest.NewProfileRepo()
	return NewUseCase(profiles, logger.NewNop()), profiles
}

func validUpdate() *UpdateRequest {
	return &UpdateRequest{
		Name:             "Alex Honnold Fan",
		Age:              29,
		Gender:           domain.GenderWoman,
		DoesSport:        true,
		WantsSport:       true,
		MinAgePreference: 25,
		MaxAgePreference: 35,
		GenderPreference: domain.PrefAllGenders,
	}
}

func TestGetOrCreateInsertsPlaceholderOnce(t *testing.T) {
	uc, _ := newTestUseCase(t)

	first, err := uc.GetOrCreate(context.Background(), "fresh-device")
	require.NoError(t, err)
	assert.Equal(t, "New Climber", first.Name)
	assert.Equal(t, 25, first.Age)
	assert.Equal(t, domain.GenderNonBinary, first.Gender)
	require.NotNil(t, first.Bio)
	assert.Equal(t, "Just getting started...", *first.Bio)
	assert.True(t, first.DoesBouldering)
	assert.True(t, first.DoesSport)
	assert.True(t, first.DoesIndoor)
	assert.False(t, first.DoesTrad)
	assert.False(t, first.DoesOutdoor)
	assert.Equal(t, 20, first.MinAgePreference)
	assert.Equal(t, 40, first.MaxAgePreference)
	assert.Equal(t, domain.PrefAllGenders, first.GenderPreference)
	require.NotNil(t, first.MaxDistanceKm)
	assert.Equal(t, 50.0, *first.MaxDistanceKm)
	assert.False(t, first.IsOnboardingComplete)

	second, err := uc.GetOrCreate(context.Background(), "fresh-device")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestUpdateReplacesAttributesAndMarksOnboarded(t *testing.T) {
	uc, _ := newTestUseCase(t)

	created, err := uc.GetOrCreate(context.Background(), "device-a")
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), "device-a", validUpdate())
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "device-a", updated.DeviceID)
	assert.Equal(t, "Alex Honnold Fan", updated.Name)
	assert.Equal(t, 29, updated.Age)
	assert.True(t, updated.IsOnboardingComplete)
	assert.Nil(t, updated.Bio)
}

func TestUpdateCreatesWhenMissing(t *testing.T) {
	uc, _ := newTestUseCase(t)

	updated, err := uc.Update(context.Background(), "never-seen", validUpdate())
	require.NoError(t, err)
	assert.NotZero(t, updated.ID)
	assert.True(t, updated.IsOnboardingComplete)
}

func TestUpdateValidatesInvariants(t *testing.T) {
	uc, _ := newTestUseCase(t)

	req := validUpdate()
	req.MinAgePreference = 40
	req.MaxAgePreference = 20
	_, err := uc.Update(context.Background(), "device-a", req)
	assert.ErrorIs(t, err, domain.ErrInvalidAgeWindow)

	req = validUpdate()
	d := -3.0
	req.MaxDistanceKm = &d
	_, err = uc.Update(context.Background(), "device-a", req)
	assert.ErrorIs(t, err, domain.ErrNegativeDistance)
}

func TestDeviceIDForProfile(t *testing.T) {
	uc, _ := newTestUseCase(t)

	p, err := uc.GetOrCreate(context.Background(), "device-a")
	require.NoError(t, err)

	deviceID, err := uc.DeviceIDForProfile(context.Background(), uc.Token(p))
	require.NoError(t, err)
	assert.Equal(t, "device-a", deviceID)

	_, err = uc.DeviceIDForProfile(context.Background(), uc.Token(&domain.Profile{ID: 999}))
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
