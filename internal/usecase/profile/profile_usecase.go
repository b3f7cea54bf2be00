package profile

import (
	"context"
	"fmt"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/repository"
	"github.com/climblink/backend/internal/token"
)

type UseCase struct {
	profileRepo repository.ProfileRepository
	log         *logger.Logger
}

func NewUseCase(profileRepo repository.ProfileRepository, log *logger.Logger) *UseCase {
	return &UseCase{profileRepo: profileRepo, log: log}
}

// placeholder returns the fixed attribute set written on first contact from
// a new device. The profile stays marked as not onboarded until the first
// explicit update.
func placeholder(deviceID string) *domain.Profile {
	bio := "Just getting started..."
	maxDist := 50.0
	return &domain.Profile{
		DeviceID:             deviceID,
		Name:                 "New Climber",
		Age:                  25,
		Gender:               domain.GenderNonBinary,
		Bio:                  &bio,
		DoesSport:            true,
		DoesBouldering:       true,
		DoesIndoor:           true,
		MinAgePreference:     20,
		MaxAgePreference:     40,
		GenderPreference:     domain.PrefAllGenders,
		MaxDistanceKm:        &maxDist,
		IsOnboardingComplete: false,
	}
}

// GetOrCreate looks a profile up by device id, inserting the placeholder
// row on first contact.
func (uc *UseCase) GetOrCreate(ctx context.Context, deviceID string) (*domain.Profile, error) {
	existing, err := uc.profileRepo.GetByDeviceID(ctx, deviceID)
	if err == nil {
		return existing, nil
	}
	if err != domain.ErrProfileNotFound {
		return nil, fmt.Errorf("look up profile: %w", err)
	}

	created := placeholder(deviceID)
	if err := uc.profileRepo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create placeholder profile: %w", err)
	}
	uc.log.Info("created placeholder profile", "device_id", deviceID, "profile_id", created.ID)
	return created, nil
}

// UpdateRequest is the full mutable attribute set a client may replace.
// Device id and internal id are never client-writable.
type UpdateRequest struct {
	Name             string                  `json:"name" binding:"required"`
	Age              int                     `json:"age" binding:"min=0"`
	Gender           domain.Gender           `json:"gender" binding:"required,gender"`
	Bio              *string                 `json:"bio"`
	SkillLevel       *string                 `json:"skill_level"`
	Location         *string                 `json:"location"`
	Latitude         *float64                `json:"latitude"`
	Longitude        *float64                `json:"longitude"`
	ProfileImageName *string                 `json:"profile_image_name"`
	Availability     *string                 `json:"availability"`
	FavoriteCrag     *string                 `json:"favorite_crag"`
	DoesTrad         bool                    `json:"does_trad"`
	DoesSport        bool                    `json:"does_sport"`
	DoesBouldering   bool                    `json:"does_bouldering"`
	DoesIndoor       bool                    `json:"does_indoor"`
	DoesOutdoor      bool                    `json:"does_outdoor"`
	WantsTrad        bool                    `json:"wants_trad"`
	WantsSport       bool                    `json:"wants_sport"`
	WantsBouldering  bool                    `json:"wants_bouldering"`
	WantsIndoor      bool                    `json:"wants_indoor"`
	WantsOutdoor     bool                    `json:"wants_outdoor"`
	MinAgePreference int                     `json:"min_age_preference" binding:"min=0"`
	MaxAgePreference int                     `json:"max_age_preference" binding:"min=0"`
	GenderPreference domain.GenderPreference `json:"gender_preference" binding:"required,genderpref"`
	MaxDistanceKm    *float64                `json:"max_distance_km"`
}

func (r *UpdateRequest) validate() error {
	if r.MinAgePreference > r.MaxAgePreference {
		return domain.ErrInvalidAgeWindow
	}
	if r.MaxDistanceKm != nil && *r.MaxDistanceKm < 0 {
		return domain.ErrNegativeDistance
	}
	if r.Age < 0 {
		return domain.ErrNegativeAge
	}
	return nil
}

// Update replaces the mutable attribute set and marks the profile as
// onboarded.
func (uc *UseCase) Update(ctx context.Context, deviceID string, req *UpdateRequest) (*domain.Profile, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	profile, err := uc.GetOrCreate(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	profile.Name = req.Name
	profile.Age = req.Age
	profile.Gender = req.Gender
	profile.Bio = req.Bio
	profile.SkillLevel = req.SkillLevel
	profile.Location = req.Location
	profile.Latitude = req.Latitude
	profile.Longitude = req.Longitude
	profile.ProfileImageName = req.ProfileImageName
	profile.Availability = req.Availability
	profile.FavoriteCrag = req.FavoriteCrag
	profile.DoesTrad = req.DoesTrad
	profile.DoesSport = req.DoesSport
	profile.DoesBouldering = req.DoesBouldering
	profile.DoesIndoor = req.DoesIndoor
	profile.DoesOutdoor = req.DoesOutdoor
	profile.WantsTrad = req.WantsTrad
	profile.WantsSport = req.WantsSport
	profile.WantsBouldering = req.WantsBouldering
	profile.WantsIndoor = req.WantsIndoor
	profile.WantsOutdoor = req.WantsOutdoor
	profile.MinAgePreference = req.MinAgePreference
	profile.MaxAgePreference = req.MaxAgePreference
	profile.GenderPreference = req.GenderPreference
	profile.MaxDistanceKm = req.MaxDistanceKm
	profile.IsOnboardingComplete = true

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// DeviceIDForProfile resolves a public profile token back to the owning
// device id.
func (uc *UseCase) DeviceIDForProfile(ctx context.Context, profileToken string) (string, error) {
	id, err := token.Decode(profileToken)
	if err != nil {
		return "", err
	}
	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return profile.DeviceID, nil
}

// Token returns the stable public token for a profile.
func (uc *UseCase) Token(p *domain.Profile) string {
	return token.Encode(p.ID)
}
