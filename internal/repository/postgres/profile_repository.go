package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			device_id, name, age, gender, bio, skill_level, location,
			latitude, longitude, profile_image_name, availability, favorite_crag,
			does_trad, does_sport, does_bouldering, does_indoor, does_outdoor,
			wants_trad, wants_sport, wants_bouldering, wants_indoor, wants_outdoor,
			min_age_preference, max_age_preference, gender_preference,
			max_distance_km, is_onboarding_complete
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.DeviceID, profile.Name, profile.Age, profile.Gender,
		profile.Bio, profile.SkillLevel, profile.Location,
		profile.Latitude, profile.Longitude, profile.ProfileImageName,
		profile.Availability, profile.FavoriteCrag,
		profile.DoesTrad, profile.DoesSport, profile.DoesBouldering,
		profile.DoesIndoor, profile.DoesOutdoor,
		profile.WantsTrad, profile.WantsSport, profile.WantsBouldering,
		profile.WantsIndoor, profile.WantsOutdoor,
		profile.MinAgePreference, profile.MaxAgePreference, profile.GenderPreference,
		profile.MaxDistanceKm, profile.IsOnboardingComplete,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE device_id = $1`
	err := r.db.GetContext(ctx, &profile, query, deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, age = $2, gender = $3, bio = $4, skill_level = $5,
		    location = $6, latitude = $7, longitude = $8,
		    profile_image_name = $9, availability = $10, favorite_crag = $11,
		    does_trad = $12, does_sport = $13, does_bouldering = $14,
		    does_indoor = $15, does_outdoor = $16,
		    wants_trad = $17, wants_sport = $18, wants_bouldering = $19,
		    wants_indoor = $20, wants_outdoor = $21,
		    min_age_preference = $22, max_age_preference = $23,
		    gender_preference = $24, max_distance_km = $25,
		    is_onboarding_complete = $26,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $27
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Name, profile.Age, profile.Gender, profile.Bio, profile.SkillLevel,
		profile.Location, profile.Latitude, profile.Longitude,
		profile.ProfileImageName, profile.Availability, profile.FavoriteCrag,
		profile.DoesTrad, profile.DoesSport, profile.DoesBouldering,
		profile.DoesIndoor, profile.DoesOutdoor,
		profile.WantsTrad, profile.WantsSport, profile.WantsBouldering,
		profile.WantsIndoor, profile.WantsOutdoor,
		profile.MinAgePreference, profile.MaxAgePreference,
		profile.GenderPreference, profile.MaxDistanceKm,
		profile.IsOnboardingComplete,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) ListCandidates(ctx context.Context) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	query := `SELECT * FROM profiles ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &profiles, query)
	return profiles, err
}
