package stack

import (
	"context"
	"fmt"
	"sort"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/geo"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/repository"
	"github.com/climblink/backend/internal/token"
)

// StackLimit caps the number of candidates a single stack request returns.
const StackLimit = 50

type UseCase struct {
	profileRepo repository.ProfileRepository
	swipeRepo   repository.SwipeRepository
	log         *logger.Logger
}

func NewUseCase(
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
		log:         log,
	}
}

// CandidateView is the public card shape the mobile client renders.
type CandidateView struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Age              int      `json:"age"`
	Bio              string   `json:"bio"`
	SkillLevel       string   `json:"skillLevel"`
	PreferredTypes   []string `json:"preferredTypes"`
	Location         string   `json:"location"`
	ProfileImageName string   `json:"profileImageName"`
	Availability     string   `json:"availability"`
	FavoriteCrag     *string  `json:"favoriteCrag"`
}

// request carries the requester parameters the filter pipeline runs against.
type request struct {
	requesterID   int // 0 when the device has no stored profile
	age           int
	gender        domain.Gender
	latitude      float64
	longitude     float64
	hasCoords     bool
	maxDistanceKm *float64 // nil = unbounded
	minAge        int
	maxAge        int
	genderPref    domain.GenderPreference
	wants         domain.ClimbingTypes
}

// defaultRequest is the fixed fallback used when a device has no stored or
// customized preferences: a 28-year-old in Boulder, CO looking for sport,
// bouldering and outdoor partners within 50 km.
func defaultRequest() request {
	maxDist := 50.0
	return request{
		age:           28,
		gender:        domain.GenderMan,
		latitude:      40.014986,
		longitude:     -105.270546,
		hasCoords:     true,
		maxDistanceKm: &maxDist,
		minAge:        24,
		maxAge:        40,
		genderPref:    domain.PrefAllGenders,
		wants: domain.ClimbingTypes{
			Sport:      true,
			Bouldering: true,
			Outdoor:    true,
		},
	}
}

// ComputeStack returns the ranked, filtered candidate list for a device.
// A device with no stored profile, or one that never finished onboarding,
// ranks with the default request; the endpoint always attempts to return a
// list rather than failing over the requester's own record.
func (uc *UseCase) ComputeStack(ctx context.Context, deviceID string) ([]CandidateView, error) {
	req := defaultRequest()

	requester, err := uc.profileRepo.GetByDeviceID(ctx, deviceID)
	switch {
	case err == nil:
		req.requesterID = requester.ID
		if requester.IsOnboardingComplete {
			req = requestFromProfile(requester)
		}
	case err == domain.ErrProfileNotFound:
		// Unknown device: serve the default stack.
	default:
		uc.log.Warn("failed to load requester profile, using default preferences",
			"device_id", deviceID, "error", err)
	}

	passed := map[int]bool{}
	if req.requesterID != 0 {
		passedIDs, err := uc.swipeRepo.ListDecided(ctx, req.requesterID, domain.ActionPass)
		if err != nil {
			return nil, fmt.Errorf("load passed profiles: %w", err)
		}
		for _, id := range passedIDs {
			passed[id] = true
		}
	}

	candidates, err := uc.profileRepo.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidate profiles: %w", err)
	}

	type ranked struct {
		profile  *domain.Profile
		distance float64
	}
	var matches []ranked

	for _, candidate := range candidates {
		if candidate.ID == req.requesterID {
			continue
		}
		// Prior passes exclude; prior likes intentionally do not, so a liked
		// profile can resurface.
		if passed[candidate.ID] {
			continue
		}
		if candidate.Age < req.minAge || candidate.Age > req.maxAge {
			continue
		}
		if req.age < candidate.MinAgePreference || req.age > candidate.MaxAgePreference {
			continue
		}
		if !matchesGender(req, candidate) {
			continue
		}
		if !req.hasCoords || !candidate.HasCoordinates() {
			continue
		}
		distance := geo.DistanceKm(req.latitude, req.longitude, *candidate.Latitude, *candidate.Longitude)
		if req.maxDistanceKm != nil && distance > *req.maxDistanceKm {
			continue
		}
		if candidate.MaxDistanceKm != nil && distance > *candidate.MaxDistanceKm {
			continue
		}
		if !matchesActivities(req.wants, candidate) {
			continue
		}
		matches = append(matches, ranked{profile: candidate, distance: distance})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].profile.CreatedAt.After(matches[j].profile.CreatedAt)
	})

	if len(matches) > StackLimit {
		matches = matches[:StackLimit]
	}

	views := make([]CandidateView, 0, len(matches))
	for _, m := range matches {
		views = append(views, newCandidateView(m.profile))
	}
	return views, nil
}

// matchesGender applies both halves of the gender filter: the requester's
// preference against the candidate's gender, and the candidate's preference
// against the requester's gender.
func matchesGender(req request, candidate *domain.Profile) bool {
	switch req.genderPref {
	case domain.PrefMen:
		if candidate.Gender != domain.GenderMan {
			return false
		}
	case domain.PrefWomen:
		if candidate.Gender != domain.GenderWoman {
			return false
		}
	}

	mapped := domain.PreferenceFor(req.gender)
	if mapped == domain.PrefAllGenders {
		return true
	}
	return candidate.GenderPreference == domain.PrefAllGenders ||
		candidate.GenderPreference == mapped
}

// matchesActivities applies the activity reciprocity rule: when the
// requester wants specific types, the candidate must do at least one of
// them and must also want at least one of them. The second half compares
// wants against wants, matching what shipped clients expect.
func matchesActivities(wants domain.ClimbingTypes, candidate *domain.Profile) bool {
	if !wants.Any() {
		return true
	}
	return candidate.Does().Intersects(wants) && candidate.Wants().Intersects(wants)
}

func requestFromProfile(p *domain.Profile) request {
	req := request{
		requesterID:   p.ID,
		age:           p.Age,
		gender:        p.Gender,
		maxDistanceKm: p.MaxDistanceKm,
		minAge:        p.MinAgePreference,
		maxAge:        p.MaxAgePreference,
		genderPref:    p.GenderPreference,
		wants:         p.Wants(),
	}
	if p.HasCoordinates() {
		req.latitude = *p.Latitude
		req.longitude = *p.Longitude
		req.hasCoords = true
	}
	return req
}

func newCandidateView(p *domain.Profile) CandidateView {
	return CandidateView{
		ID:               token.Encode(p.ID),
		Name:             p.Name,
		Age:              p.Age,
		Bio:              stringOr(p.Bio, ""),
		SkillLevel:       stringOr(p.SkillLevel, "Intermediate"),
		PreferredTypes:   p.Does().Labels(),
		Location:         stringOr(p.Location, "Unknown"),
		ProfileImageName: stringOr(p.ProfileImageName, "person.circle.fill"),
		Availability:     stringOr(p.Availability, "Flexible"),
		FavoriteCrag:     p.FavoriteCrag,
	}
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
