package domain

import "time"

type Gender string

const (
	GenderMan         Gender = "man"
	GenderWoman       Gender = "woman"
	GenderNonBinary   Gender = "non-binary"
	GenderUndisclosed Gender = "prefer not to say"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMan, GenderWoman, GenderNonBinary, GenderUndisclosed:
		return true
	}
	return false
}

type GenderPreference string

const (
	PrefMen        GenderPreference = "men"
	PrefWomen      GenderPreference = "women"
	PrefAllGenders GenderPreference = "all genders"
)

func (p GenderPreference) Valid() bool {
	switch p {
	case PrefMen, PrefWomen, PrefAllGenders:
		return true
	}
	return false
}

// PreferenceFor maps a gender onto the preference bucket that accepts it.
// Non-binary and undisclosed genders map to "all genders" because the legacy
// schema has no dedicated preference buckets for them.
func PreferenceFor(g Gender) GenderPreference {
	switch g {
	case GenderMan:
		return PrefMen
	case GenderWoman:
		return PrefWomen
	default:
		return PrefAllGenders
	}
}

// ClimbingTypes is a flag set over the five fixed climbing categories.
type ClimbingTypes struct {
	Trad       bool
	Sport      bool
	Bouldering bool
	Indoor     bool
	Outdoor    bool
}

func (t ClimbingTypes) Any() bool {
	return t.Trad || t.Sport || t.Bouldering || t.Indoor || t.Outdoor
}

func (t ClimbingTypes) Intersects(o ClimbingTypes) bool {
	return (t.Trad && o.Trad) ||
		(t.Sport && o.Sport) ||
		(t.Bouldering && o.Bouldering) ||
		(t.Indoor && o.Indoor) ||
		(t.Outdoor && o.Outdoor)
}

// Labels renders the set as the human-readable strings the mobile client
// expects, in the fixed trad, sport, bouldering, indoor, outdoor order.
func (t ClimbingTypes) Labels() []string {
	labels := []string{}
	if t.Trad {
		labels = append(labels, "Traditional")
	}
	if t.Sport {
		labels = append(labels, "Sport Climbing")
	}
	if t.Bouldering {
		labels = append(labels, "Bouldering")
	}
	if t.Indoor {
		labels = append(labels, "Indoor")
	}
	if t.Outdoor {
		labels = append(labels, "Outdoor")
	}
	return labels
}

type Profile struct {
	ID                   int              `json:"id" db:"id"`
	DeviceID             string           `json:"device_id" db:"device_id"`
	Name                 string           `json:"name" db:"name"`
	Age                  int              `json:"age" db:"age"`
	Gender               Gender           `json:"gender" db:"gender"`
	Bio                  *string          `json:"bio" db:"bio"`
	SkillLevel           *string          `json:"skill_level" db:"skill_level"`
	Location             *string          `json:"location" db:"location"`
	Latitude             *float64         `json:"latitude" db:"latitude"`
	Longitude            *float64         `json:"longitude" db:"longitude"`
	ProfileImageName     *string          `json:"profile_image_name" db:"profile_image_name"`
	Availability         *string          `json:"availability" db:"availability"`
	FavoriteCrag         *string          `json:"favorite_crag" db:"favorite_crag"`
	DoesTrad             bool             `json:"does_trad" db:"does_trad"`
	DoesSport            bool             `json:"does_sport" db:"does_sport"`
	DoesBouldering       bool             `json:"does_bouldering" db:"does_bouldering"`
	DoesIndoor           bool             `json:"does_indoor" db:"does_indoor"`
	DoesOutdoor          bool             `json:"does_outdoor" db:"does_outdoor"`
	WantsTrad            bool             `json:"wants_trad" db:"wants_trad"`
	WantsSport           bool             `json:"wants_sport" db:"wants_sport"`
	WantsBouldering      bool             `json:"wants_bouldering" db:"wants_bouldering"`
	WantsIndoor          bool             `json:"wants_indoor" db:"wants_indoor"`
	WantsOutdoor         bool             `json:"wants_outdoor" db:"wants_outdoor"`
	MinAgePreference     int              `json:"min_age_preference" db:"min_age_preference"`
	MaxAgePreference     int              `json:"max_age_preference" db:"max_age_preference"`
	GenderPreference     GenderPreference `json:"gender_preference" db:"gender_preference"`
	MaxDistanceKm        *float64         `json:"max_distance_km" db:"max_distance_km"`
	IsOnboardingComplete bool             `json:"is_onboarding_complete" db:"is_onboarding_complete"`
	CreatedAt            time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at" db:"updated_at"`
}

func (p *Profile) Does() ClimbingTypes {
	return ClimbingTypes{
		Trad:       p.DoesTrad,
		Sport:      p.DoesSport,
		Bouldering: p.DoesBouldering,
		Indoor:     p.DoesIndoor,
		Outdoor:    p.DoesOutdoor,
	}
}

func (p *Profile) Wants() ClimbingTypes {
	return ClimbingTypes{
		Trad:       p.WantsTrad,
		Sport:      p.WantsSport,
		Bouldering: p.WantsBouldering,
		Indoor:     p.WantsIndoor,
		Outdoor:    p.WantsOutdoor,
	}
}

func (p *Profile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}
