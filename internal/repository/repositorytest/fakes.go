// Package repositorytest provides in-memory repository implementations for
// tests. They mirror the storage semantics the postgres implementations
// rely on: swipe upsert keyed by (swiper, swiped), normalized unique match
// pairs, read flags that only move forward.
package repositorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/climblink/backend/internal/domain"
)

type ProfileRepo struct {
	mu       sync.Mutex
	nextID   int
	profiles map[int]*domain.Profile

	// ListErr, when set, is returned by ListCandidates to simulate a store
	// failure.
	ListErr error
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{nextID: 1, profiles: map[int]*domain.Profile{}}
}

func (r *ProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

// Add seeds a profile with an explicit id and creation time.
func (r *ProfileRepo) Add(p *domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
	}
	if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := *p
	r.profiles[p.ID] = &cp
}

func (r *ProfileRepo) GetByID(_ context.Context, id int) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProfileRepo) GetByDeviceID(_ context.Context, deviceID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.DeviceID == deviceID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *ProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.profiles[p.ID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	created := stored.CreatedAt
	cp := *p
	cp.CreatedAt = created
	cp.UpdatedAt = time.Now()
	r.profiles[p.ID] = &cp
	p.UpdatedAt = cp.UpdatedAt
	return nil
}

func (r *ProfileRepo) ListCandidates(_ context.Context) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	out := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type swipeKey struct {
	swiper int
	swiped int
}

type SwipeRepo struct {
	mu      sync.Mutex
	nextID  int
	swipes  map[swipeKey]*domain.Swipe
	matches map[swipeKey]*domain.Match
}

func NewSwipeRepo() *SwipeRepo {
	return &SwipeRepo{
		nextID:  1,
		swipes:  map[swipeKey]*domain.Swipe{},
		matches: map[swipeKey]*domain.Match{},
	}
}

func (r *SwipeRepo) Record(_ context.Context, s *domain.Swipe) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := swipeKey{s.SwiperID, s.SwipedID}
	if existing, ok := r.swipes[key]; ok {
		existing.Action = s.Action
		existing.CreatedAt = time.Now()
		*s = *existing
	} else {
		s.ID = r.nextID
		r.nextID++
		s.CreatedAt = time.Now()
		cp := *s
		r.swipes[key] = &cp
	}

	if s.Action != domain.ActionLike {
		return nil, nil
	}
	reverse, ok := r.swipes[swipeKey{s.SwipedID, s.SwiperID}]
	if !ok || reverse.Action != domain.ActionLike {
		return nil, nil
	}

	u1, u2 := s.SwiperID, s.SwipedID
	if u1 > u2 {
		u1, u2 = u2, u1
	}
	mk := swipeKey{u1, u2}
	if m, ok := r.matches[mk]; ok {
		m.IsActive = true
		cp := *m
		return &cp, nil
	}
	m := &domain.Match{
		ID:        len(r.matches) + 1,
		User1ID:   u1,
		User2ID:   u2,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	r.matches[mk] = m
	cp := *m
	return &cp, nil
}

func (r *SwipeRepo) ListDecided(_ context.Context, swiperID int, action domain.SwipeAction) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int
	for key, s := range r.swipes {
		if key.swiper == swiperID && s.Action == action {
			ids = append(ids, key.swiped)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *SwipeRepo) GetByUsers(_ context.Context, swiperID, swipedID int) (*domain.Swipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.swipes[swipeKey{swiperID, swipedID}]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Matches returns the matches created so far, for assertions.
func (r *SwipeRepo) Matches() []*domain.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Match, 0, len(r.matches))
	for _, m := range r.matches {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type MessageRepo struct {
	mu       sync.Mutex
	nextID   int
	messages []*domain.Message
}

func NewMessageRepo() *MessageRepo {
	return &MessageRepo{nextID: 1}
}

func (r *MessageRepo) Create(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.IsRead = false
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}

// Seed adds a message as-is, keeping its read flag and timestamp.
func (r *MessageRepo) Seed(m *domain.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == 0 {
		m.ID = r.nextID
	}
	if m.ID >= r.nextID {
		r.nextID = m.ID + 1
	}
	cp := *m
	r.messages = append(r.messages, &cp)
}

func (r *MessageRepo) Conversation(_ context.Context, id1, id2 int) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Message
	for _, m := range r.messages {
		if (m.SenderID == id1 && m.RecipientID == id2) || (m.SenderID == id2 && m.RecipientID == id1) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MessageRepo) ListForUser(_ context.Context, userID int) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Message
	for _, m := range r.messages {
		if m.SenderID == userID || m.RecipientID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MessageRepo) MarkRead(_ context.Context, senderID, recipientID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, m := range r.messages {
		if m.SenderID == senderID && m.RecipientID == recipientID && !m.IsRead {
			m.IsRead = true
			count++
		}
	}
	return count, nil
}

// All returns every stored message, for assertions.
func (r *MessageRepo) All() []*domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Message, 0, len(r.messages))
	for _, m := range r.messages {
		cp := *m
		out = append(out, &cp)
	}
	return out
}

type MatchRepo struct {
	Swipes *SwipeRepo
}

func NewMatchRepo(swipes *SwipeRepo) *MatchRepo {
	return &MatchRepo{Swipes: swipes}
}

func (r *MatchRepo) GetByUsers(_ context.Context, user1ID, user2ID int) (*domain.Match, error) {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}
	for _, m := range r.Swipes.Matches() {
		if m.User1ID == user1ID && m.User2ID == user2ID {
			return m, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *MatchRepo) ListForUser(_ context.Context, userID int) ([]*domain.Match, error) {
	var out []*domain.Match
	for _, m := range r.Swipes.Matches() {
		if m.IsActive && m.HasUser(userID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
