package domain

import "time"

type SwipeAction string

const (
	ActionLike SwipeAction = "like"
	ActionPass SwipeAction = "pass"
)

func (a SwipeAction) Valid() bool {
	return a == ActionLike || a == ActionPass
}

// Swipe is one decision of a profile about another. At most one row exists
// per (swiper, swiped) pair; a later decision overwrites the earlier one.
type Swipe struct {
	ID        int         `json:"id" db:"id"`
	SwiperID  int         `json:"swiper_id" db:"swiper_id"`
	SwipedID  int         `json:"swiped_id" db:"swiped_id"`
	Action    SwipeAction `json:"action" db:"action"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
