package view

import (
	"time"

	"github.com/iamlekside2/QuickGift/internal/modules/reviews"
)

type Review struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	TargetType string  `json:"target_type"`
	TargetID   string  `json:"target_id"`
	Rating     int     `json:"rating"`
	Comment    *string `json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func FromReview(r reviews.Review) Review {
	return Review{
		ID:         r.ID,
		UserID:     r.UserID,
		TargetType: string(r.TargetType),
		TargetID:   r.TargetID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func FromReviews(items []reviews.Review) []Review {
	out := make([]Review, 0, len(items))
	for _, r := range items {
		out = append(out, FromReview(r))
	}
	return out
}
