package bookings

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Get(ctx context.Context, id string) (Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	return b, err
}

type ListByUserParams struct {
	UserID   string
	Status   string
	Page     int
	PageSize int
}

type ListByUserResult struct {
	Items []Booking
	Total int64
}

func (r *Repo) ListByUser(ctx context.Context, in ListByUserParams) (ListByUserResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", in.UserID)
	if status := strings.TrimSpace(in.Status); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListByUserResult{}, err
	}

	var items []Booking
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListByUserResult{}, err
	}
	return ListByUserResult{Items: items, Total: total}, nil
}

func (r *Repo) ListByProvider(ctx context.Context, providerID string, status string) ([]Booking, error) {
	q := r.db.WithContext(ctx).Where("provider_id = ?", providerID)
	if s := strings.TrimSpace(status); s != "" {
		q = q.Where("status = ?", s)
	}
	var items []Booking
	err := q.Order("booking_date ASC").Find(&items).Error
	return items, err
}
