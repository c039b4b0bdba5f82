package orders

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetWithItems(ctx context.Context, id string) (Order, []OrderItem, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&items, "order_id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

type ListByUserParams struct {
	UserID   string
	Status   string // optional filter
	Page     int
	PageSize int
}

type ListByUserResult struct {
	Items []Order
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

	q := r.db.WithContext(ctx).Model(&Order{}).Where("user_id = ?", in.UserID)
	if status := strings.TrimSpace(in.Status); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListByUserResult{}, err
	}

	var items []Order
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListByUserResult{}, err
	}
	return ListByUserResult{Items: items, Total: total}, nil
}

type AdminListParams struct {
	Q        string
	Status   string
	Page     int
	PageSize int
}

type AdminListResult struct {
	Items []Order
	Total int64
}

func (r *Repo) AdminList(ctx context.Context, in AdminListParams) (AdminListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 30
	}

	base := r.db.WithContext(ctx).Model(&Order{})
	if status := strings.TrimSpace(in.Status); status != "" {
		base = base.Where("status = ?", status)
	}
	if q := strings.TrimSpace(in.Q); q != "" {
		like := "%" + q + "%"
		base = base.Where("(id LIKE ? OR order_number LIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return AdminListResult{}, err
	}

	var items []Order
	if err := base.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return AdminListResult{}, err
	}
	return AdminListResult{Items: items, Total: total}, nil
}
