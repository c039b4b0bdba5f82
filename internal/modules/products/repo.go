package products

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	CategoryID string
	City       string
	Search     string
	Featured   *bool
	Sort       string // rating | newest | price_asc | price_desc
	Page       int
	PageSize   int
}

type ListResult struct {
	Items []Product
	Total int64
}

func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Product{}).Where("status = ?", StatusActive)
	if in.CategoryID != "" {
		q = q.Where("category_id = ?", in.CategoryID)
	}
	if in.City != "" {
		q = q.Where("city = ?", in.City)
	}
	if s := strings.TrimSpace(in.Search); s != "" {
		q = q.Where("name LIKE ?", "%"+s+"%")
	}
	if in.Featured != nil {
		q = q.Where("is_featured = ?", *in.Featured)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	switch in.Sort {
	case "price_asc":
		q = q.Order("price_kobo ASC")
	case "price_desc":
		q = q.Order("price_kobo DESC")
	case "newest":
		q = q.Order("created_at DESC")
	default:
		q = q.Order("rating DESC")
	}

	var items []Product
	if err := q.Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: items, Total: total}, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, err
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&out).Error
	return out, err
}

type CreateInput struct {
	Name        string
	Description *string
	PriceKobo   int64
	CategoryID  string
	VendorName  string
	VendorID    *string
	City        *string
	IsFeatured  bool
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (Product, error) {
	now := time.Now()
	p := Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		PriceKobo:   in.PriceKobo,
		CategoryID:  in.CategoryID,
		VendorName:  in.VendorName,
		VendorID:    in.VendorID,
		Status:      StatusActive,
		IsFeatured:  in.IsFeatured,
		City:        in.City,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) SetImage(ctx context.Context, id, url string) error {
	return r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"image_url":  url,
			"updated_at": time.Now(),
		}).Error
}
