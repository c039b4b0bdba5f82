package providers

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
	City        string
	ServiceType string
	Available   *bool
	Search      string
	Sort        string // rating | bookings | newest
}

func (r *Repo) List(ctx context.Context, in ListParams) ([]Provider, error) {
	q := r.db.WithContext(ctx).Model(&Provider{}).Where("status = ?", StatusVerified)
	if in.City != "" {
		q = q.Where("city = ?", in.City)
	}
	if in.ServiceType != "" {
		q = q.Where("service_type = ?", in.ServiceType)
	}
	if in.Available != nil {
		q = q.Where("is_available = ?", *in.Available)
	}
	if s := strings.TrimSpace(in.Search); s != "" {
		q = q.Where("business_name LIKE ?", "%"+s+"%")
	}

	switch in.Sort {
	case "bookings":
		q = q.Order("booking_count DESC")
	case "newest":
		q = q.Order("created_at DESC")
	default:
		q = q.Order("rating DESC")
	}

	var out []Provider
	err := q.Find(&out).Error
	return out, err
}

func (r *Repo) Get(ctx context.Context, id string) (Provider, error) {
	var p Provider
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, err
}

// GetByUser returns the provider profile owned by a user regardless of
// verification status.
func (r *Repo) GetByUser(ctx context.Context, userID string) (Provider, error) {
	var p Provider
	err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	return p, err
}

func (r *Repo) GetDetail(ctx context.Context, id string) (Provider, []Service, []Portfolio, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return Provider{}, nil, nil, err
	}

	var services []Service
	if err := r.db.WithContext(ctx).
		Find(&services, "provider_id = ? AND is_active = ?", id, true).Error; err != nil {
		return Provider{}, nil, nil, err
	}

	var portfolio []Portfolio
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&portfolio, "provider_id = ?", id).Error; err != nil {
		return Provider{}, nil, nil, err
	}
	return p, services, portfolio, nil
}

type CreateInput struct {
	UserID             string
	BusinessName       string
	ServiceType        string
	Bio                *string
	Location           string
	City               string
	ExperienceYears    int
	OffersHomeService  bool
	OffersSalonService bool
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (Provider, error) {
	now := time.Now()
	p := Provider{
		ID:                 uuid.NewString(),
		UserID:             in.UserID,
		BusinessName:       in.BusinessName,
		ServiceType:        in.ServiceType,
		Bio:                in.Bio,
		Location:           in.Location,
		City:               in.City,
		ExperienceYears:    in.ExperienceYears,
		Status:             StatusPending,
		Plan:               "Free",
		IsAvailable:        true,
		OffersHomeService:  in.OffersHomeService,
		OffersSalonService: in.OffersSalonService,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Provider{}, err
	}
	return p, nil
}

// UpdateInput: nil fields are left untouched. Explicit on purpose — no
// reflective copying of request bodies into rows.
type UpdateInput struct {
	BusinessName *string
	ServiceType  *string
	Bio          *string
	Location     *string
	City         *string
	IsAvailable  *bool
	AvatarURL    *string
}

func (r *Repo) Update(ctx context.Context, id, userID string, in UpdateInput) (Provider, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if in.BusinessName != nil {
		updates["business_name"] = *in.BusinessName
	}
	if in.ServiceType != nil {
		updates["service_type"] = *in.ServiceType
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.City != nil {
		updates["city"] = *in.City
	}
	if in.IsAvailable != nil {
		updates["is_available"] = *in.IsAvailable
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = *in.AvatarURL
	}

	res := r.db.WithContext(ctx).Model(&Provider{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return Provider{}, res.Error
	}
	if res.RowsAffected == 0 {
		return Provider{}, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repo) SetStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&Provider{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type ServiceInput struct {
	Name            string
	Description     *string
	PriceKobo       int64
	DurationMinutes int
}

func (r *Repo) AddService(ctx context.Context, providerID string, in ServiceInput) (Service, error) {
	dur := in.DurationMinutes
	if dur <= 0 {
		dur = 60
	}
	s := Service{
		ID:              uuid.NewString(),
		ProviderID:      providerID,
		Name:            in.Name,
		Description:     in.Description,
		PriceKobo:       in.PriceKobo,
		DurationMinutes: dur,
		IsActive:        true,
		CreatedAt:       time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return Service{}, err
	}
	return s, nil
}

func (r *Repo) ListServices(ctx context.Context, providerID string) ([]Service, error) {
	var out []Service
	err := r.db.WithContext(ctx).
		Find(&out, "provider_id = ? AND is_active = ?", providerID, true).Error
	return out, err
}

func (r *Repo) AddPortfolio(ctx context.Context, providerID, storageKey, url string, caption *string) (Portfolio, error) {
	p := Portfolio{
		ID:         uuid.NewString(),
		ProviderID: providerID,
		StorageKey: storageKey,
		ImageURL:   url,
		Caption:    caption,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Portfolio{}, err
	}
	return p, nil
}
