package view

import (
	"github.com/iamlekside2/QuickGift/internal/modules/providers"
)

type Provider struct {
	ID           string   `json:"id"`
	BusinessName string   `json:"business_name"`
	ServiceType  string   `json:"service_type"`
	Bio          *string  `json:"bio,omitempty"`
	Location     string   `json:"location"`
	City         string   `json:"city"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`

	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"review_count"`
	BookingCount    int     `json:"booking_count"`
	ExperienceYears int     `json:"experience_years"`

	Status             string  `json:"status"`
	IsAvailable        bool    `json:"is_available"`
	OffersHomeService  bool    `json:"offers_home_service"`
	OffersSalonService bool    `json:"offers_salon_service"`
	AvatarURL          *string `json:"avatar_url,omitempty"`
}

func FromProvider(p providers.Provider) Provider {
	return Provider{
		ID:                 p.ID,
		BusinessName:       p.BusinessName,
		ServiceType:        p.ServiceType,
		Bio:                p.Bio,
		Location:           p.Location,
		City:               p.City,
		Lat:                p.Lat,
		Lng:                p.Lng,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		BookingCount:       p.BookingCount,
		ExperienceYears:    p.ExperienceYears,
		Status:             p.Status,
		IsAvailable:        p.IsAvailable,
		OffersHomeService:  p.OffersHomeService,
		OffersSalonService: p.OffersSalonService,
		AvatarURL:          p.AvatarURL,
	}
}

func FromProviders(items []providers.Provider) []Provider {
	out := make([]Provider, 0, len(items))
	for _, p := range items {
		out = append(out, FromProvider(p))
	}
	return out
}

type ProviderService struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	PriceKobo       int64   `json:"price_kobo"`
	PriceDisplay    string  `json:"price_display"`
	DurationMinutes int     `json:"duration_minutes"`
}

func FromProviderServices(items []providers.Service) []ProviderService {
	out := make([]ProviderService, 0, len(items))
	for _, s := range items {
		out = append(out, ProviderService{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			PriceKobo:       s.PriceKobo,
			PriceDisplay:    NairaFromKobo(s.PriceKobo),
			DurationMinutes: s.DurationMinutes,
		})
	}
	return out
}

type PortfolioImage struct {
	ID       string  `json:"id"`
	ImageURL string  `json:"image_url"`
	Caption  *string `json:"caption,omitempty"`
}

func FromPortfolio(items []providers.Portfolio) []PortfolioImage {
	out := make([]PortfolioImage, 0, len(items))
	for _, p := range items {
		out = append(out, PortfolioImage{ID: p.ID, ImageURL: p.ImageURL, Caption: p.Caption})
	}
	return out
}

type ProviderDetail struct {
	Provider
	Services  []ProviderService `json:"services"`
	Portfolio []PortfolioImage  `json:"portfolio"`
}

func FromProviderDetail(p providers.Provider, services []providers.Service, portfolio []providers.Portfolio) ProviderDetail {
	return ProviderDetail{
		Provider:  FromProvider(p),
		Services:  FromProviderServices(services),
		Portfolio: FromPortfolio(portfolio),
	}
}
