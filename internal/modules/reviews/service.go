package reviews

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iamlekside2/QuickGift/internal/modules/products"
	"github.com/iamlekside2/QuickGift/internal/modules/providers"
)

type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, logger: logger}
}

type CreateInput struct {
	UserID     string
	TargetType TargetType
	TargetID   string
	Rating     int
	Comment    *string
}

// Create stores the review and recomputes the target's rating and review
// count in the same transaction, so listings never show stale aggregates.
func (s *Service) Create(ctx context.Context, in CreateInput) (Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	if in.TargetType != TargetProduct && in.TargetType != TargetProvider {
		return Review{}, ErrInvalidTarget
	}

	rv := Review{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		CreatedAt:  time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.targetExists(ctx, tx, in.TargetType, in.TargetID); err != nil {
			return err
		}

		if err := tx.WithContext(ctx).Create(&rv).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyExists
			}
			return err
		}

		return s.recompute(ctx, tx, in.TargetType, in.TargetID)
	})
	if err != nil {
		return Review{}, err
	}

	s.logger.InfoContext(ctx, "review created",
		"review_id", rv.ID, "target_type", rv.TargetType, "target_id", rv.TargetID, "rating", rv.Rating)
	return rv, nil
}

func (s *Service) targetExists(ctx context.Context, tx *gorm.DB, tt TargetType, id string) error {
	var count int64
	var err error
	switch tt {
	case TargetProduct:
		err = tx.WithContext(ctx).Model(&products.Product{}).Where("id = ?", id).Count(&count).Error
	case TargetProvider:
		err = tx.WithContext(ctx).Model(&providers.Provider{}).Where("id = ?", id).Count(&count).Error
	}
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrTargetNotFound
	}
	return nil
}

func (s *Service) recompute(ctx context.Context, tx *gorm.DB, tt TargetType, id string) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	if err := tx.WithContext(ctx).Model(&Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("target_type = ? AND target_id = ?", tt, id).
		Scan(&agg).Error; err != nil {
		return err
	}

	updates := map[string]any{
		"rating":       agg.Avg,
		"review_count": agg.Count,
		"updated_at":   time.Now(),
	}
	switch tt {
	case TargetProduct:
		return tx.WithContext(ctx).Model(&products.Product{}).Where("id = ?", id).Updates(updates).Error
	case TargetProvider:
		return tx.WithContext(ctx).Model(&providers.Provider{}).Where("id = ?", id).Updates(updates).Error
	}
	return ErrInvalidTarget
}

func (s *Service) ListForTarget(ctx context.Context, tt TargetType, targetID string) ([]Review, error) {
	if tt != TargetProduct && tt != TargetProvider {
		return nil, ErrInvalidTarget
	}
	var items []Review
	err := s.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", tt, targetID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func isDuplicateKey(err error) bool {
	var me *gomysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
