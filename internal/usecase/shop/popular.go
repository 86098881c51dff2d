package shop

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/salonlink/salon-scheduler/internal/cache"
	domain "github.com/salonlink/salon-scheduler/internal/domain/reservation"
	"github.com/salonlink/salon-scheduler/internal/models"
)

// rankingWindowDays is how far back completed visits count.
const rankingWindowDays = 30

// RecomputePopularShops rebuilds the cached shop ranking. Score is the
// number of completed visits in the window plus a rating bonus, so a
// busy shop with bad reviews does not stay on top forever.
type RecomputePopularShops struct {
	db    *gorm.DB
	cache *cache.PopularShops
}

func NewRecomputePopularShops(
	db *gorm.DB,
	popular *cache.PopularShops,
) *RecomputePopularShops {
	return &RecomputePopularShops{
		db:    db,
		cache: popular,
	}
}

type shopRankRow struct {
	ShopID    uint
	Completed int64
	AvgRating float64
}

func (uc *RecomputePopularShops) Execute(ctx context.Context, asOf time.Time) error {
	since := asOf.AddDate(0, 0, -rankingWindowDays)

	var rows []shopRankRow
	err := uc.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select(`
            reservations.shop_id AS shop_id,
            COUNT(reservations.id) AS completed,
            COALESCE(AVG(reviews.rating), 0) AS avg_rating
        `).
		Joins("LEFT JOIN reviews ON reviews.reservation_id = reservations.id").
		Where(
			"reservations.status = ? AND reservations.ends_at >= ? AND reservations.ends_at < ?",
			string(domain.StatusCompleted),
			since,
			asOf,
		).
		Group("reservations.shop_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	scores := make([]cache.ShopScore, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, cache.ShopScore{
			ShopID: row.ShopID,
			Score:  float64(row.Completed) + 2*row.AvgRating,
		})
	}

	return uc.cache.Replace(ctx, scores)
}

// ListPopular reads the cached ranking and loads the shops in rank
// order. Falls back to newest shops when the cache is empty or Redis is
// down; popularity must never take the public listing with it.
type ListPopular struct {
	db    *gorm.DB
	cache *cache.PopularShops
}

func NewListPopular(db *gorm.DB, popular *cache.PopularShops) *ListPopular {
	return &ListPopular{db: db, cache: popular}
}

func (uc *ListPopular) Execute(ctx context.Context, limit int) ([]models.Shop, error) {
	if limit <= 0 {
		limit = 10
	}

	ids, err := uc.cache.TopIDs(ctx, limit)
	if err != nil || len(ids) == 0 {
		return uc.fallback(ctx, limit)
	}

	var shops []models.Shop
	if err := uc.db.WithContext(ctx).
		Preload("Area").
		Preload("Tags").
		Where("id IN ?", ids).
		Find(&shops).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Shop, len(shops))
	for _, s := range shops {
		byID[s.ID] = s
	}

	ordered := make([]models.Shop, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

func (uc *ListPopular) fallback(ctx context.Context, limit int) ([]models.Shop, error) {
	var shops []models.Shop
	err := uc.db.WithContext(ctx).
		Preload("Area").
		Preload("Tags").
		Order("created_at DESC").
		Limit(limit).
		Find(&shops).Error
	return shops, err
}
