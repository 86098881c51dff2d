package cache

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const popularShopsKey = "popular_shops"

// PopularShops keeps the precomputed shop ranking in a sorted set. The
// ranking job replaces the whole set; readers only take the top N ids.
type PopularShops struct {
	rdb *redis.Client
}

func NewPopularShops(rdb *redis.Client) *PopularShops {
	return &PopularShops{rdb: rdb}
}

type ShopScore struct {
	ShopID uint
	Score  float64
}

func (p *PopularShops) Replace(ctx context.Context, scores []ShopScore) error {
	pipe := p.rdb.TxPipeline()
	pipe.Del(ctx, popularShopsKey)

	if len(scores) > 0 {
		members := make([]*redis.Z, 0, len(scores))
		for _, s := range scores {
			members = append(members, &redis.Z{
				Score:  s.Score,
				Member: strconv.FormatUint(uint64(s.ShopID), 10),
			})
		}
		pipe.ZAdd(ctx, popularShopsKey, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// TopIDs returns up to limit shop ids, highest score first. An empty
// result just means the ranking has not been computed yet.
func (p *PopularShops) TopIDs(ctx context.Context, limit int) ([]uint, error) {
	members, err := p.rdb.ZRevRange(ctx, popularShopsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
