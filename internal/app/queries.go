package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"offmarket_estates/internal/domain"
)

type QueryService struct {
	repo     domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetProperty(ctx context.Context, id int64, lang string) (domain.PropertyView, error) {
	key := propertyCacheKey(id, lang)
	var pv domain.PropertyView
	if ok, _ := s.cache.Get(ctx, key, &pv); ok {
		return pv, nil
	}
	pv, err := s.repo.GetProperty(ctx, id, lang)
	if err != nil {
		return domain.PropertyView{}, err
	}
	_ = s.cache.Set(ctx, key, pv, int(s.cacheTTL.Seconds()))
	return pv, nil
}

func (s *QueryService) ListProperties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error) {
	key := fmt.Sprintf("properties:%s:%d:%s:%s", q.Lang, q.Limit, deref(q.Location), deref(q.Type))
	var out domain.PropertiesPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	page, err := s.repo.ListProperties(ctx, q)
	if err != nil {
		return domain.PropertiesPage{}, err
	}

	// copy the slice so later repo mutations cannot leak into the cache
	cp := domain.PropertiesPage{}
	if n := len(page.Items); n > 0 {
		cp.Items = make([]domain.PropertyView, n)
		copy(cp.Items, page.Items)
	}

	// size guard: skip caching oversized pages
	if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	}
	return cp, nil
}

// InvalidateProperty evicts every language variant of one property.
func (s *QueryService) InvalidateProperty(ctx context.Context, id int64, languages []string) {
	for _, l := range languages {
		_ = s.cache.Del(ctx, propertyCacheKey(id, l))
	}
}

func propertyCacheKey(id int64, lang string) string {
	return fmt.Sprintf("property:%d:%s", id, strings.ToLower(lang))
}
