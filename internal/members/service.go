// Package members reads the registration list for display.
package members

import (
	"context"
	"time"

	"github.com/jufengpp/signup/internal/cachemanager"
	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/log"
)

const cacheKey = "registrations"

// Lister fetches every registration record.
type Lister interface {
	ListRegistrations(ctx context.Context) ([]domain.RegistrationRecord, error)
}

// Service serves the member list through a short-lived cache.
type Service struct {
	cache *cachemanager.ReadThroughCache[[]domain.RegistrationRecord, struct{}]
	ttl   time.Duration
}

// NewService creates a Service. A ttl of zero or less disables caching.
func NewService(lister Lister, ttl time.Duration) *Service {
	store := cachemanager.NewInMemoryCacheManager[[]domain.RegistrationRecord](
		"members", ttl, cachemanager.DefaultCleanupInterval)

	fetch := func(ctx context.Context, _ struct{}) ([]domain.RegistrationRecord, error) {
		records, err := lister.ListRegistrations(ctx)
		if err != nil {
			log.ErrorErr(log.CatMembers, "Listing registrations failed", err)
			return nil, err
		}
		log.Info(log.CatMembers, "Fetched registrations", "count", len(records))
		return records, nil
	}

	return &Service{
		cache: cachemanager.NewReadThroughCache[[]domain.RegistrationRecord, struct{}](store, fetch, ttl <= 0),
		ttl:   ttl,
	}
}

// List returns every registration. refresh skips any cached copy.
func (s *Service) List(ctx context.Context, refresh bool) ([]domain.RegistrationRecord, error) {
	if refresh {
		return s.cache.Refresh(ctx, cacheKey, struct{}{}, s.ttl)
	}
	return s.cache.Get(ctx, cacheKey, struct{}{}, s.ttl)
}

// Invalidate drops the cached list. Call it after a registration so the
// member page shows the new entry.
func (s *Service) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, cacheKey)
	log.Debug(log.CatMembers, "Member cache invalidated")
}
