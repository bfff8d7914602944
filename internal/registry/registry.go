package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/betpay/betpay-wallet/internal/betapi"
	"github.com/betpay/betpay-wallet/internal/data"
)

const (
	DefaultCatalogCacheTTL = 5 * time.Minute

	platformsCacheKey = "platforms"
	networksCacheKey  = "networks"
)

// RegistryInterface loads what a wizard session can select from.
type RegistryInterface interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
	LoadMerchantConfig(ctx context.Context) (data.MerchantConfig, error)
}

// Registry loads the catalogs from the remote service. Platforms and networks are the same for
// every user and are cached. Phones, account identifiers and settings are read on every load.
type Registry struct {
	client   betapi.ClientInterface
	cache    *ristretto.Cache
	cacheTTL time.Duration
}

func NewRegistry(client betapi.ClientInterface, cacheTTL time.Duration) *Registry {
	r := &Registry{client: client, cacheTTL: cacheTTL}
	if cacheTTL <= 0 {
		return r
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        100,
		MaxCost:            10,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		log.Errorf("Failed to create catalog cache: %v", err)
		return r
	}
	r.cache = cache

	return r
}

func (r *Registry) LoadCatalog(ctx context.Context) (*Catalog, error) {
	platforms, err := cached(r, platformsCacheKey, func() ([]data.Platform, error) {
		return r.client.ListPlatforms(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("loading platforms: %w", err)
	}

	networks, err := cached(r, networksCacheKey, func() ([]data.Network, error) {
		return r.loadNetworks(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("loading networks: %w", err)
	}

	phones, err := r.client.ListUserPhones(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading user phones: %w", err)
	}

	appIDs, err := r.client.ListUserAppIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading user app ids: %w", err)
	}

	return &Catalog{
		Platforms:  platforms,
		Networks:   networks,
		UserPhones: phones,
		UserAppIDs: appIDs,
	}, nil
}

// LoadMerchantConfig fetches a fresh merchant-phone snapshot for a new session.
func (r *Registry) LoadMerchantConfig(ctx context.Context) (data.MerchantConfig, error) {
	settings, err := r.client.GetSettings(ctx)
	if err != nil {
		return data.MerchantConfig{}, fmt.Errorf("loading merchant config: %w", err)
	}
	return data.NewMerchantConfig(*settings), nil
}

// Invalidate drops the cached catalogs.
func (r *Registry) Invalidate() {
	if r.cache == nil {
		return
	}
	r.cache.Del(platformsCacheKey)
	r.cache.Del(networksCacheKey)
	r.cache.Wait()
}

// Refresh reloads the cached catalogs so sessions started afterwards don't pay for a cold cache.
func (r *Registry) Refresh(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}
	r.Invalidate()

	if _, err := cached(r, platformsCacheKey, func() ([]data.Platform, error) {
		return r.client.ListPlatforms(ctx)
	}); err != nil {
		return fmt.Errorf("refreshing platforms: %w", err)
	}

	if _, err := cached(r, networksCacheKey, func() ([]data.Network, error) {
		return r.loadNetworks(ctx)
	}); err != nil {
		return fmt.Errorf("refreshing networks: %w", err)
	}

	return nil
}

func (r *Registry) loadNetworks(ctx context.Context) ([]data.Network, error) {
	networks, err := r.client.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range networks {
		networks[i].Classify()
	}
	return networks, nil
}

func cached[T any](r *Registry, key string, load func() ([]T, error)) ([]T, error) {
	if r.cache != nil {
		if value, found := r.cache.Get(key); found {
			if items, ok := value.([]T); ok {
				return copySlice(items), nil
			}
			r.cache.Del(key)
		}
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.SetWithTTL(key, copySlice(items), 1, r.cacheTTL)
		r.cache.Wait()
	}

	return items, nil
}

func copySlice[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

var _ RegistryInterface = (*Registry)(nil)
