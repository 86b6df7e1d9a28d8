// Package catalog generates the store's random color products.
package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/decalcomanie/colorstore/internal/domain"
	"github.com/decalcomanie/colorstore/internal/repository"
)

const (
	DefaultSize = 6
	MaxSize     = 24

	hexDigits         = "0123456789ABCDEF"
	lookupConcurrency = 4
)

// NameResolver names a hex color; *colorapi.Client satisfies it
type NameResolver interface {
	Name(ctx context.Context, hex string) (string, error)
}

type Generator struct {
	names  NameResolver
	cache  repository.ColorNameCache
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a catalog generator. cache may be nil.
func NewGenerator(names NameResolver, cache repository.ColorNameCache, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		names:  names,
		cache:  cache,
		logger: logger,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithRand swaps the random source, for deterministic catalogs in tests
func (g *Generator) WithRand(rng *rand.Rand) *Generator {
	g.mu.Lock()
	g.rng = rng
	g.mu.Unlock()
	return g
}

// RandomHexColor returns six uppercase hex digits
func RandomHexColor(rng *rand.Rand) string {
	var b strings.Builder
	b.Grow(6)
	for i := 0; i < 6; i++ {
		b.WriteByte(hexDigits[rng.IntN(16)])
	}
	return b.String()
}

// RandomPrice returns a price in [1, 1001) with two decimals
func RandomPrice(rng *rand.Rand) string {
	return decimal.NewFromFloat(rng.Float64()*1000 + 1).StringFixed(2)
}

// Generate builds n items with distinct color codes. Names are looked up
// concurrently; any lookup failure fails the whole catalog.
func (g *Generator) Generate(ctx context.Context, n int) ([]domain.StoreItem, error) {
	if n <= 0 {
		n = DefaultSize
	}
	if n > MaxSize {
		return nil, fmt.Errorf("catalog size %d exceeds maximum %d", n, MaxSize)
	}

	items := g.draw(n)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(lookupConcurrency)
	for i := range items {
		eg.Go(func() error {
			name, err := g.name(egCtx, items[i].ID)
			if err != nil {
				return fmt.Errorf("name color %s: %w", items[i].ID, err)
			}
			items[i].Name = name
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.logger.Info("Catalog generated", zap.Int("size", len(items)))
	return items, nil
}

// draw picks n distinct codes and their prices
func (g *Generator) draw(n int) []domain.StoreItem {
	g.mu.Lock()
	defer g.mu.Unlock()

	seen := make(map[string]struct{}, n)
	items := make([]domain.StoreItem, 0, n)
	for len(items) < n {
		code := RandomHexColor(g.rng)
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		items = append(items, domain.StoreItem{ID: code, Price: RandomPrice(g.rng)})
	}
	return items
}

func (g *Generator) name(ctx context.Context, hex string) (string, error) {
	if g.cache != nil {
		if name, ok, err := g.cache.Get(ctx, hex); err == nil && ok {
			return name, nil
		}
	}

	name, err := g.names.Name(ctx, hex)
	if err != nil {
		return "", err
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, hex, name); err != nil {
			g.logger.Debug("Could not cache color name", zap.String("hex", hex), zap.Error(err))
		}
	}
	return name, nil
}
