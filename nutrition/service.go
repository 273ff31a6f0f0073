package nutrition

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
	"noerkrieg.com/fitlog/units"
)

// Service is the combined lookup: USDA first, local fallback table second.
// A nil USDA client disables the remote path and the service runs
// fallback-only.
type Service struct {
	usda *USDAClient
}

func NewService(usda *USDAClient) *Service {
	return &Service{usda: usda}
}

// LookupMany resolves nutrients for every item, scaled to its quantity. The
// per-item lookups are independent reads and run concurrently; results keep
// the input order. A lookup failure never fails the call; the item just
// comes back NOT_FOUND or falls through to the local table.
func (s *Service) LookupMany(ctx context.Context, items []string, quantities []Quantity) []LookupResult {
	results := make([]LookupResult, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			results[i] = s.lookupOne(gctx, item, multiplierFor(item, quantities))
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return results
}

func (s *Service) lookupOne(ctx context.Context, item string, multiplier float64) LookupResult {
	if s.usda != nil {
		base, err := s.usda.Search(ctx, item)
		if err != nil {
			log.Printf("USDA lookup failed for %q, trying fallback table: %v", item, err)
		} else if base != nil {
			return LookupResult{Item: item, Nutrients: scaled(*base, multiplier), Source: SourceUSDA}
		}
	}
	if base, ok := fallbackNutrients(item); ok {
		return LookupResult{Item: item, Nutrients: scaled(base, multiplier), Source: SourceFallback}
	}
	return LookupResult{Item: item, Source: SourceNotFound}
}

// multiplierFor finds the quantity stated for an item by name and converts it
// to a per-100g serving multiplier. No stated quantity means one reference
// serving.
func multiplierFor(item string, quantities []Quantity) float64 {
	for _, q := range quantities {
		if strings.EqualFold(strings.TrimSpace(q.Item), strings.TrimSpace(item)) {
			return units.ServingMultiplier(q.Amount, q.Unit)
		}
	}
	return 1
}
