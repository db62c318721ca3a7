package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"propboard/internal/model"
	"propboard/internal/source"
	"propboard/internal/utils"
)

// LookupCache is the optional cache consulted before fanning out to the
// data sources. Implementations must treat writes as idempotent per key.
type LookupCache interface {
	Get(ctx context.Context, key string) (*model.AggregatedPropertyData, bool)
	Set(ctx context.Context, key string, data *model.AggregatedPropertyData)
}

// AggregationCoordinator fans one address out to every configured public
// data source concurrently and merges whatever subset succeeds. It holds no
// per-request state; concurrent lookups of the same normalized address are
// collapsed into a single flight.
type AggregationCoordinator struct {
	chains map[model.Category][]source.Attempt
	cache  LookupCache
	flight singleflight.Group
}

// NewAggregationCoordinator creates a coordinator over the given per-
// category fallback chains. cache may be nil.
func NewAggregationCoordinator(chains map[model.Category][]source.Attempt, cache LookupCache) *AggregationCoordinator {
	return &AggregationCoordinator{
		chains: chains,
		cache:  cache,
	}
}

// settled carries one category's terminal state from its goroutine back to
// the merge step.
type settled struct {
	record  model.CategoryRecord
	outcome model.SourceOutcome
}

// Aggregate queries every configured source for the address and returns the
// best-effort merged result. It never fails: a lookup where every source
// failed comes back with all categories absent and the reasons recorded in
// Outcomes.
func (c *AggregationCoordinator) Aggregate(ctx context.Context, address string) *model.AggregatedPropertyData {
	key := utils.NormalizeAddress(address)
	v, _, _ := c.flight.Do(key, func() (interface{}, error) {
		return c.lookup(ctx, address, key), nil
	})
	return v.(*model.AggregatedPropertyData)
}

// Preview implements AddressPreviewer for the command executor.
func (c *AggregationCoordinator) Preview(ctx context.Context, address string) (*model.AggregatedPropertyData, error) {
	return c.Aggregate(ctx, address), nil
}

func (c *AggregationCoordinator) lookup(ctx context.Context, address, key string) *model.AggregatedPropertyData {
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, key); ok {
			return cached
		}
	}

	parsed := model.ParseAddress(address)

	// Fan out one goroutine per category. Every chain runs to completion;
	// no failure cancels or blocks a sibling.
	results := make(chan settled, len(c.chains))
	var wg sync.WaitGroup
	for category, attempts := range c.chains {
		if len(attempts) == 0 {
			continue
		}
		wg.Add(1)
		go func(category model.Category, attempts []source.Attempt) {
			defer wg.Done()
			results <- runChain(ctx, category, attempts, parsed)
		}(category, attempts)
	}
	wg.Wait()
	close(results)

	byCategory := make(map[model.Category]settled, len(c.chains))
	for s := range results {
		byCategory[s.outcome.Category] = s
	}

	agg := &model.AggregatedPropertyData{
		Address:   address,
		FetchedAt: time.Now(),
	}
	// Merge in fixed category order so the output is deterministic
	// regardless of completion order.
	for _, category := range model.Categories {
		s, ok := byCategory[category]
		if !ok {
			continue
		}
		if s.record != nil {
			agg.Attach(s.record)
		} else {
			log.Printf("lookup %q: %s unavailable: %s", address, category, s.outcome.Error)
		}
		agg.Outcomes = append(agg.Outcomes, s.outcome)
	}

	if c.cache != nil && agg.CategoryCount() > 0 {
		c.cache.Set(ctx, key, agg)
	}
	return agg
}

// runChain walks one category's ordered attempt list, stopping at the first
// success. Fallback is sequential and scoped to the category.
func runChain(ctx context.Context, category model.Category, attempts []source.Attempt, addr model.ParsedAddress) settled {
	start := time.Now()
	var failures []string

	for _, attempt := range attempts {
		record, err := attempt.Fetch(ctx, addr)
		if err == nil {
			return settled{
				record: record,
				outcome: model.SourceOutcome{
					SourceID: attempt.SourceID,
					Category: category,
					Status:   model.OutcomeFulfilled,
					TookMs:   time.Since(start).Milliseconds(),
				},
			}
		}
		failures = append(failures, fmt.Sprintf("%s: %v", attempt.SourceID, err))
	}

	return settled{
		outcome: model.SourceOutcome{
			SourceID: attempts[len(attempts)-1].SourceID,
			Category: category,
			Status:   model.OutcomeFailed,
			Error:    strings.Join(failures, "; "),
			TookMs:   time.Since(start).Milliseconds(),
		},
	}
}
