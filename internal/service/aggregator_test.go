package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"propboard/internal/model"
	"propboard/internal/source"
)

// fakeCache is an in-memory LookupCache that records its writes.
type fakeCache struct {
	entries map[string]*model.AggregatedPropertyData
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*model.AggregatedPropertyData{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (*model.AggregatedPropertyData, bool) {
	data, ok := f.entries[key]
	return data, ok
}

func (f *fakeCache) Set(_ context.Context, key string, data *model.AggregatedPropertyData) {
	f.entries[key] = data
	f.sets++
}

func taxAttempt(id string, rec *model.TaxRecord, err error) source.Attempt {
	return source.NewAttempt(id, func(context.Context, model.ParsedAddress) (*model.TaxRecord, error) {
		return rec, err
	})
}

func TestAggregate_PartialFailure(t *testing.T) {
	value := 250000.0
	chains := map[model.Category][]source.Attempt{
		model.CategoryTax: {taxAttempt("assessor", &model.TaxRecord{AssessedValue: &value}, nil)},
		model.CategoryWalkScore: {
			source.NewAttempt("walkscore", func(context.Context, model.ParsedAddress) (*model.WalkScoreReport, error) {
				// A slow source must not be starved by fast failures.
				time.Sleep(20 * time.Millisecond)
				score := 87
				return &model.WalkScoreReport{WalkScore: &score}, nil
			}),
		},
		model.CategoryCrime: {
			source.NewAttempt("fbi-cde", func(context.Context, model.ParsedAddress) (*model.CrimeReport, error) {
				return nil, errors.New("status 500")
			}),
		},
	}

	agg := NewAggregationCoordinator(chains, nil).Aggregate(context.Background(), "123 Main St")

	if !agg.Has(model.CategoryTax) || !agg.Has(model.CategoryWalkScore) {
		t.Error("fulfilled categories missing from merged result")
	}
	if agg.Has(model.CategoryCrime) {
		t.Error("failed category present in merged result")
	}
	if agg.CategoryCount() != 2 {
		t.Errorf("CategoryCount = %d, want 2", agg.CategoryCount())
	}
	if agg.Tax.AssessedValue == nil || *agg.Tax.AssessedValue != value {
		t.Errorf("Tax.AssessedValue = %v, want %v", agg.Tax.AssessedValue, value)
	}

	if len(agg.Outcomes) != 3 {
		t.Fatalf("len(Outcomes) = %d, want 3", len(agg.Outcomes))
	}
	for _, outcome := range agg.Outcomes {
		if outcome.Category == model.CategoryCrime {
			if outcome.Status != model.OutcomeFailed {
				t.Errorf("crime outcome status = %s, want %s", outcome.Status, model.OutcomeFailed)
			}
			if !strings.Contains(outcome.Error, "status 500") {
				t.Errorf("crime outcome error %q does not carry the cause", outcome.Error)
			}
		} else if outcome.Status != model.OutcomeFulfilled {
			t.Errorf("%s outcome status = %s, want %s", outcome.Category, outcome.Status, model.OutcomeFulfilled)
		}
	}
}

func TestAggregate_ExactSubsetMerged(t *testing.T) {
	fail := errors.New("status 502")
	score := 72
	chains := map[model.Category][]source.Attempt{
		model.CategoryTax: {taxAttempt("assessor", &model.TaxRecord{}, nil)},
		model.CategoryMarket: {
			source.NewAttempt("avm", func(context.Context, model.ParsedAddress) (*model.MarketRecord, error) {
				return &model.MarketRecord{}, nil
			}),
		},
		model.CategoryPermits: {
			source.NewAttempt("county", func(context.Context, model.ParsedAddress) (*model.PermitHistory, error) {
				return nil, fail
			}),
		},
		model.CategoryViolations: {
			source.NewAttempt("county", func(context.Context, model.ParsedAddress) (*model.ViolationHistory, error) {
				return nil, fail
			}),
		},
		model.CategorySales: {
			source.NewAttempt("avm", func(context.Context, model.ParsedAddress) (*model.SalesHistory, error) {
				return &model.SalesHistory{}, nil
			}),
		},
		model.CategoryDemographics: {
			source.NewAttempt("census", func(context.Context, model.ParsedAddress) (*model.Demographics, error) {
				return nil, fail
			}),
		},
		model.CategorySchools: {
			source.NewAttempt("schools", func(context.Context, model.ParsedAddress) (*model.SchoolReport, error) {
				return &model.SchoolReport{}, nil
			}),
		},
		model.CategoryCrime: {
			source.NewAttempt("fbi-cde", func(context.Context, model.ParsedAddress) (*model.CrimeReport, error) {
				return nil, fail
			}),
		},
		model.CategoryWalkScore: {
			source.NewAttempt("walkscore", func(context.Context, model.ParsedAddress) (*model.WalkScoreReport, error) {
				return &model.WalkScoreReport{WalkScore: &score}, nil
			}),
		},
		model.CategoryFloodZone: {
			source.NewAttempt("fema", func(context.Context, model.ParsedAddress) (*model.FloodZoneReport, error) {
				return nil, fail
			}),
		},
		model.CategoryZoning: {
			source.NewAttempt("county", func(context.Context, model.ParsedAddress) (*model.ZoningReport, error) {
				return &model.ZoningReport{Code: "R-2"}, nil
			}),
		},
	}

	agg := NewAggregationCoordinator(chains, nil).Aggregate(context.Background(), "123 Main St")

	succeeded := map[model.Category]bool{
		model.CategoryTax: true, model.CategoryMarket: true, model.CategorySales: true,
		model.CategorySchools: true, model.CategoryWalkScore: true, model.CategoryZoning: true,
	}
	for _, category := range model.Categories {
		if agg.Has(category) != succeeded[category] {
			t.Errorf("Has(%s) = %v, want %v", category, agg.Has(category), succeeded[category])
		}
	}
	if agg.CategoryCount() != 6 {
		t.Errorf("CategoryCount = %d, want 6", agg.CategoryCount())
	}
	if len(agg.Outcomes) != 11 {
		t.Errorf("len(Outcomes) = %d, want 11", len(agg.Outcomes))
	}
}

func TestAggregate_OutcomeOrderIsDeterministic(t *testing.T) {
	// Every category fulfilled, each after a different delay, so completion
	// order differs from category order.
	chains := map[model.Category][]source.Attempt{
		model.CategoryTax: {taxAttempt("assessor", &model.TaxRecord{}, nil)},
		model.CategoryMarket: {
			source.NewAttempt("avm", func(context.Context, model.ParsedAddress) (*model.MarketRecord, error) {
				time.Sleep(10 * time.Millisecond)
				return &model.MarketRecord{}, nil
			}),
		},
		model.CategoryZoning: {
			source.NewAttempt("county", func(context.Context, model.ParsedAddress) (*model.ZoningReport, error) {
				time.Sleep(5 * time.Millisecond)
				return &model.ZoningReport{Code: "R-1"}, nil
			}),
		},
	}
	coordinator := NewAggregationCoordinator(chains, nil)

	agg := coordinator.Aggregate(context.Background(), "123 Main St")

	want := []model.Category{model.CategoryTax, model.CategoryMarket, model.CategoryZoning}
	if len(agg.Outcomes) != len(want) {
		t.Fatalf("len(Outcomes) = %d, want %d", len(agg.Outcomes), len(want))
	}
	for i, category := range want {
		if agg.Outcomes[i].Category != category {
			t.Errorf("Outcomes[%d].Category = %s, want %s", i, agg.Outcomes[i].Category, category)
		}
	}
}

func TestAggregate_FallbackChain(t *testing.T) {
	value := 310000.0
	chains := map[model.Category][]source.Attempt{
		model.CategoryTax: {
			taxAttempt("attom", nil, errors.New("status 503")),
			taxAttempt("county", &model.TaxRecord{AssessedValue: &value}, nil),
		},
	}

	agg := NewAggregationCoordinator(chains, nil).Aggregate(context.Background(), "123 Main St")

	if !agg.Has(model.CategoryTax) {
		t.Fatal("tax missing despite fallback success")
	}
	if len(agg.Outcomes) != 1 {
		t.Fatalf("len(Outcomes) = %d, want 1", len(agg.Outcomes))
	}
	outcome := agg.Outcomes[0]
	if outcome.Status != model.OutcomeFulfilled {
		t.Errorf("Status = %s, want %s", outcome.Status, model.OutcomeFulfilled)
	}
	if outcome.SourceID != "county" {
		t.Errorf("SourceID = %q, want %q", outcome.SourceID, "county")
	}
}

func TestAggregate_AllAttemptsFail(t *testing.T) {
	chains := map[model.Category][]source.Attempt{
		model.CategoryTax: {
			taxAttempt("attom", nil, source.ErrUnconfigured),
			taxAttempt("county", nil, errors.New("status 500")),
		},
	}

	agg := NewAggregationCoordinator(chains, nil).Aggregate(context.Background(), "123 Main St")

	if agg.CategoryCount() != 0 {
		t.Errorf("CategoryCount = %d, want 0", agg.CategoryCount())
	}
	if len(agg.Outcomes) != 1 {
		t.Fatalf("len(Outcomes) = %d, want 1", len(agg.Outcomes))
	}
	outcome := agg.Outcomes[0]
	if outcome.Status != model.OutcomeFailed {
		t.Errorf("Status = %s, want %s", outcome.Status, model.OutcomeFailed)
	}
	// Every attempt's failure is recorded, in chain order.
	if !strings.Contains(outcome.Error, "attom") || !strings.Contains(outcome.Error, "county") {
		t.Errorf("Error %q does not name both sources", outcome.Error)
	}
	if !strings.Contains(outcome.Error, source.ErrUnconfigured.Error()) {
		t.Errorf("Error %q does not carry the unconfigured diagnostic", outcome.Error)
	}
}

func TestAggregate_CacheHitSkipsSources(t *testing.T) {
	var calls atomic.Int32
	chains := map[model.Category][]source.Attempt{
		model.CategoryTax: {
			source.NewAttempt("assessor", func(context.Context, model.ParsedAddress) (*model.TaxRecord, error) {
				calls.Add(1)
				return &model.TaxRecord{}, nil
			}),
		},
	}
	cache := newFakeCache()
	coordinator := NewAggregationCoordinator(chains, cache)

	first := coordinator.Aggregate(context.Background(), "123 Main Street")
	if calls.Load() != 1 {
		t.Fatalf("calls = %d after first lookup, want 1", calls.Load())
	}
	if cache.sets != 1 {
		t.Fatalf("cache writes = %d after first lookup, want 1", cache.sets)
	}

	// Different spelling of the same address normalizes to the same key.
	second := coordinator.Aggregate(context.Background(), "123 main st.")
	if calls.Load() != 1 {
		t.Errorf("calls = %d after cached lookup, want 1", calls.Load())
	}
	if second != first {
		t.Error("cached lookup did not return the stored result")
	}
}

func TestAggregate_EmptyResultNotCached(t *testing.T) {
	chains := map[model.Category][]source.Attempt{
		model.CategoryTax: {taxAttempt("attom", nil, source.ErrUnconfigured)},
	}
	cache := newFakeCache()

	NewAggregationCoordinator(chains, cache).Aggregate(context.Background(), "123 Main St")

	if cache.sets != 0 {
		t.Errorf("cache writes = %d, want 0 for an empty result", cache.sets)
	}
}

func TestAggregate_Preview(t *testing.T) {
	chains := map[model.Category][]source.Attempt{
		model.CategoryTax: {taxAttempt("assessor", &model.TaxRecord{}, nil)},
	}
	coordinator := NewAggregationCoordinator(chains, nil)

	data, err := coordinator.Preview(context.Background(), "123 Main St")
	if err != nil {
		t.Fatalf("Preview returned error: %v", err)
	}
	if data == nil || !data.Has(model.CategoryTax) {
		t.Error("Preview did not return aggregated data")
	}
}
