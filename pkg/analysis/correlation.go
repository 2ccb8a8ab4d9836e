package analysis

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/deepcare-ai/deepcare/pkg/models"
)

const (
	DefaultMaxConcurrency = 10
	DefaultLookupTimeout  = 10 * time.Second
	DefaultCacheSize      = 100
)

type pairKey struct {
	Drug    string
	Symptom string
}

// Engine cross-checks every detected medication against every detected
// symptom using the adverse event registry. Lookups run concurrently with a
// bounded number in flight, each under its own timeout. Non-zero counts are
// memoized across requests in a bounded LRU cache; the cache is the only
// state the engine carries.
type Engine struct {
	lookup         models.ReportLookup
	cache          *lru.Cache[pairKey, int]
	maxConcurrency int
	timeout        time.Duration
}

// NewEngine creates a correlation engine over the given registry lookup.
// Zero values for the tunables fall back to the package defaults.
func NewEngine(
	lookup models.ReportLookup,
	maxConcurrency int,
	timeout time.Duration,
	cacheSize int,
) (*Engine, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[pairKey, int](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{
		lookup:         lookup,
		cache:          cache,
		maxConcurrency: maxConcurrency,
		timeout:        timeout,
	}, nil
}

// ResetCache drops all memoized lookups.
func (e *Engine) ResetCache() {
	e.cache.Purge()
}

// Correlate issues one registry lookup for every (drug, symptom) pair and
// aggregates the results. A failed or timed-out lookup degrades to zero
// reports for that pair and is logged, never returned. TotalReports sums
// the non-zero counts; details holds only non-zero pairs, in arrival order.
// Callers must not rely on the ordering of details.
func (e *Engine) Correlate(
	ctx context.Context,
	drugs []string,
	symptoms []string,
) (int, []models.CorrelationPair) {
	if e.lookup == nil || len(drugs) == 0 || len(symptoms) == 0 {
		return 0, nil
	}

	drugs = distinct(drugs)
	symptoms = distinct(symptoms)

	results := make(chan models.CorrelationPair, len(drugs)*len(symptoms))
	sem := make(chan struct{}, e.maxConcurrency)
	var wg sync.WaitGroup

	for _, drug := range drugs {
		for _, symptom := range symptoms {
			wg.Add(1)
			go func(drug, symptom string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				results <- models.CorrelationPair{
					Drug:    drug,
					Symptom: symptom,
					Reports: e.countReports(ctx, drug, symptom),
				}
			}(drug, symptom)
		}
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var total int
	var details []models.CorrelationPair
	for pair := range results {
		if pair.Reports > 0 {
			total += pair.Reports
			details = append(details, pair)
		}
	}
	return total, details
}

// countReports resolves one pair against the cache and then the registry.
// Only non-zero counts are worth memoizing.
func (e *Engine) countReports(ctx context.Context, drug, symptom string) int {
	key := pairKey{Drug: drug, Symptom: symptom}
	if count, ok := e.cache.Get(key); ok {
		return count
	}

	lookupCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	count, err := e.lookup.CountReports(lookupCtx, drug, symptom)
	if err != nil {
		log.Warnf("correlation degraded to zero evidence: %v",
			models.NewLookupError(drug, symptom, err))
		return 0
	}
	if count > 0 {
		e.cache.Add(key, count)
	}
	return count
}

// distinct removes duplicates while preserving first-seen order.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
