package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
	"github.com/finsightapp/finsight/internal/services/profile"
	"github.com/finsightapp/finsight/internal/services/prompt"
)

// Result is the outcome of one analysis request.
type Result struct {
	Record    *models.AnalysisRecord
	FromCache bool
}

// flight is one in-progress generation. Waiters block on done and then read
// record/err. The generation number decides whether the finished flight is
// still current when it tries to write the cache.
type flight struct {
	gen    uint64
	done   chan struct{}
	record *models.AnalysisRecord
	err    error
}

// Orchestrator runs the cached-analysis state machine: load profile, hash,
// cache check, market fetch, generation, cache write. Concurrent requests
// for the same (owner, symbol) collapse onto one generation; a forced
// refresh supersedes an in-flight generation so the superseded result is
// returned to its own waiters but never written to the cache.
type Orchestrator struct {
	profiles interfaces.ProfileStorage
	store    *Store
	market   interfaces.MarketDataAggregator
	llm      interfaces.LLMService
	logger   arbor.ILogger
	now      func() time.Time

	mu       sync.Mutex
	inflight map[string]*flight
	gens     map[string]uint64
}

// NewOrchestrator creates an analysis orchestrator.
func NewOrchestrator(
	profiles interfaces.ProfileStorage,
	store *Store,
	market interfaces.MarketDataAggregator,
	llm interfaces.LLMService,
	logger arbor.ILogger,
) *Orchestrator {
	return &Orchestrator{
		profiles: profiles,
		store:    store,
		market:   market,
		llm:      llm,
		logger:   logger,
		now:      time.Now,
		inflight: make(map[string]*flight),
		gens:     make(map[string]uint64),
	}
}

// Request returns the analysis for (owner, subject), generating it only when
// the cache has no record whose profile hash matches the owner's current
// profile. forceRefresh bypasses the cache check but still deduplicates
// against other forced requests.
func (o *Orchestrator) Request(ctx context.Context, ownerID string, subject models.Subject, forceRefresh bool) (*Result, error) {
	p, err := o.loadProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	hash := profile.Hash(p)

	if !forceRefresh {
		if cached := o.store.Get(ctx, models.CollectionInvestmentAnalysis, ownerID, subject.Symbol); cached != nil && cached.ProfileHash == hash {
			o.logger.Debug().
				Str("key", cached.Key()).
				Dur("age", cached.Age(o.now())).
				Msg("Analysis cache hit")
			return &Result{Record: cached, FromCache: true}, nil
		}
	}

	key := models.CollectionInvestmentAnalysis + "/" + models.AnalysisKey(ownerID, subject.Symbol)
	generate := func(ctx context.Context) (*models.AnalysisRecord, error) {
		return o.generateAnalysis(ctx, ownerID, subject, p, hash)
	}
	return o.runFlight(ctx, models.CollectionInvestmentAnalysis, key, forceRefresh, generate)
}

// runFlight joins or starts the generation flight for key and waits for it.
// A non-forced request joins any existing flight. A forced request always
// starts a fresh flight and bumps the generation counter, which marks the
// old flight superseded: its waiters still get its result, but its cache
// write is discarded.
func (o *Orchestrator) runFlight(ctx context.Context, collection, key string, forceRefresh bool, generate func(context.Context) (*models.AnalysisRecord, error)) (*Result, error) {
	o.mu.Lock()
	if f, ok := o.inflight[key]; ok && !forceRefresh {
		o.mu.Unlock()
		return o.await(ctx, f)
	}

	o.gens[key]++
	f := &flight{gen: o.gens[key], done: make(chan struct{})}
	o.inflight[key] = f
	o.mu.Unlock()

	go o.run(collection, key, f, generate)

	return o.await(ctx, f)
}

// run executes one generation flight to completion. The flight runs on a
// background context so a caller that gives up does not cancel the work for
// the other waiters.
func (o *Orchestrator) run(collection, key string, f *flight, generate func(context.Context) (*models.AnalysisRecord, error)) {
	f.record, f.err = generate(context.Background())

	o.mu.Lock()
	current := o.gens[key] == f.gen
	if o.inflight[key] == f {
		delete(o.inflight, key)
	}
	o.mu.Unlock()

	// Only the current generation writes the cache. A superseded flight
	// would otherwise overwrite the result of the refresh that replaced it.
	if current && f.err == nil {
		if err := o.store.Put(context.Background(), collection, f.record); err != nil {
			o.logger.Warn().Err(err).Str("key", key).Msg("Generated analysis not cached")
		}
	} else if !current {
		o.logger.Debug().Str("key", key).Msg("Superseded generation discarded")
	}

	close(f.done)
}

// await blocks until the flight finishes or the caller's context ends.
func (o *Orchestrator) await(ctx context.Context, f *flight) (*Result, error) {
	select {
	case <-f.done:
		if f.err != nil {
			return nil, f.err
		}
		return &Result{Record: f.record}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// generateAnalysis is the miss path: market fetch, prompt, completion.
// Market data is best-effort all the way down: when every sub-fetch fails the
// prompt carries the empty snapshot's "No data available." facts and the
// analysis is still generated from the profile alone.
func (o *Orchestrator) generateAnalysis(ctx context.Context, ownerID string, subject models.Subject, p *models.Profile, hash string) (*models.AnalysisRecord, error) {
	snapshot, err := o.market.Fetch(ctx, subject)
	if err != nil {
		if !errors.Is(err, models.ErrMarketDataUnavailable) {
			return nil, err
		}
		o.logger.Warn().
			Err(err).
			Str("symbol", subject.Symbol).
			Msg("Generating analysis without market data")
		snapshot = &models.MarketSnapshot{Subject: subject}
	}

	text, err := o.llm.Complete(ctx, prompt.InvestmentAnalysis(p, subject, snapshot.FactsSummary()))
	if err != nil {
		return nil, err
	}

	record := &models.AnalysisRecord{
		OwnerID:      ownerID,
		Symbol:       subject.Symbol,
		Kind:         subject.Kind,
		AnalysisText: text,
		ProfileHash:  hash,
		GeneratedAt:  o.now().UTC(),
	}

	o.logger.Info().
		Str("key", record.Key()).
		Int("failed_fetches", len(snapshot.Failed)).
		Msg("Analysis generated")

	return record, nil
}

// loadProfile fetches the owner's profile, mapping a missing document to
// ErrProfileUnavailable.
func (o *Orchestrator) loadProfile(ctx context.Context, ownerID string) (*models.Profile, error) {
	p, err := o.profiles.GetProfile(ctx, ownerID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, models.ErrProfileUnavailable
		}
		return nil, err
	}
	return p, nil
}
