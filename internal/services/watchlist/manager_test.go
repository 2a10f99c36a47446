package watchlist

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/finsightapp/finsight/internal/interfaces"
	"github.com/finsightapp/finsight/internal/models"
)

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]*models.Profile)}
}

func (f *fakeProfiles) GetProfile(ctx context.Context, ownerID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[ownerID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProfiles) SaveProfile(ctx context.Context, ownerID string, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *p
	f.profiles[ownerID] = &clone
	return nil
}

func (f *fakeProfiles) MergeProfile(ctx context.Context, ownerID string, mutate func(*models.Profile)) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[ownerID]
	if !ok {
		p = &models.Profile{}
		f.profiles[ownerID] = p
	}
	mutate(p)
	clone := *p
	return &clone, nil
}

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeLLM) Provider() string                      { return "fake" }
func (f *fakeLLM) Close() error                          { return nil }

func newManager(llm *fakeLLM) (*Manager, *fakeProfiles) {
	profiles := newFakeProfiles()
	return NewManager(profiles, llm, arbor.NewLogger()), profiles
}

func TestAddSymbolResolvesAndPersists(t *testing.T) {
	llm := &fakeLLM{response: "PLTR"}
	m, profiles := newManager(llm)

	entry, err := m.AddSymbol(context.Background(), "user-1", "Palantir")
	require.NoError(t, err)
	assert.Equal(t, "PLTR", entry.Symbol)
	assert.Equal(t, "Palantir", entry.DisplayName)
	assert.NotEmpty(t, entry.ID)

	p, err := profiles.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, p.Watchlist, 1)
	assert.Equal(t, "PLTR", p.Watchlist[0].Symbol)
}

func TestAddSymbolEmptyInput(t *testing.T) {
	llm := &fakeLLM{}
	m, _ := newManager(llm)

	_, err := m.AddSymbol(context.Background(), "user-1", "   ")
	assert.ErrorIs(t, err, models.ErrInvalidSymbol)
	assert.Zero(t, llm.calls)
}

func TestAddSymbolInvalidSentinel(t *testing.T) {
	llm := &fakeLLM{response: "INVALID"}
	m, profiles := newManager(llm)

	_, err := m.AddSymbol(context.Background(), "user-1", "Not A Company")
	assert.ErrorIs(t, err, models.ErrInvalidSymbol)

	// No state mutated.
	_, err = profiles.GetProfile(context.Background(), "user-1")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestAddSymbolProseResponseRejected(t *testing.T) {
	llm := &fakeLLM{response: "The ticker symbol for Palantir is PLTR."}
	m, _ := newManager(llm)

	_, err := m.AddSymbol(context.Background(), "user-1", "Palantir")
	assert.ErrorIs(t, err, models.ErrInvalidSymbol)
}

func TestAddSymbolDefaultListDuplicate(t *testing.T) {
	// VOO is in the built-in fund list; the resolver finding it must still
	// reject the add, case-insensitively.
	llm := &fakeLLM{response: "voo"}
	m, _ := newManager(llm)

	_, err := m.AddSymbol(context.Background(), "user-1", "Vanguard S&P 500")
	assert.ErrorIs(t, err, models.ErrInvalidSymbol)
	assert.Contains(t, err.Error(), "VOO is already in the list")
}

func TestAddSymbolWatchlistDuplicate(t *testing.T) {
	llm := &fakeLLM{response: "PLTR"}
	m, profiles := newManager(llm)
	require.NoError(t, profiles.SaveProfile(context.Background(), "user-1", &models.Profile{
		Watchlist: []models.WatchlistEntry{{Symbol: "PLTR"}},
	}))

	_, err := m.AddSymbol(context.Background(), "user-1", "Palantir")
	assert.ErrorIs(t, err, models.ErrInvalidSymbol)
}

func TestListCombinesDefaultsAndSaved(t *testing.T) {
	llm := &fakeLLM{}
	m, profiles := newManager(llm)
	require.NoError(t, profiles.SaveProfile(context.Background(), "user-1", &models.Profile{
		Watchlist: []models.WatchlistEntry{
			{Symbol: "PLTR"},
			{Symbol: "AAPL"}, // also a default, must not duplicate
		},
	}))

	combined, entries, err := m.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Contains(t, combined, "PLTR")
	assert.Len(t, entries, 2)

	count := 0
	for _, s := range combined {
		if s == "AAPL" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestListMissingProfileReturnsDefaults(t *testing.T) {
	llm := &fakeLLM{}
	m, _ := newManager(llm)

	combined, entries, err := m.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotEmpty(t, combined)
	assert.Empty(t, entries)
}
