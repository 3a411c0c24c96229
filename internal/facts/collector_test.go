package facts

import (
	"context"
	"testing"
	"time"

	"github.com/afriquesports/factsheet/internal/cache"
	"github.com/afriquesports/factsheet/internal/model"
)

type scriptedFetcher struct {
	outcomes map[string]Outcome
	calls    [][]string
}

func (f *scriptedFetcher) FetchMany(ctx context.Context, names []string) []Outcome {
	f.calls = append(f.calls, names)
	var out []Outcome
	for _, name := range names {
		if o, ok := f.outcomes[name]; ok {
			out = append(out, o)
		} else {
			out = append(out, Outcome{Name: name, Errors: []string{"not found"}})
		}
	}
	return out
}

func sheetWithPlayers(names ...string) *model.FactSheet {
	fs := model.New(model.Options{PostType: model.PostRanking})
	for _, name := range names {
		fs.AddEntity(model.Entity{Kind: model.KindPlayer, Name: name, Confidence: 1.0})
	}
	return fs
}

func TestCollect_FetchesAndAdapts(t *testing.T) {
	fetcher := &scriptedFetcher{outcomes: map[string]Outcome{
		"Pedri": {
			Name: "Pedri", Success: true, Source: "transfermarkt",
			Raw: map[string]any{"name": "Pedri", "currentClub": "FC Barcelona", "marketValue": "€140.00m"},
		},
	}}
	c := NewCollector(cache.NewMemoryCache(time.Minute, time.Minute), fetcher, nil, time.Hour, time.Minute)

	fs := sheetWithPlayers("Pedri")
	result := c.Collect(context.Background(), fs, nil)

	if len(result.Collected) != 1 {
		t.Fatalf("expected 1 collected, got %d", len(result.Collected))
	}
	fact := fs.PlayerFactByRef(result.Collected[0].EntityRef)
	if fact == nil {
		t.Fatal("expected fact record on sheet")
	}
	if fact.Fields.CurrentClub != "FC Barcelona" {
		t.Errorf("expected adapted club, got %q", fact.Fields.CurrentClub)
	}
	if fact.Source != "transfermarkt" {
		t.Errorf("expected source recorded, got %q", fact.Source)
	}
}

func TestCollect_CacheHitSkipsFetch(t *testing.T) {
	fetcher := &scriptedFetcher{outcomes: map[string]Outcome{
		"Pedri": {Name: "Pedri", Success: true, Source: "transfermarkt", Raw: map[string]any{"name": "Pedri"}},
	}}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	c := NewCollector(store, fetcher, nil, time.Hour, time.Minute)

	fs := sheetWithPlayers("Pedri")
	c.Collect(context.Background(), fs, nil)
	c.Collect(context.Background(), fs, nil)

	if len(fetcher.calls) != 1 {
		t.Fatalf("expected a single fetch, got %d", len(fetcher.calls))
	}
}

func TestCollect_FailuresAreCachedToo(t *testing.T) {
	fetcher := &scriptedFetcher{outcomes: map[string]Outcome{}}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	c := NewCollector(store, fetcher, nil, time.Hour, time.Minute)

	fs := sheetWithPlayers("Ghost Player")
	first := c.Collect(context.Background(), fs, nil)
	second := c.Collect(context.Background(), fs, nil)

	if len(first.Missing) != 1 || first.Missing[0] != "Ghost Player" {
		t.Fatalf("expected Ghost Player missing, got %v", first.Missing)
	}
	if len(second.Missing) != 1 {
		t.Fatalf("expected Ghost Player still missing, got %v", second.Missing)
	}
	// Second pass must be answered from the negative cache.
	if len(fetcher.calls) != 1 {
		t.Errorf("expected failure to be cached, fetcher called %d times", len(fetcher.calls))
	}
}

func TestCollect_EntityRefsRestrictScope(t *testing.T) {
	fetcher := &scriptedFetcher{outcomes: map[string]Outcome{
		"Pedri": {Name: "Pedri", Success: true, Source: "transfermarkt", Raw: map[string]any{"name": "Pedri"}},
		"Rodri": {Name: "Rodri", Success: true, Source: "transfermarkt", Raw: map[string]any{"name": "Rodri"}},
	}}
	c := NewCollector(cache.NewMemoryCache(time.Minute, time.Minute), fetcher, nil, time.Hour, time.Minute)

	fs := sheetWithPlayers("Pedri", "Rodri")
	pedri := fs.EntitiesOfKind(model.KindPlayer)[0]

	result := c.Collect(context.Background(), fs, []string{pedri.InternalID})

	if len(result.Collected) != 1 || result.Collected[0].Name != "Pedri" {
		t.Fatalf("expected only Pedri collected, got %+v", result.Collected)
	}
	if len(result.Missing) != 0 {
		t.Errorf("out-of-scope entities must not be reported missing, got %v", result.Missing)
	}
	if len(fetcher.calls) != 1 || len(fetcher.calls[0]) != 1 || fetcher.calls[0][0] != "Pedri" {
		t.Errorf("expected a single fetch for Pedri, got %v", fetcher.calls)
	}
}

func TestCollect_EmptySheet(t *testing.T) {
	c := NewCollector(cache.NewMemoryCache(time.Minute, time.Minute), &scriptedFetcher{}, nil, time.Hour, time.Minute)
	fs := model.New(model.Options{PostType: model.PostNews})

	result := c.Collect(context.Background(), fs, nil)
	if len(result.Collected) != 0 || len(result.Missing) != 0 || len(result.Errors) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}
