package content

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
)

type fetchResult struct {
	rows []models.ContentSection
	err  error
	gate chan struct{}
}

// scriptedFetcher returns results in call order, blocking on gate when set.
type scriptedFetcher struct {
	mu      sync.Mutex
	script  []fetchResult
	calls   int
	started chan int
}

func (f *scriptedFetcher) FindAllOrdered(ctx context.Context) ([]models.ContentSection, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	var res fetchResult
	if i < len(f.script) {
		res = f.script[i]
	} else if len(f.script) > 0 {
		res = f.script[len(f.script)-1]
		res.gate = nil
	}
	f.mu.Unlock()

	if f.started != nil {
		f.started <- i
	}
	if res.gate != nil {
		select {
		case <-res.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return res.rows, res.err
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func section(sectionType string, sortOrder int, active *bool, title string) models.ContentSection {
	return models.ContentSection{
		SectionType: sectionType,
		SortOrder:   sortOrder,
		IsActive:    active,
		Title:       &title,
		Metadata:    map[string]interface{}{"title": title},
	}
}

func boolPtr(b bool) *bool { return &b }

func TestStore_SectionFirstWinsForAnyOrder(t *testing.T) {
	rows := []models.ContentSection{
		section("hero", 3, boolPtr(true), "hero-late"),
		section("hero", 1, boolPtr(true), "hero-first"),
		section("about", 2, boolPtr(true), "about"),
		section("hero", 1, boolPtr(false), "hero-tie-second"),
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.ContentSection(nil), rows...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		snap := newSnapshot(shuffled)
		got := snap.all[snap.byType["hero"]]
		if got.SortOrder != 1 {
			t.Fatalf("permutation %d: hero sort order = %d, want 1", i, got.SortOrder)
		}
		// ties keep fetch order
		var firstTie string
		for _, r := range shuffled {
			if r.SectionType == "hero" && r.SortOrder == 1 {
				firstTie = *r.Title
				break
			}
		}
		if *got.Title != firstTie {
			t.Errorf("permutation %d: hero = %q, want %q", i, *got.Title, firstTie)
		}
	}
}

func TestStore_ActiveSectionsExcludesFalseAndNull(t *testing.T) {
	fetcher := &scriptedFetcher{script: []fetchResult{{rows: []models.ContentSection{
		section("hero", 0, boolPtr(true), "a"),
		section("about", 1, nil, "b"),
		section("services", 2, boolPtr(false), "c"),
		section("contact", 3, boolPtr(true), "d"),
	}}}}
	store := NewStore(fetcher, realtime.NewHub())

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	active := store.ActiveSections()
	if len(active) != 2 || *active[0].Title != "a" || *active[1].Title != "d" {
		t.Errorf("ActiveSections() = %v, want [a d]", titles(active))
	}
	if len(store.Sections()) != 4 {
		t.Errorf("Sections() len = %d, want 4", len(store.Sections()))
	}
}

func TestStore_LookupsOnMissingType(t *testing.T) {
	store := NewStore(&scriptedFetcher{}, realtime.NewHub())

	if _, ok := store.Section("settings"); ok {
		t.Error("Section() on empty store should report not found")
	}
	if meta, ok := store.Metadata("settings"); ok || meta != nil {
		t.Errorf("Metadata() = %v, %v; want nil, false", meta, ok)
	}
}

func TestStore_FailureKeepsPreviousState(t *testing.T) {
	fetcher := &scriptedFetcher{script: []fetchResult{
		{rows: []models.ContentSection{section("hero", 0, boolPtr(true), "kept")}},
		{err: errors.New("connection reset")},
		{rows: []models.ContentSection{section("hero", 0, boolPtr(true), "fresh")}},
	}}
	store := NewStore(fetcher, realtime.NewHub())
	ctx := context.Background()

	_ = store.Refresh(ctx)
	if err := store.Refresh(ctx); err == nil {
		t.Fatal("Refresh() expected error")
	}
	if store.Err() != "connection reset" {
		t.Errorf("Err() = %q, want %q", store.Err(), "connection reset")
	}
	if got, _ := store.Section("hero"); *got.Title != "kept" {
		t.Errorf("Section(hero) = %q after failure, want kept", *got.Title)
	}

	_ = store.Refresh(ctx)
	if store.Err() != "" {
		t.Errorf("Err() = %q after success, want empty", store.Err())
	}
	if got, _ := store.Section("hero"); *got.Title != "fresh" {
		t.Errorf("Section(hero) = %q, want fresh", *got.Title)
	}
}

func TestStore_SupersededReadIsDiscarded(t *testing.T) {
	slow := make(chan struct{})
	fetcher := &scriptedFetcher{
		started: make(chan int, 2),
		script: []fetchResult{
			{rows: []models.ContentSection{section("hero", 0, boolPtr(true), "stale")}, gate: slow},
			{rows: []models.ContentSection{section("hero", 0, boolPtr(true), "latest")}},
		},
	}
	store := NewStore(fetcher, realtime.NewHub())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		_ = store.Refresh(ctx)
		close(done)
	}()
	<-fetcher.started

	if err := store.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	<-fetcher.started
	close(slow)
	<-done

	if got, _ := store.Section("hero"); *got.Title != "latest" {
		t.Errorf("Section(hero) = %q, want latest", *got.Title)
	}
	if store.Loading() {
		t.Error("Loading() = true after the latest read completed")
	}
}

func TestStore_ChangeEventsTriggerRefreshUntilStopped(t *testing.T) {
	hub := realtime.NewHub()
	fetcher := &scriptedFetcher{script: []fetchResult{
		{rows: []models.ContentSection{section("hero", 0, boolPtr(true), "v1")}},
		{rows: []models.ContentSection{section("hero", 0, boolPtr(true), "v2")}},
	}}
	store := NewStore(fetcher, hub)

	if err := store.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got, _ := store.Section("hero"); *got.Title != "v1" {
		t.Fatalf("Section(hero) = %q after Start, want v1", *got.Title)
	}

	hub.Publish(realtime.Event{Topic: Table, Type: realtime.EventUpdate})
	waitFor(t, func() bool {
		got, _ := store.Section("hero")
		return *got.Title == "v2"
	})

	store.Stop()
	calls := fetcher.callCount()
	hub.Publish(realtime.Event{Topic: Table, Type: realtime.EventDelete})
	hub.Wait()
	time.Sleep(20 * time.Millisecond)
	if fetcher.callCount() != calls {
		t.Errorf("fetch issued after Stop: calls = %d, want %d", fetcher.callCount(), calls)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func titles(rows []models.ContentSection) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r.Title)
	}
	return out
}
