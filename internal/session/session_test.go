package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"liquorstores/internal/components/chrono"
	"liquorstores/internal/components/telemetry"
	"liquorstores/internal/listing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var (
	best = listing.License{LicenseNumber: "2", Dba: "Best Wine", City: "Hartford"}
	ace  = listing.License{LicenseNumber: "1", Dba: "Ace Liquor", City: "Hartford", Zip: "06103-1234"}
	cork = listing.License{LicenseNumber: "3", Dba: "Cork Shop", City: "Avon"}
	apex = listing.License{LicenseNumber: "4", Dba: "Apex Spirits", City: "Bristol"}
)

func loaded() State {
	return New().
		Apply(LicensesLoaded{Licenses: []listing.License{best, cork, ace, apex}}).
		Apply(LimitsLoaded{Limits: []listing.TownLimit{
			{Town: "Hartford", MaxStoresAllowed: listing.Count{Value: 12, Valid: true}},
		}})
}

func TestLicensesLoaded(t *testing.T) {
	s := loaded()

	require.Equal(t, []listing.License{ace, apex, best, cork}, s.All)
	require.Equal(t, s.All, s.Filtered)
	require.Equal(t, []string{"Avon", "Bristol", "Hartford"}, s.Grouped.Towns())
	require.Empty(t, s.Expanded)
	require.Equal(t, uint64(1), s.Generation)
}

func TestSearchTypedDoesNotFilter(t *testing.T) {
	s := loaded().Apply(SearchTyped{Term: "ace"})
	require.Equal(t, "ace", s.Input)
	require.Equal(t, "", s.Filter.SearchTerm)
	require.Len(t, s.Filtered, 4)
	require.Equal(t, uint64(1), s.Generation)
}

func TestSearchSettled(t *testing.T) {
	s := loaded().Apply(SearchSettled{Term: "ace"})

	require.Equal(t, []listing.License{ace}, s.Filtered)
	require.Equal(t, listing.Expansion{"Hartford": true}, s.Expanded)
	require.Equal(t, []string{"Hartford"}, s.Grouped.Towns())
}

func TestTownSelectedCombinesWithSearch(t *testing.T) {
	s := loaded().
		Apply(SearchSettled{Term: "a"}).
		Apply(TownSelected{Town: "Bristol"})

	require.Equal(t, []listing.License{apex}, s.Filtered)
	require.Equal(t, listing.Expansion{"Bristol": true}, s.Expanded)

	s = s.Apply(TownSelected{Town: ""})
	require.Equal(t, listing.AllTowns, s.Filter.Town)
}

func TestFiltersCleared(t *testing.T) {
	s := loaded().
		Apply(SearchSettled{Term: "ace"}).
		Apply(TownSelected{Town: "Hartford"}).
		Apply(TownToggled{Town: "Avon"}).
		Apply(FiltersCleared{})

	require.Equal(t, listing.NoFilter, s.Filter)
	require.Equal(t, "", s.Input)
	require.Equal(t, s.All, s.Filtered)
	require.Empty(t, s.Expanded)
	require.Len(t, s.Grouped, 3)
}

func TestManualToggleIsResetByRecompute(t *testing.T) {
	s := loaded().Apply(TownToggled{Town: "Avon"})
	require.True(t, s.Expanded["Avon"])

	s = s.Apply(TownToggled{Town: "Avon"})
	require.False(t, s.Expanded["Avon"])

	s = s.Apply(TownToggled{Town: "Avon"}).Apply(SearchSettled{Term: "best"})
	require.Equal(t, listing.Expansion{"Hartford": true}, s.Expanded)
}

func TestApplyDoesNotMutate(t *testing.T) {
	before := loaded().Apply(TownToggled{Town: "Avon"})
	after := before.Apply(TownToggled{Town: "Bristol"})

	require.Equal(t, listing.Expansion{"Avon": true}, before.Expanded)
	require.Equal(t, listing.Expansion{"Avon": true, "Bristol": true}, after.Expanded)
}

func TestExpansionReplaced(t *testing.T) {
	open := listing.Expansion{"Avon": true}
	s := loaded().Apply(ExpansionReplaced{Expanded: open})
	open["Bristol"] = true

	require.Equal(t, listing.Expansion{"Avon": true}, s.Expanded)
}

func TestView(t *testing.T) {
	v := loaded().Apply(SearchSettled{Term: "e"}).View()

	diff := cmp.Diff([]TownCard{
		{Town: "Bristol", Title: "Bristol (1 store)", MaxAllowed: "N/A", Expanded: true, Licenses: []listing.License{apex}, Count: 1},
		{Town: "Hartford", Title: "Hartford (2 stores)", MaxAllowed: "12", Expanded: true, Licenses: []listing.License{ace, best}, Count: 2},
	}, v.Cards)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, "ALL", v.Options[0].Label)
	require.Len(t, v.Options, 4)
}

func TestViewCollapsedCardsHaveNoLicenses(t *testing.T) {
	v := loaded().View()
	require.Len(t, v.Cards, 3)
	for _, card := range v.Cards {
		require.False(t, card.Expanded)
		require.Nil(t, card.Licenses)
		require.NotZero(t, card.Count)
	}
	require.True(t, New().View().Empty())
}

func runLoop(t *testing.T, l *Loop) <-chan error {
	errs := make(chan error, 1)
	go func() {
		errs <- l.Run(context.Background())
	}()
	t.Cleanup(func() {
		l.Post(Quit{})
	})
	return errs
}

func TestLoopDebouncesSearch(t *testing.T) {
	clock := chrono.NewFake(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	initial := loaded()

	var mu sync.Mutex
	var searches []string
	l := NewLoop(LoopOptions{
		Clock:   clock,
		Initial: &initial,
		Render: func(s State) {
			mu.Lock()
			defer mu.Unlock()
			if s.Generation > initial.Generation+uint64(len(searches)) {
				searches = append(searches, s.Filter.SearchTerm)
			}
		},
	})

	l.Type("a")
	clock.Advance(100 * time.Millisecond)
	l.Type("ap")
	clock.Advance(100 * time.Millisecond)
	l.Type("app")
	clock.Advance(300 * time.Millisecond)
	l.Post(Quit{})

	require.NoError(t, <-runLoop(t, l))

	s := l.State()
	require.Equal(t, "app", s.Filter.SearchTerm)
	require.Equal(t, "app", s.Input)
	require.Equal(t, initial.Generation+1, s.Generation)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"app"}, searches)
}

func TestLoopClearCancelsPendingSearch(t *testing.T) {
	clock := chrono.NewFake(time.Time{})
	initial := loaded()
	l := NewLoop(LoopOptions{Clock: clock, Initial: &initial})

	l.Type("ace")
	l.Clear()
	clock.Advance(time.Second)
	l.Post(Quit{})

	require.NoError(t, <-runLoop(t, l))

	s := l.State()
	require.Equal(t, listing.NoFilter, s.Filter)
	require.Len(t, s.Filtered, 4)
	require.Equal(t, 0, clock.Pending())
}

func TestLoopDropsSearchFiredDuringClear(t *testing.T) {
	clock := chrono.NewFake(time.Time{})
	initial := loaded()
	l := NewLoop(LoopOptions{Clock: clock, Initial: &initial})

	l.Type("ace")
	// the timer already fired and is about to post when Clear runs
	stale := debouncedSearch{term: "ace", clears: l.clears.Load()}
	l.Clear()
	l.Post(stale)

	l.Type("best")
	clock.Advance(time.Second)
	l.Post(Quit{})

	require.NoError(t, <-runLoop(t, l))

	s := l.State()
	require.Equal(t, "best", s.Filter.SearchTerm)
	require.Equal(t, []listing.License{best}, s.Filtered)
}

func TestLoopStopsOnContext(t *testing.T) {
	l := NewLoop(LoopOptions{Clock: chrono.NewFake(time.Time{})})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, l.Run(ctx), context.Canceled)
	// posting after the loop stopped must not block
	l.Post(FiltersCleared{})
}

type fakeSource struct {
	licenses    []listing.License
	limits      []listing.TownLimit
	licensesErr error
	limitsErr   error
}

func (f fakeSource) Licenses(context.Context) ([]listing.License, error) {
	return f.licenses, f.licensesErr
}

func (f fakeSource) TownLimits(context.Context) ([]listing.TownLimit, error) {
	return f.limits, f.limitsErr
}

func TestLoaderSnapshot(t *testing.T) {
	rec := &telemetry.Recorder{}
	loader := NewLoader(fakeSource{
		licenses: []listing.License{best, ace},
		limits: []listing.TownLimit{
			{Town: "Hartford", MaxStoresAllowed: listing.Count{Value: 3, Valid: true}},
		},
	}, rec)

	s := loader.Snapshot(context.Background(), New())
	require.Equal(t, []listing.License{ace, best}, s.All)
	require.Equal(t, "3", s.Limits.Label("Hartford"))
	require.Empty(t, rec.Reports("broken"))
	require.Len(t, rec.Reports("count"), 2)
}

func TestLoaderFailureKeepsPreviousValue(t *testing.T) {
	rec := &telemetry.Recorder{}
	loader := NewLoader(fakeSource{
		licensesErr: errors.New("connection refused"),
		limits: []listing.TownLimit{
			{Town: "Avon", MaxStoresAllowed: listing.Count{Value: 2, Valid: true}},
		},
	}, rec)

	s := loader.Snapshot(context.Background(), New())
	require.Empty(t, s.All)
	require.True(t, s.View().Empty())
	require.Equal(t, "2", s.Limits.Label("Avon"))

	broken := rec.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "ctdata.licenses", broken[0].Id)
}

func TestLoaderBothFail(t *testing.T) {
	rec := &telemetry.Recorder{}
	initial := loaded()
	loader := NewLoader(fakeSource{
		licensesErr: errors.New("503"),
		limitsErr:   errors.New("503"),
	}, rec)

	s := loader.Snapshot(context.Background(), initial)
	require.Equal(t, initial.All, s.All)
	require.Equal(t, "12", s.Limits.Label("Hartford"))
	require.Len(t, rec.Reports("broken"), 2)
}

func TestLoaderFeedsLoop(t *testing.T) {
	l := NewLoop(LoopOptions{Clock: chrono.NewFake(time.Time{})})
	errs := runLoop(t, l)

	loader := NewLoader(fakeSource{licenses: []listing.License{cork}}, &telemetry.Recorder{})
	loader.Load(context.Background(), l.Post)
	l.Post(Quit{})

	require.NoError(t, <-errs)
	require.Equal(t, []listing.License{cork}, l.State().All)
}
