package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"liquorstores/internal/components/chrono"
	"liquorstores/internal/components/debounce"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// DefaultDebounce is how long the search box must be idle before a search runs.
const DefaultDebounce = 300 * time.Millisecond

type LoopOptions struct {
	Clock chrono.API
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// Render is called with the new State after every event, it runs on
	// the loop's goroutine.
	Render func(State)
	// Initial defaults to New().
	Initial *State
}

// Loop owns a State and applies events to it one at a time, in the order
// they were posted. Any goroutine may post; only Run touches the State.
type Loop struct {
	events chan Event
	done   chan struct{}
	search *debounce.Debouncer[debouncedSearch]
	render func(State)

	// clears counts Clear calls, a debounced search scheduled before the
	// latest Clear is dropped.
	clears atomic.Uint64

	recomputes metric.Int64Counter

	mu    sync.Mutex
	state State
}

func NewLoop(opts LoopOptions) *Loop {
	if opts.Clock == nil {
		opts.Clock = chrono.NewStandardImpl()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Render == nil {
		opts.Render = func(State) {}
	}
	initial := New()
	if opts.Initial != nil {
		initial = *opts.Initial
	}

	recomputes, _ := otel.Meter("liquorstores.internal.session").Int64Counter(
		"filter_recomputes",
		metric.WithDescription("times the filtered license list was rebuilt"),
	)

	l := &Loop{
		events:     make(chan Event, 256),
		done:       make(chan struct{}),
		render:     opts.Render,
		recomputes: recomputes,
		state:      initial,
	}
	l.search = debounce.New(opts.Clock, opts.Debounce, func(search debouncedSearch) {
		l.Post(search)
	})
	return l
}

// Post enqueues an event, it is dropped once the loop has stopped.
func (l *Loop) Post(e Event) {
	select {
	case l.events <- e:
	case <-l.done:
	}
}

// Type records the search box contents and runs the search once typing pauses.
func (l *Loop) Type(term string) {
	l.Post(SearchTyped{Term: term})
	l.search.Schedule(debouncedSearch{term: term, clears: l.clears.Load()})
}

// Clear drops any pending search and resets every filter.
func (l *Loop) Clear() {
	l.clears.Add(1)
	l.search.Cancel()
	l.Post(FiltersCleared{})
}

// debouncedSearch is a SearchSettled coming from Type, tagged with the
// Clear count at the time it was typed.
type debouncedSearch struct {
	term   string
	clears uint64
}

func (e debouncedSearch) apply(s State) State {
	return SearchSettled{Term: e.term}.apply(s)
}

// State returns the latest snapshot.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Run applies events until Quit is posted or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.search.Cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-l.events:
			if search, ok := e.(debouncedSearch); ok && search.clears != l.clears.Load() {
				// its timer fired while Clear was cancelling it
				continue
			}
			l.mu.Lock()
			prev := l.state
			next := prev.Apply(e)
			l.state = next
			l.mu.Unlock()

			if next.Generation != prev.Generation {
				l.recomputes.Add(ctx, 1)
			}
			if _, quit := e.(Quit); quit {
				return nil
			}
			l.render(next)
		}
	}
}
