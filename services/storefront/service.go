// Package storefront serves the liquor store listings as a server-rendered
// web page.
package storefront

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"liquorstores/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/storefront")

//go:embed templates/*.html
var templateFS embed.FS

type Options struct {
	// Debounce is how long the page waits after the last keystroke before
	// submitting the search.
	Debounce time.Duration
}

// Service holds the loaded data shared by all requests. Each request
// derives its own session state from it.
type Service struct {
	debounce time.Duration

	mu   sync.RWMutex
	base session.State
}

func NewService(opts Options) *Service {
	if opts.Debounce <= 0 {
		opts.Debounce = session.DefaultDebounce
	}
	return &Service{
		debounce: opts.Debounce,
		base:     session.New(),
	}
}

// Post applies a load event to the shared state, it is safe to pass to
// session.Loader.Load.
func (s *Service) Post(e session.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = s.base.Apply(e)
}

// Load fetches data in the background and returns immediately.
func (s *Service) Load(ctx context.Context, loader session.Loader) {
	go func() {
		loader.Load(ctx, s.Post)
		slog.Info("storefront data loaded", "licenses", len(s.snapshot().All))
	}()
}

func (s *Service) snapshot() session.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base
}

// Router returns the http handler of every page.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleSearch)
	r.Get("/contacts", s.handleContacts)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	return r
}

// stateFor applies the URL's filter and expansion to the shared state.
func (s *Service) stateFor(ctx context.Context, q pageQuery) session.State {
	_, span := tracer.Start(ctx, "stateFor")
	defer span.End()

	state := s.snapshot()
	state = state.Apply(session.SearchSettled{Term: q.Filter.SearchTerm})
	state = state.Apply(session.TownSelected{Town: q.Filter.Town})
	if q.Toggled {
		state = state.Apply(session.ExpansionReplaced{Expanded: q.expansion()})
	}

	span.SetAttributes(
		attribute.String("search", q.Filter.SearchTerm),
		attribute.String("town", q.Filter.Town),
		attribute.Int("filtered", len(state.Filtered)),
	)
	return state
}
