package session

import (
	"context"
	"sync"

	"liquorstores/internal/components/telemetry"
	"liquorstores/internal/listing"
)

const (
	report_licenses    = "licenses"
	report_town_limits = "town-limits"
)

// Source is where licenses and town limits come from.
type Source interface {
	Licenses(ctx context.Context) ([]listing.License, error)
	TownLimits(ctx context.Context) ([]listing.TownLimit, error)
}

// Loader performs the one-shot fetches that populate a session.
type Loader struct {
	source Source
	tel    telemetry.API
}

func NewLoader(source Source, tel telemetry.API) Loader {
	return Loader{
		source: source,
		tel:    telemetry.NewScopedAPI("ctdata", tel),
	}
}

// Load fetches licenses and town limits concurrently and posts an event for
// each one that succeeds. A failed fetch is reported and otherwise ignored,
// leaving that part of the session as it was. `post` may be called from two
// goroutines at once. Load returns once both fetches are done.
func (l Loader) Load(ctx context.Context, post func(Event)) {
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		licenses, err := l.source.Licenses(ctx)
		if err != nil {
			l.tel.ReportBroken(report_licenses, err)
			return
		}
		l.tel.ReportCount(report_licenses, int64(len(licenses)))
		post(LicensesLoaded{Licenses: licenses})
	}()

	go func() {
		defer wg.Done()
		limits, err := l.source.TownLimits(ctx)
		if err != nil {
			l.tel.ReportBroken(report_town_limits, err)
			return
		}
		l.tel.ReportCount(report_town_limits, int64(len(limits)))
		post(LimitsLoaded{Limits: limits})
	}()

	wg.Wait()
}

// Snapshot loads into `initial` and returns the resulting State.
func (l Loader) Snapshot(ctx context.Context, initial State) State {
	var mu sync.Mutex
	state := initial
	l.Load(ctx, func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		state = state.Apply(e)
	})
	return state
}
