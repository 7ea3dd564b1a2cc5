package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"strings"

	"liquorstores/internal/components/chrono"
	"liquorstores/internal/render"
	"liquorstores/internal/session"
	"liquorstores/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

type commandKind int

const (
	commandType commandKind = iota
	commandTown
	commandToggle
	commandClear
	commandQuit
)

type browseCommand struct {
	kind commandKind
	arg  string
}

// parseCommand reads one line of browse input. Lines starting with ':' are
// commands, anything else is the new contents of the search box.
func parseCommand(line string) (browseCommand, error) {
	if !strings.HasPrefix(line, ":") {
		return browseCommand{kind: commandType, arg: line}, nil
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "town":
		return browseCommand{kind: commandTown, arg: arg}, nil
	case "toggle":
		if arg == "" {
			return browseCommand{}, errors.New(":toggle needs a town")
		}
		return browseCommand{kind: commandToggle, arg: arg}, nil
	case "clear":
		return browseCommand{kind: commandClear}, nil
	case "quit", "q":
		return browseCommand{kind: commandQuit}, nil
	}
	return browseCommand{}, fmt.Errorf("unknown command %q", name)
}

// dispatch turns browse input into loop events until `in` ends. It then
// waits for `loaded` to close, applies the last typed search without waiting
// for the debounce and quits the loop.
func dispatch(in io.Reader, loop *session.Loop, loaded <-chan struct{}) error {
	scanner := bufio.NewScanner(in)
	pending := false
	last := ""

	for scanner.Scan() {
		cmd, err := parseCommand(scanner.Text())
		if err != nil {
			slog.Warn("invalid input", "err", err)
			continue
		}

		switch cmd.kind {
		case commandType:
			pending = true
			last = cmd.arg
			loop.Type(cmd.arg)
		case commandTown:
			warnUnknownTown(loop.State(), cmd.arg)
			loop.Post(session.TownSelected{Town: cmd.arg})
		case commandToggle:
			loop.Post(session.TownToggled{Town: cmd.arg})
		case commandClear:
			pending = false
			loop.Clear()
		case commandQuit:
			loop.Post(session.Quit{})
			return nil
		}
	}

	<-loaded
	if pending {
		loop.Post(session.SearchSettled{Term: last})
	}
	loop.Post(session.Quit{})
	return scanner.Err()
}

// changeRenderer redraws only when the cards could have changed.
func changeRenderer(w io.Writer, format render.Format) func(session.State) {
	var last *session.State
	return func(s session.State) {
		if last != nil &&
			last.Generation == s.Generation &&
			last.Limits.Len() == s.Limits.Len() &&
			maps.Equal(last.Expanded, s.Expanded) {
			return
		}
		last = &s
		err := render.Cards(w, s.View(), format)
		if err != nil {
			slog.Error("failed to render listings", "err", err)
		}
	}
}

// load runs the loader in the background, the returned channel closes once
// both fetches have posted or failed.
func load(ctx context.Context, loader session.Loader, loop *session.Loop) <-chan struct{} {
	loaded := make(chan struct{})
	go func() {
		defer close(loaded)
		loader.Load(ctx, loop.Post)
	}()
	return loaded
}

var browseFormat *string

func init() {
	browseFormat = browseCmd.Flags().StringP("format", "f", string(render.FormatTable), "One of table, markdown, csv or html.")
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively filters the listings from lines typed on stdin.",
	Long: `Interactively filters the listings from lines typed on stdin.

Every plain line replaces the search box contents, the search runs once
typing pauses. Commands:
  :town NAME    select a town, "All" selects every town
  :toggle NAME  expand or collapse a town
  :clear        clear all filters
  :quit         exit`,
	Run: func(cmd *cobra.Command, args []string) {
		format, err := render.ParseFormat(*browseFormat)
		if err != nil {
			serviceutil.Fatal("invalid format", err)
		}
		cfg := loadConfig()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		loop := session.NewLoop(session.LoopOptions{
			Clock:    chrono.NewStandardImpl(),
			Debounce: cfg.Debounce(),
			Render:   changeRenderer(os.Stdout, format),
		})
		render.Cards(os.Stdout, loop.State().View(), format)

		loaded := load(ctx, createLoader(cfg), loop)
		go func() {
			err := dispatch(os.Stdin, loop, loaded)
			if err != nil {
				slog.Error("failed to read input", "err", err)
			}
		}()

		err = loop.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			serviceutil.Fatal("browse loop stopped", err)
		}
	},
}
