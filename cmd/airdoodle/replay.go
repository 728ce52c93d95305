package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ayusman/airdoodle/internal/app"
	"github.com/ayusman/airdoodle/internal/monitor"
)

var replayOpts struct {
	tui  bool
	fast bool
}

var replayCmd = &cobra.Command{
	Use:   "replay <recording-id>",
	Short: "Replay a recorded session through a fresh engine",
	Long: `Replay feeds the frames and commands of a recorded session to a new
engine built with the recorded settings. Events are printed as JSON lines, or
shown live in a terminal monitor with --tui.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayOpts.tui, "tui", false, "show the terminal monitor")
	replayCmd.Flags().BoolVar(&replayOpts.fast, "fast", false, "do not wait between frames")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	log := newLogger(replayOpts.tui)
	defer log.Sync()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rp, err := app.OpenReplay(st, args[0])
	if err != nil {
		return err
	}

	engine, err := app.NewEngine(app.EngineConfig{
		Settings: rp.Settings,
		Logger:   log.Named("engine"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if replayOpts.tui {
		return replayTUI(ctx, rp, engine)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	engine.Subscribe(func(ev app.Event) {
		if err := enc.Encode(ev); err != nil {
			log.Warn("writing event failed", zap.Error(err))
		}
	})
	if err := rp.Run(ctx, engine, !replayOpts.fast); err != nil {
		return err
	}

	final := engine.State()
	fmt.Fprintf(cmd.ErrOrStderr(), "replayed %d entries: %d frames, mode %s, %d strokes\n",
		len(rp.Entries), final.Frame, final.Mode, final.Strokes)
	return nil
}

func replayTUI(ctx context.Context, rp *app.Replay, engine *app.Engine) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	title := fmt.Sprintf("replay %s (%s)", rp.Recording.Name, rp.Recording.ID)
	p := tea.NewProgram(monitor.New(title, engine.State()), tea.WithAltScreen(), tea.WithContext(ctx))

	// Listeners run on the replay goroutine, the only one touching engine.
	engine.Subscribe(func(ev app.Event) {
		p.Send(monitor.Update{Event: ev, State: engine.State()})
	})
	go func() {
		err := rp.Run(ctx, engine, !replayOpts.fast)
		if errors.Is(err, context.Canceled) {
			return
		}
		p.Send(monitor.Done{State: engine.State(), Err: err})
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
