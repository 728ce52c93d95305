package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ayusman/airdoodle/internal/app"
	"github.com/ayusman/airdoodle/internal/config"
	"github.com/ayusman/airdoodle/internal/hand"
	"github.com/ayusman/airdoodle/internal/server"
	"github.com/ayusman/airdoodle/internal/tray"
)

var serveOpts struct {
	addr   string
	config string
	webDir string
	tray   bool
	record bool
	name   string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine with the HTTP API and renderer bridge",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveOpts.addr, "addr", ":8080", "listen address")
	f.StringVar(&serveOpts.config, "config", "", "YAML settings file")
	f.StringVar(&serveOpts.webDir, "web", "", "directory of renderer files to serve (default: search web/)")
	f.BoolVar(&serveOpts.tray, "tray", false, "show the system tray menu")
	f.BoolVar(&serveOpts.record, "record", false, "record the session for replay")
	f.StringVar(&serveOpts.name, "name", "", "recording name (default: start time)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := newLogger(false)
	defer log.Sync()

	settings, err := config.Load(serveOpts.config)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	name := serveOpts.name
	if name == "" {
		name = time.Now().Format("2006-01-02 15:04:05")
	}
	a, err := app.New(app.Config{
		Settings:      settings,
		Presets:       config.DefaultPresets(),
		Store:         st,
		Logger:        log,
		Record:        serveOpts.record,
		RecordingName: name,
	})
	if err != nil {
		return err
	}

	webDir := serveOpts.webDir
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		log.Info("serving static files", zap.String("dir", webDir))
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		App:       a,
		Store:     st,
		Hand:      hand.DefaultConfig(),
		Logger:    log.Named("server"),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx, serveOpts.addr) })

	if serveOpts.tray {
		t := tray.New()
		a.Subscribe(t.HandleEvent)
		t.OnCommand(func(kind app.CommandKind) {
			if err := a.Command(gctx, app.Command{Kind: kind}); err != nil {
				log.Warn("tray command failed", zap.String("command", string(kind)), zap.Error(err))
			}
		})
		t.OnQuit(stop)
		g.Go(func() error {
			<-gctx.Done()
			t.Quit()
			return nil
		})
		// The tray owns the main thread until it quits.
		t.Run()
		stop()
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if id := a.RecordingID(); id != "" {
		log.Info("session recorded", zap.String("recording", id))
	}
	return nil
}

// findWebDir searches for the renderer directory in common locations.
// It checks "web", "../web", "../../web" and ~/.airdoodle/web.
func findWebDir() string {
	for _, p := range []string{"web", "../web", "../../web"} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	homeWebDir := filepath.Join(homeDir, ".airdoodle", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}
	return ""
}
