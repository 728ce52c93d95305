package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayusman/airdoodle/internal/store"
)

var (
	dbPath  string
	logFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "airdoodle",
	Short: "Hand-tracked 3D doodling engine",
	Long: `airdoodle runs the interaction core of a mid-air drawing app: gesture
classification, stroke capture, the mode state machine and the color and size
pickers. A renderer connects over a WebSocket bridge.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default ~/.airdoodle/airdoodle.db)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a rotated file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// dataDir returns ~/.airdoodle, creating it if needed.
func dataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".airdoodle")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return dir, nil
}

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		dir, err := dataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "airdoodle.db")
	}
	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return st, nil
}

// newLogger builds the process logger. Console output goes to stderr; with
// --log-file, JSON lines go to a size-rotated file. quiet drops console
// output for commands that own the terminal.
func newLogger(quiet bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if logFile != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)
		return zap.New(core, zap.AddCaller())
	}
	if quiet {
		return zap.NewNop()
	}

	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}
