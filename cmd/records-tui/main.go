package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/handiism/student-records/internal/config"
	"github.com/handiism/student-records/internal/logging"
	"github.com/handiism/student-records/internal/shell"
	"github.com/handiism/student-records/internal/store"
	"github.com/handiism/student-records/internal/tui"
)

func main() {
	var (
		configFlag = flag.String("config", "", "Path to config file (JSON or YAML)")
		loadFlag   = flag.String("load", "", "Records file to load at startup")
	)

	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	settings, err := config.Resolve(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(settings.LogFile, settings.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	st := store.New(logger)

	// Startup load failures are shown before the UI takes the screen.
	batch := shell.Batch{Load: *loadFlag}.AutoLoad(settings)
	if !batch.Empty() {
		_ = shell.RunBatch(ctx, st, settings, batch, func(event shell.Event) {
			if event.Level == shell.LevelError {
				fmt.Fprintln(os.Stderr, event.Message)
			}
		})
	}

	if err := tui.Run(ctx, st, settings, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
