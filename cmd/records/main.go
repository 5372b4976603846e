package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/handiism/student-records/internal/config"
	"github.com/handiism/student-records/internal/logging"
	"github.com/handiism/student-records/internal/shell"
	"github.com/handiism/student-records/internal/store"
)

func main() {
	// Command line flags
	var (
		configFlag = flag.String("config", "", "Path to config file (JSON or YAML)")
		loadFlag   = flag.String("load", "", "Records file to load at startup")
		importFlag = flag.String("import", "", "XLSX workbook to import")
		exportFlag = flag.String("export", "", "Export targets (comma-separated: .txt, .md, .csv, .xlsx)")
		saveFlag   = flag.String("save", "", "Records file to save after the other steps")
		batchFlag  = flag.Bool("batch", false, "Run the file steps and exit instead of opening the menu")
	)

	flag.Parse()

	// .env is optional
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

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted.")
		cancel()
		_ = logger.Sync()
		os.Exit(130)
	}()

	st := store.New(logger)

	batch := shell.Batch{
		Load:   *loadFlag,
		Import: *importFlag,
		Export: shell.ParseTargets(*exportFlag),
		Save:   *saveFlag,
	}.AutoLoad(settings)

	if !batch.Empty() {
		err := shell.RunBatch(ctx, st, settings, batch, printEvent)
		if *batchFlag {
			if err != nil {
				os.Exit(1)
			}
			return
		}
	} else if *batchFlag {
		fmt.Fprintln(os.Stderr, "Nothing to do: -batch needs -load, -import, -export or -save.")
		os.Exit(2)
	}

	sh, err := shell.New(st, settings, os.Stdin, os.Stdout, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := sh.Run(ctx); err != nil {
		logger.Error("shell stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printEvent(event shell.Event) {
	prefix := ""
	switch event.Level {
	case shell.LevelError:
		prefix = "✗ "
	case shell.LevelWarning:
		prefix = "! "
	case shell.LevelSuccess:
		prefix = "✓ "
	default:
		prefix = "› "
	}

	fmt.Println(prefix + event.Message)
}
