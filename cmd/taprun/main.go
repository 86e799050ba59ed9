// Command taprun runs a batch of TAP-speaking test executables and
// reports a consolidated pass/fail verdict.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrz1836/taprun/internal/config"
	"github.com/mrz1836/taprun/internal/history"
	"github.com/mrz1836/taprun/internal/locator"
	"github.com/mrz1836/taprun/internal/runenv"
	"github.com/mrz1836/taprun/internal/summary"
	"github.com/mrz1836/taprun/internal/testlist"
	"github.com/mrz1836/taprun/internal/tlog"
	"github.com/mrz1836/taprun/pkg/harness"
	"github.com/mrz1836/taprun/pkg/tap"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("taprun", flag.ContinueOnError)
	var (
		listPath   = fs.String("list", "", "path to a test-list file")
		single     = fs.String("single", "", "run exactly one named test instead of a list")
		configPath = fs.String("config", "", "path to a YAML config file")
		sourceDir  = fs.String("source", "", "source root (overrides $SOURCE)")
		buildDir   = fs.String("build", "", "build root (overrides $BUILD)")
		verbose    = fs.Bool("verbose", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		cfg = loaded
	}

	logger := tlog.NewCLILogger()
	if *verbose {
		logger.SetLevel(tlog.LevelDebug)
	} else {
		logger.SetLevel(tlog.ParseLevel(cfg.LogLevel))
	}
	tlog.SetDefault(logger)

	src, build := *sourceDir, *buildDir
	if src == "" {
		src = cfg.Source
	}
	if build == "" {
		build = cfg.Build
	}
	roots := runenv.Resolve(src, build)

	var testsets []*tap.Testset
	switch {
	case *single != "":
		// -single bypasses the test-list reader and the locator: the
		// given path is run exactly as named.
		ts := tap.New(*single)
		ts.Path = *single
		testsets = []*tap.Testset{ts}
	case *listPath != "":
		loaded, err := testlist.Read(*listPath)
		if err != nil {
			logger.Error("%v", err)
			return 2
		}
		for _, ts := range loaded {
			ts.Path = locator.Resolve(ts.File, roots.Source, roots.Build)
		}
		testsets = loaded
	default:
		fmt.Fprintln(os.Stderr, "taprun: one of -single or -list is required")
		return 2
	}

	sink, err := tlog.OpenFileSink(cfg.LogFile, false)
	if err != nil {
		logger.Error("%v", err)
		return 2
	}
	defer func() { _ = sink.Close() }()

	ctx := cfg.HarnessContext()
	factory := harness.DefaultSupervisorFactory(ctx, roots.Env())
	driver := harness.New(ctx, logger, factory, func(line string) { _ = sink.Writeln(line) })

	startedAt := time.Now()
	sum, runErr := driver.Run(testsets)
	if runErr != nil {
		logger.Error("%v", runErr)
	}

	summary.Write(os.Stdout, sum)

	if cfg.History != "" {
		if store, herr := history.Open(cfg.History); herr == nil {
			_ = store.Record(startedAt, sum)
			_ = store.Close()
		} else {
			logger.Warn("history: %v", herr)
		}
	}

	if runErr != nil {
		return 1
	}
	return summary.ExitCode(sum)
}
