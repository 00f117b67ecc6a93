// opine-watch re-analyzes a feedback file on a cron schedule and writes
// a timestamped report per run. Useful for feedback exports that are
// appended over time.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/opinelab/opine/internal/app"
	"github.com/opinelab/opine/internal/logging"
	"github.com/opinelab/opine/pkg/opine"
	"github.com/opinelab/opine/pkg/opine/config"
	"github.com/opinelab/opine/pkg/opine/feedback"
	"github.com/opinelab/opine/pkg/opine/report"
)

func main() {
	var (
		input    = flag.String("input", "", "Feedback file to watch (required)")
		outDir   = flag.String("out-dir", "reports", "Directory for per-run reports")
		schedule = flag.String("schedule", "@hourly", "Cron schedule for re-analysis")
		cfgPath  = flag.String("config", "", "YAML config file (optional)")
		dbPath   = flag.String("db", "", "SQLite run-history database (optional)")
		backend  = flag.String("backend", "auto", "Sentiment backend: auto, local, or remote")
		logFile  = flag.String("log", "", "Rotated log file (optional)")
		verbose  = flag.Bool("verbose", false, "Debug logging")
	)
	flag.Parse()

	log := logging.New(logging.Options{Verbose: *verbose, File: *logFile})
	if *input == "" {
		log.Fatal("-input required")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create %s: %v", *outDir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	opts, err := app.BuildOptions(ctx, cfg, *backend, config.APIKey(), *dbPath, log)
	if err != nil {
		log.Fatalf("configure agent: %v", err)
	}
	agent := opine.New(opts)
	defer agent.Close()

	runOnce := func() {
		if err := analyze(ctx, agent, *input, *outDir, log); err != nil {
			log.Errorf("scheduled run failed: %v", err)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(*schedule, runOnce); err != nil {
		log.Fatalf("invalid schedule %q: %v", *schedule, err)
	}

	log.Infof("watching %s on schedule %q", *input, *schedule)
	runOnce() // immediate first pass, then let cron take over
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info("shutting down")
}

func analyze(ctx context.Context, agent *opine.Agent, input, outDir string, log logrus.FieldLogger) error {
	records, err := feedback.Load(input)
	if err != nil {
		return err
	}

	rep, err := agent.Analyze(ctx, input, records)
	if err != nil {
		return err
	}

	out := filepath.Join(outDir, fmt.Sprintf("feedback_report_%s.json", time.Now().Format("20060102_150405")))
	if err := report.Write(rep, out); err != nil {
		return err
	}
	log.Infof("report written to %s", out)
	return nil
}
