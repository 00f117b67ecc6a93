package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opinelab/opine/internal/app"
	"github.com/opinelab/opine/internal/logging"
	"github.com/opinelab/opine/pkg/opine"
	"github.com/opinelab/opine/pkg/opine/config"
	"github.com/opinelab/opine/pkg/opine/feedback"
	"github.com/opinelab/opine/pkg/opine/report"
	"github.com/opinelab/opine/pkg/opine/report/charts"
)

func main() {
	var (
		input     = flag.String("input", "", "Feedback file (.txt one per line, .json, .csv); empty for interactive mode")
		out       = flag.String("out", "", "Report output path (default: feedback_report_<timestamp>.json)")
		chartsDir = flag.String("charts", "", "Directory for chart PNGs (optional)")
		cfgPath   = flag.String("config", "", "YAML config file (optional)")
		dbPath    = flag.String("db", "", "SQLite run-history database (optional)")
		backend   = flag.String("backend", "auto", "Sentiment backend: auto, local, or remote")
		logFile   = flag.String("log", "", "Rotated log file (optional)")
		verbose   = flag.Bool("verbose", false, "Debug logging")
	)
	flag.Parse()

	log := logging.New(logging.Options{Verbose: *verbose, File: *logFile})
	ctx := context.Background()

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

	if *input == "" {
		if err := runInteractive(ctx, agent); err != nil {
			log.Fatalf("interactive mode: %v", err)
		}
		return
	}

	if err := runBatch(ctx, agent, *input, deriveOutPath(*out, time.Now()), *chartsDir, log); err != nil {
		log.Fatalf("batch analysis: %v", err)
	}
}

// deriveOutPath returns the explicit path or a timestamped default.
func deriveOutPath(out string, now time.Time) string {
	if out != "" {
		return out
	}
	return fmt.Sprintf("feedback_report_%s.json", now.Format("20060102_150405"))
}

func runBatch(ctx context.Context, agent *opine.Agent, input, out, chartsDir string, log logrus.FieldLogger) error {
	records, err := feedback.Load(input)
	if err != nil {
		return err
	}

	rep, err := agent.Analyze(ctx, input, records)
	if err != nil {
		return err
	}

	if err := report.Write(rep, out); err != nil {
		return err
	}
	log.Infof("report written to %s", out)

	if chartsDir != "" {
		if err := charts.RenderAll(rep, chartsDir); err != nil {
			return err
		}
		log.Infof("charts written to %s", chartsDir)
	}

	printSummary(rep)
	return nil
}

func runInteractive(ctx context.Context, agent *opine.Agent) error {
	fmt.Println("===========================================")
	fmt.Println("  Opine - feedback analysis")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Enter feedback to analyze (Ctrl+D to exit):")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			break
		}

		res, err := agent.AnalyzeOne(ctx, text)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}

		fmt.Printf("\nSentiment: %s (score %.2f, %s backend)\n", res.Sentiment.Label, res.Sentiment.Score, res.Sentiment.Backend)
		if len(res.Categories) > 0 {
			fmt.Printf("Categories: %s\n", strings.Join(res.Categories, ", "))
		}
		fmt.Println()
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	fmt.Println("\nGoodbye!")
	return nil
}

func printSummary(rep report.Report) {
	fmt.Printf("\nAnalyzed %d record(s): %d positive, %d neutral, %d negative\n",
		rep.Stats.TotalRecords, rep.Stats.Positive, rep.Stats.Neutral, rep.Stats.Negative)

	if len(rep.Topics) > 0 {
		max := len(rep.Topics)
		if max > 5 {
			max = 5
		}
		fmt.Println("Top topics:")
		for _, tc := range rep.Topics[:max] {
			fmt.Printf("  - %s (%d)\n", tc.Topic, tc.Count)
		}
	}

	for _, in := range rep.Insights {
		fmt.Printf("[%s] %s\n", strings.ToUpper(string(in.Priority)), in.Text)
	}
}
