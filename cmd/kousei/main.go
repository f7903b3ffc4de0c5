// Package main is the kousei CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/hyperjump/kousei/internal/cli"
	"github.com/hyperjump/kousei/internal/config"
	"github.com/hyperjump/kousei/internal/extract"
	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/pipeline"
	"github.com/hyperjump/kousei/internal/report"
	"github.com/hyperjump/kousei/internal/scoring"
	"github.com/hyperjump/kousei/internal/scrub"
	"github.com/hyperjump/kousei/internal/server"
	"github.com/hyperjump/kousei/internal/watcher"
	"github.com/hyperjump/kousei/pkg/utils"
)

var version = "dev"

// Exit codes. Escalation is not an error; the distinct code lets shell
// integrations route drafts to the review queue.
const (
	exitOK        = 0
	exitError     = 1
	exitEscalated = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return exitError
	}
	switch args[0] {
	case "score":
		return runScore(args[1:])
	case "scrub":
		return runScrub(args[1:])
	case "serve":
		return runServe(args[1:])
	case "watch":
		return runWatch(args[1:])
	case "version", "--version", "-v":
		fmt.Printf("kousei version %s\n", version)
		return exitOK
	case "help", "--help", "-h":
		printUsage()
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		return exitError
	}
}

// loadConfig returns the parsed config, or defaults when no path was given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := &config.Config{}
		config.ApplyDefaults(cfg)
		return cfg, nil
	}
	return config.Load(path)
}

// buildPipeline assembles the pipeline from config, with an optional rule
// catalog override.
func buildPipeline(cfg *config.Config, rulesPath string, logger *zap.Logger) (*pipeline.Pipeline, error) {
	if rulesPath == "" {
		rulesPath = cfg.RulesPath
	}
	var scorer *scoring.Scorer
	if rulesPath != "" {
		catalog, err := scoring.LoadCatalog(rulesPath)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		rules, err := catalog.Compile()
		if err != nil {
			return nil, fmt.Errorf("compile rules: %w", err)
		}
		scorer = scoring.NewScorer(rules)
	}
	return pipeline.New(cfg.Pipeline(), scorer, nil, logger), nil
}

// readInput reads the document body from a file path, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return extract.NewExtractor().Extract(path)
}

func runScore(args []string) int {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	keywordFlag := fs.String("keyword", "", "primary keyword (required)")
	secondary := fs.String("secondary", "", "comma-separated secondary keywords")
	metaTitle := fs.String("meta-title", "", "meta title to rate")
	metaDesc := fs.String("meta-desc", "", "meta description to rate")
	pageType := fs.String("page-type", "article", "page type: article or landing")
	minWords := fs.Int("min-words", 0, "override target word count minimum")
	maxWords := fs.Int("max-words", 0, "override target word count maximum")
	rulesPath := fs.String("rules", "", "scoring rule catalog (YAML)")
	xlsxPath := fs.String("xlsx", "", "also write an xlsx report to this path")
	jsonOut := fs.Bool("json", false, "print the run record as JSON")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: kousei score [flags] <file|->")
		return exitError
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitError
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return exitError
	}
	defer logger.Sync()

	pipe, err := buildPipeline(cfg, *rulesPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitError
	}

	text, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitError
	}

	input := &models.DocumentInput{
		Text:            text,
		PrimaryKeyword:  *keywordFlag,
		MetaTitle:       *metaTitle,
		MetaDescription: *metaDesc,
		PageType:        models.PageType(*pageType),
		TargetWordCount: models.WordCountBand{Min: *minWords, Max: *maxWords},
	}
	if *secondary != "" {
		for _, kw := range strings.Split(*secondary, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				input.SecondaryKeywords = append(input.SecondaryKeywords, kw)
			}
		}
	}

	record, err := pipe.Run(context.Background(), input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitError
	}

	format := cli.OutputText
	if *jsonOut {
		format = cli.OutputJSON
	}
	if err := cli.WriteRunRecord(os.Stdout, record, format); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return exitError
	}
	if *xlsxPath != "" {
		if err := report.SaveXLSX(*xlsxPath, record); err != nil {
			fmt.Fprintf(os.Stderr, "write report: %v\n", err)
			return exitError
		}
	}

	if record.GateState == models.GateEscalated {
		return exitEscalated
	}
	return exitOK
}

func runScrub(args []string) int {
	fs := flag.NewFlagSet("scrub", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "print the scrub report as JSON instead of the cleaned text")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: kousei scrub [flags] <file|->")
		return exitError
	}
	text, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitError
	}

	cleaned, scrubReport := scrub.Scrub(text)
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(scrubReport); err != nil {
			fmt.Fprintf(os.Stderr, "write report: %v\n", err)
			return exitError
		}
	} else {
		fmt.Print(cleaned)
	}
	return exitOK
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitError
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return exitError
	}
	defer logger.Sync()

	pipe, err := buildPipeline(cfg, "", logger)
	if err != nil {
		logger.Error("failed to build pipeline", zap.Error(err))
		return exitError
	}
	srv := server.NewServer(pipe, &cfg.Server, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server stopped", zap.Error(err))
		return exitError
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		if err := srv.Stop(context.Background()); err != nil {
			logger.Warn("shutdown failed", zap.Error(err))
		}
	}
	return exitOK
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path")
	keywordFlag := fs.String("keyword", "", "primary keyword for watched drafts (overrides config)")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitError
	}
	if *keywordFlag != "" {
		cfg.Watch.PrimaryKeyword = *keywordFlag
	}
	if fs.NArg() > 0 {
		cfg.Watch.Directories = fs.Args()
	}
	if !cfg.Watch.Enabled() {
		fmt.Fprintln(os.Stderr, "Usage: kousei watch [flags] <dir> [dir...]")
		return exitError
	}
	if strings.TrimSpace(cfg.Watch.PrimaryKeyword) == "" {
		fmt.Fprintln(os.Stderr, "watch requires a primary keyword (-keyword or watch.primary_keyword)")
		return exitError
	}

	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return exitError
	}
	defer logger.Sync()

	pipe, err := buildPipeline(cfg, "", logger)
	if err != nil {
		logger.Error("failed to build pipeline", zap.Error(err))
		return exitError
	}

	svc := watcher.NewService(pipe, cfg.Watch, func(path string, record *models.RunRecord) {
		fmt.Printf("\n=== %s ===\n", path)
		_ = cli.WriteRunRecord(os.Stdout, record, cli.OutputText)
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := svc.Start(ctx); err != nil {
		logger.Error("failed to start watcher", zap.Error(err))
		return exitError
	}
	defer svc.Stop()

	logger.Info("watching for draft changes", zap.Strings("dirs", cfg.Watch.Directories))
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down")
	return exitOK
}

func printUsage() {
	fmt.Println(`kousei - content quality and SEO scoring gate

Usage:
  kousei score [flags] <file|->   Score a document through the quality gate
  kousei scrub [flags] <file|->   Clean invisible characters and long dashes
  kousei serve [flags]            Start the HTTP scoring API
  kousei watch [flags] <dir>...   Rescore drafts as they are saved
  kousei version                  Print version

Exit codes for score:
  0  accepted
  1  input or configuration error
  3  escalated for human review

Run "kousei <command> -h" for command flags.`)
}
