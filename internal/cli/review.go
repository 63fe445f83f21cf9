package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/critique/internal/cache"
	"github.com/dshills/critique/internal/config"
	"github.com/dshills/critique/internal/output"
	"github.com/dshills/critique/internal/providers"
	"github.com/dshills/critique/internal/review"
	"github.com/dshills/critique/internal/source"
)

// Review flags
var (
	flagProvider    string
	flagModel       string
	flagMaxTokens   int
	flagTemperature string
	flagExt         string
	flagFormat      string
	flagOut         string
	flagRetries     int
	flagCache       bool
	flagRedact      bool
)

// newCompleter builds the provider for a review run.
var newCompleter = providers.New

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (openai, anthropic, gemini, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().IntVar(&flagMaxTokens, "max-tokens", 0, "Maximum tokens in the review")
	cmd.Flags().StringVar(&flagTemperature, "temperature", "", "Sampling temperature (0-2)")
	cmd.Flags().StringVar(&flagExt, "ext", "", "Accepted source file extension (default .py)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&flagRetries, "retries", -1, "Retries on rate limit or server errors (default 0)")
	cmd.Flags().BoolVar(&flagCache, "cache", false, "Reuse cached reviews of identical prompts")
	cmd.Flags().BoolVar(&flagRedact, "redact", false, "Scrub detected secrets before sending the file")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagMaxTokens > 0 {
		m["maxTokens"] = strconv.Itoa(flagMaxTokens)
	}
	if flagTemperature != "" {
		m["temperature"] = flagTemperature
	}
	if flagExt != "" {
		m["extension"] = flagExt
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagRetries >= 0 {
		m["retries"] = strconv.Itoa(flagRetries)
	}
	if flagCache {
		m["cache.enabled"] = "true"
	}
	if flagRedact {
		m["redact"] = "true"
	}
	return m
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return err
	}
	stderr := cmd.ErrOrStderr()

	path := args[0]
	content, err := source.Load(path, cfg.Extension)
	if err != nil {
		fail(cmd, err)
		return nil
	}
	source.WarnIfLarge(stderr, content, cfg.MaxFileChars)

	filename := filepath.Base(path)
	fmt.Fprintf(stderr, "Reviewing '%s' with %s...\n", filename, cfg.Model)

	completer, err := newCompleter(cfg.Provider, cfg.Model,
		providers.WithRetry(providers.RetryPolicy{MaxRetries: cfg.Retries}))
	if err != nil {
		fail(cmd, err)
		return nil
	}
	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		fail(cmd, err)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client := review.NewClient(completer, cfg.Settings(),
		review.WithCache(c),
		review.WithLogger(logger),
	)
	result, err := client.Review(ctx, review.Request{Source: content, Filename: filename})
	if err != nil {
		fail(cmd, err)
		if providers.IsAuthError(err) {
			fmt.Fprintf(stderr, "Check the API key for provider %q (see: critique models doctor).\n", cfg.Provider)
		}
		return nil
	}
	logger.Debug("review finished",
		zap.String("run_id", result.RunID),
		zap.Bool("cached", result.Cached),
		zap.Int("critical", result.Summary.Critical),
	)

	if flagOut != "" {
		err = output.WriteFile(flagOut, result, cfg.Format)
	} else {
		err = output.WriteResult(cmd.OutOrStdout(), result, cfg.Format)
	}
	if err != nil {
		fail(cmd, fmt.Errorf("writing output: %w", err))
	}
	return nil
}
