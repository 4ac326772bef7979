// Package main provides the entry point for tsquery-lsp, a Cobra-based
// wrapper around package lsp's stdio server, used for manual smoke testing
// against a real editor.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/slentz/tsquery-diag/catalog"
	"github.com/slentz/tsquery-diag/internal/config"
	"github.com/slentz/tsquery-diag/lsp"
	"github.com/slentz/tsquery-diag/query"
	"github.com/slentz/tsquery-diag/registry"
)

var version = "dev"

// LevelTrace is a custom log level below debug for verbose tracing.
const LevelTrace = slog.Level(-8)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		logLevel   string
		logFile    string
		configPath string
	)

	cmd := &cobra.Command{
		Use:           "tsquery-lsp",
		Short:         "Language Server Protocol server for tree-sitter query files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.ErrOrStderr(), logLevel, logFile, configPath)
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: error|warn|info|debug|trace")
	cmd.Flags().StringVar(&logFile, "log-file", "", "log file path (empty to log to stderr)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a JSONC file overriding style options (see internal/config)")
	cmd.Flags().Bool("stdio", true, "use stdio transport (the only transport implemented)")

	return cmd
}

func runServe(stderr io.Writer, logLevel, logFile, configPath string) error {
	logger, cleanup, err := setupLogger(logLevel, logFile)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer cleanup()

	logger.Info("starting tsquery-lsp", slog.String("version", version), slog.String("log_level", logLevel))

	var queryLang registry.QueryLanguageHandle // no bundled tree-sitter-query binding; imports still resolve, structural checks no-op
	var parser lsp.QueryParser

	options := query.Options{
		Predicates:    catalog.DefaultPredicates(),
		Directives:    catalog.DefaultDirectives(),
		ValidCaptures: catalog.DefaultCaptureVocabulary(),
	}
	if configPath != "" {
		overrides, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if options, err = overrides.Apply(options); err != nil {
			return fmt.Errorf("apply config: %w", err)
		}
	}

	cfg := lsp.Config{
		QueryLang: queryLang,
		Parser:    parser,
		Languages: registry.BundledLanguages(),
		Options:   options,
	}

	server := lsp.NewServer(logger, cfg)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() { errCh <- server.RunStdio() }()

	logger.Info("running on stdio")

	select {
	case err := <-errCh:
		if err != nil {
			if isCleanShutdown(err) {
				logger.Debug("client closed connection")
			} else {
				return fmt.Errorf("run server: %w", err)
			}
		}
		logger.Info("server shutdown complete")
		return nil

	case sig := <-sigCh:
		logger.Info("received signal, shutting down", slog.String("signal", sig.String()))
		if err := server.Close(); err != nil {
			logger.Warn("error closing connection", slog.String("error", err.Error()))
		}
		if err := os.Stdin.Close(); err != nil {
			logger.Debug("error closing stdin", slog.String("error", err.Error()))
		}

		select {
		case err := <-errCh:
			if err != nil {
				logger.Debug("RunStdio returned after close", slog.String("error", err.Error()))
			}
		case <-time.After(5 * time.Second):
			logger.Warn("shutdown timed out, forcing exit")
		}

		logger.Info("server shutdown complete")
		return nil
	}
}

// isCleanShutdown reports whether err represents a normal client disconnect
// rather than a genuine transport failure.
func isCleanShutdown(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") || strings.Contains(errStr, "EPIPE")
}

func setupLogger(level, logFile string) (*slog.Logger, func(), error) {
	var slogLevel slog.Level
	switch level {
	case "error":
		slogLevel = slog.LevelError
	case "warn":
		slogLevel = slog.LevelWarn
	case "info":
		slogLevel = slog.LevelInfo
	case "debug":
		slogLevel = slog.LevelDebug
	case "trace":
		slogLevel = LevelTrace
	default:
		return nil, nil, fmt.Errorf("invalid log level: %q", level)
	}

	var w io.Writer
	var cleanup func()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		cleanup = func() { _ = f.Close() }
	} else {
		w = os.Stderr
		cleanup = func() {}
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel, AddSource: true})
	return slog.New(handler), cleanup, nil
}
