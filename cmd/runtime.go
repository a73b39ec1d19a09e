package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/wondershelf/internal/activity"
	"github.com/abhisek/wondershelf/internal/config"
	"github.com/abhisek/wondershelf/internal/content"
	"github.com/abhisek/wondershelf/internal/llm"
	"github.com/abhisek/wondershelf/internal/logging"
	"github.com/abhisek/wondershelf/internal/shelf"
	"github.com/abhisek/wondershelf/internal/store"
	"github.com/abhisek/wondershelf/internal/story"
)

// runtime is everything a command needs, built once from the environment.
type runtime struct {
	cfg     config.Config
	catalog *content.Catalog
	store   *store.Store // nil with WONDERSHELF_NO_AUDIT

	provider    llm.Provider // nil when not configured
	providerErr error

	activities *activity.Service
	generator  story.Generator // nil when not configured
	shelves    []shelf.Shelf

	closers []func() error
}

// setup loads config, installs logging, opens the audit store and builds the
// provider. A missing provider is not an error: every card reports it
// instead. logOut receives logs when no log file is set.
func setup(cmd *cobra.Command, logOut io.Writer) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("locale"); v != "" {
		cfg.Locale = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.LogFile = v
	}

	rt := &runtime{cfg: cfg}

	closeLog, err := logging.Setup(logging.Options{
		File:     cfg.LogFile,
		Fallback: logOut,
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
	})
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, closeLog)

	rt.catalog, err = content.Load(cfg.Locale, cfg.CatalogPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load content: %w", err)
	}
	rt.shelves = shelf.Default(rt.catalog)

	var eventRepo store.EventRepo
	if !cfg.NoAudit {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		rt.store, err = store.Open(dbPath)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		rt.closers = append(rt.closers, rt.store.Close)
		eventRepo = rt.store.EventRepo()
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), eventRepo)
	if err != nil {
		slog.Warn("content generator unavailable", "error", err)
		rt.providerErr = err
		rt.activities = activity.Unconfigured(err, rt.catalog)
		return rt, nil
	}

	rt.provider = provider
	rt.activities = activity.NewService(provider, rt.catalog)
	rt.generator = story.NewLLMGenerator(provider, story.DefaultGeneratorConfig(rt.catalog.LanguageName()))
	slog.Info("content generator ready", "model", provider.ModelID(), "locale", rt.catalog.Locale)
	return rt, nil
}

// storyOptions are the flow options every story starts with.
func (rt *runtime) storyOptions() []story.FlowOption {
	return []story.FlowOption{
		story.WithQuestionCount(rt.cfg.QuestionCount),
		story.WithFallback(rt.fallback()),
	}
}

func (rt *runtime) fallback() story.Result {
	return story.ResultFromCatalog(rt.catalog.Fallbacks.StoryResult)
}

// status is the short provider label shown to users.
func (rt *runtime) status() string {
	if rt.provider == nil {
		return "offline"
	}
	return rt.provider.ModelID()
}

// Close releases resources in reverse order.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			slog.Warn("close", "error", err)
		}
	}
	rt.closers = nil
}
