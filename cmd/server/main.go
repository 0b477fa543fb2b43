package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/lumenpoem/internal/api"
	"github.com/youruser/lumenpoem/internal/config"
	"github.com/youruser/lumenpoem/internal/guide"
	imagepkg "github.com/youruser/lumenpoem/internal/image"
	"github.com/youruser/lumenpoem/internal/logger"
	"github.com/youruser/lumenpoem/internal/prompts"
	"github.com/youruser/lumenpoem/internal/session"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = 5 * time.Minute
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	addr := flag.String("addr", "", "listen address, overrides config and PORT")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintln(os.Stderr, "lumenpoem:", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return err
	}
	log := logger.Get()

	fonts := imagepkg.NewFontProvider(cfg.FontPath, log)
	log.Info("font ready", "font", fonts.Name())

	deck, err := prompts.LoadFile(cfg.PromptsPath)
	if err != nil {
		log.Warn("prompt deck not loaded, using built-in prompts", "path", cfg.PromptsPath, "err", err)
		deck = prompts.Builtin
	}

	llm, err := newLLM(cfg, deck, log)
	if err != nil {
		return err
	}
	g, err := guide.New(llm, log)
	if err != nil {
		return err
	}

	store := session.NewStore(time.Duration(cfg.SessionTTL))
	srv, err := api.NewServer(api.Options{
		Store:         store,
		Guide:         g,
		Fonts:         fonts,
		DefaultLocale: cfg.Locale,
		AITimeout:     time.Duration(cfg.AITimeout),
		CardOutputDir: cfg.CardOutputDir,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	r := gin.New()
	r.Use(api.RequestLogger(log), gin.Recovery())
	api.RegisterRoutes(r, srv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go sweep(ctx, store, log)

	return serve(ctx, &http.Server{Addr: cfg.Addr, Handler: r}, log)
}

// newLLM picks the offline client when no key is configured or offline mode
// is requested.
func newLLM(cfg config.Config, deck []prompts.Prompt, log *slog.Logger) (guide.LLMClient, error) {
	if cfg.UseMock() {
		log.Info("guide running offline", "prompts", len(deck))
		return guide.NewMockLLM(deck), nil
	}
	llm, err := guide.NewOpenAILLM(&guide.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}
	log.Info("guide using model", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	return llm, nil
}

func sweep(ctx context.Context, store *session.Store, log *slog.Logger) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := store.Sweep(); n > 0 {
				log.Debug("expired drafts removed", "count", n)
			}
		}
	}
}

func serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
