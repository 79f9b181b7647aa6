package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"petskub/internal/config"
	"petskub/internal/lineauth"
	"petskub/internal/model"
	"petskub/internal/ogtags"
	"petskub/internal/server"
	"petskub/internal/share"
	"petskub/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	cfg    *config.Config

	addr      string
	redisAddr string
	seedFile  string
)

var rootCmd = &cobra.Command{
	Use:           "petskub",
	Short:         "petskub - share previews and LINE sign-in for the Petskub knowledge base",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Parse()
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Dev)
		return err
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Addr = addr
		}
		if cmd.Flags().Changed("redis") {
			cfg.RedisAddr = redisAddr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, closeStore, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		client := &http.Client{Timeout: cfg.HTTPTimeout}
		resolver := share.NewResolver(st, cfg.SiteOrigin(), logger)
		bridge := lineauth.NewBridge(lineauth.Config{
			ClientID:     cfg.LineChannelID,
			ClientSecret: cfg.LineChannelSecret,
			TokenURL:     cfg.LineTokenURL,
			ProfileURL:   cfg.LineProfileURL,
		}, client, logger)

		srv := server.NewServer(resolver, bridge, logger)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Starting petskub",
				zap.String("store", cfg.Store),
				zap.String("site", cfg.SiteOrigin()))
			errCh <- srv.Start(cfg.Addr)
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}
		logger.Info("Goodbye!")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load articles from a JSON file into the local Badger store",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}

		var articles []model.ArticleSummary
		if err := json.Unmarshal(data, &articles); err != nil {
			return fmt.Errorf("failed to decode seed file: %w", err)
		}

		st, err := store.OpenBadgerStore(cfg.BadgerPath)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		for i := range articles {
			if err := st.Put(ctx, &articles[i]); err != nil {
				return fmt.Errorf("article %d: %w", i, err)
			}
		}

		logger.Info("Articles seeded",
			zap.Int("count", len(articles)),
			zap.String("path", cfg.BadgerPath))
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [url]",
	Short: "Print the link-preview tags a crawler would see at a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: cfg.HTTPTimeout}
		tags, status, err := inspect(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "status\t%d\n", status)
		fmt.Fprintf(out, "title\t%s\n", tags.Title)
		fmt.Fprintf(out, "canonical\t%s\n", tags.Canonical)
		fmt.Fprintf(out, "refresh\t%s\n", tags.Refresh)

		keys := make([]string, 0, len(tags.Meta))
		for k := range tags.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "%s\t%s\n", k, tags.Meta[k])
		}
		return nil
	},
}

func inspect(ctx context.Context, client *http.Client, url string) (*ogtags.Tags, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid url: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	tags, err := ogtags.Extract(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return tags, resp.StatusCode, nil
}

// openStore builds the configured article store, wrapped in the Redis cache
// when one is configured. The returned func releases everything opened.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.ArticleStore, func(), error) {
	var (
		st      store.ArticleStore
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Store {
	case config.StoreSupabase:
		sb, err := store.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey(), &http.Client{Timeout: cfg.HTTPTimeout})
		if err != nil {
			return nil, nil, err
		}
		st = sb
	case config.StorePostgres:
		pg, err := store.OpenPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		st = pg
		closers = append(closers, pg.Close)
	case config.StoreBadger:
		bs, err := store.OpenBadgerStore(cfg.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		st = bs
		closers = append(closers, bs.Close)
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}

	if cfg.RedisAddr != "" {
		cs, err := store.NewCachedStore(st, cfg.RedisAddr, cfg.CacheTTL, logger)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		st = cs
		closers = append(closers, cs.Close)
	}

	return st, closeAll, nil
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8888", "HTTP listen address (overrides PETSKUB_ADDR)")
	serveCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the article cache (overrides PETSKUB_REDIS_ADDR)")
	seedCmd.Flags().StringVar(&seedFile, "file", "", "JSON array of articles to load")
	seedCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(inspectCmd)

	err := rootCmd.Execute()
	if logger != nil {
		logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
