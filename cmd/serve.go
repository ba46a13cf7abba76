package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/assets"
	"github.com/ziadkadry99/casegallery/internal/gesture"
	"github.com/ziadkadry99/casegallery/internal/progress"
	"github.com/ziadkadry99/casegallery/internal/server"
	"github.com/ziadkadry99/casegallery/internal/viewer"
)

var (
	servePort     int
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Index the image root and start the gallery viewer",
	Long:  `Scans the image root, pairs images with their overlays and serves the viewer page, its JSON API and the websocket viewer sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if serveAllowAll {
			cfg.Server.AllowAllOrigins = true
		}

		corpus, err := buildCorpus(cfg, log, progress.NewReporter("Indexing"))
		if err != nil {
			return err
		}
		if len(corpus.CollectionKeys()) == 0 {
			log.Warn("No collections found", zap.String("root", cfg.ImageRoot))
		}

		store := assets.NewStore(corpus, assets.OptionsFromConfig(cfg.Server), log)
		view := viewer.New(corpus, store, gesture.OptionsFromConfig(cfg.Gesture), log)

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, corpus, log)
		view.RegisterRoutes(srv.Router())
		store.RegisterRoutes(srv.Router())
		srv.OnShutdown(view.Close)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("Shutdown", zap.Error(err))
			}
		}()

		fmt.Fprintf(os.Stderr, "casegallery %s serving %s on http://localhost:%d\n", Version, cfg.ImageRoot, cfg.Server.Port)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
