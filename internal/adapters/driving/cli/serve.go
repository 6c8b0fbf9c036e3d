package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/courseloft/syllaboard/internal/adapters/driven/config/file"
	"github.com/courseloft/syllaboard/internal/logger"
)

// shutdownGrace bounds how long in-flight requests may run after a
// termination signal.
const shutdownGrace = 10 * time.Second

// HTTPServer is the slice of the HTTP adapter the serve command needs.
type HTTPServer interface {
	Start(addr string) error
	Shutdown(ctx context.Context) error
}

// ServeConfig holds the wiring for the serve command.
type ServeConfig struct {
	Server HTTPServer

	// Listen is the address to bind.
	Listen string

	// ConfigPath, when set, is watched for changes so verbosity can be
	// adjusted without a restart.
	ConfigPath string
}

// serveConfig holds the current serve wiring.
var serveConfig *ServeConfig

// SetServeConfig sets the wiring for the serve command.
func SetServeConfig(config *ServeConfig) {
	serveConfig = config
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the HTTP API: syllabus extraction, the monday.com OAuth
flow, and board provisioning. The server runs until interrupted.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveConfig == nil || serveConfig.Server == nil {
		return errors.New("server not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveConfig.ConfigPath != "" {
		go func() {
			err := file.Watch(ctx, serveConfig.ConfigPath, func(cfg *file.Config) {
				logger.SetVerbose(cfg.Verbose)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", serveConfig.Listen)
		errCh <- serveConfig.Server.Start(serveConfig.Listen)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return serveConfig.Server.Shutdown(shutdownCtx)
}
