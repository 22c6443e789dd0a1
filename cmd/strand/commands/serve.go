package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/calder-labs/strand/config"
	"github.com/calder-labs/strand/errors"
	"github.com/calder-labs/strand/logger"
	"github.com/calder-labs/strand/server"
	"github.com/calder-labs/strand/service"
	"github.com/calder-labs/strand/store"
	"github.com/calder-labs/strand/version"
)

// ServeCmd starts the strand HTTP server
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the strand HTTP API and WebSocket event feed",
	Long: `Start the strand server. Exposes the record store over a JSON API and
pushes record_created / record_deleted events to WebSocket subscribers.

The store driver and port come from the configuration cascade; flags below
override it for this invocation.`,
	RunE: runServe,
}

var (
	servePort      int
	serveStorePath string
	serveDriver    string
	serveWatch     bool
)

func init() {
	ServeCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides config)")
	ServeCmd.Flags().StringVar(&serveStorePath, "store-path", "", "Store path (overrides config)")
	ServeCmd.Flags().StringVar(&serveDriver, "driver", "", "Store driver: file or sqlite (overrides config)")
	ServeCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the collection when the store file changes on disk")
}

func runServe(cmd *cobra.Command, args []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if verbosity == 0 {
		verbosity = 1
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if err := logger.InitializeWithLevel(jsonOutput, logger.VerbosityToLevel(verbosity)); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveStorePath != "" {
		cfg.Store.Path = serveStorePath
	}
	if serveDriver != "" {
		cfg.Store.Driver = serveDriver
	}
	if cmd.Flags().Changed("watch") {
		cfg.Store.Watch = serveWatch
	}

	st, err := store.Open(cfg.Store, logger.Logger)
	if err != nil {
		return errors.Wrap(err, "failed to open store")
	}
	defer st.Close()

	svc := service.New(st, logger.Logger)
	srv := server.New(svc, cfg.Server, logger.Logger)

	// Reload configuration when any file in the cascade changes
	watcher, err := config.NewWatcher(config.UserConfigPath())
	if err != nil {
		logger.Warnw("Config watcher unavailable", "error", err)
	} else {
		watcher.OnReload(func(reloaded *config.Config) error {
			logger.Infow("Configuration reloaded",
				"server_port", reloaded.Server.Port,
				"store_driver", reloaded.Store.Driver,
			)
			return nil
		})
		watcher.Start()
		defer watcher.Close()
	}

	printServeBanner(cfg, verbosity)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return err
		}
	case sig := <-sigChan:
		pterm.Info.Printf("Received %s, shutting down\n", sig)
		if err := srv.Stop(); err != nil {
			return err
		}
	}

	return nil
}

// printServeBanner prints the user-facing startup summary
func printServeBanner(cfg *config.Config, verbosity int) {
	green := "\033[32m"
	bold := "\033[1m"
	reset := "\033[0m"

	info := version.Get()

	fmt.Printf("\n%s%s┌─ strand ────────────────────────────────────────────┐%s\n", green, bold, reset)
	fmt.Printf("%s│%s Version:   %s (commit %s)\n", green, reset, info.Version, info.Short())
	fmt.Printf("%s│%s Listening: http://localhost:%d\n", green, reset, cfg.Server.Port)
	fmt.Printf("%s│%s Store:     %s (%s)\n", green, reset, cfg.Store.Path, cfg.Store.Driver)
	fmt.Printf("%s│%s Verbosity: %s\n", green, reset, logger.LevelName(verbosity))
	fmt.Printf("%s└─────────────────────────────────────────────────────┘%s\n\n", green, reset)

	fmt.Printf("💡 Press Ctrl+C to stop\n\n")
}
