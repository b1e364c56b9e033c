package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"streamtasks/internal/exitcode"
	"streamtasks/internal/firebot"
	"streamtasks/internal/host"
	"streamtasks/internal/observability"
	"streamtasks/internal/overlay"
	"streamtasks/internal/script"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list overlay",
		Long: `Serve the task list overlay for a browser source.

The overlay rereads the task list file on the poll interval and pushes changes to
connected pages. POST a run request to /v1/run to run commands through this process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ListenAddr
			}
			logger := a.logger(cfg)

			fs := host.FileSystem{}
			metrics := observability.NewMetrics("streamtasks")
			poller := overlay.NewPoller(fs, cfg.Filepath, cfg.PollInterval, metrics, logger)
			s := script.New(nil, script.Modules{FS: fs, Logger: logger}).WithObserver(metrics)
			srv := overlay.New(
				overlay.Options{Defaults: firebot.Params{
					Filepath:        cfg.Filepath,
					SendMessagesAs:  cfg.SendMessagesAs,
					CommandHelpText: cfg.CommandHelpText,
				}},
				poller, s, host.NewExecutor(fs, cmd.OutOrStdout()), metrics, logger,
			)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go poller.Run(ctx)

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving overlay", "addr", addr, "filepath", cfg.Filepath)
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return withCode(exitcode.IOError, err)
			case <-ctx.Done():
				shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
				defer stop()
				logger.Info("shutting down")
				return httpSrv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
