package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewRootCommand builds the tracker CLI.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Order tracking bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	root.AddCommand(newServeCmd(&envFile))
	root.AddCommand(newSweepCmd(&envFile))
	root.AddCommand(newRemindCmd(&envFile))

	return root
}

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server and the status sweep",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *envFile, func(ctx context.Context, app *CompositionRoot, logger *zap.Logger) error {
				return serve(ctx, app, logger)
			})
		},
	}
}

func serve(ctx context.Context, app *CompositionRoot, logger *zap.Logger) error {
	server := app.CreateServer()
	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	if url := app.cfg.PublicURL; url != "" {
		hook := strings.TrimRight(url, "/") + "/telegram"
		if err := app.Messenger().SetWebhook(ctx, hook, app.cfg.WebhookSecret); err != nil {
			return fmt.Errorf("register webhook: %w", err)
		}
		logger.Info("webhook registered", zap.String("url", hook))
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(app.ListenAddr())
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(stopCtx)
}

func newSweepCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one status sweep and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *envFile, func(ctx context.Context, app *CompositionRoot, _ *zap.Logger) error {
				res, err := app.CreateSweepStatusChangesCommandHandler().Handle(ctx, commands.NewSweepStatusChangesCommand())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d changes, %d sent, %d failed\n",
					res.RunID, len(res.Changes), res.Report.Sent(), res.Report.Failed())
				return nil
			})
		},
	}
}

func newRemindCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remind [order-id]",
		Short: "Remind unpaid participants of one order, or of every order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), *envFile, func(ctx context.Context, app *CompositionRoot, _ *zap.Logger) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					batch, err := app.CreateRemindAllUnpaidCommandHandler().Handle(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%d orders: %d sent, %d failed\n", len(batch.Orders), batch.Sent(), batch.Failed())
					return nil
				}

				remind, err := commands.NewRemindUnpaidForOrderCommand(args[0])
				if err != nil {
					return err
				}
				report, err := app.CreateRemindUnpaidForOrderCommandHandler().Handle(ctx, remind)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %d sent, %d failed\n", report.OrderID, report.Sent(), report.Failed())
				if len(report.Unresolved) > 0 {
					fmt.Fprintf(out, "no address: %s\n", strings.Join(report.Unresolved, ", "))
				}
				return nil
			})
		},
	}
}

// withApp loads the configuration, builds the logger and the composition
// root, makes sure the tables exist and runs fn.
func withApp(ctx context.Context, envFile string, fn func(context.Context, *CompositionRoot, *zap.Logger) error) (err error) {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return err
	}
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
		Service:  "tracker",
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app, err := NewCompositionRoot(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, app.Close()) }()

	if err := app.InitTables(ctx); err != nil {
		return fmt.Errorf("init tables: %w", err)
	}
	return fn(ctx, app, logger)
}
