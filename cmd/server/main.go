package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"servicecatalog/internal/catalog"
	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/platform/config"
	"servicecatalog/internal/platform/httpserver"
	"servicecatalog/internal/platform/logger"
	httptransport "servicecatalog/internal/transport/http"
	"servicecatalog/pkg/domain"
)

// main wires high-level dependencies behind a small cobra CLI. Business logic
// lives in internal/catalog.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	v          *viper.Viper
	configFile string
}

func (o *rootOptions) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(o.v, o.configFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{v: config.New()}

	root := &cobra.Command{
		Use:          "servicecatalog",
		Short:        "Versioned public service catalog",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), o)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&o.configFile, "config", "", "path to a servicecatalog.yaml")
	flags.String("addr", "", "listen address (server.addr)")
	flags.String("seed", "", "YAML seed file (seed_file)")
	flags.String("database-url", "", "PostgreSQL URL; empty selects the in-memory store (database.url)")
	flags.String("log-level", "", "debug, info, warn or error (log.level)")
	_ = o.v.BindPFlag("server.addr", flags.Lookup("addr"))
	_ = o.v.BindPFlag("seed_file", flags.Lookup("seed"))
	_ = o.v.BindPFlag("database.url", flags.Lookup("database-url"))
	_ = o.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the catalog API (default)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), o)
			},
		},
		newGetCmd(o),
		newSeedCmd(o),
	)
	return root
}

func runServe(ctx context.Context, o *rootOptions) error {
	cfg, log, err := o.load()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("closing resources", "error", err)
		}
	}()

	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(a.routerDeps(log)))
	return httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout, log)
}

func newGetCmd(o *rootOptions) *cobra.Command {
	var (
		schemaVersion string
		mode          string
		language      string
		attachAll     bool
		proposed      bool
	)
	cmd := &cobra.Command{
		Use:   "get <service-id>",
		Short: "Print one service as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := domain.ParseRootID(args[0])
			if err != nil {
				return err
			}
			v, err := domain.ParseSchemaVersion(schemaVersion)
			if err != nil {
				return err
			}
			m, err := models.ParseResolutionMode(mode)
			if err != nil {
				return err
			}
			opts := catalog.GetOptions{
				SchemaVersion:           v,
				Mode:                    m,
				AttachAllTemplateData:   attachAll,
				IncludeProposedChannels: proposed,
			}
			if language != "" {
				if opts.Language, err = domain.ParseLanguage(language); err != nil {
					return err
				}
			}

			cfg, log, err := o.load()
			if err != nil {
				return err
			}
			a, err := buildApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, found, err := a.catalog.GetByID(cmd.Context(), root, opts)
			if err != nil {
				return err
			}
			if !found {
				return errors.New("service " + root.String() + " not found")
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(svc)
		},
	}
	cmd.Flags().StringVar(&schemaVersion, "schema", domain.LatestSchemaVersion.String(), "response schema version")
	cmd.Flags().StringVar(&mode, "mode", string(models.ModePublished), "Published, Latest or LatestActive")
	cmd.Flags().StringVar(&language, "language", "", "request language")
	cmd.Flags().BoolVar(&attachAll, "attach-all", false, "attach all general description data")
	cmd.Flags().BoolVar(&proposed, "proposed-channels", false, "include proposed channels")
	return cmd
}

func newSeedCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate PostgreSQL and load the seed file in one transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := o.load()
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" || cfg.SeedFile == "" {
				return errors.New("seed requires database.url and seed_file")
			}
			// buildApp migrates and applies the seed file.
			a, err := buildApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			return a.Close()
		},
	}
}
