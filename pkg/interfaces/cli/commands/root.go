// Package commands defines the expertdesk CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbarret/expertdesk/pkg/application/services"
	"github.com/mbarret/expertdesk/pkg/infrastructure/config"
	"github.com/mbarret/expertdesk/pkg/infrastructure/logging"
	"github.com/mbarret/expertdesk/pkg/infrastructure/repositories/rest"
)

var cfgFile string

// env bundles everything a command needs against one configured backend.
type env struct {
	cfg       config.Config
	log       *logging.Logger
	cases     *services.AssignmentService
	directory *services.DirectoryService
}

func buildEnv() (*env, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url is not configured (use --config)")
	}

	client := rest.NewClient(cfg.API.BaseURL, cfg.API.APIKey, cfg.API.Timeout, log)
	return &env{
		cfg: cfg,
		log: log,
		cases: services.NewAssignmentService(
			rest.NewAssignmentRepository(client),
			rest.NewSupplyRepository(client),
			rest.NewLaborRepository(client),
			rest.NewCatalogRepository(client),
			nil,
			log,
			cfg.API.Timeout,
		),
		directory: services.NewDirectoryService(rest.NewDirectoryRepository(client), log),
	}, nil
}

// NewRootCommand builds the CLI tree.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "expertdesk",
		Short:         "Back-office client for automotive expertise cases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the YAML configuration file")

	root.AddCommand(newShowCommand())
	root.AddCommand(newExportCommand())
	root.AddCommand(newVersionCommand(version))
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
