// Package cli implements the cobra command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskpull/taskpull-cli/internal/adapters/driven/config/file"
	"github.com/taskpull/taskpull-cli/internal/adapters/driven/secrets"
	"github.com/taskpull/taskpull-cli/internal/adapters/driven/storage/memory"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driven"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driving"
	"github.com/taskpull/taskpull-cli/internal/core/services"
	"github.com/taskpull/taskpull-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag        bool
	configDirFlag      string
	nonInteractiveFlag bool
)

// Wired services, populated by initServices before any command runs.
var (
	configStore      *file.ConfigStore
	sourceStore      driven.SourceStore
	taskStore        driven.TaskStore
	syncOrchestrator driving.SyncOrchestrator
)

var rootCmd = &cobra.Command{
	Use:   "taskpull",
	Short: "Pull issues from remote trackers into local task records",
	Long: `taskpull synchronises issues from remote issue-tracking services
into a uniform local task record model.

Sources are configured in ~/.taskpull/config.toml. Credentials may be
stored literally, referenced indirectly via "@oracle:<name>" secrets, or
entered interactively.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config", "", "config directory (default ~/.taskpull)")
	rootCmd.PersistentFlags().BoolVar(&nonInteractiveFlag, "non-interactive", false, "never prompt for credentials")
}

// initServices wires the application graph. Runs once before any command.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	store, err := file.NewConfigStore(configDirFlag)
	if err != nil {
		return err
	}
	configStore = store
	sourceStore = file.NewSourceStore(store)

	// Task persistence belongs to the surrounding framework; the CLI runs
	// against the in-memory store and reports what a sync would deliver.
	taskStore = memory.NewTaskStore()

	// --non-interactive drops the prompt resolver from the chain entirely.
	var secretResolver driven.SecretResolver = secrets.NewDefaultResolver()
	if nonInteractiveFlag {
		secretResolver = secrets.NewChainResolver(&secrets.EnvResolver{})
	}

	credentials := services.NewCredentialResolver(secretResolver)
	factory := services.NewConnectorFactory()
	services.RegisterBuiltinConnectors(factory, credentials, nil)

	syncOrchestrator = services.NewSyncOrchestrator(sourceStore, taskStore, factory)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
