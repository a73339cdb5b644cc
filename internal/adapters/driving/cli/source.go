package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage configured sources",
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE:  runSourceList,
}

var (
	sourceAddName        string
	sourceAddInteractive bool
	sourceAddSettings    []string
)

var sourceAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Add a source",
	Long: `Adds a source of the given type to the configuration.

Connector settings are passed as repeated --set key=value flags, for
example:

  taskpull source add bitbucket --name work \
    --set username=acme --set login=me --set password=@oracle:work`,
	Args: cobra.ExactArgs(1),
	RunE: runSourceAdd,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove <source-id>",
	Short: "Remove a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

func init() {
	sourceAddCmd.Flags().StringVar(&sourceAddName, "name", "", "human-readable source name")
	sourceAddCmd.Flags().BoolVar(&sourceAddInteractive, "interactive", true, "allow credential prompts for this source")
	sourceAddCmd.Flags().StringArrayVar(&sourceAddSettings, "set", nil, "connector setting as key=value (repeatable)")

	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	sources, err := sourceStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No sources configured.")
		return nil
	}

	for _, source := range sources {
		name := source.Name
		if name == "" {
			name = "(unnamed)"
		}
		cmd.Printf("%s  %-10s  %s\n", source.ID, source.Type, name)
	}
	return nil
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	sourceType := args[0]

	config, err := parseSettings(sourceAddSettings)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	source := domain.Source{
		ID:          uuid.New().String(),
		Type:        sourceType,
		Name:        sourceAddName,
		Config:      config,
		Interactive: sourceAddInteractive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := sourceStore.Save(context.Background(), source); err != nil {
		return fmt.Errorf("saving source: %w", err)
	}

	cmd.Printf("Added source %s (%s)\n", source.ID, source.Type)
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	sourceID := args[0]

	if err := sourceStore.Delete(context.Background(), sourceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("source %s not found", sourceID)
		}
		return fmt.Errorf("removing source: %w", err)
	}

	cmd.Printf("Removed source %s\n", sourceID)
	return nil
}

// parseSettings converts repeated key=value flags into a config map.
func parseSettings(pairs []string) (map[string]string, error) {
	config := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: invalid setting %q, expected key=value", domain.ErrInvalidInput, pair)
		}
		config[key] = value
	}
	return config, nil
}
