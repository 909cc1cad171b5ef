package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmsuite/pathregistry/internal/persist"
)

var exportCmd = &cobra.Command{
	Use:   "export [PATH]",
	Short: "Write the registry snapshot to disk",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		if err := e.store.Export(target); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d key(s)\n", e.reg.Len())
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Load a snapshot, overwriting current values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		if err := e.store.Import(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported; registry now holds %d key(s)\n", e.reg.Len())
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade legacy flat-file configuration",
	Long:  "Finds the first legacy settings file, maps its keys into the registry, renames the file to .bak and reports anything it could not map.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()

		migrator := persist.NewMigrator(e.reg, persist.LegacyLocations(e.booted.Root), e.log)
		result, err := migrator.Run()
		if err != nil {
			return err
		}
		if result.Source == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to migrate")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "migrated %s -> %s\n", result.Source, result.Backup)
		for key, value := range result.Migrated {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", key, value)
		}
		for _, key := range result.Unmapped {
			fmt.Fprintf(cmd.OutOrStdout(), "  unmapped: %s\n", key)
		}

		if err := e.store.Export(""); err != nil {
			return fmt.Errorf("migration applied but snapshot save failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, migrateCmd)
}
