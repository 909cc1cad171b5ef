package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered key and its resolved path",
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		all := e.reg.All()

		keys := make([]string, 0, len(all))
		for key := range all {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			entry, _ := e.reg.Entry(key)
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-9s %s\n", key, entry.Origin, all[key])
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Resolve one key, healing and relocating as needed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		path, ok := e.reg.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown key %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set KEY PATH",
	Short: "Register a path and persist the updated snapshot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		e.reg.Register(args[0], args[1])
		if err := e.store.Export(""); err != nil {
			return fmt.Errorf("path registered but snapshot save failed: %w", err)
		}
		path, _ := e.reg.Get(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], path)
		return nil
	},
}

var ensureCmd = &cobra.Command{
	Use:   "ensure KEY",
	Short: "Create the directory a key points at, if missing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		if !e.reg.EnsureDirectory(args[0]) {
			return fmt.Errorf("could not ensure directory for %q", args[0])
		}
		path, _ := e.reg.Get(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd, getCmd, setCmd, ensureCmd)
}
