// init.go implements the "questclock init" command writing a default config.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/questclock/questclock/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write config.yaml with the default presets, weekly goal and poll
interval to the config directory. An existing file is kept unless --force
is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var forceFlag bool

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := opts.configDir
	if dir == "" {
		d, err := config.Dir()
		if err != nil {
			return err
		}
		dir = d
	}

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil && !forceFlag {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists: %s\n", path)
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	if err := config.WriteConfig(dir, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
