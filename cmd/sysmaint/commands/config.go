package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/sysmaint/internal/config"
	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/paths"
	"github.com/thoreinstein/sysmaint/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration a run would use, after merging defaults, the
config file, SYSMAINT_* environment variables and flags.

The config file is config.yaml in the current directory or in
$XDG_CONFIG_HOME/sysmaint, or the file given with --config.`,
	Example: `  # Show all settings
  sysmaint config

  # Show one setting
  sysmaint config get report_file

  # Write a config file with the defaults
  sysmaint config init

See Also: sysmaint doctor`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showConfig(cmd.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getConfigValue(cmd.OutOrStdout(), args[0])
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the default values",
	Long: `Write a config file containing every key with its default value.

Without a path the file is written to $XDG_CONFIG_HOME/sysmaint/config.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(paths.ConfigDir(), "config.yaml")
		if len(args) == 1 {
			path = args[0]
		}
		return initConfigFile(cmd.OutOrStdout(), path, configInitForce)
	},
}

func showConfig(w io.Writer) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return errors.NewConfigError(err)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(w, "# %s\n", used)
	} else {
		fmt.Fprintln(w, "# no config file found; showing defaults")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing config")
}

func getConfigValue(w io.Writer, key string) error {
	keys := make([]string, 0, len(config.Defaults()))
	for k := range config.Defaults() {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	if !slices.Contains(keys, key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key), fmt.Sprintf("valid keys: %v", keys))
	}

	fmt.Fprintln(w, viper.GetString(key))
	return nil
}

func initConfigFile(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewUserError(errors.Newf("%s already exists", path), "use --force to overwrite it")
	}

	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
		return errors.NewSystemError(errors.NewPersistError(path, err), "")
	}

	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
