package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cheerioskun/filetable/internal/config"
	"github.com/cheerioskun/filetable/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	appConfig *config.Config

	// appFs is swapped for an in-memory filesystem in tests
	appFs afero.Fs = afero.NewOsFs()

	// Set via ldflags at build time.
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "filetable",
	Short: "Browse remote files, select them and review what can be downloaded",
	Long: `filetable lists remote files from a manifest or a scanned directory,
lets you select rows and shows which of the selected files are available
for download.

Sources:
  *.json, *.yaml, *.yml, *.toml   manifest of remote files
  <directory>                     scanned; top-level folders are devices`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.filetable.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output and debug logging")
	rootCmd.PersistentFlags().String("log-file", utils.DefaultLogPath(), "log file path")
	rootCmd.PersistentFlags().Int("max-depth", 10, "maximum directory depth to scan")
	rootCmd.PersistentFlags().Bool("show-hidden", false, "include hidden files when scanning a directory")

	// Bind flags to viper
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("max-depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	viper.BindPFlag("show-hidden", rootCmd.PersistentFlags().Lookup("show-hidden"))
}

// loadConfig reads the config file and environment into appConfig
func loadConfig() error {
	viper.SetFs(appFs)
	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".filetable")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	appConfig = cfg

	if err := utils.Init(cfg.LogFile, cfg.Verbose); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		utils.Debug("using config file %s", used)
	}
	return nil
}

// resolveSource makes the source argument absolute and checks it exists
func resolveSource(arg string) (string, error) {
	absPath, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	exists, err := afero.Exists(appFs, absPath)
	if err != nil {
		return "", fmt.Errorf("failed to access %s: %w", absPath, err)
	}
	if !exists {
		return "", fmt.Errorf("path does not exist: %s", absPath)
	}
	return absPath, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
