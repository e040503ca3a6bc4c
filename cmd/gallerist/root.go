package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davidweihrauch/gallerist/pkg/gallery/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "gallerist [path]",
		Short: "Build a static gallery manifest from a media directory",
		Long: `Gallerist scans a directory tree for images and writes a JSON manifest
for a static photo gallery. Each image gets a best-effort capture
timestamp: embedded metadata first, then the file's modification time,
then a date parsed from the filename.

Examples:
  gallerist                          # Scan current directory, write gallery.json
  gallerist ~/photos -o site/gallery.json
  gallerist -b /assets/img photos    # URLs rooted at /assets/img
  gallerist -f urls photos           # Legacy flat URL array output
  gallerist config show              # Show configuration`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runBuild,
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/gallerist/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "manifest output path")
	rootCmd.PersistentFlags().StringP("base-url", "b", "", "URL prefix for manifest entries")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "override timestamp worker count (0=default)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "manifest format (records or urls)")
	rootCmd.PersistentFlags().StringSliceP("exclude", "e", nil, "exclude patterns (can be specified multiple times)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Bind flags to viper
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Set config name and type
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		// Add config paths in order of precedence
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "gallerist"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "gallerist"))
		}
	}

	// Set environment variable prefix and enable auto env binding
	viper.SetEnvPrefix("GALLERIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Set defaults from config package
	viper.SetDefault("root", config.DefaultRoot)
	viper.SetDefault("output", config.DefaultOutput)
	viper.SetDefault("base_url", config.DefaultBaseURL)
	viper.SetDefault("workers", config.DefaultWorkers)
	viper.SetDefault("format", config.DefaultFormat)
	viper.SetDefault("exclude", config.DefaultExclusions)
	viper.SetDefault("logging.level", "info")

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
