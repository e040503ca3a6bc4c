package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/davidweihrauch/gallerist/pkg/gallery/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage gallerist configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/gallerist/config.yaml (if set)
  2. ~/.config/gallerist/config.yaml

Environment variables can override config file settings using the GALLERIST_ prefix:
  GALLERIST_BASE_URL=/assets/img
  GALLERIST_WORKERS=4
  GALLERIST_EXCLUDE=.thumbnails,originals`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long: `Open the configuration file in your default editor.

The editor is determined by:
  1. $VISUAL environment variable
  2. $EDITOR environment variable
  3. Falls back to 'vi'

If the config file doesn't exist, a default one will be created first.`,
	RunE: runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a default configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError("Failed to load configuration: %v", err)
		// Show defaults anyway
		cfg = &config.Config{
			Root:    config.DefaultRoot,
			Output:  config.DefaultOutput,
			BaseURL: config.DefaultBaseURL,
			Workers: config.DefaultWorkers,
			Format:  config.DefaultFormat,
			Exclude: config.DefaultExclusions,
		}
	}

	// Show config file being used
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		fmt.Printf("Config file: %s\n\n", configFile)
	} else {
		fmt.Println("Config file: (using defaults, no file found)")
		fmt.Println()
	}

	// Display configuration
	fmt.Println("Current Configuration:")
	fmt.Println("----------------------")
	fmt.Printf("root:          %s\n", cfg.Root)
	fmt.Printf("output:        %s\n", cfg.Output)
	fmt.Printf("base_url:      %s\n", cfg.BaseURL)
	fmt.Printf("workers:       %d\n", cfg.Workers)
	fmt.Printf("format:        %s\n", cfg.Format)
	fmt.Printf("exclude:       %v\n", cfg.Exclude)
	fmt.Printf("logging.level: %s\n", cfg.Logging.Level)

	// Show any environment overrides
	fmt.Println("\nEnvironment Overrides:")
	fmt.Println("----------------------")
	envVars := []struct {
		name string
		key  string
	}{
		{"GALLERIST_ROOT", "root"},
		{"GALLERIST_OUTPUT", "output"},
		{"GALLERIST_BASE_URL", "base_url"},
		{"GALLERIST_WORKERS", "workers"},
		{"GALLERIST_FORMAT", "format"},
		{"GALLERIST_EXCLUDE", "exclude"},
		{"GALLERIST_LOGGING_LEVEL", "logging.level"},
	}

	anyOverrides := false
	for _, ev := range envVars {
		if val := os.Getenv(ev.name); val != "" {
			fmt.Printf("%s=%s\n", ev.name, val)
			anyOverrides = true
		}
	}
	if !anyOverrides {
		fmt.Println("(none)")
	}

	return nil
}

// runConfigEdit opens the config file in an editor.
func runConfigEdit(cmd *cobra.Command, args []string) error {
	// Ensure config file exists
	if err := config.WriteDefault(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	// Get config file path
	configDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	// Determine editor
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	printVerbose("Opening %s with %s", configPath, editor)

	// Open editor
	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor command failed: %w", err)
	}

	return nil
}

// runConfigInit creates a default config file.
func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		printInfo("Config file already exists: %s", configPath)
		printInfo("Use 'gallerist config edit' to modify it.")
		return nil
	}

	// Create default config
	if err := config.WriteDefault(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	printInfo("Created default config file: %s", configPath)
	return nil
}

// runConfigPath shows the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	configDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	fmt.Println(configPath)

	// Show if file exists
	if _, err := os.Stat(configPath); err == nil {
		printVerbose("File exists")
	} else if os.IsNotExist(err) {
		printVerbose("File does not exist (will use defaults)")
	}

	return nil
}
