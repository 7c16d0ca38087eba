// Package main provides the entry point for the voicekit CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/voicekit/internal/config"
	"github.com/dgnsrekt/voicekit/internal/host"
	"github.com/dgnsrekt/voicekit/internal/voice"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	closers    []io.Closer

	console = host.NewConsoleLogger(os.Stdout, os.Stderr, host.ConsoleOptions{
		Level:           log.InfoLevel,
		ReportTimestamp: term.IsTerminal(int(os.Stderr.Fd())),
	})
	hostRuntime = host.NewRuntime(console, nil)

	rootCmd = &cobra.Command{
		Use:   "voicekit",
		Short: "Speech-to-text and text-to-speech on the command line",
		Long: paragraph(
			fmt.Sprintf("\nTranscribe and synthesize speech %s.", keyword("with pluggable providers")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Only plugin commands need providers; config and man must work
			// with a broken configuration.
			if cmd.Annotations["plugin"] == "" {
				return nil
			}
			loadRuntime(cmd.Context())
			return nil
		},
	}
)

// loadRuntime reads the configuration and registers every provider it
// enables.
func loadRuntime(ctx context.Context) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			console.Warn(fmt.Sprintf("Unable to read config file: %v", err))
		}
	}
	if err := config.LoadDotenv(); err != nil {
		log.Warn("Could not load .env file", "err", err)
	}

	cfg := loadConfig(viper.GetViper(), console)
	if cfg == nil {
		return
	}
	if cfg.Debug {
		console.SetLevel(log.DebugLevel)
	}

	closers = registerProviders(ctx, hostRuntime.Registry(), cfg, console)
}

// loadConfig returns the configuration held by v, or nil after a warning
// when it cannot be used. Plugin commands then run without providers and
// report that themselves.
func loadConfig(v *viper.Viper, logger host.Logger) *config.Config {
	cfg, err := config.Load(v)
	if err != nil {
		logger.Warn(fmt.Sprintf("Ignoring configuration, no providers loaded: %v", err))
		return nil
	}
	return cfg
}

func closeProviders() {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Debug("Could not close provider", "err", err)
		}
	}
	closers = nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = rootCmd.ExecuteContext(ctx)
	stop()
	closeProviders()
	_ = closer()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().Bool("debug", false, "log debug output")
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	if err := host.Mount(rootCmd, voice.New().Plugin(), hostRuntime); err != nil {
		log.Fatal("Could not mount voice plugin", "err", err)
	}
	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "voicekit")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "voicekit")}, dirs...)
	}

	if c := os.Getenv("VOICEKIT_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("voicekit")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("voicekit")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "voicekit.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
