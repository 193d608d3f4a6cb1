package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"geolabel/internal/config"
	"geolabel/internal/tui"
)

var logFlags = logger.Flags{
	Level:       "info",
	LogToStderr: true,
}

func bindLogFlags(flags *pflag.FlagSet) {
	flags.CountVarP(&logFlags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&logFlags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&logFlags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig overlays the --config file, if any, onto base.
func loadConfig(path string, base config.Config) (config.Config, error) {
	if path == "" {
		return base, nil
	}
	cfg, err := config.Load(path, base)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debugf("loaded config %s: %d seed labels", path, len(cfg.Labels))
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "geolabel [basemap]",
		Short: "Place callout labels on a map in the terminal",
		Long: `geolabel opens an interactive terminal map with draggable callout labels.
Each label is a text box joined to a geographic coordinate by a line and an
arrowhead. An optional base map (GeoJSON, CSV, KML or WKT) is drawn underneath.`,
		Example: `  geolabel
  geolabel countries.geojson --config labels.yaml
  geolabel render --config labels.yaml --svg out.svg --png out.png`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Configure(logFlags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile, config.Terminal())
			if err != nil {
				return err
			}
			var m tui.Model
			if len(args) > 0 {
				m = tui.NewWithPath(cfg, args[0])
			} else {
				m = tui.New(cfg)
			}
			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
				return fmt.Errorf("terminal ui: %w", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML file with label defaults and seed labels")
	bindLogFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRenderCommand(&configFile))
	return rootCmd
}
