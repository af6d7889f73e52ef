package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/briefcase-alarm/internal/config"
	"github.com/oshokin/briefcase-alarm/internal/service/unit"
	"github.com/oshokin/briefcase-alarm/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// metricsAddress overrides the metrics endpoint address.
	metricsAddress string
	// watch enables settings hot reload.
	watch bool

	// rootCmd represents the base command for running the unit.
	rootCmd = &cobra.Command{
		Use:   "briefcase-unit [listen-address]",
		Short: "Run the briefcase alarm unit on simulated hardware.",
		Long: `Starts the briefcase access-control unit with a simulated joystick, dial,
accelerometer and alarm lights.

The unit locks and unlocks the case, arms and disarms security with a 4-digit PIN
and raises the alarm when an armed case is moved and the countdown runs out.
Its front panel is served over gRPC on the port from PanelAddress config
(e.g., :7000); a listen address argument overrides it (e.g., 0.0.0.0:7000).
Prometheus metrics are served when a metrics address is configured.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &unit.Options{
				ConfigPath:     configPath,
				ListenAddress:  listenAddress,
				MetricsAddress: metricsAddress,
				Watch:          watch,
			}

			return unit.Run(ctx, options)
		},
	}
)

// Execute runs the briefcase-unit CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&metricsAddress, "metrics", "m", "", "metrics listen address (overrides config)")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", true, "reload log level and flash period when the config file changes")
}
