package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/briefcase-alarm/internal/config"
	"github.com/oshokin/briefcase-alarm/internal/service/console"
	"github.com/oshokin/briefcase-alarm/internal/service/panel"
	"github.com/oshokin/briefcase-alarm/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// panelAddress overrides the unit address from config.
	panelAddress string
	// logFile receives console logs.
	logFile string

	// rootCmd represents the base command for driving a unit.
	rootCmd = &cobra.Command{
		Use:   "briefcase-panel",
		Short: "Drive a briefcase unit through its front panel.",
		Long: `Connects to a running briefcase unit over gRPC and drives its simulated hardware.

Use the one-shot commands to press joystick buttons, turn the dial, shake the
case or print the status, or open the interactive console.
The unit address is loaded from configuration file unless --addr is given.`,
	}

	// pressCmd taps one joystick button.
	pressCmd = &cobra.Command{
		Use:       "press <up|down|left|right|center>",
		Short:     "Press a joystick button.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "left", "right", "center"},
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return panel.Press(ctx, panelOptions(), args[0])
		},
	}

	// dialCmd turns the dial.
	dialCmd = &cobra.Command{
		Use:   "dial <0..1>",
		Short: "Turn the dial to a normalized position.",
		Long: `Turns the dial to a position between 0 and 1.
The unit reads the dial as 0 to 120 seconds and accepts 10 to 120 as the alarm interval.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse dial value: %w", err)
			}

			ctx, stop := signalContext()
			defer stop()

			return panel.Dial(ctx, panelOptions(), value)
		},
	}

	// shakeCmd sets the accelerometer reading.
	shakeCmd = &cobra.Command{
		Use:   "shake [x y z]",
		Short: "Set the accelerometer reading; no arguments sends a default shake, 0 0 0 stops it.",
		Args:  cobra.MatchAll(cobra.RangeArgs(0, 3), func(_ *cobra.Command, args []string) error {
			_, err := panel.ParseAxes(args)

			return err
		}),
		RunE: func(_ *cobra.Command, args []string) error {
			axes, err := panel.ParseAxes(args)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			return panel.Shake(ctx, panelOptions(), axes)
		},
	}

	// statusCmd prints the unit status.
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print the unit status and display.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return panel.Status(ctx, panelOptions(), cmd.OutOrStdout())
		},
	}

	// consoleCmd opens the interactive console.
	consoleCmd = &cobra.Command{
		Use:   "console",
		Short: "Open the interactive front panel.",
		Long: `Opens a terminal front panel that shows the unit display and alarm lights.
Arrow keys press the joystick, enter presses center, +/- turn the dial,
m toggles shaking and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return console.Run(ctx, &console.Options{
				Panel:   *panelOptions(),
				LogFile: logFile,
			})
		},
	}
)

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

// panelOptions collects the connection flags.
func panelOptions() *panel.Options {
	return &panel.Options{
		ConfigPath:   configPath,
		PanelAddress: panelAddress,
	}
}

// Execute runs the briefcase-panel CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&panelAddress, "addr", "a", "", "unit panel address (overrides config)")
	consoleCmd.Flags().StringVarP(&logFile, "log-file", "l", "", "write console logs to this file")

	rootCmd.AddCommand(pressCmd, dialCmd, shakeCmd, statusCmd, consoleCmd)
}
