package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/oshokin/briefcase-alarm/internal/config"
	"github.com/oshokin/briefcase-alarm/internal/logger"
	"github.com/oshokin/briefcase-alarm/internal/service/panel"
)

// Options configures the interactive console.
type Options struct {
	// Panel holds the connection settings.
	Panel panel.Options
	// LogFile receives the console logs. Empty discards them.
	LogFile string
	// PollInterval is how often the status is refreshed.
	PollInterval time.Duration
}

// Run opens the console and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Keep logs off the screen the console draws on.
	var sink io.Writer = io.Discard

	if opts.LogFile != "" {
		f, err := os.OpenFile(filepath.Clean(opts.LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.DefaultFilePermissions)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}

		defer func() {
			_ = f.Close()
		}()

		sink = f
	}

	logger.SetLogger(logger.NewWithWriter(nil, sink, logger.WithLevel(zap.WarnLevel)))

	ctx = logger.WithName(ctx, "briefcase-console")

	client, err := panel.Connect(ctx, &opts.Panel)
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	program := tea.NewProgram(
		NewModel(ctx, client, opts.PollInterval),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("run console: %w", err)
	}

	return nil
}
