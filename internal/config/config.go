package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
	"github.com/oshokin/briefcase-alarm/internal/logger"
)

// Config holds the settings of the briefcase unit and its panel clients.
type Config struct {
	// PanelAddress is the gRPC address of the front panel service.
	PanelAddress string `yaml:"panel_addr"`
	// MetricsAddress is the HTTP address of the /metrics endpoint. Empty disables it.
	MetricsAddress string `yaml:"metrics_addr,omitempty"`
	// UnitID identifies the unit in logs and status replies.
	UnitID string `yaml:"unit_id,omitempty"`
	// LogLevel is the zap level name. Reloaded on change.
	LogLevel string `yaml:"log_level,omitempty"`
	// QueueCapacity is the number of slots in the event queue.
	QueueCapacity int `yaml:"queue_capacity"`
	// SavedPIN is the code that disarms the unit after power-on.
	SavedPIN string `yaml:"saved_pin"`
	// AlarmInterval is the countdown length in seconds after power-on.
	AlarmInterval int `yaml:"alarm_interval"`
	// MotionThreshold is the axis magnitude that counts as movement.
	MotionThreshold int `yaml:"motion_threshold"`
	// Periods holds the cadence of every task.
	Periods Periods `yaml:"periods"`
	// FlashPeriod is the alarm LED toggle period. Reloaded on change.
	FlashPeriod time.Duration `yaml:"flash_period"`
	// Timeout is the duration for RPC calls made by panel clients.
	Timeout time.Duration `yaml:"timeout"`
}

// Periods holds task cadences.
type Periods struct {
	// Buttons is the joystick polling period.
	Buttons time.Duration `yaml:"buttons"`
	// Dial is the dial sampling period.
	Dial time.Duration `yaml:"dial"`
	// Countdown is the extra dial delay after each countdown step.
	Countdown time.Duration `yaml:"countdown"`
	// Motion is the accelerometer sampling period.
	Motion time.Duration `yaml:"motion"`
	// Display is the pause after each rendered event.
	Display time.Duration `yaml:"display"`
	// Settle is how long a released button must stay released.
	Settle time.Duration `yaml:"settle"`
}

const (
	// DefaultConfigFilename is the default filename for unit settings.
	DefaultConfigFilename = "briefcase-alarm-settings.yaml"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// DefaultQueueCapacity matches the unit's ring of four messages.
	DefaultQueueCapacity = 4

	// DefaultMotionThreshold is the axis magnitude that counts as movement.
	DefaultMotionThreshold = 40

	// DefaultButtonsPeriod is the joystick polling period.
	DefaultButtonsPeriod = 100 * time.Millisecond
	// DefaultDialPeriod is the dial sampling period.
	DefaultDialPeriod = 100 * time.Millisecond
	// DefaultCountdownPeriod is the extra dial delay while counting down.
	DefaultCountdownPeriod = 900 * time.Millisecond
	// DefaultMotionPeriod is the accelerometer sampling period.
	DefaultMotionPeriod = 200 * time.Millisecond
	// DefaultDisplayPeriod is the pause after each rendered event.
	DefaultDisplayPeriod = 100 * time.Millisecond
	// DefaultSettlePeriod is the button settle delay.
	DefaultSettlePeriod = 100 * time.Millisecond
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errPanelAddressRequired is returned when the panel address is missing.
	errPanelAddressRequired = errors.New("panel address must be provided")
	// errQueueCapacity is returned for a negative queue capacity.
	errQueueCapacity = errors.New("queue capacity must be positive")
	// errAlarmInterval is returned when the interval does not fit the dial range.
	errAlarmInterval = fmt.Errorf("alarm interval must be within [%d, %d]",
		briefcase.MinAlarmInterval, briefcase.MaxAlarmInterval)
	// errMotionThreshold is returned for a negative motion threshold.
	errMotionThreshold = errors.New("motion threshold must be positive")
	// errNegativePeriod is returned for a negative task period.
	errNegativePeriod = errors.New("task periods must not be negative")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes Settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for unset fields.
//
//nolint:cyclop // Flat list of field checks.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.PanelAddress == "" {
		return errPanelAddressRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.PanelAddress); err != nil {
		return fmt.Errorf("invalid panel socket: %w", err)
	}

	if settings.MetricsAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.MetricsAddress); err != nil {
			return fmt.Errorf("invalid metrics socket: %w", err)
		}
	}

	if settings.UnitID != "" {
		if _, err := uuid.Parse(settings.UnitID); err != nil {
			return fmt.Errorf("invalid unit id: %w", err)
		}
	}

	if settings.LogLevel != "" {
		if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
			return fmt.Errorf("unknown log level %q", settings.LogLevel)
		}
	}

	switch {
	case settings.QueueCapacity < 0:
		return errQueueCapacity
	case settings.QueueCapacity == 0:
		settings.QueueCapacity = DefaultQueueCapacity
	}

	if settings.SavedPIN == "" {
		settings.SavedPIN = briefcase.DefaultSavedPIN
	}

	if _, err := briefcase.ParsePIN(settings.SavedPIN); err != nil {
		return fmt.Errorf("invalid saved pin: %w", err)
	}

	if settings.AlarmInterval == 0 {
		settings.AlarmInterval = briefcase.DefaultAlarmInterval
	}

	if settings.AlarmInterval < briefcase.MinAlarmInterval || settings.AlarmInterval > briefcase.MaxAlarmInterval {
		return errAlarmInterval
	}

	switch {
	case settings.MotionThreshold < 0:
		return errMotionThreshold
	case settings.MotionThreshold == 0:
		settings.MotionThreshold = DefaultMotionThreshold
	}

	if err := settings.Periods.validate(); err != nil {
		return err
	}

	switch {
	case settings.FlashPeriod < 0:
		return errNegativePeriod
	case settings.FlashPeriod == 0:
		settings.FlashPeriod = briefcase.DefaultFlashPeriod
	default:
		settings.FlashPeriod = briefcase.ClampFlashPeriod(settings.FlashPeriod)
	}

	// Set default timeout if not specified
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	return nil
}

// EnsureUnitID assigns a random identifier when none is configured.
func (c *Config) EnsureUnitID() string {
	if c.UnitID == "" {
		c.UnitID = uuid.NewString()
	}

	return c.UnitID
}

// validate rejects negative periods and fills defaults for unset ones.
func (p *Periods) validate() error {
	fields := []struct {
		value    *time.Duration
		fallback time.Duration
	}{
		{&p.Buttons, DefaultButtonsPeriod},
		{&p.Dial, DefaultDialPeriod},
		{&p.Countdown, DefaultCountdownPeriod},
		{&p.Motion, DefaultMotionPeriod},
		{&p.Display, DefaultDisplayPeriod},
		{&p.Settle, DefaultSettlePeriod},
	}

	for _, f := range fields {
		switch {
		case *f.value < 0:
			return errNegativePeriod
		case *f.value == 0:
			*f.value = f.fallback
		}
	}

	return nil
}
