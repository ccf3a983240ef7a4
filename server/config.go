package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/atomsi7/IntensiveColearnCheckin/internal/xtime"
	"github.com/atomsi7/IntensiveColearnCheckin/server/database"
)

func LoadConfig(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	cfg := defaultConfig()
	if _, err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:     slog.LevelInfo,
			Format:    LogFormatText,
			AddSource: false,
		},
		Server: ServerConfig{
			Addr: ":8085",
		},
		Database: database.Config{
			Host:     "localhost",
			Port:     5432,
			Username: "postgres",
			Password: "password",
			Database: "colearn-checkin",
		},
		Ledger: LedgerConfig{
			DayLength:     xtime.Duration(24 * time.Hour),
			DaysPerWeek:   7,
			MissAllowance: 2,
			MehQuorumPct:  67,
		},
		RateLimit: RateLimitConfig{
			Every: xtime.Duration(100 * time.Millisecond),
			Burst: 50,
		},
	}
}

type Config struct {
	Log           LogConfig           `toml:"log"`
	Server        ServerConfig        `toml:"server"`
	Database      database.Config     `toml:"database"`
	Ledger        LedgerConfig        `toml:"ledger"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Notifications NotificationsConfig `toml:"notifications"`
}

func (c Config) String() string {
	return fmt.Sprintf("Log: %s\nServer: %s\nDatabase: %s\nLedger: %s\nRateLimit: %s\nNotifications: %s",
		c.Log,
		c.Server,
		c.Database,
		c.Ledger,
		c.RateLimit,
		c.Notifications,
	)
}

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    LogFormat  `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

func (c LogConfig) String() string {
	return fmt.Sprintf("\n Level: %s\n Format: %s\n AddSource: %t",
		c.Level,
		c.Format,
		c.AddSource,
	)
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

func (c ServerConfig) String() string {
	return fmt.Sprintf("\n Address: %s",
		c.Addr,
	)
}

type LedgerConfig struct {
	// Moderator is the address of the single privileged identity.
	Moderator     string         `toml:"moderator"`
	DayLength     xtime.Duration `toml:"day_length"`
	DaysPerWeek   int            `toml:"days_per_week"`
	MissAllowance int            `toml:"miss_allowance"`
	MehQuorumPct  int            `toml:"meh_quorum_pct"`
}

func (c LedgerConfig) String() string {
	return fmt.Sprintf("\n Moderator: %s\n DayLength: %s\n DaysPerWeek: %d\n MissAllowance: %d\n MehQuorumPct: %d",
		c.Moderator,
		c.DayLength,
		c.DaysPerWeek,
		c.MissAllowance,
		c.MehQuorumPct,
	)
}

type RateLimitConfig struct {
	Every xtime.Duration `toml:"every"`
	Burst int            `toml:"burst"`
}

func (c RateLimitConfig) String() string {
	return fmt.Sprintf("\n Every: %s\n Burst: %d",
		c.Every,
		c.Burst,
	)
}

type NotificationsConfig struct {
	Enabled    bool   `toml:"enabled"`
	WebhookURL string `toml:"webhook_url"`
}

func (c NotificationsConfig) String() string {
	return fmt.Sprintf("\n Enabled: %t\n WebhookURL: %s",
		c.Enabled,
		c.WebhookURL,
	)
}
