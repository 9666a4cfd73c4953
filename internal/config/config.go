package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "IRCLIMATE"

type Config struct {
	Port   string       `mapstructure:"port"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Remote RemoteConfig `mapstructure:"remote"`
	IR     IRConfig     `mapstructure:"ir"`
	GPIO   GPIOConfig   `mapstructure:"gpio"`
	Sensor SensorConfig `mapstructure:"sensor"`
	MQTT   MQTTConfig   `mapstructure:"mqtt"`
	Auth   AuthConfig   `mapstructure:"auth"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// RemoteConfig tunes the command translator and the busy indicator.
type RemoteConfig struct {
	TempMin          int           `mapstructure:"temp_min"`
	TempMax          int           `mapstructure:"temp_max"`
	IndicatorTimeout time.Duration `mapstructure:"indicator_timeout"`
	Tick             time.Duration `mapstructure:"tick"`
}

// IRConfig selects the emitter. An empty Port means dry-run (frames are logged).
type IRConfig struct {
	Port    string        `mapstructure:"port"`
	Baud    int           `mapstructure:"baud"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GPIOConfig selects the busy LED line. A negative pin disables it.
type GPIOConfig struct {
	Chip      string `mapstructure:"chip"`
	LEDPin    int    `mapstructure:"led_pin"`
	ActiveLow bool   `mapstructure:"active_low"`
}

// SensorConfig selects the Modbus room sensor. Mode is "", "rtu" or "tcp".
type SensorConfig struct {
	Mode    string        `mapstructure:"mode"`
	Port    string        `mapstructure:"port"`
	Address string        `mapstructure:"address"`
	Baud    int           `mapstructure:"baud"`
	SlaveID byte          `mapstructure:"slave_id"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MQTTConfig enables announcements and state publishing when Broker is set.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Prefix   string `mapstructure:"prefix"`
	Name     string `mapstructure:"name"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	OpenSignUp bool          `mapstructure:"open_signup"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.path", "app.db")

	v.SetDefault("remote.temp_min", 10)
	v.SetDefault("remote.temp_max", 30)
	v.SetDefault("remote.indicator_timeout", time.Second)
	v.SetDefault("remote.tick", 50*time.Millisecond)

	v.SetDefault("ir.port", "")
	v.SetDefault("ir.baud", 115200)
	v.SetDefault("ir.timeout", 500*time.Millisecond)

	v.SetDefault("gpio.chip", "gpiochip0")
	v.SetDefault("gpio.led_pin", -1)
	v.SetDefault("gpio.active_low", true)

	v.SetDefault("sensor.mode", "")
	v.SetDefault("sensor.port", "")
	v.SetDefault("sensor.address", "")
	v.SetDefault("sensor.baud", 9600)
	v.SetDefault("sensor.slave_id", 1)
	v.SetDefault("sensor.timeout", time.Second)

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "ir-climate")
	v.SetDefault("mqtt.prefix", "ir-climate")
	v.SetDefault("mqtt.name", "NodeMCU_Climate")

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.open_signup", false)
}

// Load reads configs/config.yml (if present) under the given search paths,
// applies IRCLIMATE_* environment overrides and validates the result.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.Remote.TempMin > c.Remote.TempMax {
		return fmt.Errorf("remote.temp_min %d is above remote.temp_max %d", c.Remote.TempMin, c.Remote.TempMax)
	}
	if c.Remote.IndicatorTimeout <= 0 {
		return fmt.Errorf("remote.indicator_timeout must be positive, got %v", c.Remote.IndicatorTimeout)
	}
	if c.Remote.Tick <= 0 || c.Remote.Tick > c.Remote.IndicatorTimeout {
		return fmt.Errorf("remote.tick must be in (0, %v], got %v", c.Remote.IndicatorTimeout, c.Remote.Tick)
	}
	switch c.Sensor.Mode {
	case "":
	case "rtu":
		if c.Sensor.Port == "" {
			return fmt.Errorf("sensor.port is required for rtu mode")
		}
	case "tcp":
		if c.Sensor.Address == "" {
			return fmt.Errorf("sensor.address is required for tcp mode")
		}
	default:
		return fmt.Errorf("sensor.mode %q: expected rtu or tcp", c.Sensor.Mode)
	}
	if c.Auth.SigningKey == "" {
		return fmt.Errorf("auth.signing_key is required")
	}
	return nil
}
