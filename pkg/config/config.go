package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the faucet service configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Faucet    FaucetConfig    `mapstructure:"faucet"`
	Networks  []NetworkConfig `mapstructure:"networks" validate:"min=1,dive"`
	Broadcast BroadcastConfig `mapstructure:"broadcast"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// FaucetConfig describes where the shared sender keypair comes from.
// The private key never appears in the config file itself: it is read
// either from the environment variable named by private_key_env, or from
// an AES-GCM encrypted key file unlocked by the master key environment
// variable.
type FaucetConfig struct {
	PublicKey        string `mapstructure:"public_key"`
	PublicKeyEnv     string `mapstructure:"public_key_env"`
	PrivateKeyEnv    string `mapstructure:"private_key_env"`
	EncryptedKeyFile string `mapstructure:"encrypted_key_file"`
	MasterKeyEnv     string `mapstructure:"master_key_env"`
}

// NetworkConfig declares one target network. Amounts are given in the
// human denomination ("1.0" = 1 MINA) and converted to nanomina at load.
type NetworkConfig struct {
	ID       string `mapstructure:"id" validate:"required"`
	Endpoint string `mapstructure:"endpoint" validate:"required"`
	Payout   string `mapstructure:"payout" validate:"required"`
	Fee      string `mapstructure:"fee" validate:"required"`
}

// BroadcastConfig contains outbound ledger-broadcast client settings
type BroadcastConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.database", "faucet")

	// Faucet key defaults, matching the environment names the deployment
	// scripts already export
	viper.SetDefault("faucet.public_key_env", "FAUCET_PUBLICKEY")
	viper.SetDefault("faucet.private_key_env", "FAUCET_PRIVATEKEY")
	viper.SetDefault("faucet.master_key_env", "FAUCET_MASTERKEY")

	// Broadcast defaults
	viper.SetDefault("broadcast.request_timeout", "30s")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output_path", "stdout")
}

// Validate runs struct tag validation plus the checks tags cannot express
// (endpoint URLs, duplicate network ids).
func Validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(config.Networks))
	for _, n := range config.Networks {
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("duplicate network id %q", n.ID)
		}
		seen[n.ID] = struct{}{}

		u, err := url.Parse(n.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("network %q: endpoint %q is not an absolute URL", n.ID, n.Endpoint)
		}
	}
	return nil
}
