package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" or "mysql"
	DSN    string `mapstructure:"dsn"`
}

// BootstrapConfig describes the admin account seeded on first start.
// Seeding is skipped when Username is empty.
type BootstrapConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type Config struct {
	HTTPPort    int             `mapstructure:"http_port"`
	LogLevel    string          `mapstructure:"log_level"`
	Database    DatabaseConfig  `mapstructure:"database"`
	JwtSecret   string          `mapstructure:"jwt_secret"`
	BcryptCost  int             `mapstructure:"bcrypt_cost"`
	StreamLimit int             `mapstructure:"stream_limit"`
	Bootstrap   BootstrapConfig `mapstructure:"bootstrap"`
}

var AppConfig Config

func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable overrides
	viper.SetEnvPrefix("SOCIALSTREAM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("http_port", 8080)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "social.db")
	viper.SetDefault("jwt_secret", "default-very-insecure-secret-key") // CHANGE THIS IN PRODUCTION
	viper.SetDefault("bcrypt_cost", 12)
	viper.SetDefault("stream_limit", 100)
	viper.SetDefault("bootstrap.username", "")
	viper.SetDefault("bootstrap.email", "")
	viper.SetDefault("bootstrap.password", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Config file not found, using defaults and environment variables.")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		panic(fmt.Errorf("unable to decode config into struct: %w", err))
	}
}
