package config

import (
	"fmt"
	"time"

	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mq"
	"github.com/AleksSoft/Lykke.Service.Balances/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API            API            `mapstructure:"api"`
	Database       mysql.Config   `mapstructure:"database"`
	RabbitMQ       mq.Config      `mapstructure:"rabbitmq"`
	BalanceHistory BalanceHistory `mapstructure:"balancehistory"`
	Snapshots      Snapshots      `mapstructure:"snapshots"`
	Projection     Projection     `mapstructure:"projection"`
}

type API struct {
	Port string `mapstructure:"port"`
	// Debug enables the snapshot insertion endpoint. Never set in production.
	Debug bool `mapstructure:"debug"`
}

type BalanceHistory struct {
	// TimeFrame is the allowed look-back window for historical queries.
	TimeFrame     time.Duration `mapstructure:"timeframe"`
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
}

type Snapshots struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
}

type Projection struct {
	MaxRetries     uint          `mapstructure:"max_retries"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetDefault("balancehistory.timeframe", 24*time.Hour)
	viper.SetDefault("balancehistory.lookup_timeout", 2*time.Second)
	viper.SetDefault("snapshots.interval", time.Hour)
	viper.SetDefault("snapshots.batch_size", 500)
	viper.SetDefault("projection.max_retries", 5)
	viper.SetDefault("projection.initial_backoff", 100*time.Millisecond)

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
