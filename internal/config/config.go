package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7070"`
	Redis             Redis         `yaml:"redis"`
	SessionTTL        time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	SweepInterval     time.Duration `yaml:"sweep-interval" env:"SWEEP_INTERVAL" env-default:"1m"`
	SQLiteStoragePath string        `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"mindgames.db"`
	Memory            Memory        `yaml:"memory"`
	Scramble          Scramble      `yaml:"scramble"`
	Random            Random        `yaml:"random"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Memory struct {
	ResolveDelay time.Duration `yaml:"resolve-delay" env:"MEMORY_RESOLVE_DELAY" env-default:"1s"`
	// Pairs are the card faces; empty means the built-in set.
	Pairs []string `yaml:"pairs" env:"MEMORY_PAIRS"`
}

type Scramble struct {
	Words []string `yaml:"words" env:"SCRAMBLE_WORDS"`
}

// Random selects how game sessions draw randomness. With a server seed every
// deal can be replayed from the seed and the session id; a non-zero seed makes
// the whole server deterministic.
type Random struct {
	Seed       uint64 `yaml:"seed" env:"RANDOM_SEED" env-default:"0"`
	ServerSeed string `yaml:"server-seed" env:"RANDOM_SERVER_SEED"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
