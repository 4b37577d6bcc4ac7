package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig
	Client ClientConfig
}

type ServerConfig struct {
	Address          string
	MailboxCapacity  int
	SeedAccountsFile string
}

type ClientConfig struct {
	PollInterval time.Duration
	DialTimeout  time.Duration
	CallTimeout  time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Address:          getEnvString("BANK_SERVER_ADDRESS", "localhost:8000"),
			MailboxCapacity:  getEnvInt("BANK_MAILBOX_CAPACITY", 1024),
			SeedAccountsFile: getEnvString("BANK_SEED_ACCOUNTS_FILE", "accounts.yaml"),
		},
		Client: ClientConfig{
			PollInterval: getEnvDuration("CLIENT_POLL_INTERVAL", time.Second),
			DialTimeout:  getEnvDuration("CLIENT_DIAL_TIMEOUT", 5*time.Second),
			CallTimeout:  getEnvDuration("CLIENT_CALL_TIMEOUT", 10*time.Second),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
