package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type (
	APP struct {
		Name string
		Host string
		Port string
		Env  string
	}
	DB struct {
		User        string
		Password    string
		Name        string
		Host        string
		Port        string
		AutoMigrate bool
	}
	Security struct {
		BCryptCost int
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App      APP
		DB       DB
		Security Security
		MQ       MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return def
}

func Load() Config {
	app := APP{
		Name: getEnv("SERVICE_NAME", "userregistry"),
		Host: getEnv("SERVICE_HOST", ""),
		Port: getEnv("SERVICE_PORT", "8080"),
		Env:  getEnv("SERVICE_ENV", ""),
	}
	db := DB{
		User:        getEnv("POSTGRES_USER", ""),
		Password:    getEnv("POSTGRES_PASSWORD", ""),
		Name:        getEnv("POSTGRES_DB", ""),
		Host:        getEnv("POSTGRES_HOST", ""),
		Port:        getEnv("POSTGRES_PORT", ""),
		AutoMigrate: getEnvAsBool("POSTGRES_AUTOMIGRATE", false),
	}
	sec := Security{
		BCryptCost: getEnvAsInt("BCRYPT_COST", 10),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "users"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "users.registered"),
	}

	return Config{
		App:      app,
		DB:       db,
		Security: sec,
		MQ:       mq,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
