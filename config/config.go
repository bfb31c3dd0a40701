// Package config provides configuration management for the Redsys gateway service.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the Redsys gateway service.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug bool `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	Listen  struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5100"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Log struct {
		File       string `yaml:"file" env:"LOG_FILE" env-default:""`
		MaxSize    int    `yaml:"max_size" env:"LOG_MAX_SIZE" env-default:"100"`
		MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"5"`
		MaxAge     int    `yaml:"max_age" env:"LOG_MAX_AGE" env-default:"30"`
	} `yaml:"log"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:""`
	} `yaml:"mongo"`
	Merchant struct {
		Secret          string `yaml:"secret" env:"MERCHANT_SECRET" env-default:""`
		Code            string `yaml:"code" env:"MERCHANT_CODE" env-default:""`
		Terminal        string `yaml:"terminal" env:"MERCHANT_TERMINAL" env-default:"001"`
		Name            string `yaml:"name" env:"MERCHANT_NAME" env-default:""`
		Titular         string `yaml:"titular" env:"MERCHANT_TITULAR" env-default:""`
		Currency        string `yaml:"currency" env:"MERCHANT_CURRENCY" env-default:"EUR"`
		SignatureMode   string `yaml:"signature_mode" env:"MERCHANT_SIGNATURE_MODE" env-default:"simple"`
		TestMode        bool   `yaml:"test_mode" env:"MERCHANT_TEST_MODE" env-default:"false"`
		PayMethod       string `yaml:"pay_method" env:"MERCHANT_PAY_METHOD" env-default:""`
		TransactionType string `yaml:"transaction_type" env:"MERCHANT_TRANSACTION_TYPE" env-default:"0"`
		Identifier      string `yaml:"identifier" env:"MERCHANT_IDENTIFIER" env-default:""`
		NotifyUrl       string `yaml:"notify_url" env:"MERCHANT_NOTIFY_URL" env-default:""`
		RequestUrl      string `yaml:"request_url" env:"MERCHANT_REQUEST_URL" env-default:""`
		RedirectUrl     string `yaml:"redirect_url" env:"MERCHANT_REDIRECT_URL" env-default:""`
	} `yaml:"merchant"`
	Notify struct {
		Rate  float64 `yaml:"rate" env:"NOTIFY_RATE" env-default:"20"`
		Burst int     `yaml:"burst" env:"NOTIFY_BURST" env-default:"40"`
	} `yaml:"notify"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// This function uses a singleton pattern and only loads the config once.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = Load(path)
	})
	return instance, err
}

// Load reads a configuration without touching the GetConfig singleton.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("load config: %w; %s", err, desc)
	}
	return conf, nil
}
