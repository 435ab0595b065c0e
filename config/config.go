// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	LoadFixtures = pflag.String("load-fixtures", "", "Loads catalog fixtures from a JSON file and exits")

	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers    = []string{"sqlite", "postgres"}
	validStorageTypes = []string{"local", "s3"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.ssl_enabled", "host_ssl_enabled")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.username", "mail_username")
	v.BindEnv("mail.password", "mail_password")
	v.BindEnv("mail.from", "mail_from")
	v.BindEnv("mail.send_timeout", "mail_send_timeout")

	v.BindEnv("storage.type", "storage_type")
	v.BindEnv("storage.local_path", "storage_local_path")
	v.BindEnv("storage.s3.region", "storage_s3_region")
	v.BindEnv("storage.s3.access_key_id", "storage_s3_access_key_id")
	v.BindEnv("storage.s3.secret_access_key", "storage_s3_secret_access_key")
	v.BindEnv("storage.s3.bucket", "storage_s3_bucket")

	v.BindEnv("upload.max_size", "upload_max_size")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.ssl_enabled", false)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.send_timeout", 10)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "uploads")

	v.SetDefault("upload.max_size", 10)

	v.SetDefault("content.forbidden_words", []string{})
	v.SetDefault("resend.cooldown_minutes", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return errors.New("invalid db driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("db.dsn can't be empty")
	}

	if v.GetString("jwt.secret") == "" {
		return errors.New("no JWT secret provided. Set jwt.secret in config.toml or the JWT_SECRET environment variable")
	}

	if v.GetString("mail.host") == "" {
		return errors.New("mail.host can't be empty")
	}

	if v.GetString("mail.from") == "" {
		return errors.New("mail.from can't be empty")
	}

	if v.GetInt("mail.send_timeout") <= 0 {
		return errors.New("mail.send_timeout must be bigger than 0")
	}

	switch v.GetString("storage.type") {
	case "s3":
		if v.GetString("storage.s3.region") == "" {
			return errors.New("s3 region can't be empty")
		}
		if v.GetString("storage.s3.access_key_id") == "" {
			return errors.New("s3 access key id can't be empty")
		}
		if v.GetString("storage.s3.secret_access_key") == "" {
			return errors.New("s3 secret access key can't be empty")
		}
		if v.GetString("storage.s3.bucket") == "" {
			return errors.New("s3 bucket can't be empty")
		}
	case "local":
		if v.GetString("storage.local_path") == "" {
			return errors.New("storage.local_path can't be empty")
		}
	default:
		return errors.New("invalid storage type provided")
	}

	if !slices.Contains(validStorageTypes, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	// Config value is in MiB
	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
