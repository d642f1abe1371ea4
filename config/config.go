// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validStorageTypes = []string{"s3", "local"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can start
// working. Returns an error if something is critically wrong and the
// application can't run because of that.
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

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("db.path", "db_path")

	v.BindEnv("feed.page_size", "feed_page_size")

	v.BindEnv("storage.type", "storage_type")
	v.BindEnv("storage.local_dir", "storage_local_dir")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("aws.access_key", "aws_access_key")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("db.path", "social.db")

	v.SetDefault("feed.page_size", 2)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_dir", "images")

	// In MiB, shifted to bytes at the end
	v.SetDefault("upload.max_size", 10)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("feed.page_size") <= 0 {
		return errors.New("feed.page_size must be bigger than 0")
	}

	// The signing key is injected configuration. Refuse to run without one
	// instead of falling back to a hardcoded literal
	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	switch v.GetString("storage.type") {
	case "s3":
		{
			if v.GetString("aws.access_key") == "" {
				return errors.New("aws access key can't be empty")
			}
			if v.GetString("aws.secret_access_key") == "" {
				return errors.New("aws secret access key can't be empty")
			}
			if v.GetString("aws.region") == "" {
				return errors.New("aws region can't be empty")
			}
			if v.GetString("aws.bucket") == "" {
				return errors.New("aws bucket can't be empty")
			}
		}
	case "local":
		{
			if v.GetString("storage.local_dir") == "" {
				return errors.New("storage.local_dir can't be empty")
			}
		}
	default:
		return errors.New("invalid storage type provided")
	}

	if !slices.Contains(validStorageTypes, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
