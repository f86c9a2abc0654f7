// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Validator checks one aspect of a loaded configuration
type Validator interface {
	Validate(cfg *Config) error
}

type check func(cfg *Config) error

func runChecks(cfg *Config, checks []check) error {
	for _, c := range checks {
		if err := c(cfg); err != nil {
			return err
		}
	}
	return nil
}

// BasicValidator holds the checks every environment must pass
type BasicValidator struct{}

func (v *BasicValidator) Validate(cfg *Config) error {
	return runChecks(cfg, []check{
		requireSet,
		checkPools,
		checkUploads,
		checkAuth,
		checkBackground,
	})
}

// ProductionValidator adds the hardening production requires
type ProductionValidator struct{}

func (v *ProductionValidator) Validate(cfg *Config) error {
	return runChecks(cfg, []check{
		checkProductionSecrets,
		checkProductionTransport,
	})
}

// requireSet rejects empty values and the MISSING_ placeholder left by
// deploy templates.
func requireSet(cfg *Config) error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"Database.Host", cfg.Database.Host},
		{"Database.Name", cfg.Database.Name},
		{"Server.Port", cfg.Server.Port},
	} {
		if f.value == "" || strings.HasPrefix(f.value, "MISSING_") {
			return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, f.name)
		}
	}
	return nil
}

func checkPools(cfg *Config) error {
	if cfg.Database.MaxConnections < cfg.Database.MinConnections {
		return errors.New("database max_connections must be >= min_connections")
	}
	if cfg.Redis.PoolSize <= 0 {
		return errors.New("redis pool_size must be positive")
	}
	if cfg.Security.RateLimitRequests <= 0 {
		return errors.New("rate_limit_requests must be positive")
	}
	return nil
}

func checkUploads(cfg *Config) error {
	if cfg.FileProcessing.ExcelMaxSizeMB <= 0 {
		return errors.New("excel_max_size_mb must be positive")
	}
	if cfg.FileProcessing.UploadRetention < 0 {
		return errors.New("upload_retention cannot be negative")
	}
	return nil
}

func checkAuth(cfg *Config) error {
	if cfg.Auth.AuthDomain != "" {
		u, err := url.Parse(cfg.Auth.AuthDomain)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("auth domain %q must be an absolute URL", cfg.Auth.AuthDomain)
		}
	}
	if (cfg.Auth.UserName == "") != (cfg.Auth.UserPassword == "") {
		return errors.New("warehouse user name and password must be set together")
	}
	return nil
}

// checkBackground covers the optional queue and event settings
func checkBackground(cfg *Config) error {
	if cfg.Kafka.Enabled() && cfg.Kafka.Topic == "" {
		return fmt.Errorf("%w: kafka topic", ErrMissingRequiredConfig)
	}
	if cfg.Asynq.RedisAddr != "" && cfg.Asynq.Concurrency <= 0 {
		return errors.New("asynq concurrency must be positive")
	}
	return nil
}

func checkProductionSecrets(cfg *Config) error {
	if strings.Contains(cfg.Database.Password, "MISSING_") {
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	}
	if cfg.Auth.UserName == "" || cfg.Auth.UserPassword == "" {
		return fmt.Errorf("%w: warehouse user credentials", ErrMissingRequiredConfig)
	}
	return nil
}

func checkProductionTransport(cfg *Config) error {
	if cfg.Database.SSLMode == "disable" {
		return errors.New("database SSL must be enabled in production")
	}
	if !cfg.Security.SecureHeaders {
		return errors.New("secure headers must be enabled in production")
	}
	if slices.Contains(cfg.Security.AllowedOrigins, "*") {
		return errors.New("wildcard origin (*) not allowed in production")
	}
	if cfg.Server.TLSEnabled && (cfg.Server.TLSCertFile == "" || cfg.Server.TLSKeyFile == "") {
		return errors.New("TLS cert and key files must be provided when TLS is enabled")
	}
	return nil
}
