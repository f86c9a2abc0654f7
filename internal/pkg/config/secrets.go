// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManager resolves credentials by key
type SecretsManager interface {
	GetSecrets(ctx context.Context, keys []string) (map[string]string, error)
}

// secretValueAPI is the part of the Secrets Manager client in use
type secretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// secretTargets maps secret keys to the settings they override. The keys
// match the environment variables so one secret can replace a .env file.
func (c *Config) secretTargets() map[string][]*string {
	return map[string][]*string{
		"MS_WAREHOUSE_PASSWORD":      {&c.Database.Password},
		"MS_WAREHOUSE_USER_PASSWORD": {&c.Auth.UserPassword},
		"REDIS_PASSWORD":             {&c.Redis.Password, &c.Asynq.RedisPassword},
		"AWS_SECRET_ACCESS_KEY":      {&c.AWS.SecretAccessKey},
	}
}

// ApplySecrets replaces credentials with the values held by sm. Keys the
// manager does not know keep their environment value.
func (c *Config) ApplySecrets(ctx context.Context, sm SecretsManager) error {
	targets := c.secretTargets()
	secrets, err := sm.GetSecrets(ctx, slices.Sorted(maps.Keys(targets)))
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	for key, fields := range targets {
		v, ok := secrets[key]
		if !ok {
			continue
		}
		for _, f := range fields {
			*f = v
		}
	}
	return nil
}

// loadSecrets overlays credentials from AWS Secrets Manager
func (c *Config) loadSecrets(ctx context.Context, logger *slog.Logger) error {
	sm, err := NewAWSSecretsManager(ctx, c.AWS.Region, c.AWS.SecretName, logger)
	if err != nil {
		return err
	}
	return c.ApplySecrets(ctx, sm)
}

// AWSSecretsManager reads one JSON secret of key to value and keeps it for
// a few minutes.
type AWSSecretsManager struct {
	client     secretValueAPI
	secretName string
	ttl        time.Duration
	logger     *slog.Logger

	mu        sync.Mutex
	values    map[string]string
	fetchedAt time.Time
}

func NewAWSSecretsManager(ctx context.Context, region, secretName string, logger *slog.Logger) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newAWSSecretsManager(secretsmanager.NewFromConfig(cfg), secretName, logger), nil
}

func newAWSSecretsManager(client secretValueAPI, secretName string, logger *slog.Logger) *AWSSecretsManager {
	return &AWSSecretsManager{
		client:     client,
		secretName: secretName,
		ttl:        5 * time.Minute,
		logger:     logger.With(slog.String("secret_name", secretName)),
	}
}

// GetSecret returns one key or an error when the secret lacks it
func (sm *AWSSecretsManager) GetSecret(ctx context.Context, key string) (string, error) {
	secrets, err := sm.GetSecrets(ctx, []string{key})
	if err != nil {
		return "", err
	}
	v, ok := secrets[key]
	if !ok {
		return "", fmt.Errorf("secret key %s not found", key)
	}
	return v, nil
}

// GetSecrets returns the requested keys present in the secret
func (sm *AWSSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	values, err := sm.load(ctx)
	if err != nil {
		return nil, err
	}

	found := make(map[string]string, len(keys))
	for _, key := range keys {
		if v, ok := values[key]; ok {
			found[key] = v
		}
	}
	return found, nil
}

func (sm *AWSSecretsManager) load(ctx context.Context) (map[string]string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.values != nil && time.Since(sm.fetchedAt) < sm.ttl {
		return sm.values, nil
	}

	sm.logger.InfoContext(ctx, "fetching secrets from AWS Secrets Manager")
	out, err := sm.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(sm.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret value: %w", err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", sm.secretName)
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(*out.SecretString), &values); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}

	sm.values = values
	sm.fetchedAt = time.Now()
	return values, nil
}
