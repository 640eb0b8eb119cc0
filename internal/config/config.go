package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for EduGuard
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Sanitization SanitizationConfig `yaml:"sanitization"`
	Audit        AuditConfig        `yaml:"audit"`
	Devices      DevicesConfig      `yaml:"devices"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
	JWTSecret   string `yaml:"jwt_secret"`
}

// SanitizationConfig holds sanitization policy configuration
type SanitizationConfig struct {
	PseudonymSalt       string `yaml:"pseudonym_salt"`
	StrictMode          bool   `yaml:"strict_mode"`
	KAnonymityThreshold int64  `yaml:"k_anonymity_threshold"`
}

// AuditConfig holds audit logging configuration
type AuditConfig struct {
	Enabled       bool   `yaml:"enabled"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"` // empty disables the embedded store
}

// DevicesConfig holds device registry configuration
type DevicesConfig struct {
	DefaultCapabilities []string `yaml:"default_capabilities"`
}

// Load loads configuration from a YAML file, expanding environment
// variables first
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	cfg := LoadFromEnv()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables with
// sensible defaults
func LoadFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnvInt("PORT", 3010),
			Environment: getEnv("ENVIRONMENT", "development"),
			JWTSecret:   getEnv("JWT_SECRET", ""),
		},
		Sanitization: SanitizationConfig{
			PseudonymSalt:       getEnv("PSEUDONYM_SALT", ""),
			StrictMode:          getEnvBool("STRICT_MODE", true),
			KAnonymityThreshold: int64(getEnvInt("K_ANONYMITY_THRESHOLD", 5)),
		},
		Audit: AuditConfig{
			Enabled:       getEnvBool("AUDIT_ENABLED", true),
			RetentionDays: getEnvInt("AUDIT_RETENTION_DAYS", 365),
			StoragePath:   getEnv("AUDIT_STORAGE_PATH", ""),
		},
		Devices: DevicesConfig{
			DefaultCapabilities: []string{"STUDENT_BASIC_INFO"},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
