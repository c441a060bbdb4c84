package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the auth bridge
type Config struct {
	// Server
	Port     string `yaml:"port"`
	Host     string `yaml:"host"`
	LogLevel string `yaml:"log_level"`

	// Database
	DatabaseHost     string `yaml:"db_host"`
	DatabasePort     string `yaml:"db_port"`
	DatabaseName     string `yaml:"db_name"`
	DatabaseUser     string `yaml:"db_user"`
	DatabasePassword string `yaml:"db_password"`
	DatabaseSSLMode  string `yaml:"db_ssl_mode"`

	// Directory (LDAP)
	LDAP LDAPConfig `yaml:"ldap"`

	// Session
	SessionSecret  string        `yaml:"session_secret"`
	SessionTimeout time.Duration `yaml:"session_timeout"`

	// Features
	EnableAuditLog bool `yaml:"enable_audit_log"`
}

// LDAPConfig holds the directory connection and attribute-mapping settings.
// The regex patterns and capture-group indices drive the attribute codec;
// they are validated once at startup so a malformed pattern fails loudly
// instead of being swallowed at decode time.
type LDAPConfig struct {
	URL          string        `yaml:"url"`
	BindDN       string        `yaml:"bind_dn"`
	BindPassword string        `yaml:"bind_password"`
	BaseDN       string        `yaml:"base_dn"`
	Timeout      time.Duration `yaml:"timeout"`

	// Attribute names on the principal's entry
	UsernameAttribute  string `yaml:"username_attribute"`
	EmailAttribute     string `yaml:"email_attribute"`
	FirstNameAttribute string `yaml:"first_name_attribute"`
	LastNameAttribute  string `yaml:"last_name_attribute"`
	SiteIDAttribute    string `yaml:"site_id_attribute"`
	GroupNameAttribute string `yaml:"group_name_attribute"`

	// Composite site attribute decoding: a full-string regex whose capture
	// groups carry the site key and, optionally, an embedded group name
	SiteIDRegex         string `yaml:"site_id_regex"`
	SiteIDMatchIndex    int    `yaml:"site_id_match_index"`
	SiteGroupMatchIndex int    `yaml:"site_group_match_index"`
	GroupNameRegex      string `yaml:"group_name_regex"`
	GroupNameMatchIndex int    `yaml:"group_name_match_index"`

	// Tenant keys
	DefaultSiteID string `yaml:"default_site_id"`
	SystemSiteID  string `yaml:"system_site_id"`
}

// Load reads configuration from an optional YAML file (CONFIG_FILE) with
// environment variables taking precedence
func Load() (*Config, error) {
	config := &Config{}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", defaultString(config.Port, "9500"))
	config.Host = getEnvOrDefault("HOST", defaultString(config.Host, "0.0.0.0"))
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", defaultString(config.LogLevel, "info"))

	// Database configuration
	config.DatabaseHost = getEnvOrDefault("DB_HOST", defaultString(config.DatabaseHost, "auth-postgres"))
	config.DatabasePort = getEnvOrDefault("DB_PORT", defaultString(config.DatabasePort, "5432"))
	config.DatabaseName = getEnvOrDefault("DB_NAME", defaultString(config.DatabaseName, "auth_bridge_db"))
	config.DatabaseUser = getEnvOrDefault("DB_USER", defaultString(config.DatabaseUser, "auth_bridge"))
	config.DatabasePassword = getEnvOrDefault("DB_PASSWORD", config.DatabasePassword)
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", defaultString(config.DatabaseSSLMode, "require"))

	// Directory configuration
	config.LDAP.URL = getEnvOrDefault("LDAP_URL", config.LDAP.URL)
	if config.LDAP.URL == "" {
		return nil, fmt.Errorf("LDAP_URL is required")
	}
	config.LDAP.BindDN = getEnvOrDefault("LDAP_BIND_DN", config.LDAP.BindDN)
	config.LDAP.BindPassword = getEnvOrDefault("LDAP_BIND_PASSWORD", config.LDAP.BindPassword)
	config.LDAP.BaseDN = getEnvOrDefault("LDAP_BASE_DN", config.LDAP.BaseDN)
	if config.LDAP.BaseDN == "" {
		return nil, fmt.Errorf("LDAP_BASE_DN is required")
	}

	timeoutStr := getEnvOrDefault("LDAP_TIMEOUT", "")
	if timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid LDAP_TIMEOUT: %w", err)
		}
		config.LDAP.Timeout = timeout
	}
	if config.LDAP.Timeout == 0 {
		config.LDAP.Timeout = 10 * time.Second
	}

	config.LDAP.UsernameAttribute = getEnvOrDefault("LDAP_ATTR_USERNAME", defaultString(config.LDAP.UsernameAttribute, "uid"))
	config.LDAP.EmailAttribute = getEnvOrDefault("LDAP_ATTR_EMAIL", defaultString(config.LDAP.EmailAttribute, "mail"))
	config.LDAP.FirstNameAttribute = getEnvOrDefault("LDAP_ATTR_FIRST_NAME", defaultString(config.LDAP.FirstNameAttribute, "givenName"))
	config.LDAP.LastNameAttribute = getEnvOrDefault("LDAP_ATTR_LAST_NAME", defaultString(config.LDAP.LastNameAttribute, "sn"))
	config.LDAP.SiteIDAttribute = getEnvOrDefault("LDAP_ATTR_SITE_ID", defaultString(config.LDAP.SiteIDAttribute, "crafterSite"))
	config.LDAP.GroupNameAttribute = getEnvOrDefault("LDAP_ATTR_GROUP_NAME", defaultString(config.LDAP.GroupNameAttribute, "memberOf"))

	config.LDAP.SiteIDRegex = getEnvOrDefault("LDAP_SITE_ID_REGEX", defaultString(config.LDAP.SiteIDRegex, `(.+)`))
	config.LDAP.GroupNameRegex = getEnvOrDefault("LDAP_GROUP_NAME_REGEX", defaultString(config.LDAP.GroupNameRegex, `(.+)`))

	var err error
	config.LDAP.SiteIDMatchIndex, err = getIntEnv("LDAP_SITE_ID_MATCH_INDEX", defaultInt(config.LDAP.SiteIDMatchIndex, 1))
	if err != nil {
		return nil, err
	}
	config.LDAP.SiteGroupMatchIndex, err = getIntEnv("LDAP_SITE_GROUP_MATCH_INDEX", defaultInt(config.LDAP.SiteGroupMatchIndex, 2))
	if err != nil {
		return nil, err
	}
	config.LDAP.GroupNameMatchIndex, err = getIntEnv("LDAP_GROUP_NAME_MATCH_INDEX", defaultInt(config.LDAP.GroupNameMatchIndex, 1))
	if err != nil {
		return nil, err
	}

	config.LDAP.DefaultSiteID = getEnvOrDefault("LDAP_DEFAULT_SITE_ID", defaultString(config.LDAP.DefaultSiteID, "default"))
	config.LDAP.SystemSiteID = getEnvOrDefault("SYSTEM_SITE_ID", defaultString(config.LDAP.SystemSiteID, "studio_root"))

	// Session configuration
	config.SessionSecret = getEnvOrDefault("SESSION_SECRET", config.SessionSecret)
	if config.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	sessionTimeoutStr := getEnvOrDefault("SESSION_TIMEOUT", "")
	if sessionTimeoutStr != "" {
		config.SessionTimeout, err = time.ParseDuration(sessionTimeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TIMEOUT: %w", err)
		}
	}
	if config.SessionTimeout == 0 {
		config.SessionTimeout = 24 * time.Hour
	}

	// Feature flags
	config.EnableAuditLog = getBoolEnv("ENABLE_AUDIT_LOG", true)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if !strings.HasPrefix(c.LDAP.URL, "ldap://") && !strings.HasPrefix(c.LDAP.URL, "ldaps://") {
		return fmt.Errorf("LDAP URL must start with ldap:// or ldaps://: %s", c.LDAP.URL)
	}

	if c.LDAP.SiteIDMatchIndex < 1 {
		return fmt.Errorf("site ID match index must be at least 1, got: %d", c.LDAP.SiteIDMatchIndex)
	}
	if c.LDAP.GroupNameMatchIndex < 1 {
		return fmt.Errorf("group name match index must be at least 1, got: %d", c.LDAP.GroupNameMatchIndex)
	}

	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("session secret must be at least 32 bytes, got: %d", len(c.SessionSecret))
	}

	if c.SessionTimeout < time.Minute {
		return fmt.Errorf("session timeout must be at least 1 minute, got: %v", c.SessionTimeout)
	}

	return nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultString(current, fallback string) string {
	if current != "" {
		return current
	}
	return fallback
}

func defaultInt(current, fallback int) int {
	if current != 0 {
		return current
	}
	return fallback
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
