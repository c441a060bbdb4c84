package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "db-secret")
	t.Setenv("LDAP_URL", "ldap://directory.example.com:389")
	t.Setenv("LDAP_BASE_DN", "dc=example,dc=com")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9500", cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "require", cfg.DatabaseSSLMode)

	assert.Equal(t, 10*time.Second, cfg.LDAP.Timeout)
	assert.Equal(t, "uid", cfg.LDAP.UsernameAttribute)
	assert.Equal(t, "mail", cfg.LDAP.EmailAttribute)
	assert.Equal(t, "givenName", cfg.LDAP.FirstNameAttribute)
	assert.Equal(t, "sn", cfg.LDAP.LastNameAttribute)
	assert.Equal(t, "crafterSite", cfg.LDAP.SiteIDAttribute)
	assert.Equal(t, "memberOf", cfg.LDAP.GroupNameAttribute)

	assert.Equal(t, `(.+)`, cfg.LDAP.SiteIDRegex)
	assert.Equal(t, 1, cfg.LDAP.SiteIDMatchIndex)
	assert.Equal(t, 2, cfg.LDAP.SiteGroupMatchIndex)
	assert.Equal(t, `(.+)`, cfg.LDAP.GroupNameRegex)
	assert.Equal(t, 1, cfg.LDAP.GroupNameMatchIndex)

	assert.Equal(t, "default", cfg.LDAP.DefaultSiteID)
	assert.Equal(t, "studio_root", cfg.LDAP.SystemSiteID)

	assert.Equal(t, 24*time.Hour, cfg.SessionTimeout)
	assert.True(t, cfg.EnableAuditLog)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("LDAP_TIMEOUT", "3s")
	t.Setenv("LDAP_SITE_ID_REGEX", `site_(.+)_([a-z]+)`)
	t.Setenv("LDAP_SITE_ID_MATCH_INDEX", "1")
	t.Setenv("LDAP_SITE_GROUP_MATCH_INDEX", "2")
	t.Setenv("SESSION_TIMEOUT", "2h")
	t.Setenv("ENABLE_AUDIT_LOG", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.LDAP.Timeout)
	assert.Equal(t, `site_(.+)_([a-z]+)`, cfg.LDAP.SiteIDRegex)
	assert.Equal(t, 2*time.Hour, cfg.SessionTimeout)
	assert.False(t, cfg.EnableAuditLog)
}

func TestLoad_ConfigFile(t *testing.T) {
	setRequiredEnv(t)

	content := []byte(`
port: "9600"
ldap:
  default_site_id: intranet
  group_name_regex: "CN=([^,]+),.*"
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9600", cfg.Port)
	assert.Equal(t, "intranet", cfg.LDAP.DefaultSiteID)
	assert.Equal(t, "CN=([^,]+),.*", cfg.LDAP.GroupNameRegex)
}

func TestLoad_RequiredValues(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "database password required", unset: "DB_PASSWORD"},
		{name: "directory URL required", unset: "LDAP_URL"},
		{name: "directory base DN required", unset: "LDAP_BASE_DN"},
		{name: "session secret required", unset: "SESSION_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:     "9500",
			LogLevel: "info",
			LDAP: LDAPConfig{
				URL:                 "ldaps://directory.example.com:636",
				SiteIDMatchIndex:    1,
				GroupNameMatchIndex: 1,
			},
			SessionSecret:  "0123456789abcdef0123456789abcdef",
			SessionTimeout: time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid configuration",
			mutate: func(c *Config) {},
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Port = "abc" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = "70000" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "non-LDAP URL scheme",
			mutate:  func(c *Config) { c.LDAP.URL = "http://directory.example.com" },
			wantErr: true,
		},
		{
			name:    "site match index below 1",
			mutate:  func(c *Config) { c.LDAP.SiteIDMatchIndex = 0 },
			wantErr: true,
		},
		{
			name:    "group match index below 1",
			mutate:  func(c *Config) { c.LDAP.GroupNameMatchIndex = 0 },
			wantErr: true,
		},
		{
			name:    "short session secret",
			mutate:  func(c *Config) { c.SessionSecret = "too-short" },
			wantErr: true,
		},
		{
			name:    "session timeout below a minute",
			mutate:  func(c *Config) { c.SessionTimeout = 30 * time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
