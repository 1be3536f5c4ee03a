package env

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidConfig indicates the captured environment cannot be acted on.
var ErrInvalidConfig = errors.New("invalid environment configuration")

// Validate checks the constraints that hold for every operation: the cache
// backends are mutually exclusive, and a site UUID (when present) must be a
// well-formed RFC 4122 UUID since it is handed verbatim to drush.
func (c *Config) Validate() error {
	if c.RedisEnabled && c.MemcacheEnabled {
		return fmt.Errorf("%w: %s and %s are mutually exclusive", ErrInvalidConfig, EnvVarRedisEnabled, EnvVarMemcacheEnabled)
	}

	if c.SiteUUID != "" {
		if _, err := uuid.Parse(c.SiteUUID); err != nil {
			return fmt.Errorf("%w: %s is not a valid UUID: %w", ErrInvalidConfig, EnvVarSiteUUID, err)
		}
	}

	return nil
}

// ValidateForBuild applies Validate plus the build pipeline's own
// requirement: without an install profile, site-install cannot run and the
// whole pipeline must abort before doing any work.
func (c *Config) ValidateForBuild() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.InstallProfile == "" {
		return fmt.Errorf("%w: %s must be set", ErrInvalidConfig, EnvVarInstallProfile)
	}

	return nil
}

// Present lists the recognized variables that carried a value, in
// declaration order. It is intended for debug logging; values are withheld
// so tokens and passwords never reach a log file.
func (c *Config) Present() []string {
	checks := []struct {
		name string
		set  bool
	}{
		{EnvVarEnvironment, c.Environment != ""},
		{EnvVarInstallProfile, c.InstallProfile != ""},
		{EnvVarSiteID, c.SiteID != ""},
		{EnvVarURL, c.URL != ""},
		{EnvVarToken, c.Token != ""},
		{EnvVarTokenFile, c.TokenFile != ""},
		{EnvVarSecretPath, c.SecretPath != ""},
		{EnvVarReverseProxy, c.ReverseProxy},
		{EnvVarReverseProxyAddresses, c.ReverseProxyAddresses != ""},
		{EnvVarSiteUUID, c.SiteUUID != ""},
		{EnvVarSiteTitle, c.SiteTitle != ""},
		{EnvVarSiteMail, c.SiteMail != ""},
		{EnvVarSiteAdminEmail, c.SiteAdminEmail != ""},
		{EnvVarSiteAdminUsername, c.SiteAdminUsername != ""},
		{EnvVarSiteAdminPassword, c.SiteAdminPassword != ""},
		{EnvVarDatabaseDriver, c.DatabaseDriver != ""},
		{EnvVarDatabaseHost, c.DatabaseHost != ""},
		{EnvVarDatabasePort, c.DatabasePort != ""},
		{EnvVarDatabaseName, c.DatabaseName != ""},
		{EnvVarDatabaseUser, c.DatabaseUser != ""},
		{EnvVarDatabasePassword, c.DatabasePassword != ""},
		{EnvVarDatabasePrefix, c.DatabasePrefix != ""},
		{EnvVarSQLiteDatabase, c.SQLiteDatabase != ""},
		{EnvVarPrivateDir, c.PrivateDir != ""},
		{EnvVarTmpDir, c.TmpDir != ""},
		{EnvVarHashSalt, c.HashSalt != ""},
		{EnvVarRedisEnabled, c.RedisEnabled},
		{EnvVarRedisHost, c.RedisHost != ""},
		{EnvVarRedisPort, c.RedisPort != ""},
		{EnvVarRedisPassword, c.RedisPassword != ""},
		{EnvVarMemcacheEnabled, c.MemcacheEnabled},
		{EnvVarMemcacheHost, c.MemcacheHost != ""},
		{EnvVarMemcachePort, c.MemcachePort != ""},
		{EnvVarTrustedHostPatterns, c.TrustedHostPatterns != ""},
		{EnvVarImportConfig, c.ImportConfig},
		{EnvVarXdebugConfig, c.XdebugConfig != ""},
	}

	var present []string
	for _, check := range checks {
		if check.set {
			present = append(present, check.name)
		}
	}

	return present
}
