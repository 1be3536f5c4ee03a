// Package env assembles the process environment into a typed configuration
// object, read once at startup and passed into every component that needs it.
// The variables listed here are the tool's sole runtime configuration
// surface; most of them are also re-read by the generated settings block when
// Drupal itself boots, so the names form a contract shared with the emitted
// PHP.
package env

import (
	"os"
	"strconv"
	"strings"
)

const (
	// Shepherd platform identity.
	EnvVarEnvironment           = "SHEPHERD_ENVIRONMENT"
	EnvVarInstallProfile        = "SHEPHERD_INSTALL_PROFILE"
	EnvVarSiteID                = "SHEPHERD_SITE_ID"
	EnvVarURL                   = "SHEPHERD_URL"
	EnvVarToken                 = "SHEPHERD_TOKEN"
	EnvVarTokenFile             = "SHEPHERD_TOKEN_FILE"
	EnvVarSecretPath            = "SHEPHERD_SECRET_PATH"
	EnvVarReverseProxy          = "SHEPHERD_REVERSE_PROXY"
	EnvVarReverseProxyAddresses = "SHEPHERD_REVERSE_PROXY_ADDRESSES"

	// Site identity.
	EnvVarSiteUUID          = "SITE_UUID"
	EnvVarSiteTitle         = "SITE_TITLE"
	EnvVarSiteMail          = "SITE_MAIL"
	EnvVarSiteAdminEmail    = "SITE_ADMIN_EMAIL"
	EnvVarSiteAdminUsername = "SITE_ADMIN_USERNAME"
	EnvVarSiteAdminPassword = "SITE_ADMIN_PASSWORD"

	// Database connection.
	EnvVarDatabaseDriver   = "DATABASE_DRIVER"
	EnvVarDatabaseHost     = "DATABASE_HOST"
	EnvVarDatabasePort     = "DATABASE_PORT"
	EnvVarDatabaseName     = "DATABASE_NAME"
	EnvVarDatabaseUser     = "DATABASE_USER"
	EnvVarDatabasePassword = "DATABASE_PASSWORD"
	EnvVarDatabasePrefix   = "DATABASE_PREFIX"
	EnvVarSQLiteDatabase   = "SQLITE_DATABASE"

	// Site filesystem paths.
	EnvVarPrivateDir = "PRIVATE_DIR"
	EnvVarTmpDir     = "TMP_DIR"

	EnvVarHashSalt = "HASH_SALT"

	// Cache backends. At most one may be enabled.
	EnvVarRedisEnabled    = "REDIS_ENABLED"
	EnvVarRedisHost       = "REDIS_HOST"
	EnvVarRedisPort       = "REDIS_PORT"
	EnvVarRedisPassword   = "REDIS_PASSWORD"
	EnvVarMemcacheEnabled = "MEMCACHE_ENABLED"
	EnvVarMemcacheHost    = "MEMCACHE_HOST"
	EnvVarMemcachePort    = "MEMCACHE_PORT"

	EnvVarTrustedHostPatterns = "TRUSTED_HOST_PATTERNS"
	EnvVarImportConfig        = "IMPORT_CONFIG"
	EnvVarXdebugConfig        = "XDEBUG_CONFIG"
)

// Config carries every recognized environment variable, captured once via
// FromEnvironment. Components receive it by reference instead of querying
// the process environment themselves, which keeps tests deterministic.
type Config struct {
	// Shepherd platform identity.
	Environment           string
	InstallProfile        string
	SiteID                string
	URL                   string
	Token                 string
	TokenFile             string
	SecretPath            string
	ReverseProxy          bool
	ReverseProxyAddresses string

	// Site identity, consumed by site-install and the identity-sync step.
	SiteUUID          string
	SiteTitle         string
	SiteMail          string
	SiteAdminEmail    string
	SiteAdminUsername string
	SiteAdminPassword string

	// Database connection. SQLiteDatabase switches the generated settings
	// onto the sqlite driver when no database host is configured.
	DatabaseDriver   string
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
	DatabasePrefix   string
	SQLiteDatabase   string

	// Site filesystem paths, shared writable directories during a build.
	PrivateDir string
	TmpDir     string

	// HashSalt overrides the generated secret when set.
	HashSalt string

	// Cache backends.
	RedisEnabled    bool
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	MemcacheEnabled bool
	MemcacheHost    string
	MemcachePort    string

	TrustedHostPatterns string
	ImportConfig        bool
	XdebugConfig        string
}

// FromEnvironment reads every recognized variable from the process
// environment. Values are whitespace-trimmed; boolean variables accept the
// strconv.ParseBool forms plus yes/no and on/off.
func FromEnvironment() *Config {
	return &Config{
		Environment:           lookup(EnvVarEnvironment),
		InstallProfile:        lookup(EnvVarInstallProfile),
		SiteID:                lookup(EnvVarSiteID),
		URL:                   lookup(EnvVarURL),
		Token:                 lookup(EnvVarToken),
		TokenFile:             lookup(EnvVarTokenFile),
		SecretPath:            lookup(EnvVarSecretPath),
		ReverseProxy:          lookupBool(EnvVarReverseProxy),
		ReverseProxyAddresses: lookup(EnvVarReverseProxyAddresses),
		SiteUUID:              lookup(EnvVarSiteUUID),
		SiteTitle:             lookup(EnvVarSiteTitle),
		SiteMail:              lookup(EnvVarSiteMail),
		SiteAdminEmail:        lookup(EnvVarSiteAdminEmail),
		SiteAdminUsername:     lookup(EnvVarSiteAdminUsername),
		SiteAdminPassword:     lookup(EnvVarSiteAdminPassword),
		DatabaseDriver:        lookup(EnvVarDatabaseDriver),
		DatabaseHost:          lookup(EnvVarDatabaseHost),
		DatabasePort:          lookup(EnvVarDatabasePort),
		DatabaseName:          lookup(EnvVarDatabaseName),
		DatabaseUser:          lookup(EnvVarDatabaseUser),
		DatabasePassword:      lookup(EnvVarDatabasePassword),
		DatabasePrefix:        lookup(EnvVarDatabasePrefix),
		SQLiteDatabase:        lookup(EnvVarSQLiteDatabase),
		PrivateDir:            lookup(EnvVarPrivateDir),
		TmpDir:                lookup(EnvVarTmpDir),
		HashSalt:              lookup(EnvVarHashSalt),
		RedisEnabled:          lookupBool(EnvVarRedisEnabled),
		RedisHost:             lookup(EnvVarRedisHost),
		RedisPort:             lookup(EnvVarRedisPort),
		RedisPassword:         lookup(EnvVarRedisPassword),
		MemcacheEnabled:       lookupBool(EnvVarMemcacheEnabled),
		MemcacheHost:          lookup(EnvVarMemcacheHost),
		MemcachePort:          lookup(EnvVarMemcachePort),
		TrustedHostPatterns:   lookup(EnvVarTrustedHostPatterns),
		ImportConfig:          lookupBool(EnvVarImportConfig),
		XdebugConfig:          lookup(EnvVarXdebugConfig),
	}
}

// UseSQLite reports whether the generated settings should select the sqlite
// driver. A configured database host always wins over the sqlite fallback.
func (c *Config) UseSQLite() bool {
	return c.SQLiteDatabase != "" && c.DatabaseHost == ""
}

func lookup(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func lookupBool(name string) bool {
	return parseBool(os.Getenv(name))
}

// parseBool reports whether a raw value names an enabled state. The empty
// string and anything unrecognized are treated as disabled so that unset
// toggles never enable optional behavior.
func parseBool(raw string) bool {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "yes", "on":
		return true
	case "", "no", "off":
		return false
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}

	return b
}
