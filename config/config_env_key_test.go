package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"session": map[string]any{
			"cookieName": "",
			"ttl":        "24h",
		},
		"rateLimit": map[string]any{
			"expiresIn": "",
		},
		"storage": map[string]any{
			"autoMigrate":        true,
			"slowQueryThreshold": "200ms",
		},
	}

	tests := map[string]string{
		"POSTGRES_SSLMODE":             "postgres.sslMode",
		"POSTGRES_MASTER_USERNAME":     "postgres.master.userName",
		"SESSION_COOKIENAME":           "session.cookieName",
		"SESSION_TTL":                  "session.ttl",
		"SESSION_SECRET":               "session.secret",
		"RATELIMIT_EXPIRESIN":          "rateLimit.expiresIn",
		"STORAGE_SLOWQUERYTHRESHOLD":   "storage.slowQueryThreshold",
		"STORAGE_AUTO_MIGRATE_ENABLED": "storage.auto.migrate.enabled",
	}

	for envKey, want := range tests {
		t.Run(envKey, func(t *testing.T) {
			assert.Equal(t, want, canonicalizeEnvKey(envKey, existing))
		})
	}
}
