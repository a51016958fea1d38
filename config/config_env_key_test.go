package config

import (
	"strings"
	"testing"
)

func TestLoadWithEnv_MissingFileFails(t *testing.T) {
	cfg, err := LoadWithEnv[Config]("no-such-config")
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
	if cfg != nil {
		t.Fatalf("expected nil config, got %+v", cfg)
	}
	if !strings.Contains(err.Error(), "no-such-config.yaml") {
		t.Fatalf("error should name the missing file, got %q", err)
	}
}

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"dbName":  "ipscope",
		},
		"token": map[string]any{
			"secret": "",
			"ttl":    "24h",
		},
		"auth": map[string]any{
			"bcryptCost": 10,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_DBNAME", want: "postgres.dbName"},
		{envKey: "TOKEN_SECRET", want: "token.secret"},
		{envKey: "AUTH_BCRYPTCOST", want: "auth.bcryptCost"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
