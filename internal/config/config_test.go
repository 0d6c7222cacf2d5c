package config

import (
	"strings"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	t.Setenv("MARKS_TEST_SET", "value")
	if got := requireEnv("MARKS_TEST_SET"); got != "value" {
		t.Errorf("requireEnv() = %q, want value", got)
	}

	t.Setenv("MARKS_TEST_EMPTY", "")
	defer func() {
		if recover() == nil {
			t.Errorf("requireEnv() should panic on an unset variable")
		}
	}()
	requireEnv("MARKS_TEST_EMPTY")
}

func TestEnvHelpersFallBack(t *testing.T) {
	tests := []struct {
		name  string
		value string
		check func(t *testing.T, key string)
	}{
		{"duration set", "5s", func(t *testing.T, key string) {
			if got := mustDuration(key, time.Second); got != 5*time.Second {
				t.Errorf("mustDuration() = %v, want 5s", got)
			}
		}},
		{"duration invalid", "soon", func(t *testing.T, key string) {
			if got := mustDuration(key, 10*time.Second); got != 10*time.Second {
				t.Errorf("mustDuration() = %v, want default", got)
			}
		}},
		{"bool set", "false", func(t *testing.T, key string) {
			if mustBool(key, true) {
				t.Errorf("mustBool() = true, want false")
			}
		}},
		{"bool invalid", "yes please", func(t *testing.T, key string) {
			if !mustBool(key, true) {
				t.Errorf("mustBool() = false, want default")
			}
		}},
		{"int set", "42", func(t *testing.T, key string) {
			if got := getenvInt(key, 1); got != 42 {
				t.Errorf("getenvInt() = %d, want 42", got)
			}
		}},
		{"int invalid", "many", func(t *testing.T, key string) {
			if got := getenvInt(key, 7); got != 7 {
				t.Errorf("getenvInt() = %d, want default", got)
			}
		}},
		{"string unset", "", func(t *testing.T, key string) {
			if got := getenv(key, "fallback"); got != "fallback" {
				t.Errorf("getenv() = %q, want fallback", got)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "MARKS_TEST_" + strings.ToUpper(strings.ReplaceAll(tt.name, " ", "_"))
			t.Setenv(key, tt.value)
			tt.check(t, key)
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "10.0.0.0/8", expected: []string{"10.0.0.0/8"}},
		{name: "spaces and quotes", input: ` "a.example", 'b.example' ,, c `, expected: []string{"a.example", "b.example", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoad_MemoryStore(t *testing.T) {
	t.Setenv("MARKS_STORE", "Memory")
	t.Setenv("MARKS_DATABASE_URL", "")
	t.Setenv("MARKS_TOKEN_TTL", "2h")
	t.Setenv("MARKS_ALLOWED_CIDRS", "127.0.0.1/32, 10.0.0.0/8")

	cfg := Load()
	if cfg.Store != StoreMemory {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreMemory)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v, want 2h", cfg.TokenTTL)
	}
	if len(cfg.AllowedCIDRS) != 2 {
		t.Errorf("AllowedCIDRS = %v", cfg.AllowedCIDRS)
	}
	if len(cfg.CORSOrigin) != 1 || cfg.CORSOrigin[0] != "*" {
		t.Errorf("CORSOrigin = %v, want [*]", cfg.CORSOrigin)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("MARKS_STORE", "postgres")
	t.Setenv("MARKS_DATABASE_URL", "")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked without MARKS_DATABASE_URL")
		}
	}()
	Load()
}

func TestLoad_UnknownStore(t *testing.T) {
	t.Setenv("MARKS_STORE", "sqlite")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked for an unknown store")
		}
	}()
	Load()
}

func TestValidateServe(t *testing.T) {
	valid := Config{
		JWTSecret: strings.Repeat("k", 32),
		TokenTTL:  time.Hour,
		AuthRate:  10,
		AuthBurst: 5,
	}
	if err := valid.ValidateServe(); err != nil {
		t.Fatalf("ValidateServe() error = %v", err)
	}

	tests := map[string]func(c *Config){
		"missing secret": func(c *Config) { c.JWTSecret = "" },
		"short secret":   func(c *Config) { c.JWTSecret = "short" },
		"zero ttl":       func(c *Config) { c.TokenTTL = 0 },
		"zero rate":      func(c *Config) { c.AuthRate = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			if err := c.ValidateServe(); err == nil {
				t.Errorf("ValidateServe() should fail")
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{JWTSecret: "secret", DatabaseURL: "postgres://u:p@db/marks", RedisPassword: "pw"}
	r := cfg.Redacted()
	for _, v := range []string{r.JWTSecret, r.DatabaseURL, r.RedisPassword} {
		if v != "***REDACTED***" {
			t.Errorf("field not redacted: %q", v)
		}
	}
	if cfg.JWTSecret != "secret" {
		t.Errorf("Redacted() must not modify the original")
	}
}
