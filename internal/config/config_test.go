package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"APP_PORT", "DB_DRIVER", "REDIS_DB", "IDEMPOTENCY_TTL_SECONDS",
		"KAFKA_ENABLED", "KAFKA_BROKERS", "LOAN_INTEREST_SHORTFALL_POLICY", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}

	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q", c.AppPort)
	}
	if c.DBDriver != DriverMySQL {
		t.Fatalf("DBDriver = %q", c.DBDriver)
	}
	if c.IdempotencyTTL() != 5*time.Minute {
		t.Fatalf("IdempotencyTTL = %v", c.IdempotencyTTL())
	}
	if c.KafkaEnabled {
		t.Fatalf("kafka should default to disabled")
	}
	if c.ShortfallPolicy != "forgive" {
		t.Fatalf("ShortfallPolicy = %q", c.ShortfallPolicy)
	}
	if !reflect.DeepEqual(c.CORSAllowedOrigins, []string{"*"}) {
		t.Fatalf("CORSAllowedOrigins = %v", c.CORSAllowedOrigins)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "30")
	t.Setenv("USER_SERVICE_URL", "http://users:9000/")
	t.Setenv("USER_SERVICE_TIMEOUT_MS", "250")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("LOAN_INTEREST_SHORTFALL_POLICY", "accrue")

	c := Load()
	if c.DBDriver != DriverPostgres {
		t.Fatalf("DBDriver = %q", c.DBDriver)
	}
	if c.RedisDB != 3 || c.IdempTTLSecs != 30 {
		t.Fatalf("RedisDB=%d IdempTTLSecs=%d", c.RedisDB, c.IdempTTLSecs)
	}
	if c.UserServiceURL != "http://users:9000" {
		t.Fatalf("UserServiceURL should drop trailing slash, got %q", c.UserServiceURL)
	}
	if c.UserServiceTimeout() != 250*time.Millisecond {
		t.Fatalf("UserServiceTimeout = %v", c.UserServiceTimeout())
	}
	if !c.KafkaEnabled || !reflect.DeepEqual(c.KafkaBrokers, []string{"k1:9092", "k2:9092"}) {
		t.Fatalf("kafka = %v %v", c.KafkaEnabled, c.KafkaBrokers)
	}
	if c.ShortfallPolicy != "accrue" {
		t.Fatalf("ShortfallPolicy = %q", c.ShortfallPolicy)
	}
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("KAFKA_ENABLED", "maybe")

	c := Load()
	if c.RedisDB != 0 || c.KafkaEnabled {
		t.Fatalf("want defaults, got RedisDB=%d KafkaEnabled=%v", c.RedisDB, c.KafkaEnabled)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort:  "8080",
			DBDriver: DriverMySQL, MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d", MySQLUser: "u",
			PostgresHost: "h", PostgresPort: "5432", PostgresDB: "d", PostgresUser: "u",
			UserServiceURL: "http://u", UserServiceTimeoutMs: 1000,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok mysql", func(*Config) {}, ""},
		{"ok postgres", func(c *Config) { c.DBDriver = DriverPostgres }, ""},
		{"no port", func(c *Config) { c.AppPort = "" }, "APP_PORT"},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "DB_DRIVER"},
		{"mysql missing host", func(c *Config) { c.MySQLHost = "" }, "MySQL"},
		{"mysql bad port", func(c *Config) { c.MySQLPort = "abc" }, "MYSQL_PORT"},
		{"postgres bad port", func(c *Config) { c.DBDriver = DriverPostgres; c.PostgresPort = "-" }, "POSTGRES_PORT"},
		{"no user service", func(c *Config) { c.UserServiceURL = "" }, "USER_SERVICE_URL"},
		{"zero timeout", func(c *Config) { c.UserServiceTimeoutMs = 0 }, "USER_SERVICE_TIMEOUT_MS"},
		{"kafka without brokers", func(c *Config) { c.KafkaEnabled = true }, "KAFKA_BROKERS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("want error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDSNs(t *testing.T) {
	c := &Config{
		MySQLHost: "db", MySQLPort: "3306", MySQLDB: "loans", MySQLUser: "u", MySQLPass: "p",
		PostgresHost: "pg", PostgresPort: "5432", PostgresDB: "loans", PostgresUser: "u", PostgresPass: "p", PostgresSSLMode: "disable",
	}
	if got := c.MySQLDSN(); !strings.HasPrefix(got, "u:p@tcp(db:3306)/loans?") || !strings.Contains(got, "parseTime=true") {
		t.Fatalf("MySQLDSN = %q", got)
	}
	want := "host=pg port=5432 user=u password=p dbname=loans sslmode=disable TimeZone=UTC"
	if got := c.PostgresDSN(); got != want {
		t.Fatalf("PostgresDSN = %q, want %q", got, want)
	}
}
