package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	SecretKey      string
	TokenTTLHours  int
	IdempTTLSecs   int
	AgencyCode     string
	DefaultLocale  string
	AdminEmail     string
	Timezone       string
	SweepSchedule  string
	ReportSchedule string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "cfc_deblocages"),
		MySQLUser: getenv("MYSQL_USER", "cfc"),
		MySQLPass: getenv("MYSQL_PASS", "cfc"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		SecretKey:     getenv("SECRET_KEY", "change-this-secret-key-in-production"),
		TokenTTLHours: getenvInt("TOKEN_TTL_HOURS", 24*7),
		IdempTTLSecs:  getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		AgencyCode:    getenv("AGENCY_CODE", "102"),
		DefaultLocale: getenv("DEFAULT_LOCALE", "fr"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@cfc.cm"),
		Timezone:      getenv("TIMEZONE", "Africa/Douala"),

		// Hourly alert sweep, daily 08:00 summary report.
		SweepSchedule:  getenv("SWEEP_SCHEDULE", "0 * * * *"),
		ReportSchedule: getenv("REPORT_SCHEDULE", "0 8 * * *"),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.SecretKey == "" {
		return errors.New("missing SECRET_KEY")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
