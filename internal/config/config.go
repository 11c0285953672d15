package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// PayrollPolicy holds the rate rules the payroll pipeline applies to
// attendance aggregates.
type PayrollPolicy struct {
	// DaysBasis is the divisor turning a monthly salary into a daily rate.
	DaysBasis int
	// HoursPerDay turns the daily rate into an hourly rate.
	HoursPerDay int
	// OvertimeMultiplier applies to every overtime hour.
	OvertimeMultiplier decimal.Decimal
	// LockTTL bounds how long one calculation may hold the
	// (employee, month) lock.
	LockTTL time.Duration
}

// ShiftPolicy is the working day attendance metrics are measured against,
// as offsets from midnight UTC.
type ShiftPolicy struct {
	Start time.Duration
	End   time.Duration
	// Grace is the lateness tolerated before delay is counted.
	Grace time.Duration
}

type Config struct {
	Port         string
	JWTSecret    string
	CORSOrigins  []string
	DB           DBConfig
	RedisAddr    string
	KafkaBroker  string
	ConsumerID   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	OutboxPoll   time.Duration
	Payroll      PayrollPolicy
	Shift        ShiftPolicy
}

// Load reads configuration from the environment (and a .env file when
// present) with defaults for everything but secrets.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "3000")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "hrms")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "go-hrms-approval-notifications")
	v.SetDefault("HTTP_READ_TIMEOUT", "5s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "60s")
	v.SetDefault("OUTBOX_POLL_INTERVAL", "3s")
	v.SetDefault("PAYROLL_DAYS_BASIS", 30)
	v.SetDefault("PAYROLL_HOURS_PER_DAY", 8)
	v.SetDefault("PAYROLL_OVERTIME_MULTIPLIER", "1.5")
	v.SetDefault("PAYROLL_LOCK_TTL", "30s")
	v.SetDefault("SHIFT_START", "9h")
	v.SetDefault("SHIFT_END", "17h")
	v.SetDefault("SHIFT_GRACE", "15m")
	v.AutomaticEnv()

	multiplier, err := decimal.NewFromString(v.GetString("PAYROLL_OVERTIME_MULTIPLIER"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        v.GetString("PORT"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		CORSOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			Port:     v.GetString("DB_PORT"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		RedisAddr:    v.GetString("REDIS_ADDR"),
		KafkaBroker:  v.GetString("KAFKA_BROKER"),
		ConsumerID:   v.GetString("KAFKA_CONSUMER_GROUP"),
		ReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
		WriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
		IdleTimeout:  v.GetDuration("HTTP_IDLE_TIMEOUT"),
		OutboxPoll:   v.GetDuration("OUTBOX_POLL_INTERVAL"),
		Payroll: PayrollPolicy{
			DaysBasis:          v.GetInt("PAYROLL_DAYS_BASIS"),
			HoursPerDay:        v.GetInt("PAYROLL_HOURS_PER_DAY"),
			OvertimeMultiplier: multiplier,
			LockTTL:            v.GetDuration("PAYROLL_LOCK_TTL"),
		},
		Shift: ShiftPolicy{
			Start: v.GetDuration("SHIFT_START"),
			End:   v.GetDuration("SHIFT_END"),
			Grace: v.GetDuration("SHIFT_GRACE"),
		},
	}, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultPayrollPolicy matches the defaults of Load.
func DefaultPayrollPolicy() PayrollPolicy {
	return PayrollPolicy{
		DaysBasis:          30,
		HoursPerDay:        8,
		OvertimeMultiplier: decimal.RequireFromString("1.5"),
		LockTTL:            30 * time.Second,
	}
}

func DefaultShiftPolicy() ShiftPolicy {
	return ShiftPolicy{Start: 9 * time.Hour, End: 17 * time.Hour, Grace: 15 * time.Minute}
}
