package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"ledgerbook/internal/logger"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration
	AuthDisabled     bool

	// Bookkeeping
	FiscalStartMonth   int
	CashBookAccounts   map[string]string
	ReceivableAccounts []string
	AllowanceAccount   string
	AllowanceRate      decimal.Decimal
	PurchaseAccount    string
	PayableAccount     string
	CashAccount        string
	SeedDefaults       bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Named("config").Debug(".env file not found, using the environment")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		JWTSecret:    getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		AuthDisabled: getEnv("AUTH_DISABLED", "false") == "true",

		AllowanceAccount: getEnv("ALLOWANCE_ACCOUNT", "Allowance for Doubtful Accounts"),
		PurchaseAccount:  getEnv("PURCHASE_ACCOUNT", "Purchases"),
		PayableAccount:   getEnv("PAYABLE_ACCOUNT", "Accounts Payable"),
		CashAccount:      getEnv("CASH_ACCOUNT", "Cash"),
		SeedDefaults:     getEnv("SEED_DEFAULTS", "false") == "true",
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		logger.Named("config").Warnw("invalid JWT_EXPIRES_IN, falling back to 24h", "value", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	startMonth, err := strconv.Atoi(getEnv("FISCAL_START_MONTH", "4"))
	if err != nil || startMonth < 1 || startMonth > 12 {
		return nil, fmt.Errorf("FISCAL_START_MONTH must be between 1 and 12")
	}
	config.FiscalStartMonth = startMonth

	books, err := ParseCashBooks(getEnv("CASHBOOK_ACCOUNTS", "cash=Cash,checking=Checking,petty-cash=Petty Cash"))
	if err != nil {
		return nil, err
	}
	config.CashBookAccounts = books

	config.ReceivableAccounts = splitList(getEnv("RECEIVABLE_ACCOUNTS", "Accounts Receivable,Notes Receivable,Other Receivables"))

	rate, err := decimal.NewFromString(getEnv("ALLOWANCE_RATE", "0.02"))
	if err != nil || rate.IsNegative() {
		return nil, fmt.Errorf("ALLOWANCE_RATE must be a non-negative decimal")
	}
	config.AllowanceRate = rate

	return config, nil
}

// ParseCashBooks parses "key=Account Name" pairs separated by commas.
// A key with an empty account name is rejected.
func ParseCashBooks(raw string) (map[string]string, error) {
	books := make(map[string]string)
	for _, pair := range splitList(raw) {
		key, name, ok := strings.Cut(pair, "=")
		key, name = strings.TrimSpace(key), strings.TrimSpace(name)
		if !ok || key == "" || name == "" {
			return nil, fmt.Errorf("invalid CASHBOOK_ACCOUNTS entry %q: expected key=Account Name", pair)
		}
		books[key] = name
	}
	return books, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
