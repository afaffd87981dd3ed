package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata" // SHOP_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Store     StoreConfig
	CORS      CORSConfig
	Upload    UploadConfig
	Shop      ShopConfig
	WhatsApp  WhatsAppConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type StoreConfig struct {
	Driver string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type UploadConfig struct {
	Dir        string
	ExportPath string // archive root for YYYY/MM/DD copies; empty disables
	BodyLimit  int64
}

type ShopConfig struct {
	DefaultTaxRate decimal.Decimal
	Timezone       string
	InvoicePrefix  string
}

type WhatsAppConfig struct {
	Enabled     bool
	GatewayURL  string
	Token       string
	CountryCode string
	Timeout     time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// ConfigFile is loaded into the environment before reading settings.
const ConfigFile = "configs/.env"

// Load reads configs/.env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(ConfigFile); err != nil {
		log.Printf("No %s file found, using environment variables", ConfigFile)
	}
	return FromViper(viper.New())
}

// FromViper builds a Config from v after applying defaults; v reads the
// environment automatically.
func FromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	taxRate, err := decimal.NewFromString(v.GetString("DEFAULT_TAX_RATE"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_TAX_RATE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("APP_NAME"),
			Env:  v.GetString("APP_ENV"),
			Port: v.GetString("PORT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Store: StoreConfig{Driver: strings.ToLower(v.GetString("STORE_DRIVER"))},
		CORS:  CORSConfig{AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS"))},
		Upload: UploadConfig{
			Dir:        v.GetString("UPLOAD_DIR"),
			ExportPath: v.GetString("PDF_EXPORT_PATH"),
			BodyLimit:  v.GetInt64("BODY_LIMIT"),
		},
		Shop: ShopConfig{
			DefaultTaxRate: taxRate,
			Timezone:       v.GetString("SHOP_TIMEZONE"),
			InvoicePrefix:  v.GetString("INVOICE_PREFIX"),
		},
		WhatsApp: WhatsAppConfig{
			Enabled:     v.GetBool("WHATSAPP_ENABLED"),
			GatewayURL:  v.GetString("WHATSAPP_GATEWAY_URL"),
			Token:       v.GetString("WHATSAPP_TOKEN"),
			CountryCode: v.GetString("WHATSAPP_COUNTRY_CODE"),
			Timeout:     v.GetDuration("WHATSAPP_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("LOGIN_RATE_LIMIT_RPS"),
			Burst:             v.GetInt("LOGIN_RATE_LIMIT_BURST"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "laundrybill")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "5000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "laundry")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("PDF_EXPORT_PATH", "")
	v.SetDefault("BODY_LIMIT", 10<<20)
	v.SetDefault("DEFAULT_TAX_RATE", "0.05")
	v.SetDefault("SHOP_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("INVOICE_PREFIX", "#FW-")
	v.SetDefault("WHATSAPP_ENABLED", false)
	v.SetDefault("WHATSAPP_GATEWAY_URL", "")
	v.SetDefault("WHATSAPP_TOKEN", "")
	v.SetDefault("WHATSAPP_COUNTRY_CODE", "91")
	v.SetDefault("WHATSAPP_TIMEOUT", "30s")
	v.SetDefault("LOGIN_RATE_LIMIT_RPS", 1)
	v.SetDefault("LOGIN_RATE_LIMIT_BURST", 5)
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.Store.Driver)
	}
	if c.WhatsApp.Enabled && c.WhatsApp.GatewayURL == "" {
		return fmt.Errorf("WHATSAPP_GATEWAY_URL is required when WHATSAPP_ENABLED is set")
	}
	if c.Shop.DefaultTaxRate.IsNegative() {
		return fmt.Errorf("DEFAULT_TAX_RATE must not be negative")
	}
	if _, err := c.Shop.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the shop timezone used for day and month boundaries.
func (c ShopConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("SHOP_TIMEZONE: %w", err)
	}
	return loc, nil
}

// DSN returns the postgres connection URL.
func (c DatabaseConfig) DSN() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Name + "?sslmode=" + c.SSLMode
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
