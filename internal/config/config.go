package config

import (
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
	"github.com/soldoshop/upn-nalog/pkg/upn"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Operator  OperatorConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
	UPN       UPNConfig
	Printer   PrinterConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

// OperatorConfig holds the single operator login. PasswordHash is a bcrypt hash.
type OperatorConfig struct {
	Username     string
	PasswordHash string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// StoreConfig is the merchant base address printed as the slip receiver.
// Timezone is the IANA zone whose calendar day sets the slip due date.
type StoreConfig struct {
	Address  string
	City     string
	Postcode string
	Timezone string
}

type UPNConfig struct {
	Locale            string
	PurposeCode       string
	ReferenceTemplate string
	PurposeTemplate   string
	Instructions      string
	QRSize            int
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	CharWidth int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg(".env file not found, using environment variables")
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "upn-nalog")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "shop")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Europe/Ljubljana")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("OPERATOR_USERNAME", "admin")
	viper.SetDefault("OPERATOR_PASSWORD_HASH", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("STORE_ADDRESS", "")
	viper.SetDefault("STORE_CITY", "")
	viper.SetDefault("STORE_POSTCODE", "")
	viper.SetDefault("STORE_TIMEZONE", "Europe/Ljubljana")
	viper.SetDefault("UPN_LOCALE", "sl-SI")
	viper.SetDefault("UPN_PURPOSE_CODE", upn.DefaultPurposeCode)
	viper.SetDefault("UPN_REFERENCE_TEMPLATE", upn.DefaultReferenceTemplate)
	viper.SetDefault("UPN_PURPOSE_TEMPLATE", "")
	viper.SetDefault("UPN_INSTRUCTIONS", "")
	viper.SetDefault("UPN_QR_SIZE", 256)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 32)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Operator: OperatorConfig{
			Username:     viper.GetString("OPERATOR_USERNAME"),
			PasswordHash: viper.GetString("OPERATOR_PASSWORD_HASH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Store: StoreConfig{
			Address:  viper.GetString("STORE_ADDRESS"),
			City:     viper.GetString("STORE_CITY"),
			Postcode: viper.GetString("STORE_POSTCODE"),
			Timezone: viper.GetString("STORE_TIMEZONE"),
		},
		UPN: UPNConfig{
			Locale:            viper.GetString("UPN_LOCALE"),
			PurposeCode:       viper.GetString("UPN_PURPOSE_CODE"),
			ReferenceTemplate: viper.GetString("UPN_REFERENCE_TEMPLATE"),
			PurposeTemplate:   viper.GetString("UPN_PURPOSE_TEMPLATE"),
			Instructions:      viper.GetString("UPN_INSTRUCTIONS"),
			QRSize:            viper.GetInt("UPN_QR_SIZE"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Location resolves Timezone. It returns nil when no zone is set, and
// time.Local when the zone is unknown.
func (c *StoreConfig) Location() *time.Location {
	if c.Timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", c.Timezone).Msg("unknown store timezone, using local time")
		return time.Local
	}
	return loc
}

// Defaults returns the slip builder defaults: the locale's purpose template,
// replaced by any template or code set explicitly.
func (c *UPNConfig) Defaults() upn.Overrides {
	d := upn.LocaleDefaults(c.Locale)
	if c.PurposeCode != "" {
		d.PurposeCode = c.PurposeCode
	}
	if c.ReferenceTemplate != "" {
		d.ReferenceTemplate = c.ReferenceTemplate
	}
	if c.PurposeTemplate != "" {
		d.PurposeTemplate = c.PurposeTemplate
	}
	return d
}
