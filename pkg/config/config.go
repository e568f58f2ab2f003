package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env vars
// and optionally from a file).
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	JWT   JWTConfig
	ZATCA ZATCAConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig JWT settings for the protected POS endpoints.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// ZATCAConfig settings for ZATCA direct mode (KSA simplified e-invoicing).
// Certificate material is optional: when absent the QR pipeline falls back to
// its placeholder chain instead of blocking checkout.
type ZATCAConfig struct {
	DirectModeEnabled bool   // enhanced 9-field QR pipeline on/off
	CountryCode       string // seller jurisdiction; enhanced mode requires "SA"
	SellerName        string // legal company name, QR tag 1
	SellerVAT         string // VAT registration number (15 digits), QR tag 2
	Timezone          string // jurisdiction timezone for QR timestamps
	CertPath          string // .p12/.pfx or certificate .pem (empty = no certificate)
	CertKeyPath       string // private key .pem when CertPath is a bare certificate
	CertPassword      string // .p12 password
	PublicKey         string // base64 public key, used when no certificate file is configured
	CertificateID     string // certificate identifier assigned by the authority
	SerialNumber      string // certificate serial number
}

// Load reads configuration from environment variables (and optionally from a
// .env / config.env file). Env vars take priority. Expected names: APP_ENV,
// HTTP_PORT, JWT_SECRET, ZATCA_DIRECT_MODE_ENABLED, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional configuration file (.env or config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "l10n-sa-edi-pos-direct"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "l10n-sa-edi-pos-direct"),
		},
		ZATCA: ZATCAConfig{
			DirectModeEnabled: getBool(v, "ZATCA_DIRECT_MODE_ENABLED", false),
			CountryCode:       getString(v, "ZATCA_COUNTRY_CODE", "SA"),
			SellerName:        getString(v, "ZATCA_SELLER_NAME", ""),
			SellerVAT:         getString(v, "ZATCA_SELLER_VAT", ""),
			Timezone:          getString(v, "ZATCA_TIMEZONE", "Asia/Riyadh"),
			CertPath:          getString(v, "ZATCA_CERT_PATH", ""),
			CertKeyPath:       getString(v, "ZATCA_CERT_KEY_PATH", ""),
			CertPassword:      getString(v, "ZATCA_CERT_PASSWORD", ""),
			PublicKey:         getString(v, "ZATCA_PUBLIC_KEY", ""),
			CertificateID:     getString(v, "ZATCA_CERTIFICATE_ID", ""),
			SerialNumber:      getString(v, "ZATCA_SERIAL_NUMBER", ""),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		switch val := v.Get(key).(type) {
		case bool:
			return val
		case string:
			b, err := strconv.ParseBool(val)
			if err != nil {
				return def
			}
			return b
		default:
			return v.GetBool(key)
		}
	}
	return def
}
