package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBUrl   string `mapstructure:"DB_URL"`
	Port    string `mapstructure:"PORT"`
	AppName string `mapstructure:"APP_NAME"`

	JWTAccessSecret    string        `mapstructure:"JWT_ACCESS_SECRET"`
	JWTRefreshSecret   string        `mapstructure:"JWT_REFRESH_SECRET"`
	AccessTokenExpiry  time.Duration `mapstructure:"ACCESS_TOKEN_EXPIRY"`
	RefreshTokenExpiry time.Duration `mapstructure:"REFRESH_TOKEN_EXPIRY"`

	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      int    `mapstructure:"SMTP_PORT"`
	SMTPUsername  string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword  string `mapstructure:"SMTP_PASSWORD"`
	SMTPFromEmail string `mapstructure:"SMTP_FROM_EMAIL"`

	CDNBaseURL         string   `mapstructure:"CDN_BASE_URL"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

func LoadConfig() Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "7001")
	viper.SetDefault("APP_NAME", "OjaMarket")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", 15*time.Minute)
	viper.SetDefault("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour)
	viper.SetDefault("SMTP_PORT", 587)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, using env variables only")
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatal("config unmarshal error:", err)
	}

	if c.JWTAccessSecret == "" || c.JWTRefreshSecret == "" {
		log.Fatal("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}

	return c
}
