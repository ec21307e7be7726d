package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// AffirmKeys is one public/private credential pair for a single Affirm
// environment.
type AffirmKeys struct {
	PublicKey  string
	PrivateKey string
}

type Affirm struct {
	Env               string `yaml:"AFFIRM_ENV" env:"AFFIRM_ENV" env-default:"prod"`
	APIBase           string `yaml:"AFFIRM_API_BASE" env:"AFFIRM_API_BASE"`
	SandboxAPIBase    string `yaml:"AFFIRM_SANDBOX_API_BASE" env:"AFFIRM_SANDBOX_API_BASE"`
	PublicKey         string `yaml:"AFFIRM_PUBLIC_KEY" env:"AFFIRM_PUBLIC_KEY"`
	PrivateKey        string `yaml:"AFFIRM_PRIVATE_KEY" env:"AFFIRM_PRIVATE_KEY"`
	SandboxPublicKey  string `yaml:"AFFIRM_PUBLIC_KEY_SANDBOX" env:"AFFIRM_PUBLIC_KEY_SANDBOX"`
	SandboxPrivateKey string `yaml:"AFFIRM_PRIVATE_KEY_SANDBOX" env:"AFFIRM_PRIVATE_KEY_SANDBOX"`
}

type Store struct {
	Name        string        `yaml:"STORE_NAME" env:"STORE_NAME" env-default:"Sunrise Store"`
	SiteBaseURL string        `yaml:"SITE_BASE_URL" env:"SITE_BASE_URL" env-default:"https://www.sunrisestore.info"`
	Currency    string        `yaml:"STORE_CURRENCY" env:"STORE_CURRENCY" env-default:"USD"`
	OrderPrefix string        `yaml:"ORDER_PREFIX" env:"ORDER_PREFIX" env-default:"ORD"`
	CartTTL     time.Duration `yaml:"CART_TTL" env:"CART_TTL" env-default:"72h"`
}

type SendGrid struct {
	APIKey       string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail    string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@sunrisestore.info"`
	FromName     string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Sunrise Store"`
	ContactInbox string `yaml:"CONTACT_INBOX" env:"CONTACT_INBOX" env-default:"support@sunrisestore.info"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer   `yaml:"http_server"`
	RedisConnect RedisConnect `yaml:"redis"`
	Affirm       Affirm       `yaml:"affirm"`
	Store        Store        `yaml:"store"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

	}

	var cfg Config

	if configPath == "" {
		// env-only deployment, no config file mounted
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can not read config from environment: %s", err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}

// Keys returns the credential pair for the given environment selector.
func (a *Affirm) Keys(env string) AffirmKeys {
	if IsLiveEnv(env) {
		return AffirmKeys{PublicKey: a.PublicKey, PrivateKey: a.PrivateKey}
	}

	return AffirmKeys{PublicKey: a.SandboxPublicKey, PrivateKey: a.SandboxPrivateKey}
}

// BaseURL returns the provider API base for the given environment selector,
// preferring an explicit override from config.
func (a *Affirm) BaseURL(env string) string {
	if IsLiveEnv(env) {
		if a.APIBase != "" {
			return a.APIBase
		}

		return "https://api.affirm.com"
	}

	if a.SandboxAPIBase != "" {
		return a.SandboxAPIBase
	}

	return "https://sandbox.affirm.com"
}

func IsLiveEnv(env string) bool {
	return strings.HasPrefix(strings.ToLower(env), "prod") || strings.EqualFold(env, "live")
}

// Redact shortens a credential for log output. Full key material must never
// reach the logs.
func Redact(secret string) string {
	if len(secret) <= 4 {
		return fmt.Sprintf("len=%d", len(secret))
	}

	return fmt.Sprintf("len=%d,last4=%s", len(secret), secret[len(secret)-4:])
}
