package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Storage  StorageConfig  `envPrefix:"STORAGE_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
	Chat     ChatConfig     `envPrefix:"CHAT_"`
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Host string `env:"HOST" envDefault:"0.0.0.0"`
}

func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type DatabaseConfig struct {
	Hosts    []string `env:"HOSTS" envDefault:"localhost:27017"`
	Database string   `env:"DATABASE" envDefault:"channelchat"`
	Username string   `env:"USERNAME"`
	Password string   `env:"PASSWORD,unset"`
	AuthDB   string   `env:"AUTH_DB" envDefault:"admin"`
	Direct   bool     `env:"DIRECT" envDefault:"true"`
}

// StorageConfig points at the blob store holding image attachments.
// PublicBaseURL overrides the default S3 URL layout when the bucket sits
// behind a CDN or an S3-compatible endpoint.
type StorageConfig struct {
	Bucket          string `env:"BUCKET" envDefault:"channel-chat-images"`
	Region          string `env:"REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY,unset"`
	PublicBaseURL   string `env:"PUBLIC_BASE_URL"`
	KeyPrefix       string `env:"KEY_PREFIX" envDefault:"chatImages"`
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET,unset" envDefault:"dev-secret"`
}

type ChatConfig struct {
	Channels       []string `env:"CHANNELS" envDefault:"Arts,Crafts,Food,Gatherings,Outdoors"`
	DefaultChannel string   `env:"DEFAULT_CHANNEL" envDefault:"Food"`
	UseRemote      bool     `env:"USE_REMOTE" envDefault:"true"`
	SeedLocal      bool     `env:"SEED_LOCAL" envDefault:"true"`
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
