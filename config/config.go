package config

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

type BrokerConfig struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

type PaymentConfig struct {
	BaseURL string `yaml:"baseURL"`
}

type AuthConfig struct {
	Secret        string `yaml:"secret"`
	TokenTTLHours int    `yaml:"tokenTTLHours"`
}

// StoreConfig carries the storefront policy fixed at startup: the closed
// payment method enumeration and the default page size.
type StoreConfig struct {
	PaymentMethods       []string `yaml:"paymentMethods"`
	DefaultPaymentMethod string   `yaml:"defaultPaymentMethod"`
	PageSize             int      `yaml:"pageSize"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Broker   BrokerConfig   `yaml:"broker"`
	Payment  PaymentConfig  `yaml:"payment"`
	Auth     AuthConfig     `yaml:"auth"`
	Store    StoreConfig    `yaml:"store"`
}

func LoadConfig(filename string) (Config, error) {
	var config Config
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}

	if config.Server.Addr == "" {
		config.Server.Addr = ":3000"
	}
	if config.Auth.TokenTTLHours <= 0 {
		config.Auth.TokenTTLHours = 24
	}
	if config.Store.PageSize <= 0 {
		config.Store.PageSize = 12
	}
	if len(config.Store.PaymentMethods) == 0 {
		config.Store.PaymentMethods = []string{"PayPal", "Stripe", "CashOnDelivery"}
	}
	if config.Store.DefaultPaymentMethod == "" {
		config.Store.DefaultPaymentMethod = config.Store.PaymentMethods[0]
	}
	if config.Broker.Queue == "" {
		config.Broker.Queue = "orders.placed"
	}

	return config, nil
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

func SetupMySQLConnection(cfg DatabaseConfig) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
}

func SetupRedisConnection(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.Database,
	})
}
