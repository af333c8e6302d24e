package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки Shop Service
// Включает конфигурацию для HTTP сервера, MongoDB, Redis, Kafka, JWT и фоновой очистки
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	JWT     JWTConfig
	Cleanup CleanupConfig
	Log     LogConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

// MongoDBConfig - настройки подключения к MongoDB
// Используется для хранения всех сущностей магазина
type MongoDBConfig struct {
	URI      string // Строка подключения mongodb://...
	Database string // Имя базы данных
}

// RedisConfig - настройки подключения к Redis
// Используется для кеширования списка категорий
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки Kafka для отправки доменных событий
type KafkaConfig struct {
	Brokers       []string // Список брокеров Kafka (формат: host:port)
	ProductsTopic string   // Топик событий PRODUCT_CREATED, PRODUCT_UPDATED
	OrdersTopic   string   // Топик событий ORDER_CREATED, ORDER_UPDATED
}

// JWTConfig - настройки проверки JWT токенов для мутирующих эндпоинтов
type JWTConfig struct {
	Secret string
}

// CleanupConfig - настройки фоновой очистки soft-deleted записей
type CleanupConfig struct {
	Schedule  string        // Cron-выражение запуска (по умолчанию каждый час)
	Retention time.Duration // Сколько хранить soft-deleted записи до удаления
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level string
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	retention, err := time.ParseDuration(getEnv("CLEANUP_RETENTION", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLEANUP_RETENTION value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "lavka"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:       []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ProductsTopic: getEnv("KAFKA_PRODUCTS_TOPIC", "product_events"),
			OrdersTopic:   getEnv("KAFKA_ORDERS_TOPIC", "order_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Cleanup: CleanupConfig{
			Schedule:  getEnv("CLEANUP_SCHEDULE", "0 * * * *"),
			Retention: retention,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
