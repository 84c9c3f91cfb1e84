package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Configuration holds everything dashboard-svc reads from the environment.
type Configuration struct {
	Address     string        `env:"ADDRESS" envDefault:":8080"`
	APIBaseURL  string        `env:"API_BASE_URL" envDefault:"http://localhost:8000/api"`
	APITimeout  time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
	GuestURL    string        `env:"GUEST_BASE_URL" envDefault:"http://localhost:3000"`
	CORSOrigins string        `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"restodash"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`

	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort string `env:"REDIS_PORT" envDefault:"6379"`

	KafkaBroker      string `env:"KAFKA_BROKER" envDefault:"localhost:9092"`
	KafkaTopic       string `env:"KAFKA_TOPIC" envDefault:"dashboard-events"`
	KafkaGroupPrefix string `env:"KAFKA_GROUP_PREFIX" envDefault:"dashboard-svc"`

	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	ChatSessionsTTL time.Duration `env:"CHAT_SESSIONS_TTL" envDefault:"10s"`
	ChatMessagesTTL time.Duration `env:"CHAT_MESSAGES_TTL" envDefault:"5s"`

	UploadDir       string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3AccessKey     string `env:"S3_ACCESS_KEY"`
	S3SecretKey     string `env:"S3_SECRET_KEY"`
	S3Bucket        string `env:"S3_BUCKET"`
	S3Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile   string `env:"LOG_FILE"`
}

// Load reads an optional .env file and parses the environment into a Configuration.
func Load(files ...string) (*Configuration, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Configuration) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// S3Enabled reports whether object storage credentials are configured.
func (c *Configuration) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

func (c *Configuration) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func MustInitPostgres(cfg *Configuration) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	if err = db.Ping(); err != nil {
		logrus.Fatal("Failed to ping database: ", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg *Configuration) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.Fatal("Failed to connect to Redis: ", err)
	}

	return client
}

// NewKafkaReader builds a reader for the change-event topic. Every replica uses its own
// group so each one sees every event.
func NewKafkaReader(cfg *Configuration, instance string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaGroupPrefix + "-" + instance,
	})
}

func NewKafkaWriter(cfg *Configuration) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
}

// NewS3Client builds a client for an S3-compatible endpoint using static credentials.
func NewS3Client(ctx context.Context, cfg *Configuration) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	}), nil
}
