package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service configuration
type Config struct {
	Environment   string
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	ServiceBus    ServiceBusConfig
	Elasticsearch ElasticsearchConfig
	Mailer        MailerConfig
	Approval      ApprovalConfig
	NewRelic      NewRelicConfig
	Logging       LoggingConfig
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port            int
	Mode            string // debug, release, test
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig holds the Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// ServiceBusConfig holds the Azure Service Bus configuration
type ServiceBusConfig struct {
	ConnectionString string
	QueueName        string
}

// ElasticsearchConfig holds the Elasticsearch configuration
type ElasticsearchConfig struct {
	URL      string
	Username string
	Password string
	Index    string
}

// MailerConfig holds the transactional email provider configuration
type MailerConfig struct {
	APIKey string
	From   string
}

// ApprovalConfig holds the approval workflow configuration
type ApprovalConfig struct {
	// BaseURL is the externally reachable address embedded in email action links
	BaseURL string
	// TokenTTL bounds how long an emailed approval link stays valid
	TokenTTL time.Duration
	// ReminderAfter is how long a note may sit pending before the worker nags
	ReminderAfter time.Duration
	// ReminderInterval is how often the worker scans for stale approvals
	ReminderInterval time.Duration
}

// NewRelicConfig holds the New Relic configuration
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// LoggingConfig holds the logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load initializes the configuration using Viper
func Load(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/warehouse-service")
		viper.SetConfigName("config")
	}

	// WAREHOUSE_SERVER_PORT overrides server.port, and so on
	viper.SetEnvPrefix("WAREHOUSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error loading configuration: %w", err)
		}
		// No config file is fine, env vars and defaults still apply
	}

	cfg := &Config{
		Environment: viper.GetString("environment"),
		Server: ServerConfig{
			Port:            viper.GetInt("server.port"),
			Mode:            viper.GetString("server.mode"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			Host:         viper.GetString("database.host"),
			Port:         viper.GetInt("database.port"),
			User:         viper.GetString("database.user"),
			Password:     viper.GetString("database.password"),
			DBName:       viper.GetString("database.name"),
			SSLMode:      viper.GetString("database.ssl_mode"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
			MaxLifetime:  viper.GetDuration("database.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			Enabled:  viper.GetBool("redis.enabled"),
		},
		ServiceBus: ServiceBusConfig{
			ConnectionString: viper.GetString("servicebus.connection_string"),
			QueueName:        viper.GetString("servicebus.queue_name"),
		},
		Elasticsearch: ElasticsearchConfig{
			URL:      viper.GetString("elasticsearch.url"),
			Username: viper.GetString("elasticsearch.username"),
			Password: viper.GetString("elasticsearch.password"),
			Index:    viper.GetString("elasticsearch.index"),
		},
		Mailer: MailerConfig{
			APIKey: viper.GetString("mailer.api_key"),
			From:   viper.GetString("mailer.from"),
		},
		Approval: ApprovalConfig{
			BaseURL:          viper.GetString("approval.base_url"),
			TokenTTL:         viper.GetDuration("approval.token_ttl"),
			ReminderAfter:    viper.GetDuration("approval.reminder_after"),
			ReminderInterval: viper.GetDuration("approval.reminder_interval"),
		},
		NewRelic: NewRelicConfig{
			AppName:    viper.GetString("newrelic.app_name"),
			LicenseKey: viper.GetString("newrelic.license_key"),
			Enabled:    viper.GetBool("newrelic.enabled"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.shutdown_timeout", "10s")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.name", "warehouse_db")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 20)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "30m")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.enabled", true)

	viper.SetDefault("servicebus.queue_name", "warehouse-approvals")

	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("elasticsearch.index", "delivery-notes")

	viper.SetDefault("mailer.from", "Gudang Pintar <onboarding@resend.dev>")

	viper.SetDefault("approval.base_url", "http://localhost:8090")
	viper.SetDefault("approval.token_ttl", "24h")
	viper.SetDefault("approval.reminder_after", "48h")
	viper.SetDefault("approval.reminder_interval", "6h")

	viper.SetDefault("newrelic.app_name", "Warehouse Service")
	viper.SetDefault("newrelic.enabled", false)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}
