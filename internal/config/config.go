package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Sources   SourcesConfig   `yaml:"sources" mapstructure:"sources"`
	Capture   CaptureConfig   `yaml:"capture" mapstructure:"capture"`
	BFF       BFFConfig       `yaml:"bff" mapstructure:"bff"`
	Kafka     KafkaConfig     `yaml:"kafka" mapstructure:"kafka"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings for extraction calls.
type AnthropicConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	Model         string `yaml:"model" mapstructure:"model"`
	MaxTokens     int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	RatePerMinute int    `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
}

// SourcesConfig configures the document source directory.
type SourcesConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
	// PDFMode is "text" (extract text locally and send it) or "native"
	// (send the raw PDF as a document block).
	PDFMode string    `yaml:"pdf_mode" mapstructure:"pdf_mode"`
	OCR     OCRConfig `yaml:"ocr" mapstructure:"ocr"`
}

// OCRConfig configures PDF text extraction.
type OCRConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"`
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	MistralKey    string `yaml:"mistral_api_key" mapstructure:"mistral_api_key"`
	MistralModel  string `yaml:"mistral_ocr_model" mapstructure:"mistral_ocr_model"`
}

// CaptureConfig configures the extraction-reconciliation loop.
type CaptureConfig struct {
	MaxIterations       int    `yaml:"max_iterations" mapstructure:"max_iterations"`
	CarryOverConfidence int    `yaml:"carryover_confidence" mapstructure:"carryover_confidence"`
	ConfidenceThreshold int    `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
	// ClearConflictOnResolve drops the conflict flag once a conflicting
	// field has been settled. Off by default: a resolved field stays
	// permanently marked as disputed.
	ClearConflictOnResolve bool   `yaml:"clear_conflict_on_resolve" mapstructure:"clear_conflict_on_resolve"`
	FieldsFile             string `yaml:"fields_file" mapstructure:"fields_file"`
}

// BFFConfig holds the account and commerce BFF endpoints used to resolve
// bank, account-type, and economic-activity codes.
type BFFConfig struct {
	CuentaURL      string `yaml:"cuenta_url" mapstructure:"cuenta_url"`
	CuentaToken    string `yaml:"cuenta_token" mapstructure:"cuenta_token"`
	ComercioURL    string `yaml:"comercio_url" mapstructure:"comercio_url"`
	ComercioToken  string `yaml:"comercio_token" mapstructure:"comercio_token"`
	ActivitiesPath string `yaml:"activities_path" mapstructure:"activities_path"`
	MCCPath        string `yaml:"mcc_path" mapstructure:"mcc_path"`
	FuzzyCutoff    int    `yaml:"fuzzy_cutoff" mapstructure:"fuzzy_cutoff"`
}

// KafkaConfig configures the volcado publisher.
type KafkaConfig struct {
	Brokers  []string `yaml:"brokers" mapstructure:"brokers"`
	Topic    string   `yaml:"topic" mapstructure:"topic"`
	ClientID string   `yaml:"client_id" mapstructure:"client_id"`
	Username string   `yaml:"username" mapstructure:"username"`
	Password string   `yaml:"password" mapstructure:"password"`
	// TLS is on by default; SASL PLAIN credentials are only applied when
	// Username is set.
	TLS bool `yaml:"tls" mapstructure:"tls"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CAPTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "capture.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("anthropic.rate_per_minute", 30)
	v.SetDefault("sources.dir", "sources")
	v.SetDefault("sources.pdf_mode", "text")
	v.SetDefault("sources.ocr.provider", "local")
	v.SetDefault("sources.ocr.pdftotext_path", "pdftotext")
	v.SetDefault("sources.ocr.mistral_ocr_model", "pixtral-large-latest")
	v.SetDefault("capture.max_iterations", 5)
	v.SetDefault("capture.carryover_confidence", 10)
	v.SetDefault("capture.confidence_threshold", 80)
	v.SetDefault("capture.clear_conflict_on_resolve", false)
	v.SetDefault("bff.activities_path", "/v1/activities")
	v.SetDefault("bff.mcc_path", "/v1/mcc/")
	v.SetDefault("bff.fuzzy_cutoff", 80)
	v.SetDefault("kafka.topic", "commerce.affiliation.volcado")
	v.SetDefault("kafka.client_id", "capture-cli")
	v.SetDefault("kafka.tls", true)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
