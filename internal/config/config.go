package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	CORS     CORSConfig
	OCR      OCRConfig
	Textract TextractConfig
	Model    ModelConfig
	S3       S3Config
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OCRConfig selects the extraction strategy and bounds accepted uploads.
type OCRConfig struct {
	Provider      string `mapstructure:"provider"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (o *OCRConfig) MaxFileSizeBytes() int64 {
	return o.MaxFileSizeMB << 20
}

// TextractConfig holds AWS Textract settings.
type TextractConfig struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// ModelProviderConfig holds settings for a single generative model provider.
type ModelProviderConfig struct {
	Provider        string `mapstructure:"provider"`
	APIKey          string `mapstructure:"api_key"`
	DefaultModel    string `mapstructure:"default_model"`
	Endpoint        string `mapstructure:"endpoint"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
}

// ModelConfig holds generative model settings with fallback support.
type ModelConfig struct {
	// Legacy flat fields
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary   ModelProviderConfig `mapstructure:"primary"`
	Secondary ModelProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary model provider config, falling back to legacy flat fields.
func (m *ModelConfig) PrimaryConfig() *ModelProviderConfig {
	if m.Primary.Provider != "" {
		return &m.Primary
	}
	return &ModelProviderConfig{
		Provider:        m.Provider,
		APIKey:          m.APIKey,
		DefaultModel:    m.DefaultModel,
		Endpoint:        m.Primary.Endpoint,
		MaxOutputTokens: m.Primary.MaxOutputTokens,
		TimeoutSecs:     m.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary model provider config, or nil if not configured.
func (m *ModelConfig) SecondaryConfig() *ModelProviderConfig {
	if m.Secondary.Provider != "" {
		return &m.Secondary
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// S3Config holds AWS S3 settings for reading page images by object key.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the LOGBOOK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LOGBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// OCR defaults
	v.SetDefault("ocr.provider", "AWS")
	v.SetDefault("ocr.max_file_size_mb", 5)

	// Textract defaults
	v.SetDefault("textract.region", "us-west-1")
	v.SetDefault("textract.endpoint", "")

	// Model defaults (legacy flat)
	v.SetDefault("model.provider", "gemini")
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.default_model", "gemini-2.0-flash")
	v.SetDefault("model.timeout_secs", 120)

	// Model primary/secondary defaults
	v.SetDefault("model.primary.provider", "")
	v.SetDefault("model.primary.api_key", "")
	v.SetDefault("model.primary.default_model", "")
	v.SetDefault("model.primary.endpoint", "")
	v.SetDefault("model.primary.max_output_tokens", 8192)
	v.SetDefault("model.primary.timeout_secs", 120)
	v.SetDefault("model.secondary.provider", "")
	v.SetDefault("model.secondary.api_key", "")
	v.SetDefault("model.secondary.default_model", "")
	v.SetDefault("model.secondary.endpoint", "")
	v.SetDefault("model.secondary.max_output_tokens", 8192)
	v.SetDefault("model.secondary.timeout_secs", 120)

	// S3 defaults
	v.SetDefault("s3.region", "us-west-1")
	v.SetDefault("s3.endpoint", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "LOGBOOK_SERVER_PORT",
		"server.read_timeout":               "LOGBOOK_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "LOGBOOK_SERVER_WRITE_TIMEOUT",
		"server.environment":                "LOGBOOK_SERVER_ENVIRONMENT",
		"log.level":                         "LOGBOOK_LOG_LEVEL",
		"log.format":                        "LOGBOOK_LOG_FORMAT",
		"cors.allowed_origins":              "LOGBOOK_CORS_ALLOWED_ORIGINS",
		"ocr.provider":                      "LOGBOOK_OCR_PROVIDER",
		"ocr.max_file_size_mb":              "LOGBOOK_OCR_MAX_FILE_SIZE_MB",
		"textract.region":                   "LOGBOOK_TEXTRACT_REGION",
		"textract.endpoint":                 "LOGBOOK_TEXTRACT_ENDPOINT",
		"textract.access_key":               "LOGBOOK_TEXTRACT_ACCESS_KEY",
		"textract.secret_key":               "LOGBOOK_TEXTRACT_SECRET_KEY",
		"model.provider":                    "LOGBOOK_MODEL_PROVIDER",
		"model.api_key":                     "LOGBOOK_MODEL_API_KEY",
		"model.default_model":               "LOGBOOK_MODEL_DEFAULT_MODEL",
		"model.timeout_secs":                "LOGBOOK_MODEL_TIMEOUT_SECS",
		"model.primary.provider":            "LOGBOOK_MODEL_PRIMARY_PROVIDER",
		"model.primary.api_key":             "LOGBOOK_MODEL_PRIMARY_API_KEY",
		"model.primary.default_model":       "LOGBOOK_MODEL_PRIMARY_DEFAULT_MODEL",
		"model.primary.endpoint":            "LOGBOOK_MODEL_PRIMARY_ENDPOINT",
		"model.primary.max_output_tokens":   "LOGBOOK_MODEL_PRIMARY_MAX_OUTPUT_TOKENS",
		"model.primary.timeout_secs":        "LOGBOOK_MODEL_PRIMARY_TIMEOUT_SECS",
		"model.secondary.provider":          "LOGBOOK_MODEL_SECONDARY_PROVIDER",
		"model.secondary.api_key":           "LOGBOOK_MODEL_SECONDARY_API_KEY",
		"model.secondary.default_model":     "LOGBOOK_MODEL_SECONDARY_DEFAULT_MODEL",
		"model.secondary.endpoint":          "LOGBOOK_MODEL_SECONDARY_ENDPOINT",
		"model.secondary.max_output_tokens": "LOGBOOK_MODEL_SECONDARY_MAX_OUTPUT_TOKENS",
		"model.secondary.timeout_secs":      "LOGBOOK_MODEL_SECONDARY_TIMEOUT_SECS",
		"s3.region":                         "LOGBOOK_S3_REGION",
		"s3.endpoint":                       "LOGBOOK_S3_ENDPOINT",
		"s3.access_key":                     "LOGBOOK_S3_ACCESS_KEY",
		"s3.secret_key":                     "LOGBOOK_S3_SECRET_KEY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if LOGBOOK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LOGBOOK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.OCR = OCRConfig{
		Provider:      strings.ToUpper(strings.TrimSpace(v.GetString("ocr.provider"))),
		MaxFileSizeMB: v.GetInt64("ocr.max_file_size_mb"),
	}
	cfg.Textract = TextractConfig{
		Region:    v.GetString("textract.region"),
		Endpoint:  v.GetString("textract.endpoint"),
		AccessKey: v.GetString("textract.access_key"),
		SecretKey: v.GetString("textract.secret_key"),
	}

	cfg.Model = ModelConfig{
		Provider:     v.GetString("model.provider"),
		APIKey:       v.GetString("model.api_key"),
		DefaultModel: v.GetString("model.default_model"),
		TimeoutSecs:  v.GetInt("model.timeout_secs"),
		Primary:      loadModelProvider(v, "model.primary"),
		Secondary:    loadModelProvider(v, "model.secondary"),
	}

	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}

	return cfg, nil
}

func loadModelProvider(v *viper.Viper, prefix string) ModelProviderConfig {
	return ModelProviderConfig{
		Provider:        v.GetString(prefix + ".provider"),
		APIKey:          v.GetString(prefix + ".api_key"),
		DefaultModel:    v.GetString(prefix + ".default_model"),
		Endpoint:        v.GetString(prefix + ".endpoint"),
		MaxOutputTokens: v.GetInt(prefix + ".max_output_tokens"),
		TimeoutSecs:     v.GetInt(prefix + ".timeout_secs"),
	}
}
