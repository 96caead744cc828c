package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	// User configurable settings
	Engine            string
	Device            string
	BatchSize         int
	Precision         string
	Model             string
	DownloadTimeout   time.Duration
	TranscribeTimeout time.Duration
	KeepAudio         bool
	LogEnabled        bool
	Verbose           bool
	Quiet             bool
	OpenAIAPIKey      string

	// Fixed XDG paths (not configurable)
	ConfigDir      string
	DataDir        string
	CacheDir       string
	MediaDir       string
	TempDir        string
	TranscriptsDir string
}

//go:embed config.toml
var defaultFS embed.FS

// EnsureDefaultConfig checks if a config file exists in the XDG config
// directory and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	filePath := filepath.Join(configDir, "config.toml")
	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile("config.toml")
	if err != nil {
		return fmt.Errorf("reading embedded default configuration: %w", err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default configuration: %w", err)
	}

	fmt.Printf("Created default configuration at %s\n", filePath)
	return nil
}

// TranscriptionConfig builds the engine settings from the configuration
func (c *Config) TranscriptionConfig() TranscriptionConfig {
	return TranscriptionConfig{
		Device:    Device(c.Device),
		BatchSize: c.BatchSize,
		Precision: Precision(c.Precision),
		Model:     c.Model,
	}
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// Ensure yt-dlp is installed
	ytdlp.MustInstall(context.Background(), nil)

	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "tubescribe")
	dataDir := filepath.Join(xdg.DataHome, "tubescribe")
	cacheDir := filepath.Join(xdg.CacheHome, "tubescribe")

	// media holds the per-video download directories, temp the engine
	// scratch files, transcripts the finished output cache
	mediaDir := filepath.Join(cacheDir, "media")
	tempDir := filepath.Join(cacheDir, "temp")
	transcriptsDir := filepath.Join(dataDir, "transcripts")

	defaults := DefaultTranscriptionConfig()

	v := viper.New()
	v.SetDefault("engine", EngineWhisperX)
	v.SetDefault("device", string(defaults.Device))
	v.SetDefault("batch_size", defaults.BatchSize)
	v.SetDefault("precision", string(defaults.Precision))
	v.SetDefault("model", defaults.Model)
	v.SetDefault("download_timeout", 10*time.Minute)
	v.SetDefault("transcribe_timeout", 30*time.Minute)
	v.SetDefault("keep_audio", false)
	v.SetDefault("log_enabled", false)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("TUBESCRIBE")
	v.AutomaticEnv()

	// Special case for OpenAI API Key - check both Viper and direct env var
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		Engine:            v.GetString("engine"),
		Device:            v.GetString("device"),
		BatchSize:         v.GetInt("batch_size"),
		Precision:         v.GetString("precision"),
		Model:             v.GetString("model"),
		DownloadTimeout:   v.GetDuration("download_timeout"),
		TranscribeTimeout: v.GetDuration("transcribe_timeout"),
		KeepAudio:         v.GetBool("keep_audio"),
		LogEnabled:        v.GetBool("log_enabled"),
		Verbose:           v.GetBool("verbose"),
		Quiet:             v.GetBool("quiet"),
		OpenAIAPIKey:      v.GetString("openai_api_key"),

		ConfigDir:      configDir,
		DataDir:        dataDir,
		CacheDir:       cacheDir,
		MediaDir:       mediaDir,
		TempDir:        tempDir,
		TranscriptsDir: transcriptsDir,
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}
