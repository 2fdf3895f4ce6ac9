package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"certsentry/internal/models"
)

// Load reads the properties configuration. Precedence: environment
// variables (CERTSENTRY_ prefix, after an optional .env load), then the
// config file, then defaults. A malformed config file is a fatal error;
// a missing one falls back to defaults.
func Load(cfgFile string) (*models.Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CERTSENTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		v.SetConfigName("default")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &models.Config{
		WarningDays:    v.GetInt("monitoring.warning_days"),
		Timeout:        time.Duration(v.GetInt("monitoring.timeout_seconds")) * time.Second,
		NotifyEnabled:  v.GetBool("notify.enabled"),
		WebhookURL:     v.GetString("notify.webhook_url"),
		WeeklyReport:   v.GetBool("notify.weekly_report"),
		NotifyTargetID: v.GetString("notify.target_id"),
		OutputDir:      v.GetString("output.directory"),
		OutputFormat:   v.GetString("output.format"),
		LogLevel:       v.GetString("logging.level"),
		LogFormat:      v.GetString("logging.format"),
		LogFile:        v.GetString("logging.file"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("monitoring.warning_days", 7)
	v.SetDefault("monitoring.timeout_seconds", 10)
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.weekly_report", false)
	v.SetDefault("notify.target_id", "")
	v.SetDefault("output.directory", "results")
	v.SetDefault("output.format", "json")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
}

// LoadSites reads the site list from a JSON or YAML file. An unreadable
// or malformed file is a fatal startup error, not a per-run error.
func LoadSites(path string) ([]models.SiteSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file: %w", err)
	}

	var list models.SiteList
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &list)
	default:
		err = json.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid sites file %s: %w", path, err)
	}

	if len(list.Sites) == 0 {
		return nil, fmt.Errorf("no sites configured in %s", path)
	}

	return list.Sites, nil
}
