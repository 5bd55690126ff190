package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/annoworks/annostat/types"
)

// validate is a single instance, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load reads the engine configuration. Precedence, lowest first: defaults,
// config file, environment variables (ANNOSTAT_ prefix, dots as
// underscores), with a .env file loaded into the environment beforehand.
// cfgFile may be empty, in which case .annostat.yaml is searched for in the
// working directory and the home directory.
func Load(cfgFile string) (*types.EngineConfig, error) {
	// It's okay if no .env file exists.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine; defaults plus environment apply.
	}

	var cfg types.EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stats.notWorkedThresholdSeconds", DefaultNotWorkedThresholdSeconds)
	v.SetDefault("stats.groupBy", []string{})
	v.SetDefault("archive.dir", DefaultArchiveDir)
	v.SetDefault("archive.format", DefaultArchiveFormat)
}
