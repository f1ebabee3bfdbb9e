package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when the config file cannot be read or a
// setting fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Setting keys. Flags of the same name override them.
const (
	KeyOutputDir      = "output-dir"
	KeyOutputBasename = "output-basename"
	KeyExtension      = "extension"
	KeyEmptyParts     = "empty-parts"
	KeyLogLevel       = "log-level"
	KeyOutput         = "output"
)

// Config holds the settings that may come from a file or the environment.
type Config struct {
	OutputDir      string `mapstructure:"output-dir" validate:"required"`
	OutputBasename string `mapstructure:"output-basename" validate:"required,excludesall=/\\"`
	Extension      string `mapstructure:"extension" validate:"required,excludesall=/\\"`
	EmptyParts     string `mapstructure:"empty-parts" validate:"oneof=emit reject"`
	LogLevel       string `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	Output         string `mapstructure:"output" validate:"oneof=json yaml"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		OutputDir:      ".",
		OutputBasename: "output",
		Extension:      "pdf",
		EmptyParts:     "emit",
		LogLevel:       "info",
		Output:         "json",
	}
}

var validate = newValidator()

// newValidator reports fields by their setting key rather than the Go name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load resolves the configuration. cfgFile, when set, must exist; otherwise
// the candidates from paths are tried and a missing file is not an error.
// Flags in the set whose names match a setting key take precedence once changed.
func Load(cfgFile string, paths *Paths, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyOutputDir, defaults.OutputDir)
	v.SetDefault(KeyOutputBasename, defaults.OutputBasename)
	v.SetDefault(KeyExtension, defaults.Extension)
	v.SetDefault(KeyEmptyParts, defaults.EmptyParts)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyOutput, defaults.Output)

	// PDFSPLIT_OUTPUT_DIR, PDFSPLIT_LOG_LEVEL, ...
	v.SetEnvPrefix("PDFSPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile == "" && paths != nil {
		cfgFile = paths.findConfigFile()
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: error reading config file %s: %v", ErrInvalidConfig, cfgFile, err)
		}
	}

	if flags != nil {
		for _, key := range []string{KeyOutputDir, KeyOutputBasename, KeyExtension, KeyEmptyParts, KeyLogLevel, KeyOutput} {
			flag := flags.Lookup(key)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", key, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %v", ErrInvalidConfig, err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, describeValidation(err))
	}
	return &cfg, nil
}

// describeValidation turns validator errors into "key: rule" messages.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %q)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
