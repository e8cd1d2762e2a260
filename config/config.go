// Package config loads the settings for a stepreport run. Settings come, in increasing order of
// precedence, from the defaults, an optional JSON or YAML file, an optional .env file, and
// STEPREPORT_* environment variables. Command-line flags are applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/stepreport/stepreport/framework/logbridge"
)

const envPrefix = "STEPREPORT_"

// listKeys are the settings that take a comma-separated list in the environment.
var listKeys = map[string]struct{}{"run": {}, "skip": {}} //nolint:gochecknoglobals

func splitList(value string) []string {
	var ret []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			ret = append(ret, item)
		}
	}
	return ret
}

// Config holds every setting that can also be given on the command line.
type Config struct {
	SuiteName       string   `json:"suiteName" koanf:"suite_name" validate:"required"`
	AttachmentTitle string   `json:"attachmentTitle" koanf:"attachment_title" validate:"required"`
	LogLevel        string   `json:"logLevel" koanf:"log_level" validate:"loglevel"`
	Run             []string `json:"run" koanf:"run"`
	Skip            []string `json:"skip" koanf:"skip"`
	JUnitFile       string   `json:"junitFile" koanf:"junit_file"`
	AllureDir       string   `json:"allureDir" koanf:"allure_dir"`
	ArchiveFile     string   `json:"archiveFile" koanf:"archive_file" validate:"omitempty,excluded_without=AllureDir"`
	ServePort       int      `json:"servePort" koanf:"serve_port" validate:"min=0,max=65535"`
	Debug           bool     `json:"debug" koanf:"debug"`
	DebugAll        bool     `json:"debugAll" koanf:"debug_all"`
	ShowSteps       bool     `json:"showSteps" koanf:"show_steps"`
	RecordFailures  string   `json:"recordFailures" koanf:"record_failures"`
}

// Default returns the settings used when nothing else is specified.
func Default() Config {
	return Config{
		SuiteName:       "stepreport",
		AttachmentTitle: "Log Entry",
		LogLevel:        "trace",
	}
}

// Load builds a Config from the defaults, the file at path (if path is not empty), the .env
// file at envFile (if not empty), and the environment.
func Load(path, envFile string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec
		if err != nil {
			return c, fmt.Errorf("cannot read configuration file: %w", err)
		}
		if err := parseJSONOrYAML(data, &c); err != nil {
			return c, fmt.Errorf("cannot parse configuration file %q: %w", path, err)
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return c, fmt.Errorf("cannot load environment file: %w", err)
		}
	}
	if err := applyEnvironment(&c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func applyEnvironment(c *Config) error {
	k := koanf.New(".")
	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		if _, ok := listKeys[key]; ok {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return fmt.Errorf("cannot read environment variables: %w", err)
	}
	if err := k.Unmarshal("", c); err != nil {
		return fmt.Errorf("invalid value in environment variables: %w", err)
	}
	return nil
}

// Validate checks the settings for consistency. LogLevel is accepted in any case.
func (c Config) Validate() error {
	v := validator.New()
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logbridge.ParseLevel(fl.Field().String())
		return err == nil
	})
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
