package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds the runtime options of the address book.
// Values come from defaults, an optional YAML file, ADDRESSBOOK_* environment
// variables and finally command line flags, in increasing precedence.
type Settings struct {
	Language     string `mapstructure:"language"`
	Debug        bool   `mapstructure:"debug"`
	Serve        bool   `mapstructure:"serve"`
	Port         string `mapstructure:"port"`
	WindowMode   string `mapstructure:"window_mode"`
	ImportSource string `mapstructure:"import_source"`
	ImportUser   string `mapstructure:"import_user"`
}

// NewViper returns a viper instance preloaded with defaults and env bindings.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(SettingLanguage, DefaultLanguage)
	v.SetDefault(SettingDebug, false)
	v.SetDefault(SettingServe, false)
	v.SetDefault(SettingPort, DefaultPort)
	v.SetDefault(SettingWindowMode, DefaultWindowMode)
	v.SetDefault(SettingImport, "")
	v.SetDefault(SettingImportUser, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads the optional settings file into v and decodes the result.
// An empty path skips the file entirely.
func LoadSettings(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(SettingsFileType)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("%s: %w", ErrSettingsRead, err)
		}
		slog.Debug(MsgSettingsFile,
			LogKeyComponent, CompSettings,
			LogKeyFile, path)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsDecode, err)
	}
	s.Language = strings.ToLower(strings.TrimSpace(s.Language))
	s.WindowMode = strings.ToLower(strings.TrimSpace(s.WindowMode))

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks values that cannot be expressed through viper defaults.
func (s Settings) Validate() error {
	var errs []error

	if s.Serve {
		if err := ValidatePort(s.Port); err != nil {
			errs = append(errs, err)
		}
	}

	switch s.WindowMode {
	case WindowModeAnniversary, WindowModeLiteral:
	default:
		errs = append(errs, fmt.Errorf("%s: %q", ErrWindowMode, s.WindowMode))
	}

	if !slices.Contains(SupportedLanguages, s.Language) {
		errs = append(errs, fmt.Errorf("%s: %q", ErrLanguage, s.Language))
	}

	return errors.Join(errs...)
}

// ValidatePort ensures p is a decimal TCP port in [MinPort, MaxPort].
func ValidatePort(p string) error {
	if p == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
