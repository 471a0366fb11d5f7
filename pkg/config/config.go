package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/wonders/pkg/errors"
	"github.com/arthur-debert/wonders/pkg/logging"
)

const (
	// EnvPrefix starts every environment variable read as a setting.
	EnvPrefix = "WONDERS_"
	// EnvConfigFile names the user file when no explicit path is given.
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the effective settings.
type Config struct {
	Color    string   `koanf:"color" toml:"color" yaml:"color"`
	Bullet   string   `koanf:"bullet" toml:"bullet" yaml:"bullet"`
	Logging  Logging  `koanf:"logging" toml:"logging" yaml:"logging"`
	Markdown Markdown `koanf:"markdown" toml:"markdown" yaml:"markdown"`

	// Source is the user file that was loaded, "" when none was found.
	Source string `koanf:"-" toml:"-" yaml:"-"`
}

// Logging controls pkg/logging.
type Logging struct {
	Verbosity int  `koanf:"verbosity" toml:"verbosity" yaml:"verbosity"`
	File      bool `koanf:"file" toml:"file" yaml:"file"`
}

// Markdown controls how md elements are formatted.
type Markdown struct {
	Style string `koanf:"style" toml:"style" yaml:"style"`
	Width int    `koanf:"width" toml:"width" yaml:"width"`
}

// userFileNames are tried in order inside the XDG config directory.
var userFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Load builds the effective configuration. path selects the user file; when
// empty, $WONDERS_CONFIG and then the XDG config directory are tried and a
// missing file is not an error. overrides use dotted keys ("logging.verbosity").
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	source, explicit := path, path != ""
	if source == "" {
		source, explicit = os.Getenv(EnvConfigFile), os.Getenv(EnvConfigFile) != ""
	}
	if source == "" {
		source = findUserFile()
	}
	loaded := false
	if source != "" {
		var err error
		if loaded, err = loadFile(k, source, explicit); err != nil {
			return nil, err
		}
		if loaded {
			logger.Debug().Str("path", source).Msg("Loaded user config")
		}
	}

	// 3. Environment
	// Empty variables are skipped so WONDERS_COLOR= keeps the lower layers.
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if key == EnvConfigFile || value == "" {
			return "", nil
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_", "."), value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal configuration")
	}

	if loaded {
		cfg.Source = source
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults alone.
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal defaults")
	}
	return &cfg, nil
}

// UserConfigDir is where wonders looks for its user file.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, logging.AppDirName)
}

func findUserFile() string {
	dir := UserConfigDir()
	for _, name := range userFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadFile reports whether a file was loaded. Only an explicitly requested
// file must exist.
func loadFile(k *koanf.Koanf, path string, explicit bool) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
			WithDetail("path", path)
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path).
			WithDetail("path", path)
	}
	return true, nil
}
