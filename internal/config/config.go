package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kamusis/wuwa-assets/internal/resolver"
	"gopkg.in/yaml.v3"
)

// Config is the in-memory representation of ~/.wuwa-assets/config.yaml.
// Paths are resolved relative to the config file's directory by Load.
type Config struct {
	AssetTable    string              `yaml:"asset_table"`
	Characters    string              `yaml:"characters"`
	Echoes        string              `yaml:"echoes"`
	Weapons       string              `yaml:"weapons"`
	Output        string              `yaml:"output"`
	Report        string              `yaml:"report,omitempty"`
	Format        string              `yaml:"format,omitempty"`
	LogLevel      string              `yaml:"log_level,omitempty"`
	CardOverrides []resolver.Override `yaml:"card_overrides,omitempty"`
}

// Env keys consulted by ApplyEnv, process environment first, then the dotenv
// file.
const (
	EnvAssetTable = "WUWA_ASSETS_TABLE"
	EnvOutput     = "WUWA_ASSETS_OUTPUT"
	EnvLogLevel   = "WUWA_ASSETS_LOG_LEVEL"
)

// Dir returns the absolute path to ~/.wuwa-assets/.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot determine home directory")
	}
	return filepath.Join(home, ".wuwa-assets"), nil
}

// ConfigPath returns the absolute path to ~/.wuwa-assets/config.yaml.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot expand ~")
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the layout of the site repository: the generated image
// map and the static data files, relative to the working directory.
func DefaultConfig() *Config {
	return &Config{
		AssetTable: filepath.Join("src", "utils", "image_map.json"),
		Characters: filepath.Join("src", "data", "characters.json"),
		Echoes:     filepath.Join("src", "data", "echoes.json"),
		Weapons:    filepath.Join("src", "data", "weapons.json"),
		Output:     filepath.Join("src", "utils", "categorized_images.json"),
		Format:     "json",
		LogLevel:   "info",
	}
}

// Load reads the config at path, or at ConfigPath when path is empty. A
// missing default config yields DefaultConfig; a missing explicit path is an
// error. Relative paths inside the file resolve against its directory.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "cannot read config %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "invalid YAML in %s", path),
			"fix the file or regenerate it with 'wuwa-assets init --force'")
	}

	base := filepath.Dir(path)
	for _, p := range []*string{&cfg.AssetTable, &cfg.Characters, &cfg.Echoes, &cfg.Weapons, &cfg.Output, &cfg.Report} {
		if *p, err = resolvePath(base, *p); err != nil {
			return nil, err
		}
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// fillDefaults sets every empty field except Report from DefaultConfig.
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	for _, f := range []struct {
		dst *string
		def string
	}{
		{&c.AssetTable, d.AssetTable},
		{&c.Characters, d.Characters},
		{&c.Echoes, d.Echoes},
		{&c.Weapons, d.Weapons},
		{&c.Output, d.Output},
		{&c.Format, d.Format},
		{&c.LogLevel, d.LogLevel},
	} {
		if *f.dst == "" {
			*f.dst = f.def
		}
	}
}

// Save marshals cfg and writes it to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "cannot marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "cannot create config dir")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "cannot write config %s", path)
	}
	return nil
}

// ApplyEnv overlays WUWA_ASSETS_* values from the environment or dotenv file.
func (c *Config) ApplyEnv() error {
	for key, dst := range map[string]*string{
		EnvAssetTable: &c.AssetTable,
		EnvOutput:     &c.Output,
		EnvLogLevel:   &c.LogLevel,
	} {
		v, err := GetConfigValue(key)
		if err != nil {
			return err
		}
		if v != "" {
			*dst = v
		}
	}
	return nil
}

// Overrides returns the configured card overrides followed by the built-in
// ones, so a configured id shadows a default with the same id.
func (c *Config) Overrides() []resolver.Override {
	return append(resolver.NormalizeOverrides(c.CardOverrides), resolver.DefaultCardOverrides()...)
}

func resolvePath(base, p string) (string, error) {
	if p == "" {
		return "", nil
	}
	p, err := ExpandPath(p)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(base, p), nil
}
