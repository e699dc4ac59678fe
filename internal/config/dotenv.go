package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// DotEnvPath returns the absolute path to ~/.wuwa-assets/.env.
func DotEnvPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.wuwa-assets/.env into a key/value map. A missing file
// yields an empty map. Parsing follows godotenv: comments, quoting and an
// optional "export " prefix are understood.
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrapf(err, "cannot stat dotenv file %s", p)
	}
	m, err := godotenv.Read(p)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse dotenv file %s", p)
	}
	return m, nil
}

// GetConfigValue returns the process environment value for key, falling back
// to the dotenv file.
func GetConfigValue(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	dotenv, err := LoadDotEnv()
	if err != nil {
		return "", err
	}
	return dotenv[key], nil
}

// EnsureDotEnvTemplate writes an empty WUWA_ASSETS_* template to DotEnvPath
// unless a file is already there. It reports whether a file was created.
func EnsureDotEnvTemplate() (bool, error) {
	p, err := DotEnvPath()
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(p); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "cannot stat dotenv file %s", p)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return false, errors.Wrapf(err, "cannot create %s", filepath.Dir(p))
	}

	body := "" +
		"# Overrides for wuwa-assets; the process environment wins over this file.\n" +
		EnvAssetTable + "=\n" +
		EnvOutput + "=\n" +
		EnvLogLevel + "=\n"

	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		return false, errors.Wrapf(err, "cannot write dotenv template %s", p)
	}
	return true, nil
}
