// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/huffseal/lib/digest"
	"github.com/bureau-foundation/huffseal/lib/sealpack"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "HUFFSEAL_CONFIG"

// Config is the master configuration for huffseal.
type Config struct {
	// Keys locates the signing key pair.
	Keys KeysConfig `yaml:"keys"`

	// Pack configures the pack command.
	Pack PackConfig `yaml:"pack"`

	// Unpack configures the unpack command.
	Unpack UnpackConfig `yaml:"unpack"`

	// Output configures where results are written.
	Output OutputConfig `yaml:"output"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`
}

// KeysConfig locates key files.
type KeysConfig struct {
	// PrivateKey is the PEM private key used by pack.
	PrivateKey string `yaml:"private_key"`

	// PublicKey is the PEM public key used by unpack.
	PublicKey string `yaml:"public_key"`

	// PassphraseFile holds the passphrase for a sealed private key.
	// Empty means the key is not sealed or the passphrase is prompted.
	PassphraseFile string `yaml:"passphrase_file"`
}

// PackConfig configures pack.
type PackConfig struct {
	// Mode is "strict" or "signature-only".
	// Default: strict
	Mode string `yaml:"mode"`

	// Hash is "sha256" or "blake3".
	// Default: sha256
	Hash string `yaml:"hash"`
}

// UnpackConfig configures unpack.
type UnpackConfig struct {
	// Mode is "strict" or "signature-only".
	// Default: strict
	Mode string `yaml:"mode"`
}

// OutputConfig configures result files.
type OutputConfig struct {
	// Directory receives generated output files when no explicit
	// output path is given. Empty means next to the input file.
	Directory string `yaml:"directory"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	keyDir := filepath.Join(homeDir, ".config", "huffseal")

	return &Config{
		Keys: KeysConfig{
			PrivateKey: filepath.Join(keyDir, "private_key.pem"),
			PublicKey:  filepath.Join(keyDir, "public_key.pem"),
		},
		Pack: PackConfig{
			Mode: sealpack.ModeStrict.String(),
			Hash: digest.SHA256.String(),
		},
		Unpack: UnpackConfig{
			Mode: sealpack.ModeStrict.String(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the HUFFSEAL_CONFIG environment
// variable. Fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your huffseal.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Values in
// the file override [Default]; omitted fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// Resolve picks the configuration source: flagPath if non-empty, then
// HUFFSEAL_CONFIG, then [Default].
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	cfg := Default()
	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Keys.PrivateKey = expandVars(c.Keys.PrivateKey, vars)
	c.Keys.PublicKey = expandVars(c.Keys.PublicKey, vars)
	c.Keys.PassphraseFile = expandVars(c.Keys.PassphraseFile, vars)
	c.Output.Directory = expandVars(c.Output.Directory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := configuredMode("pack.mode", c.Pack.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := configuredMode("unpack.mode", c.Unpack.Mode); err != nil {
		errs = append(errs, err)
	}

	if algorithm, err := digest.ParseAlgorithm(c.Pack.Hash); err != nil {
		errs = append(errs, fmt.Errorf("pack.hash: %w", err))
	} else if algorithm == digest.AlgorithmNone {
		errs = append(errs, fmt.Errorf("pack.hash must be sha256 or blake3"))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// PackMode returns the parsed pack.mode.
func (c *Config) PackMode() (sealpack.Mode, error) {
	return configuredMode("pack.mode", c.Pack.Mode)
}

// UnpackMode returns the parsed unpack.mode.
func (c *Config) UnpackMode() (sealpack.Mode, error) {
	return configuredMode("unpack.mode", c.Unpack.Mode)
}

// HashAlgorithm returns the parsed pack.hash.
func (c *Config) HashAlgorithm() (digest.Algorithm, error) {
	algorithm, err := digest.ParseAlgorithm(c.Pack.Hash)
	if err != nil {
		return 0, fmt.Errorf("pack.hash: %w", err)
	}
	return algorithm, nil
}

// LogLevel returns the parsed log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func configuredMode(field, name string) (sealpack.Mode, error) {
	mode, err := sealpack.ParseMode(name)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if mode.Insecure() {
		return 0, fmt.Errorf("%s: %s cannot be set in configuration; pass it on the command line", field, mode)
	}
	return mode, nil
}
