// Package config reads the optional .lsif-query.toml file that supplies defaults for
// command line flags.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// FileName is the name of the config file looked up in the workspace root.
const FileName = ".lsif-query.toml"

type Config struct {
	// Dump is the path of the index file.
	Dump string `toml:"dump"`
	// Root is the workspace root used to rewrite document URIs.
	Root string `toml:"root"`
	// Server is the command line of the fallback language server.
	Server string `toml:"server"`
	// Watch reloads the index when it changes while serving.
	Watch bool `toml:"watch"`
}

// Load reads the config file at the given path. Relative paths in the file are
// resolved against the file's directory. Unknown keys are an error.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}

	var config Config
	decoder := toml.NewDecoder(bytes.NewReader(contents)).DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}

	dir := filepath.Dir(path)
	config.Dump = resolve(dir, config.Dump)
	config.Root = resolve(dir, config.Root)
	return config, nil
}

// Find returns the path of the config file in dir, if one exists.
func Find(dir string) (string, bool) {
	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", false
	}

	return path, true
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}
