package plugin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFile is the manifest name inside a plugin directory.
const ManifestFile = "plugin.toml"

// Manifest is the decoded plugin.toml. Single-file plugins and directories
// without a manifest get a minimal one.
type Manifest struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`

	// Main is the entry point, relative to the plugin directory.
	Main string `toml:"main"`

	// Keys binds key specs to commands when the plugin loads.
	Keys map[string]string `toml:"keys"`

	dir string
}

var (
	validName    = regexp.MustCompile(`^[a-z]([a-z0-9-]*[a-z0-9])?$`)
	validVersion = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)
)

// LoadManifest reads, decodes and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	defer f.Close()

	m, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// DecodeManifest decodes and validates a manifest. Unknown keys are an
// error so that typos in plugin.toml do not go unnoticed.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Main == "" {
		m.Main = "init.lua"
	}
	if m.Version == "" {
		m.Version = "0.0.0"
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func newMinimalManifest(name, dir, main string) *Manifest {
	return &Manifest{Name: name, Version: "0.0.0", Main: main, dir: dir}
}

// Validate checks the name, version and entry point.
func (m *Manifest) Validate() error {
	switch {
	case m.Name == "":
		return ErrMissingName
	case !validName.MatchString(m.Name):
		return fmt.Errorf("%w: %q", ErrInvalidName, m.Name)
	case !validVersion.MatchString(m.Version):
		return fmt.Errorf("%w: %q", ErrInvalidVersion, m.Version)
	case filepath.Ext(m.Main) != ".lua":
		return fmt.Errorf("%w: %q", ErrInvalidMain, m.Main)
	}
	return nil
}

// Path returns the plugin directory.
func (m *Manifest) Path() string {
	return m.dir
}

// MainPath returns the entry point's full path.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.dir, m.Main)
}

func (m *Manifest) String() string {
	return m.Name + " v" + m.Version
}
