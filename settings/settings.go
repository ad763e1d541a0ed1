// Package settings persists the few things jot remembers between runs.
package settings

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/prodhe/jot/editor"
)

// FileName is the name of the settings file inside the config directory.
const FileName = "settings.yaml"

// Settings is the persisted state.
type Settings struct {
	// LastFile is the document path at the last shutdown, or Untitled.
	LastFile string `yaml:"last_file"`
	// Filters are the glob patterns offered when opening a file.
	Filters []string `yaml:"filters,omitempty"`
	// Tabstop is the tab width of the text view.
	Tabstop int `yaml:"tabstop,omitempty"`
}

// Default returns the settings of a first run.
func Default() Settings {
	return Settings{
		LastFile: editor.Untitled,
		Filters:  []string{"*.txt", "*"},
		Tabstop:  4,
	}
}

// DefaultPath returns the settings file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "config dir")
	}
	return filepath.Join(dir, editor.AppName, FileName), nil
}

// Load reads settings from path. A missing file gives the defaults, and so do fields
// left empty in the file.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Wrapf(err, "read settings %s", path)
	}

	var f Settings
	if err := yaml.Unmarshal(data, &f); err != nil {
		return s, errors.Wrapf(err, "parse settings %s", path)
	}
	if f.LastFile != "" {
		s.LastFile = f.LastFile
	}
	if len(f.Filters) > 0 {
		s.Filters = f.Filters
	}
	if f.Tabstop > 0 {
		s.Tabstop = f.Tabstop
	}
	return s, nil
}

// Save writes the settings to path, creating its directory. The file is replaced
// atomically through a rename.
func (s Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+FileName+"-*")
	if err != nil {
		return errors.Wrap(err, "save settings")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "save settings")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "save settings")
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "save settings %s", path)
}
