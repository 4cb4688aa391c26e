package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the conventional location of a project's catalog file.
const DefaultPath = ".golive/catalog.toml"

// File is the on-disk form of a catalog and its phase groupings.
type File struct {
	Stages []StageDefinition `toml:"stage" yaml:"stages"`
	Phases []PhaseDefinition `toml:"phase" yaml:"phases,omitempty"`
}

// DefaultFile returns the standard pipeline and phases as a File, ready to be
// written with Save.
func DefaultFile() File {
	return File{Stages: Default().Stages(), Phases: DefaultPhases()}
}

// Load reads a catalog file. The format follows the extension: .toml, or
// .yaml/.yml. If the file does not exist the default catalog and phases are
// returned with no error. A file without phases gets the default phases.
func Load(path string) (Catalog, []PhaseDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), DefaultPhases(), nil
		}
		return Catalog{}, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f, err := decode(path, data)
	if err != nil {
		return Catalog{}, nil, err
	}

	cat, err := New(f.Stages...)
	if err != nil {
		return Catalog{}, nil, fmt.Errorf("validating %s: %w", path, err)
	}

	phases := f.Phases
	if len(phases) == 0 {
		phases = DefaultPhases()
	}
	if err := ValidatePhases(phases); err != nil {
		return Catalog{}, nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return cat, phases, nil
}

// Save writes f to path, creating parent directories as needed.
func Save(path string, f File) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := encode(path, f)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func decode(path string, data []byte) (File, error) {
	var f File
	switch format(path) {
	case "toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return File{}, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	return f, nil
}

func encode(path string, f File) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format(path) {
	case "toml":
		data, err = toml.Marshal(f)
	case "yaml":
		data, err = yaml.Marshal(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", path, err)
	}
	return data, nil
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}
