package bookmarkfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder for an import file.
type Format string

const (
	FormatAuto              Format = ""
	FormatJSON              Format = "json"
	FormatYAML              Format = "yaml"
	FormatTOML              Format = "toml"
	FormatHomepageBookmarks Format = "homepage-bookmarks"
	FormatHomepageServices  Format = "homepage-services"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "auto":
		return FormatAuto, nil
	case FormatAuto, FormatJSON, FormatYAML, FormatTOML, FormatHomepageBookmarks, FormatHomepageServices:
		return f, nil
	default:
		return "", fmt.Errorf("unknown import format %q", s)
	}
}

// Loader reads and decodes an import file
type Loader struct {
	filePath string
	format   Format
}

// NewLoader creates a loader. FormatAuto picks the decoder from the file
// extension.
func NewLoader(filePath string, format Format) *Loader {
	return &Loader{
		filePath: filePath,
		format:   format,
	}
}

// Load reads the file and converts it to the native document
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read import file: %w", err)
	}

	format := l.format
	if format == FormatAuto {
		if format, err = detectFormat(l.filePath); err != nil {
			return File{}, err
		}
	}
	return Decode(data, format)
}

// Decode converts data in the given format to the native document
func Decode(data []byte, format Format) (File, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, fmt.Errorf("failed to parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return File{}, fmt.Errorf("failed to parse toml: %w", err)
		}
	case FormatHomepageBookmarks:
		var cfg HomepageBookmarks
		if err := yaml.Unmarshal(stripTemplateVariables(data), &cfg); err != nil {
			return File{}, fmt.Errorf("failed to parse homepage bookmarks yaml: %w", err)
		}
		f = MapHomepageBookmarks(cfg)
	case FormatHomepageServices:
		var cfg HomepageServices
		if err := yaml.Unmarshal(stripTemplateVariables(data), &cfg); err != nil {
			return File{}, fmt.Errorf("failed to parse homepage services yaml: %w", err)
		}
		f = MapHomepageServices(cfg)
	default:
		return File{}, fmt.Errorf("unknown import format %q", format)
	}
	return f, nil
}

func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("cannot detect import format of %s, pass it explicitly", path)
	}
}

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// stripTemplateVariables removes Homepage template variables
// Example: {{HOMEPAGE_VAR_ADGUARD_URL}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
