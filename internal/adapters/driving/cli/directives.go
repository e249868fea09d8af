package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

// loadDirectives reads a directive file produced by an external scanner.
// The file holds a list of directive records; .yaml/.yml files are
// parsed as YAML, everything else as JSON.
func loadDirectives(path string) ([]domain.Directive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading directives file: %w", err)
	}

	var directives []domain.Directive
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &directives); err != nil {
			return nil, fmt.Errorf("parsing directives file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &directives); err != nil {
			return nil, fmt.Errorf("parsing directives file %s: %w", path, err)
		}
	}

	return directives, nil
}
