package seedreviews

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/slotcap/internal/adapters/repository"
)

// File permission constants.
const (
	fixtureFilePermission = 0o600
)

// Write marshals the fixture to YAML and writes it to path.
func Write(path string, f *repository.Fixture) error {
	raw, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, raw, fixtureFilePermission); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	return nil
}
