package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirectives_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directives.json")
	content := `[
		{"sourceFile": "src/Card.tsx", "fileKey": "abc123", "nodeIds": ["1:2", "1:3"]},
		{"sourceFile": "src/Button.tsx", "fileKey": "def456", "nodeIds": ["2:1"]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	directives, err := loadDirectives(path)

	require.NoError(t, err)
	require.Len(t, directives, 2)
	assert.Equal(t, "src/Card.tsx", directives[0].SourceFile)
	assert.Equal(t, "abc123", directives[0].FileKey)
	assert.Equal(t, []string{"1:2", "1:3"}, directives[0].NodeIDs)
	assert.Equal(t, "def456", directives[1].FileKey)
}

func TestLoadDirectives_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directives.yaml")
	content := `- sourceFile: src/Card.tsx
  fileKey: abc123
  nodeIds:
    - "1:2"
    - "1:3"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	directives, err := loadDirectives(path)

	require.NoError(t, err)
	require.Len(t, directives, 1)
	assert.Equal(t, "abc123", directives[0].FileKey)
	assert.Equal(t, []string{"1:2", "1:3"}, directives[0].NodeIDs)
}

func TestLoadDirectives_YMLExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directives.yml")
	content := `- fileKey: abc123
  nodeIds: ["1:2"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	directives, err := loadDirectives(path)

	require.NoError(t, err)
	require.Len(t, directives, 1)
	assert.Equal(t, []string{"1:2"}, directives[0].NodeIDs)
}

func TestLoadDirectives_MissingFile(t *testing.T) {
	directives, err := loadDirectives(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Nil(t, directives)
	assert.Contains(t, err.Error(), "reading directives file")
}

func TestLoadDirectives_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directives.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	directives, err := loadDirectives(path)

	require.Error(t, err)
	assert.Nil(t, directives)
	assert.Contains(t, err.Error(), "parsing directives file")
}

func TestLoadDirectives_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directives.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- broken"), 0644))

	directives, err := loadDirectives(path)

	require.Error(t, err)
	assert.Nil(t, directives)
	assert.Contains(t, err.Error(), "parsing directives file")
}

func TestLoadDirectives_EmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directives.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	directives, err := loadDirectives(path)

	require.NoError(t, err)
	assert.Empty(t, directives)
}
