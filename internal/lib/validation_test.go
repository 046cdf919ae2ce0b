package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateManifestPath_Empty(t *testing.T) {
	err := ValidateManifestPath("")
	require.Error(t, err)
}

func TestValidateManifestPath_NotFound(t *testing.T) {
	err := ValidateManifestPath(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestValidateManifestPath_Directory(t *testing.T) {
	dir := t.TempDir()
	err := ValidateManifestPath(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestValidateManifestPath_WrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.txt")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	err := ValidateManifestPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".json")
}

func TestValidateManifestPath_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	assert.NoError(t, ValidateManifestPath(path))
}

func TestValidatePayloadPath_Empty(t *testing.T) {
	assert.NoError(t, ValidatePayloadPath(""))
}

func TestValidatePayloadPath_Safe(t *testing.T) {
	assert.NoError(t, ValidatePayloadPath("assets/chunk.js"))
}

func TestValidatePayloadPath_Traversal(t *testing.T) {
	err := ValidatePayloadPath("../../etc/passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsafe")
}

func TestValidatePayloadPath_Absolute(t *testing.T) {
	err := ValidatePayloadPath("/etc/passwd")
	require.Error(t, err)
}
