package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecipeSource(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "recipe_source_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	tests := []struct {
		name        string
		filename    string
		data        []byte
		expectError bool
	}{
		{
			name:        "basic recipe load",
			filename:    "pancakes.txt",
			data:        []byte("1 1/2 cups flour\n2 eggs (beaten)\n"),
			expectError: false,
		},
		{
			name:        "empty recipe file",
			filename:    "empty.txt",
			data:        []byte(""),
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, tt.filename)

			// Create the test file
			err := os.WriteFile(filePath, tt.data, 0644)
			require.NoError(t, err)

			source := NewFileRecipeSource(filePath)
			loadedData, err := source.Load(context.Background())
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.data, loadedData)
		})
	}

	t.Run("load nonexistent recipe", func(t *testing.T) {
		nonexistentPath := filepath.Join(tmpDir, "nonexistent.txt")
		source := NewFileRecipeSource(nonexistentPath)
		_, err := source.Load(context.Background())
		assert.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestReaderRecipeSource(t *testing.T) {
	source := NewReaderRecipeSource(strings.NewReader("salt\n"))

	data, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("salt\n"), data)
}

func TestTestRecipeSource(t *testing.T) {
	data, err := NewTestRecipeSource([]byte("salt\n")).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("salt\n"), data)

	_, err = NewTestRecipeSourceWithError().Load(context.Background())
	assert.Error(t, err)
}
