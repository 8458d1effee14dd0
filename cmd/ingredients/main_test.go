package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillet/grammar"
	"skillet/ingredient"
	"skillet/tools"
	"skillet/tools/storage"
)

func testList(t *testing.T) ingredient.List {
	t.Helper()
	list, err := grammar.ParseIngredients("1 1/2 cups flour (sifted)\nsalt, to taste\n")
	require.NoError(t, err)
	return list
}

func TestWriteIngredients(t *testing.T) {
	list := testList(t)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeIngredients(&buf, formatText, list))
		assert.Equal(t, "1 1/2 cups flour (sifted)\nsalt, to taste\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeIngredients(&buf, formatJSON, list))

		var decoded ingredient.List
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, list, decoded)
	})

	t.Run("repr", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeIngredients(&buf, formatRepr, list))
		assert.Contains(t, buf.String(), "ingredient.List{")
		assert.Contains(t, buf.String(), `"flour"`)
	})

	t.Run("dump", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeIngredients(&buf, formatDump, list))
		assert.Contains(t, buf.String(), "Numerator")
	})
}

func TestNewRecipeSource(t *testing.T) {
	ctx := context.Background()

	src, err := newRecipeSource(ctx, "", "", "")
	require.NoError(t, err)
	assert.IsType(t, &storage.ReaderRecipeSource{}, src)

	src, err = newRecipeSource(ctx, "-", "", "")
	require.NoError(t, err)
	assert.IsType(t, &storage.ReaderRecipeSource{}, src)

	src, err = newRecipeSource(ctx, "recipe.txt", "", "")
	require.NoError(t, err)
	assert.Equal(t, storage.NewFileRecipeSource("recipe.txt"), src)

	// A bucket from RECIPE_S3_BUCKET is a default, not a source.
	src, err = newRecipeSource(ctx, "recipe.txt", "my-bucket", "")
	require.NoError(t, err)
	assert.Equal(t, storage.NewFileRecipeSource("recipe.txt"), src)

	src, err = newRecipeSource(ctx, "recipe.txt", "my-bucket", "pancakes.txt")
	require.NoError(t, err)
	assert.Equal(t, storage.NewFileRecipeSource("recipe.txt"), src)

	src, err = newRecipeSource(ctx, "", "my-bucket", "")
	require.NoError(t, err)
	assert.IsType(t, &storage.ReaderRecipeSource{}, src)

	_, err = newRecipeSource(ctx, "", "", "pancakes.txt")
	assert.Error(t, err)
}

func TestPrintTools(t *testing.T) {
	opts := grammar.DefaultOptions()
	registry, err := tools.NewRegistry(opts, grammar.NewParser(opts), storage.NewTestRecipeSource(nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printTools(&buf, registry))

	out := buf.String()
	assert.Regexp(t, `(?s)^ingredients_parse\tParse Ingredients\n.*recipe_ingredients_get\tGet Recipe Ingredients\n`, out)
	assert.Contains(t, out, `"comment_policy"`)
}

func TestRunTool(t *testing.T) {
	opts := grammar.DefaultOptions()
	registry, err := tools.NewRegistry(opts, grammar.NewParser(opts), storage.NewTestRecipeSource([]byte("2 eggs\n1 cup milk\n")))
	require.NoError(t, err)

	tests := []struct {
		name    string
		tool    string
		input   string
		count   float64
		wantErr string
	}{
		{name: "parse text", tool: "ingredients_parse", input: `{"text": "1 1/2 cups flour"}`, count: 1},
		{name: "recipe from source", tool: "recipe_ingredients_get", input: `{}`, count: 2},
		{name: "null input", tool: "recipe_ingredients_get", input: `null`, count: 2},
		{name: "unknown tool", tool: "unit_convert", input: `{}`, wantErr: "not found"},
		{name: "bad json", tool: "ingredients_parse", input: `{"text":`, wantErr: "decode --input"},
		{name: "syntax error", tool: "ingredients_parse", input: `{"text": "2 cups"}`, wantErr: "parse ingredients"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := runTool(context.Background(), &buf, registry, tt.tool, tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			var out map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
			assert.Equal(t, tt.count, out["count"])
		})
	}
}
