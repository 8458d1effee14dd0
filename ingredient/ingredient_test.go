package ingredient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillet/units"
)

func TestIngredient_String(t *testing.T) {
	tests := []struct {
		name       string
		ingredient Ingredient
		expected   string
	}{
		{
			name: "decimal with unit",
			ingredient: Ingredient{
				Measurement: &Measurement{Quantity: Decimal{Value: "2"}, Unit: "cups"},
				Name:        NewName("flour"),
			},
			expected: "2 cups flour",
		},
		{
			name: "mixed fraction with closed comment",
			ingredient: Ingredient{
				Measurement: &Measurement{Quantity: Fraction{Whole: "1", Numerator: "1", Denominator: "2"}, Unit: "cups"},
				Name:        NewName("almond  flour"),
				Comment:     &Comment{Marker: "(", Text: "sifted", Closed: true},
			},
			expected: "1 1/2 cups almond flour (sifted)",
		},
		{
			name: "range without unit",
			ingredient: Ingredient{
				Measurement: &Measurement{Quantity: Range{Low: Decimal{Value: "2"}, High: Fraction{Numerator: "5", Denominator: "2"}}},
				Name:        NewName("apples"),
			},
			expected: "2-5/2 apples",
		},
		{
			name: "comma comment",
			ingredient: Ingredient{
				Name:    NewName("red onion"),
				Comment: &Comment{Marker: ",", Text: "thinly sliced"},
			},
			expected: "red onion, thinly sliced",
		},
		{
			name: "unclosed paren comment",
			ingredient: Ingredient{
				Name:    NewName("eggs"),
				Comment: &Comment{Marker: "(", Text: "beaten hard"},
			},
			expected: "eggs (beaten hard",
		},
		{
			name: "empty unclosed comment keeps a trailing token",
			ingredient: Ingredient{
				Name:    NewName("eggs"),
				Comment: &Comment{Marker: "("},
			},
			expected: "eggs ( ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ingredient.String())
		})
	}
}

func TestList_String(t *testing.T) {
	l := List{
		{Measurement: &Measurement{Quantity: Decimal{Value: "1"}, Unit: "cup"}, Name: NewName("butter")},
		{Name: NewName("salt to taste")},
	}

	assert.Equal(t, "1 cup butter\nsalt to taste\n", l.String())
	assert.Equal(t, "", List{}.String())
}

func TestMeasurement_UnitInfo(t *testing.T) {
	assert.Equal(t, units.Cup, Measurement{Quantity: Decimal{Value: "1"}, Unit: "cups"}.UnitInfo())
	assert.True(t, Measurement{Quantity: Decimal{Value: "1"}}.UnitInfo().IsNone())
	assert.True(t, Measurement{Quantity: Decimal{Value: "1"}, Unit: "large"}.UnitInfo().IsCustom())
}

func TestFraction_Mixed(t *testing.T) {
	assert.True(t, Fraction{Whole: "1", Numerator: "1", Denominator: "2"}.Mixed())
	assert.False(t, Fraction{Numerator: "1", Denominator: "2"}.Mixed())
}

func TestIngredient_JSON(t *testing.T) {
	ing := Ingredient{
		Measurement: &Measurement{
			Quantity: Range{Low: Decimal{Value: "2"}, High: Fraction{Whole: "2", Numerator: "1", Denominator: "2"}},
			Unit:     "cups",
		},
		Name:    NewName("flour"),
		Comment: &Comment{Marker: "(", Text: "sifted", Closed: true},
	}

	b, err := json.Marshal(ing)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(b, &generic))
	assert.Equal(t, map[string]any{
		"measurement": map[string]any{
			"quantity": map[string]any{
				"kind": "range",
				"low":  map[string]any{"kind": "decimal", "value": "2"},
				"high": map[string]any{"kind": "fraction", "whole": "2", "numerator": "1", "denominator": "2"},
			},
			"unit":      "cups",
			"unit_name": "cup",
		},
		"name":    "flour",
		"comment": map[string]any{"marker": "(", "text": "sifted", "closed": true},
	}, generic)

	var back Ingredient
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, ing, back)
}

func TestIngredient_UnmarshalJSON_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{name: "missing name", input: `{"name": ""}`, contains: "without name"},
		{name: "unknown kind", input: `{"name": "flour", "measurement": {"quantity": {"kind": "lots"}}}`, contains: "unknown quantity kind"},
		{name: "nested range", input: `{"name": "flour", "measurement": {"quantity": {"kind": "range", "low": {"kind": "range"}, "high": {"kind": "decimal", "value": "1"}}}}`, contains: "range low"},
		{name: "fraction without denominator", input: `{"name": "flour", "measurement": {"quantity": {"kind": "fraction", "numerator": "1"}}}`, contains: "numerator and denominator"},
		{name: "missing quantity", input: `{"name": "flour", "measurement": {"unit": "cup"}}`, contains: "missing quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ing Ingredient
			err := json.Unmarshal([]byte(tt.input), &ing)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
