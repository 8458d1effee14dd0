package skillet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"skillet/ingredient"
)

func TestSdump(t *testing.T) {
	list := ingredient.List{{
		Measurement: &ingredient.Measurement{Quantity: ingredient.Fraction{Numerator: "1", Denominator: "2"}, Unit: "cup"},
		Name:        ingredient.NewName("sugar"),
	}}

	out := Sdump(list)
	assert.Contains(t, out, "Denominator")
	assert.Contains(t, out, `"sugar"`)
}
