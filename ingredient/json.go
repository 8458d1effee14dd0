package ingredient

import (
	"encoding/json"
	"errors"
	"fmt"
)

type quantityJSON struct {
	Kind        QuantityKind  `json:"kind"`
	Value       string        `json:"value,omitempty"`
	Whole       string        `json:"whole,omitempty"`
	Numerator   string        `json:"numerator,omitempty"`
	Denominator string        `json:"denominator,omitempty"`
	Low         *quantityJSON `json:"low,omitempty"`
	High        *quantityJSON `json:"high,omitempty"`
}

func toQuantityJSON(q Quantity) *quantityJSON {
	switch v := q.(type) {
	case Decimal:
		return &quantityJSON{Kind: KindDecimal, Value: v.Value}
	case Fraction:
		return &quantityJSON{Kind: KindFraction, Whole: v.Whole, Numerator: v.Numerator, Denominator: v.Denominator}
	case Range:
		return &quantityJSON{Kind: KindRange, Low: toQuantityJSON(v.Low), High: toQuantityJSON(v.High)}
	default:
		return nil
	}
}

func (q *quantityJSON) quantity(bound bool) (Quantity, error) {
	if q == nil {
		return nil, errors.New("missing quantity")
	}
	switch q.Kind {
	case KindDecimal:
		if q.Value == "" {
			return nil, errors.New("decimal quantity without value")
		}
		return Decimal{Value: q.Value}, nil
	case KindFraction:
		if q.Numerator == "" || q.Denominator == "" {
			return nil, errors.New("fraction quantity needs numerator and denominator")
		}
		return Fraction{Whole: q.Whole, Numerator: q.Numerator, Denominator: q.Denominator}, nil
	case KindRange:
		if bound {
			return nil, errors.New("range bounds must be decimal or fraction")
		}
		low, err := q.Low.quantity(true)
		if err != nil {
			return nil, fmt.Errorf("range low: %w", err)
		}
		high, err := q.High.quantity(true)
		if err != nil {
			return nil, fmt.Errorf("range high: %w", err)
		}
		return Range{Low: low, High: high}, nil
	default:
		return nil, fmt.Errorf("unknown quantity kind %q", q.Kind)
	}
}

type measurementJSON struct {
	Quantity *quantityJSON `json:"quantity"`
	Unit     string        `json:"unit,omitempty"`
	UnitName string        `json:"unit_name,omitempty"`
}

// MarshalJSON adds the resolved lexicon name of the unit as unit_name.
func (m Measurement) MarshalJSON() ([]byte, error) {
	out := measurementJSON{Quantity: toQuantityJSON(m.Quantity), Unit: m.Unit}
	if u := m.UnitInfo(); u.Known() {
		out.UnitName = u.Name
	}
	return json.Marshal(out)
}

func (m *Measurement) UnmarshalJSON(b []byte) error {
	var in measurementJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	q, err := in.Quantity.quantity(false)
	if err != nil {
		return fmt.Errorf("measurement: %w", err)
	}
	*m = Measurement{Quantity: q, Unit: in.Unit}
	return nil
}

func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *Name) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*n = NewName(s)
	return nil
}

type commentJSON struct {
	Marker string `json:"marker"`
	Text   string `json:"text"`
	Closed bool   `json:"closed,omitempty"`
}

func (c Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(commentJSON(c))
}

func (c *Comment) UnmarshalJSON(b []byte) error {
	var in commentJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if in.Marker == "" {
		in.Marker = "("
	}
	*c = Comment(in)
	return nil
}

type ingredientJSON struct {
	Measurement *Measurement `json:"measurement,omitempty"`
	Name        Name         `json:"name"`
	Comment     *Comment     `json:"comment,omitempty"`
}

func (i Ingredient) MarshalJSON() ([]byte, error) {
	return json.Marshal(ingredientJSON(i))
}

func (i *Ingredient) UnmarshalJSON(b []byte) error {
	var in ingredientJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if len(in.Name.Words) == 0 {
		return errors.New("ingredient without name")
	}
	*i = Ingredient(in)
	return nil
}
