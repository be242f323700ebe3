package roster

import "encoding/json"

// Cell is one position of the grid. An absent cell (Present == false) is
// different from a cell holding the empty string.
type Cell struct {
	Value   string
	Present bool
}

// Text returns a present cell holding s.
func Text(s string) Cell { return Cell{Value: s, Present: true} }

// String renders the cell the way it is exported: absent cells become "".
func (c Cell) String() string {
	if !c.Present {
		return ""
	}
	return c.Value
}

// MarshalJSON encodes an absent cell as null and a present one as a string.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Present {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var v *string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*c = Cell{}
		return nil
	}
	*c = Text(*v)
	return nil
}
