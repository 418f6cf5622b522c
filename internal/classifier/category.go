package classifier

import "fmt"

// Category is the handling stack a parcel is routed to
type Category string

const (
	Standard Category = "STANDARD"
	Special  Category = "SPECIAL"
	Rejected Category = "REJECTED"
)

// Categories lists every category from loosest to strictest
var Categories = []Category{Standard, Special, Rejected}

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case Standard, Special, Rejected:
		return true
	}
	return false
}

// severity orders categories: Standard < Special < Rejected
func (c Category) severity() int {
	switch c {
	case Standard:
		return 0
	case Special:
		return 1
	case Rejected:
		return 2
	}
	return -1
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown category %q", string(c))
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory converts a category name into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
