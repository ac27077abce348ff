package content

import "fmt"

// Visibility is the lifecycle stage of a record as seen by readers.
// The ordinals are persisted by adopting systems and must not change.
type Visibility int

const (
	VisibilityPublished Visibility = iota
	VisibilityDraft
	VisibilityDeleted
)

var visibilityNames = [...]string{
	VisibilityPublished: "published",
	VisibilityDraft:     "draft",
	VisibilityDeleted:   "deleted",
}

// IsValid reports whether v is one of the defined visibilities.
func (v Visibility) IsValid() bool {
	return v >= VisibilityPublished && v <= VisibilityDeleted
}

func (v Visibility) String() string {
	if !v.IsValid() {
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
	return visibilityNames[v]
}

// ParseVisibility converts the text form ("published", "draft", "deleted")
// into a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	for i, name := range visibilityNames {
		if name == s {
			return Visibility(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidVisibility, s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Visibility) MarshalText() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVisibility, int(v))
	}
	return []byte(visibilityNames[v]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Visibility) UnmarshalText(text []byte) error {
	parsed, err := ParseVisibility(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
