package models

import (
	"fmt"
	"strings"
)

// Name identifies a member or an event. Two names are equal when they match
// ignoring case; the original spelling is kept for display.
type Name string

// ParseName trims and validates s.
func ParseName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if err := checkField("name", s, nameRule,
		fmt.Sprintf("must be 1-%d letters, digits, spaces or .'&- and start with a letter or digit", MaxNameLength)); err != nil {
		return "", err
	}
	return Name(s), nil
}

// MustName is ParseName for literals known to be valid. It panics otherwise.
func MustName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Key is the case-folded form used for lookups.
func (n Name) Key() string { return strings.ToLower(string(n)) }

// Equal reports whether n and o name the same entity.
func (n Name) Equal(o Name) bool { return strings.EqualFold(string(n), string(o)) }

func (n Name) String() string { return string(n) }

// Words splits the name on whitespace, for keyword search.
func (n Name) Words() []string { return strings.Fields(string(n)) }

// ContainsWord reports whether any word of the name equals word, ignoring case.
func (n Name) ContainsWord(word string) bool {
	for _, w := range n.Words() {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}
