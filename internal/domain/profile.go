package domain

import (
	"errors"
	"strings"
)

// Profile is the candidate identity block used when rendering letters.
type Profile struct {
	Name       string `yaml:"name"`
	Contact    string `yaml:"contact"`
	Motivation string `yaml:"motivation"`
	Signature  string `yaml:"signature"`

	// Company name inside Motivation that gets swapped for the
	// target company of each letter.
	PlaceholderCompany string `yaml:"placeholder_company"`
}

// Validate checks the four fields a letter cannot be rendered without.
func (p Profile) Validate() error {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", p.Name},
		{"contact", p.Contact},
		{"motivation", p.Motivation},
		{"signature", p.Signature},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.New("profile is missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}
