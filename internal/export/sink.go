// Package export delivers the finalized listings of a run to their
// destinations. Sinks are selected by configuration, never by type
// inspection, and a failing sink is a warning, not a run failure.
package export

import (
	"context"
	"strings"

	"github.com/MohamedB94/scrapper-hellowork/internal/domain"
)

// Sink receives the full, deduplicated record batch of one run.
type Sink interface {
	Name() string
	Write(ctx context.Context, records []domain.JobListing) error
}

// Columns is the stable export order every sink must follow.
var Columns = []string{"Date", "Titre", "Entreprise", "Localisation", "Description", "Lien"}

const excerptLen = 180

// Row renders one listing in the stable column order.
func Row(j domain.JobListing) []string {
	return []string{
		j.FoundAt.Format("2006-01-02"),
		j.Title,
		j.Company,
		j.Location,
		Excerpt(j.Description),
		j.URL,
	}
}

// Excerpt shortens a description for tabular output.
func Excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= excerptLen {
		return s
	}
	return string(r[:excerptLen]) + "…"
}
