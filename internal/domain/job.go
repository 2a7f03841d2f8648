package domain

import "time"

// JobListing is one posting extracted from a search results page.
// The URL is the dedupe key for a run: the same listing showing up on
// two result pages must be emitted once.
type JobListing struct {
	Title        string
	Company      string
	Location     string
	ContractType string
	Description  string
	URL          string
	FoundAt      time.Time
}
