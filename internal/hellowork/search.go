// Package hellowork knows the job board's URL scheme and markup. The
// selectors are site-controlled and expected to drift; extraction is
// tolerant rather than strict.
package hellowork

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL = "https://www.hellowork.com"
	searchPath     = "/fr-fr/emploi/recherche.html"
)

// SearchURL builds the results-page URL for a query. Page 1 carries no
// page parameter, matching what the site itself emits.
func SearchURL(baseURL, query, location string, page int) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	q := url.Values{}
	q.Set("k", query)
	if location != "" {
		q.Set("l", location)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return strings.TrimSuffix(baseURL, "/") + searchPath + "?" + q.Encode()
}
