package hellowork

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// detail-page description candidates, most specific first
var descriptionSelectors = []string{
	"div[data-cy='jobDescription']",
	"div[data-testid='job-description']",
	"div.tw-prose",
	"div.job-description",
	"section.job-description",
	"div.offer-description",
	"div.description",
}

// ExtractDescription pulls the full description text from an offer's
// detail page. Returns "" when nothing recognizable is found.
func ExtractDescription(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}

	for _, sel := range descriptionSelectors {
		if t := cleanText(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}

	if t := cleanText(doc.Find("main, article, div.main-content").First().Text()); t != "" {
		return t
	}

	// last resort: stitch together anything paragraph-like
	paragraphs := doc.Find("p")
	if paragraphs.Length() > 5 {
		var parts []string
		paragraphs.Each(func(_ int, p *goquery.Selection) {
			if t := cleanText(p.Text()); len(t) > 50 {
				parts = append(parts, t)
			}
		})
		return strings.Join(parts, "\n")
	}

	return ""
}
