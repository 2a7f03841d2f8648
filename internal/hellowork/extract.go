package hellowork

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/MohamedB94/scrapper-hellowork/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

var (
	ariaCompanyRe  = regexp.MustCompile(`chez\s+([\p{L}\d&.-]+)`)
	ariaLocationRe = regexp.MustCompile(`à\s+([^,]+)`)
)

// ExtractListings parses one results page into listings. Cards missing
// a title or a link are dropped with a warning, never an error. An
// unrecognized page yields an empty slice, which the pipeline reads as
// the end of pagination.
func ExtractListings(body, pageURL string, now time.Time, logger *zap.Logger) []domain.JobListing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		logger.Warn("unparseable page", zap.String("url", pageURL), zap.Error(err))
		return nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	cards := doc.Find(`div[data-cy="serpCard"]`)
	if cards.Length() > 0 {
		return extractFromCards(cards, base, now, logger)
	}

	// The card markup changes regularly; fall back to scanning offer
	// links directly.
	return extractFromLinks(doc, base, now, logger)
}

func extractFromCards(cards *goquery.Selection, base *url.URL, now time.Time, logger *zap.Logger) []domain.JobListing {
	var out []domain.JobListing

	cards.Each(func(_ int, card *goquery.Selection) {
		link := card.Find(`a[href*="/emplois/"]`).First()
		if link.Length() == 0 {
			link = card.Find("a[href]").First()
		}
		href, _ := link.Attr("href")
		href = strings.TrimSpace(href)

		title := cleanText(card.Find("p.tw-typo-l, p.tw-typo-xl, h3 p").First().Text())
		if title == "" {
			title = cleanText(card.Find("h3, h2").First().Text())
		}

		if href == "" || title == "" {
			logger.Warn("dropping card missing required fields",
				zap.String("title", title),
				zap.String("href", href),
			)
			return
		}

		company := cleanText(card.Find("p.tw-inline, p.tw-typo-s").First().Text())
		location := cleanText(card.Find(`div[data-cy="localisationCard"]`).First().Text())
		contract := cleanText(card.Find(`div[data-cy="contractCard"]`).First().Text())

		desc := ""
		if contract != "" {
			desc = "Type de contrat: " + contract
		}
		if published := cleanText(card.Find("div.tw-typo-s.tw-text-grey").First().Text()); published != "" {
			if desc != "" {
				desc += " | "
			}
			desc += "Publié: " + published
		}

		out = append(out, domain.JobListing{
			Title:        title,
			Company:      company,
			Location:     location,
			ContractType: contract,
			Description:  desc,
			URL:          resolveURL(base, href),
			FoundAt:      now,
		})
	})

	return out
}

func extractFromLinks(doc *goquery.Document, base *url.URL, now time.Time, logger *zap.Logger) []domain.JobListing {
	var out []domain.JobListing

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || !strings.Contains(href, "/emplois/") {
			return
		}
		if strings.Contains(href, "recherche") || strings.Contains(href, "page=") {
			return
		}

		title := cleanText(a.Text())
		if title == "" {
			title = cleanText(a.Find("h2, h3, p").First().Text())
		}
		if title == "" {
			logger.Warn("dropping offer link without a title", zap.String("href", href))
			return
		}

		company := ""
		location := ""
		if label, ok := a.Attr("aria-label"); ok {
			if m := ariaCompanyRe.FindStringSubmatch(label); m != nil {
				company = m[1]
			}
			if m := ariaLocationRe.FindStringSubmatch(label); m != nil {
				location = cleanText(m[1])
			}
		}

		out = append(out, domain.JobListing{
			Title:    title,
			Company:  company,
			Location: location,
			URL:      resolveURL(base, href),
			FoundAt:  now,
		})
	})

	return out
}

func resolveURL(base *url.URL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if base == nil {
		return DefaultBaseURL + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// cleanText collapses whitespace and non-breaking spaces.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
