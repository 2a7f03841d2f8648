// Package letter renders personalized application letters. Rendering
// never fails: a posting with no matching skills still gets a letter
// with the generic motivational passage.
package letter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MohamedB94/scrapper-hellowork/internal/domain"
)

const unknownCompany = "Non spécifié"

// Draft is a rendered letter plus the components of its file name.
// Immutable once produced.
type Draft struct {
	Body     string
	FileName string
	Company  string
	Title    string
}

type Composer struct {
	profile           domain.Profile
	cvExcerpt         string
	backgroundExcerpt string
	now               func() time.Time
}

// NewComposer builds a composer for one run. cvText and backgroundText
// are the raw file contents; only their opening paragraph is quoted in
// the letter.
func NewComposer(profile domain.Profile, cvText, backgroundText string) *Composer {
	return &Composer{
		profile:           profile,
		cvExcerpt:         firstParagraph(cvText),
		backgroundExcerpt: firstParagraph(backgroundText),
		now:               time.Now,
	}
}

// SetNow overrides the clock used for the letter date and file name.
func (c *Composer) SetNow(now func() time.Time) { c.now = now }

// Compose renders the letter for one listing. matchedSkills must be in
// first-occurrence order of the posting description.
func (c *Composer) Compose(listing domain.JobListing, matchedSkills []string) Draft {
	today := c.now()

	company := strings.TrimSpace(listing.Company)
	if company == "" {
		company = unknownCompany
	}

	recipient := "Service recrutement"
	if company != unknownCompany {
		recipient = "Service recrutement " + company
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", today.Format("02/01/2006"))
	fmt.Fprintf(&b, "%s\n%s\n\n", recipient, company)
	fmt.Fprintf(&b, "Objet : Candidature au poste de %s\n\n", listing.Title)
	b.WriteString("Madame, Monsieur,\n\n")

	intro := fmt.Sprintf("Suite à votre offre d'emploi pour le poste de %s", listing.Title)
	if loc := strings.TrimSpace(listing.Location); loc != "" {
		intro += " à " + loc
	}
	intro += ", je vous présente ma candidature avec enthousiasme.\n\n"
	b.WriteString(intro)

	if len(matchedSkills) > 0 {
		fmt.Fprintf(&b,
			"Mon profil correspond aux qualifications que vous recherchez, notamment en ce qui concerne %s, comme le montre mon CV ci-joint.\n\n",
			joinFrench(matchedSkills),
		)
	} else {
		b.WriteString("Mon profil correspond aux qualifications que vous recherchez, comme le montre mon CV ci-joint.\n\n")
	}

	if c.cvExcerpt != "" {
		b.WriteString(c.cvExcerpt + "\n\n")
	}
	if c.backgroundExcerpt != "" {
		b.WriteString(c.backgroundExcerpt + "\n\n")
	}

	b.WriteString(c.motivationFor(company) + "\n\n")
	b.WriteString("Je serais ravi(e) de vous rencontrer pour vous présenter ma motivation et mes compétences lors d'un entretien.\n\n")
	b.WriteString("Je vous prie d'agréer, Madame, Monsieur, l'expression de mes salutations distinguées.\n\n")
	fmt.Fprintf(&b, "%s\n%s\n%s\n", c.profile.Name, c.profile.Contact, c.profile.Signature)

	return Draft{
		Body:     b.String(),
		FileName: fileName(today, company, listing.Title),
		Company:  company,
		Title:    listing.Title,
	}
}

// motivationFor substitutes the target company into the profile's
// motivational passage.
func (c *Composer) motivationFor(company string) string {
	text := strings.TrimSpace(c.profile.Motivation)
	placeholder := strings.TrimSpace(c.profile.PlaceholderCompany)
	if text == "" {
		return fmt.Sprintf("Particulièrement intéressé(e) par %s, je souhaite mettre à profit mon expertise pour contribuer à vos projets.", company)
	}
	if placeholder != "" && strings.Contains(text, placeholder) {
		return strings.ReplaceAll(text, placeholder, company)
	}
	return text
}

// joinFrench renders "a", "a et b", "a, b et c".
func joinFrench(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " et " + items[len(items)-1]
	}
}

var fileNameJunk = regexp.MustCompile(`[^\p{L}\d\s-]+`)

func fileName(t time.Time, company, title string) string {
	clean := func(s string) string {
		s = fileNameJunk.ReplaceAllString(s, "")
		s = strings.Join(strings.Fields(s), "_")
		if s == "" {
			s = "sans_titre"
		}
		return s
	}
	return fmt.Sprintf("%s_%s_%s.txt", t.Format("20060102"), clean(company), clean(title))
}

func firstParagraph(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if head, _, ok := strings.Cut(text, "\n\n"); ok {
		return strings.TrimSpace(head)
	}
	if r := []rune(text); len(r) > 200 {
		return string(r[:200])
	}
	return text
}
