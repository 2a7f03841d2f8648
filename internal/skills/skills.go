// Package skills derives skill sets from free text by lookup against a
// reference vocabulary. Precision over recall: unmatched tokens are
// discarded, which keeps the matcher deterministic and testable.
package skills

import (
	"sort"
	"strings"
)

// maxNGram bounds multi-word vocabulary terms ("ruby on rails").
const maxNGram = 3

const trimCutset = ".,;:!?()[]{}<>\"'«»…·"

// Set is a set of normalized skill tokens.
type Set map[string]struct{}

func (s Set) Has(skill string) bool {
	_, ok := s[normalizeTerm(skill)]
	return ok
}

func (s Set) Len() int { return len(s) }

// Sorted returns the members in a stable order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Vocabulary is a pre-normalized reference list, shared by the CV side
// and the posting side so both go through identical normalization.
type Vocabulary struct {
	terms map[string]struct{}
}

func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{terms: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		n := normalizeTerm(t)
		if n != "" {
			v.terms[n] = struct{}{}
		}
	}
	return v
}

func (v *Vocabulary) Size() int { return len(v.terms) }

// Extract matches tokens and n-grams of text against the vocabulary.
func (v *Vocabulary) Extract(text string) Set {
	toks := tokenize(text)
	found := Set{}

	for i := range toks {
		for n := 1; n <= maxNGram && i+n <= len(toks); n++ {
			gram := strings.Join(toks[i:i+n], " ")
			if _, ok := v.terms[gram]; ok {
				found[gram] = struct{}{}
			}
		}
	}
	return found
}

// OrderByFirstOccurrence returns the members of set ordered by where
// they first appear in text. Deterministic, unlike map iteration.
// Skills absent from the text sort last, alphabetically.
func (v *Vocabulary) OrderByFirstOccurrence(set Set, text string) []string {
	toks := tokenize(text)

	pos := make(map[string]int, len(set))
	for skill := range set {
		pos[skill] = len(toks) + 1
	}
	for i := range toks {
		for n := 1; n <= maxNGram && i+n <= len(toks); n++ {
			gram := strings.Join(toks[i:i+n], " ")
			if p, ok := pos[gram]; ok && i < p {
				pos[gram] = i
			}
		}
	}

	out := make([]string, 0, len(set))
	for skill := range set {
		out = append(out, skill)
	}
	sort.Slice(out, func(a, b int) bool {
		if pos[out[a]] != pos[out[b]] {
			return pos[out[a]] < pos[out[b]]
		}
		return out[a] < out[b]
	})
	return out
}

// tokenize splits on whitespace and strips wrapping punctuation, while
// keeping interior marks so "node.js", "c++" and "ci/cd" survive.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, trimCutset)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func normalizeTerm(term string) string {
	return strings.Join(tokenize(term), " ")
}
