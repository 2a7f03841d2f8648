package skills

import (
	"testing"
)

var testVocab = []string{
	"Python", "SQL", "Docker", "Machine Learning", "Ruby on Rails", "Node.js", "CI/CD",
}

func TestExtractScenarioFrench(t *testing.T) {
	vocab := NewVocabulary(testVocab)

	posting := vocab.Extract("Recherche data engineer maîtrisant Python et SQL")
	if posting.Len() != 2 || !posting.Has("python") || !posting.Has("sql") {
		t.Fatalf("posting skills = %v, want {python, sql}", posting.Sorted())
	}

	cv := vocab.Extract("Python, SQL, Docker")
	if cv.Len() != 3 {
		t.Fatalf("cv skills = %v, want 3 entries", cv.Sorted())
	}

	res := Match(cv, posting)
	if res.Common.Len() != 2 {
		t.Fatalf("intersection = %v, want {python, sql}", res.Common.Sorted())
	}
	if res.Score != 1.0 {
		t.Fatalf("score = %v, want 1.0", res.Score)
	}
}

func TestExtractNGramsAndPunctuation(t *testing.T) {
	vocab := NewVocabulary(testVocab)

	got := vocab.Extract("Expérience en Machine Learning, Node.js et CI/CD (3 ans). Ruby on Rails apprécié !")
	for _, want := range []string{"machine learning", "node.js", "ci/cd", "ruby on rails"} {
		if !got.Has(want) {
			t.Fatalf("missing %q in %v", want, got.Sorted())
		}
	}

	// "machine" and "learning" alone are not vocabulary terms
	if got.Has("machine") || got.Has("learning") {
		t.Fatalf("partial n-gram leaked into %v", got.Sorted())
	}
}

func TestExtractDiscardsUnknownTokens(t *testing.T) {
	vocab := NewVocabulary(testVocab)
	got := vocab.Extract("Nous cherchons une personne motivée et curieuse")
	if got.Len() != 0 {
		t.Fatalf("unknown tokens matched: %v", got.Sorted())
	}
}

func TestMatchDeterministic(t *testing.T) {
	vocab := NewVocabulary(testVocab)
	cv := vocab.Extract("Python SQL Docker")
	posting := vocab.Extract("Python SQL Machine Learning")

	first := Match(cv, posting)
	for i := 0; i < 50; i++ {
		again := Match(cv, posting)
		if again.Score != first.Score || again.Common.Len() != first.Common.Len() {
			t.Fatalf("match is not deterministic: %v vs %v", again, first)
		}
	}
}

func TestMatchMonotonic(t *testing.T) {
	vocab := NewVocabulary(testVocab)
	posting := vocab.Extract("Python SQL Machine Learning")

	cv := vocab.Extract("Python")
	before := Match(cv, posting).Score

	// adding a skill the posting wants never decreases the score
	cv["sql"] = struct{}{}
	after := Match(cv, posting).Score
	if after < before {
		t.Fatalf("score decreased after adding a matching skill: %v -> %v", before, after)
	}

	// adding a skill the posting does not want never increases it
	cv["docker"] = struct{}{}
	unrelated := Match(cv, posting).Score
	if unrelated > after {
		t.Fatalf("score increased after adding an unrelated skill: %v -> %v", after, unrelated)
	}
}

func TestMatchEmptyPostingScoresZero(t *testing.T) {
	vocab := NewVocabulary(testVocab)
	cv := vocab.Extract("Python SQL")
	res := Match(cv, Set{})
	if res.Score != 0 {
		t.Fatalf("score against empty posting = %v, want 0", res.Score)
	}
}

func TestOrderByFirstOccurrence(t *testing.T) {
	vocab := NewVocabulary(testVocab)
	text := "Vous maîtrisez SQL, idéalement Docker, et bien sûr Python."
	set := vocab.Extract(text)

	got := vocab.OrderByFirstOccurrence(set, text)
	want := []string{"sql", "docker", "python"}
	if len(got) != len(want) {
		t.Fatalf("ordered = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordered = %v, want %v", got, want)
		}
	}
}
