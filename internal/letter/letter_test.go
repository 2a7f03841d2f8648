package letter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MohamedB94/scrapper-hellowork/internal/domain"
)

var testProfile = domain.Profile{
	Name:               "Jean Dupont",
	Contact:            "jean.dupont@example.com - 06 12 34 56 78",
	Motivation:         "Particulièrement intéressé par EDF et ses projets, je souhaite contribuer à vos équipes.",
	Signature:          "Cordialement, Jean Dupont",
	PlaceholderCompany: "EDF",
}

func fixedComposer(t *testing.T) *Composer {
	t.Helper()
	c := NewComposer(testProfile, "Data engineer, 5 ans d'expérience.\n\nDétails...", "Parcours en data.")
	c.now = func() time.Time { return time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC) }
	return c
}

func TestComposeSubstitutesCompany(t *testing.T) {
	c := fixedComposer(t)
	d := c.Compose(domain.JobListing{
		Title:    "Data Engineer",
		Company:  "Acme",
		Location: "Lyon",
		URL:      "https://example.com/1",
	}, []string{"python", "sql"})

	if !strings.Contains(d.Body, "intéressé par Acme") {
		t.Fatalf("company not substituted into motivation:\n%s", d.Body)
	}
	if strings.Contains(d.Body, "EDF") {
		t.Fatalf("placeholder company leaked into letter:\n%s", d.Body)
	}
	if !strings.Contains(d.Body, "python et sql") {
		t.Fatalf("matched skills missing:\n%s", d.Body)
	}
	if !strings.Contains(d.Body, "Cordialement, Jean Dupont") {
		t.Fatalf("signature block missing:\n%s", d.Body)
	}
	if !strings.Contains(d.Body, "à Lyon") {
		t.Fatalf("location missing from intro:\n%s", d.Body)
	}
}

func TestComposeNeverFailsWithoutMatches(t *testing.T) {
	c := fixedComposer(t)
	d := c.Compose(domain.JobListing{Title: "Comptable", Company: "Globex"}, nil)

	if d.Body == "" {
		t.Fatal("empty letter for zero-match posting")
	}
	if !strings.Contains(d.Body, "comme le montre mon CV ci-joint") {
		t.Fatalf("generic passage missing:\n%s", d.Body)
	}
	if !strings.Contains(d.Body, "Globex") {
		t.Fatalf("company missing:\n%s", d.Body)
	}
	if !strings.Contains(d.Body, "Cordialement, Jean Dupont") {
		t.Fatalf("signature block missing:\n%s", d.Body)
	}
}

func TestComposeSkillsKeepGivenOrder(t *testing.T) {
	c := fixedComposer(t)
	d := c.Compose(domain.JobListing{Title: "Dev", Company: "Acme"}, []string{"sql", "docker", "python"})

	if !strings.Contains(d.Body, "sql, docker et python") {
		t.Fatalf("skill order not preserved:\n%s", d.Body)
	}
}

func TestFileNameDeterministic(t *testing.T) {
	c := fixedComposer(t)
	d := c.Compose(domain.JobListing{Title: "Data Engineer (H/F)", Company: "Acme & Co"}, nil)

	if d.FileName != "20250307_Acme_Co_Data_Engineer_HF.txt" {
		t.Fatalf("file name = %q", d.FileName)
	}
}

func TestDirSinkWritesDraft(t *testing.T) {
	dir := t.TempDir()
	sink := &DirSink{Dir: filepath.Join(dir, "lettres")}

	c := fixedComposer(t)
	d := c.Compose(domain.JobListing{Title: "Dev", Company: "Acme"}, nil)

	path, err := sink.Write(d)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != d.Body {
		t.Fatal("written letter differs from draft body")
	}
}
