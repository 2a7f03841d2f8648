package fetch

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// DirArtifactSink dumps raw bodies under a directory, one file per URL,
// for offline inspection of pages the extractor choked on.
type DirArtifactSink struct {
	Dir string
}

func (s *DirArtifactSink) Save(raw string, body []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir, artifactName(raw)), body, 0o644)
}

func artifactName(raw string) string {
	u, err := url.Parse(raw)
	name := raw
	if err == nil {
		name = u.Path
		if u.RawQuery != "" {
			name += "_" + u.RawQuery
		}
	}
	name = strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "_")
	if name == "" {
		name = "page"
	}
	if len(name) > 120 {
		name = name[:120]
	}
	return name + ".html"
}
