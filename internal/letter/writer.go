package letter

import (
	"os"
	"path/filepath"
)

// DirSink persists drafts as text files in one directory.
type DirSink struct {
	Dir string
}

// Write saves a draft and returns the path written.
func (s *DirSink) Write(d Draft) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, d.FileName)
	if err := os.WriteFile(path, []byte(d.Body), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
