// Package runlock guards a data dir with a file lock so at most one
// scraping run is active at a time. Two concurrent runs would defeat
// the request throttle and the proxy health bookkeeping, which both
// assume a single linear stream of outbound requests.
package runlock

import (
	"errors"
	"path/filepath"

	"github.com/gofrs/flock"
)

var ErrBusy = errors.New("another run is already in progress for this data dir")

type Lock struct {
	fl *flock.Flock
}

func Acquire(dataDir string) (*Lock, error) {
	fl := flock.New(filepath.Join(dataDir, "scrapper.lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBusy
	}
	return &Lock{fl: fl}, nil
}

func (l *Lock) Release() error {
	return l.fl.Unlock()
}
