package proxy

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type Status string

const (
	StatusHealthy Status = "healthy"
	StatusSuspect Status = "suspect"
	StatusDead    Status = "dead"
)

// Proxy is one egress endpoint. Status degrades on failures and a dead
// proxy stays out of rotation for the rest of the run.
type Proxy struct {
	Host string
	Port int

	status   Status
	failures int
}

func (p *Proxy) Addr() string   { return p.Host + ":" + strconv.Itoa(p.Port) }
func (p *Proxy) Status() Status { return p.status }

// URL is the proxy endpoint in the form an http.Transport expects.
func (p *Proxy) URL() *url.URL {
	return &url.URL{Scheme: "http", Host: p.Addr()}
}

// Pool rotates round-robin over proxies that are still usable.
// All access happens from the single pipeline goroutine, so there is no
// locking here; if fetching ever goes parallel this becomes the
// synchronization point.
type Pool struct {
	proxies   []*Proxy
	next      int
	threshold int
	logger    *zap.Logger
}

// New builds a pool from host:port entries. Malformed entries are
// skipped with a warning. An empty list yields a disabled pool whose
// Next always reports none.
func New(entries []string, failThreshold int, logger *zap.Logger) *Pool {
	if failThreshold <= 0 {
		failThreshold = 3
	}
	p := &Pool{threshold: failThreshold, logger: logger}
	for _, e := range entries {
		px, err := parseEntry(e)
		if err != nil {
			logger.Warn("skipping proxy entry", zap.String("entry", e), zap.Error(err))
			continue
		}
		p.proxies = append(p.proxies, px)
	}
	return p
}

// LoadFile reads a proxies file, one host:port per line. A missing file
// means proxy use is simply disabled.
func LoadFile(path string, failThreshold int, logger *zap.Logger) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("proxy file not found, running without proxies", zap.String("file", path))
			return New(nil, failThreshold, logger), nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	pool := New(entries, failThreshold, logger)
	logger.Info("loaded proxies", zap.String("file", path), zap.Int("count", pool.Size()))
	return pool, nil
}

func parseEntry(e string) (*Proxy, error) {
	e = strings.TrimSpace(e)
	e = strings.TrimPrefix(e, "http://")
	host, portStr, ok := strings.Cut(e, ":")
	if !ok || host == "" {
		return nil, fmt.Errorf("want host:port, got %q", e)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("bad port %q", portStr)
	}
	return &Proxy{Host: host, Port: port, status: StatusHealthy}, nil
}

func (p *Pool) Size() int { return len(p.proxies) }

// Next returns the next usable proxy, round-robin, or nil when the pool
// is empty or every proxy is dead.
func (p *Pool) Next() *Proxy {
	for range p.proxies {
		px := p.proxies[p.next%len(p.proxies)]
		p.next++
		if px.status != StatusDead {
			return px
		}
	}
	return nil
}

// ReportFailure bumps the failure counter; at the threshold the proxy is
// dead for the remainder of the run.
func (p *Pool) ReportFailure(px *Proxy) {
	if px == nil || px.status == StatusDead {
		return
	}
	px.failures++
	px.status = StatusSuspect
	if px.failures >= p.threshold {
		px.status = StatusDead
		p.logger.Warn("proxy marked dead",
			zap.String("proxy", px.Addr()),
			zap.Int("consecutive_failures", px.failures),
		)
	}
}

// ReportSuccess resets the failure counter and promotes a suspect proxy
// back to healthy. Dead stays dead.
func (p *Pool) ReportSuccess(px *Proxy) {
	if px == nil || px.status == StatusDead {
		return
	}
	px.failures = 0
	px.status = StatusHealthy
}
