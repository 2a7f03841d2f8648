package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/MohamedB94/scrapper-hellowork/internal/proxy"
	"github.com/MohamedB94/scrapper-hellowork/internal/throttle"

	"go.uber.org/zap"
)

var (
	// ErrFetchFailed marks a URL whose retries are exhausted. Callers
	// skip the URL and move on; one bad page must not abort the run.
	ErrFetchFailed = errors.New("fetch failed: retries exhausted")

	// ErrBlocked marks a response recognized as an anti-bot challenge.
	ErrBlocked = errors.New("block page detected")
)

// Attempt describes one request outcome. Ephemeral: it drives retry
// decisions and logging, nothing persists it.
type Attempt struct {
	URL      string
	Status   int
	Latency  time.Duration
	Proxy    string
	Identity string
	Body     string
	Err      error
}

// ArtifactSink receives raw response bodies when debug mode is on.
type ArtifactSink interface {
	Save(url string, body []byte) error
}

type Config struct {
	MaxAttempts int
	Timeout     time.Duration
	UserAgents  []string
	// BlockMarkers flag a challenge page; Anchors must appear in a
	// body for it to count as a real page. Both are data, not code:
	// the site's markup is expected to drift.
	BlockMarkers []string
	Anchors      []string
}

// Fetcher issues throttled GETs with rotating identities and optional
// proxy rotation. One Fetcher per run; not safe for concurrent use.
type Fetcher struct {
	cfg    Config
	pool   *proxy.Pool
	gate   *throttle.Throttle
	logger *zap.Logger
	debug  ArtifactSink

	clients      map[string]*http.Client
	lastIdentity int
	rnd          *rand.Rand

	// do is swappable so tests can run without a network.
	do func(req *http.Request, px *proxy.Proxy) (*http.Response, error)
}

func New(cfg Config, pool *proxy.Pool, gate *throttle.Throttle, logger *zap.Logger) *Fetcher {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	f := &Fetcher{
		cfg:          cfg,
		pool:         pool,
		gate:         gate,
		logger:       logger,
		clients:      map[string]*http.Client{},
		lastIdentity: -1,
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	f.do = f.doHTTP
	return f
}

// SetArtifactSink enables debug persistence of raw bodies.
func (f *Fetcher) SetArtifactSink(s ArtifactSink) { f.debug = s }

// Fetch GETs one URL under the full anti-blocking policy. The returned
// Attempt is the last one made; err wraps ErrFetchFailed when every
// attempt failed.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Attempt, error) {
	var att Attempt
	for n := 1; n <= f.cfg.MaxAttempts; n++ {
		if err := f.gate.Wait(ctx); err != nil {
			return att, err
		}

		var px *proxy.Proxy
		att, px = f.attempt(ctx, url)
		v := f.classify(&att)

		if f.debug != nil && att.Body != "" {
			if err := f.debug.Save(url, []byte(att.Body)); err != nil {
				f.logger.Warn("saving debug artifact", zap.String("url", url), zap.Error(err))
			}
		}

		f.logger.Debug("fetch attempt",
			zap.String("url", url),
			zap.Int("attempt", n),
			zap.Int("status", att.Status),
			zap.String("verdict", v.String()),
			zap.String("proxy", att.Proxy),
			zap.Duration("latency", att.Latency),
		)

		switch decide(v, n, f.cfg.MaxAttempts) {
		case stepDone:
			f.pool.ReportSuccess(px)
			return att, nil
		case stepRetry:
			f.pool.ReportFailure(px)
			if err := f.gate.Backoff(ctx, n); err != nil {
				return att, err
			}
		case stepFail:
			f.pool.ReportFailure(px)
			return att, fmt.Errorf("%w: %s (last: %s)", ErrFetchFailed, url, v)
		}
	}
	return att, fmt.Errorf("%w: %s", ErrFetchFailed, url)
}

func (f *Fetcher) attempt(ctx context.Context, url string) (Attempt, *proxy.Proxy) {
	att := Attempt{URL: url, Identity: f.nextIdentity()}

	px := f.pool.Next()
	if px != nil {
		att.Proxy = px.Addr()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		att.Err = err
		return att, px
	}
	req.Header.Set("User-Agent", att.Identity)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	res, err := f.do(req, px)
	att.Latency = time.Since(start)
	if err != nil {
		att.Err = err
		return att, px
	}
	defer res.Body.Close()

	att.Status = res.StatusCode
	body, err := io.ReadAll(res.Body)
	if err != nil {
		att.Err = err
		return att, px
	}
	att.Body = string(body)
	return att, px
}

func (f *Fetcher) doHTTP(req *http.Request, px *proxy.Proxy) (*http.Response, error) {
	return f.client(px).Do(req)
}

// client returns the cached http.Client for a proxy (keyed by address,
// "" for the direct route) so connections are reused across attempts.
func (f *Fetcher) client(px *proxy.Proxy) *http.Client {
	key := ""
	if px != nil {
		key = px.Addr()
	}
	if hc, ok := f.clients[key]; ok {
		return hc
	}
	hc := &http.Client{Timeout: f.cfg.Timeout}
	if px != nil {
		hc.Transport = &http.Transport{Proxy: http.ProxyURL(px.URL())}
	}
	f.clients[key] = hc
	return hc
}

func (f *Fetcher) classify(att *Attempt) verdict {
	if att.Err != nil {
		return verdictNetError
	}
	if att.Status < 200 || att.Status > 299 {
		if f.isBlockPage(att.Body) {
			att.Err = ErrBlocked
			return verdictBlocked
		}
		return verdictBadStatus
	}
	if f.isBlockPage(att.Body) {
		att.Err = ErrBlocked
		return verdictBlocked
	}
	if !f.hasAnchor(att.Body) {
		return verdictNoAnchor
	}
	return verdictOK
}

func (f *Fetcher) isBlockPage(body string) bool {
	low := strings.ToLower(body)
	for _, m := range f.cfg.BlockMarkers {
		if strings.Contains(low, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

func (f *Fetcher) hasAnchor(body string) bool {
	if len(f.cfg.Anchors) == 0 {
		return true
	}
	low := strings.ToLower(body)
	for _, a := range f.cfg.Anchors {
		if strings.Contains(low, strings.ToLower(a)) {
			return true
		}
	}
	return false
}

// nextIdentity picks a pseudo-random user agent, never the same one
// twice in a row when the pool has more than one entry.
func (f *Fetcher) nextIdentity() string {
	n := len(f.cfg.UserAgents)
	if n == 0 {
		return ""
	}
	if n == 1 {
		f.lastIdentity = 0
		return f.cfg.UserAgents[0]
	}
	i := f.rnd.Intn(n)
	for i == f.lastIdentity {
		i = f.rnd.Intn(n)
	}
	f.lastIdentity = i
	return f.cfg.UserAgents[i]
}
