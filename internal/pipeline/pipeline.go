// Package pipeline drives one scraping run: paginate search results,
// extract and dedupe listings, optionally match skills and compose
// letters, then hand the batch to the export sinks.
//
// The flow is deliberately sequential. One request at a time through a
// shared throttle and proxy pool is the anti-blocking contract; a
// parallel fetch fan-out would defeat both. Only the export stage fans
// out, and it talks to local sinks, not to the site.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MohamedB94/scrapper-hellowork/internal/domain"
	"github.com/MohamedB94/scrapper-hellowork/internal/export"
	"github.com/MohamedB94/scrapper-hellowork/internal/fetch"
	"github.com/MohamedB94/scrapper-hellowork/internal/hellowork"
	"github.com/MohamedB94/scrapper-hellowork/internal/letter"
	"github.com/MohamedB94/scrapper-hellowork/internal/skills"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type State int

const (
	StateIdle State = iota
	StateFetching
	StateExtracting
	StateComposing
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateExtracting:
		return "extracting"
	case StateComposing:
		return "matching_and_composing"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// PageFetcher is what the pipeline needs from the fetch layer.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Attempt, error)
}

// LetterSink persists one rendered letter.
type LetterSink interface {
	Write(d letter.Draft) (string, error)
}

// Options is the run configuration, straight from the CLI.
type Options struct {
	Query    string
	Location string
	Contract string
	Pages    int
	Letters  bool

	BaseURL        string
	CVFile         string
	BackgroundFile string
}

// Deps aggregates the collaborators of one run.
type Deps struct {
	Fetcher PageFetcher
	Vocab   *skills.Vocabulary
	Profile domain.Profile
	Sinks   []export.Sink
	Letters LetterSink
	Logger  *zap.Logger
}

type Pipeline struct {
	opts Options
	deps Deps

	state       State
	detailCache map[string]string
	now         func() time.Time
}

func New(opts Options, deps Deps) *Pipeline {
	if opts.Pages <= 0 {
		opts.Pages = 1
	}
	return &Pipeline{
		opts:        opts,
		deps:        deps,
		state:       StateIdle,
		detailCache: map[string]string{},
		now:         time.Now,
	}
}

func (p *Pipeline) State() State { return p.state }

// Run executes the whole pipeline and returns the deduplicated records.
// Per-page and per-item failures are logged and skipped; only broken
// preconditions abort, and they do so before any network activity.
func (p *Pipeline) Run(ctx context.Context) ([]domain.JobListing, error) {
	log := p.deps.Logger

	var composer *letter.Composer
	var cvSkills skills.Set
	if p.opts.Letters {
		cvText, err := os.ReadFile(p.opts.CVFile)
		if err != nil {
			p.state = StateAborted
			return nil, fmt.Errorf("configuration: reading CV %s: %w", p.opts.CVFile, err)
		}
		if err := p.deps.Profile.Validate(); err != nil {
			p.state = StateAborted
			return nil, fmt.Errorf("configuration: %w", err)
		}
		// the background file is optional flavor, not a precondition
		background, _ := os.ReadFile(p.opts.BackgroundFile)

		composer = letter.NewComposer(p.deps.Profile, string(cvText), string(background))
		composer.SetNow(p.now)
		cvSkills = p.deps.Vocab.Extract(string(cvText))
		log.Info("candidate skills extracted", zap.Int("count", cvSkills.Len()))
	}

	records := p.collect(ctx, log)
	if err := ctx.Err(); err != nil {
		return records, err
	}

	if p.opts.Contract != "" {
		records = p.filterByContract(ctx, records, log)
	}

	p.state = StateComposing
	if p.opts.Letters {
		p.composeAll(ctx, composer, cvSkills, records, log)
	}

	p.export(ctx, records, log)

	p.state = StateDone
	return records, nil
}

// collect walks the result pages until one comes back empty or the page
// limit runs out, deduplicating by URL across pages.
func (p *Pipeline) collect(ctx context.Context, log *zap.Logger) []domain.JobListing {
	seen := map[string]bool{}
	var records []domain.JobListing

	for page := 1; page <= p.opts.Pages; page++ {
		p.state = StateFetching
		pageURL := hellowork.SearchURL(p.opts.BaseURL, p.opts.Query, p.opts.Location, page)
		log.Info("fetching results page", zap.Int("page", page), zap.String("url", pageURL))

		att, err := p.deps.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return records
			}
			log.Warn("page skipped", zap.Int("page", page), zap.Error(err))
			continue
		}

		p.state = StateExtracting
		listings := hellowork.ExtractListings(att.Body, pageURL, p.now(), log)
		if len(listings) == 0 {
			log.Info("page yielded no listings, stopping pagination", zap.Int("page", page))
			break
		}

		added := 0
		for _, j := range listings {
			if seen[j.URL] {
				continue
			}
			seen[j.URL] = true
			records = append(records, j)
			added++
		}
		log.Info("page extracted",
			zap.Int("page", page),
			zap.Int("listings", len(listings)),
			zap.Int("new", added),
		)
	}

	return records
}

// filterByContract keeps listings whose contract type matches. When the
// summary does not mention it, the offer's detail page gets a look
// before the listing is dropped.
func (p *Pipeline) filterByContract(ctx context.Context, records []domain.JobListing, log *zap.Logger) []domain.JobListing {
	want := strings.ToLower(strings.TrimSpace(p.opts.Contract))
	var kept []domain.JobListing
	for _, j := range records {
		blob := strings.ToLower(j.ContractType + " " + j.Title + " " + j.Description)
		if strings.Contains(blob, want) {
			kept = append(kept, j)
			continue
		}
		if detail := p.detailText(ctx, j.URL, log); strings.Contains(strings.ToLower(detail), want) {
			kept = append(kept, j)
			continue
		}
		log.Debug("listing filtered out by contract type",
			zap.String("url", j.URL),
			zap.String("want", want),
		)
	}
	log.Info("contract filter applied",
		zap.String("contract", p.opts.Contract),
		zap.Int("before", len(records)),
		zap.Int("after", len(kept)),
	)
	return kept
}

func (p *Pipeline) composeAll(ctx context.Context, composer *letter.Composer, cvSkills skills.Set, records []domain.JobListing, log *zap.Logger) {
	for _, j := range records {
		if ctx.Err() != nil {
			return
		}

		desc := p.detailText(ctx, j.URL, log)
		if desc == "" {
			desc = j.Description
		}

		postingSkills := p.deps.Vocab.Extract(desc)
		res := skills.Match(cvSkills, postingSkills)
		ordered := p.deps.Vocab.OrderByFirstOccurrence(res.Common, desc)

		draft := composer.Compose(j, ordered)
		path, err := p.deps.Letters.Write(draft)
		if err != nil {
			log.Warn("letter not written", zap.String("url", j.URL), zap.Error(err))
			continue
		}
		log.Info("letter written",
			zap.String("file", path),
			zap.Float64("score", res.Score),
			zap.Strings("skills", ordered),
		)
	}
}

// detailText fetches and caches an offer's full description. Failures
// degrade to the summary text; they never abort the run.
func (p *Pipeline) detailText(ctx context.Context, url string, log *zap.Logger) string {
	if text, ok := p.detailCache[url]; ok {
		return text
	}
	att, err := p.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		log.Warn("offer details unavailable", zap.String("url", url), zap.Error(err))
		p.detailCache[url] = ""
		return ""
	}
	text := hellowork.ExtractDescription(att.Body)
	p.detailCache[url] = text
	return text
}

// export fans the finalized batch out to every configured sink. A sink
// failure is a warning; the records are already in hand and the other
// sinks still get them.
func (p *Pipeline) export(ctx context.Context, records []domain.JobListing, log *zap.Logger) {
	if len(p.deps.Sinks) == 0 || len(records) == 0 {
		return
	}
	var g errgroup.Group
	for _, s := range p.deps.Sinks {
		s := s
		g.Go(func() error {
			if err := s.Write(ctx, records); err != nil {
				log.Warn("export sink failed", zap.String("sink", s.Name()), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
