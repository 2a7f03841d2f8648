package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/MohamedB94/scrapper-hellowork/internal/config"
	"github.com/MohamedB94/scrapper-hellowork/internal/export"
	"github.com/MohamedB94/scrapper-hellowork/internal/fetch"
	"github.com/MohamedB94/scrapper-hellowork/internal/letter"
	"github.com/MohamedB94/scrapper-hellowork/internal/logger"
	"github.com/MohamedB94/scrapper-hellowork/internal/pipeline"
	"github.com/MohamedB94/scrapper-hellowork/internal/proxy"
	"github.com/MohamedB94/scrapper-hellowork/internal/runlock"
	"github.com/MohamedB94/scrapper-hellowork/internal/skills"
	"github.com/MohamedB94/scrapper-hellowork/internal/throttle"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	jobQuery   string
	location   string
	contract   string
	pages      int
	rateLimit  float64
	useProxies bool
	letters    bool
	debugHTML  bool
	csvOut     bool
	sqliteOut  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search HelloWork and export the matching offers",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&jobQuery, "job", "", `search query, e.g. "data engineer"`)
	runCmd.Flags().StringVar(&location, "location", "", "city or region to search in")
	runCmd.Flags().StringVar(&contract, "contrat", "", "contract type filter (CDI, alternance, stage, ...)")
	runCmd.Flags().IntVar(&pages, "pages", 1, "number of result pages to walk")
	runCmd.Flags().Float64Var(&rateLimit, "rate-limit", 2.0, "minimum seconds between two requests")
	runCmd.Flags().BoolVar(&useProxies, "use-proxies", false, "rotate through the proxies file")
	runCmd.Flags().BoolVar(&letters, "letters", false, "draft a motivation letter for each offer")
	runCmd.Flags().BoolVar(&debugHTML, "debug-html", false, "save every fetched page under debug_html/")
	runCmd.Flags().BoolVar(&csvOut, "csv", true, "export the offers to a CSV file")
	runCmd.Flags().BoolVar(&sqliteOut, "sqlite", false, "export the offers to a SQLite database")

	if err := runCmd.MarkFlagRequired("job"); err != nil {
		log.Fatalf("marking the job flag required: %v", err)
	}
}

// run is the main command for the cli.
func run() {
	ctx := context.Background()

	logger, err := logger.New(jsonLogs, debugMode)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logger.Fatal("creating the data dir", zap.String("dir", dataDir), zap.Error(err))
	}

	cfgPath := cfgFile
	if cfgPath == "" {
		cfgPath, err = config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			logger.Fatal("preparing the config file", zap.Error(err))
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("loading the config", zap.String("file", cfgPath), zap.Error(err))
	}

	cfg, report := config.NormalizeAndValidate(cfg)
	for _, w := range report.Warnings {
		logger.Warn(w, zap.String("file", cfgPath))
	}
	if !report.OK() {
		logger.Fatal("invalid config", zap.String("file", cfgPath), zap.Strings("errors", report.Errors))
	}
	cfg.App.DataDir = dataDir

	lock, err := runlock.Acquire(cfg.App.DataDir)
	if err != nil {
		if errors.Is(err, runlock.ErrBusy) {
			logger.Fatal("another run is already in progress", zap.String("data_dir", cfg.App.DataDir))
		}
		logger.Fatal("acquiring the run lock", zap.Error(err))
	}
	defer lock.Release()

	logger.Info("starting the scrapper",
		zap.String("version", version),
		zap.String("job", jobQuery),
		zap.String("location", location),
		zap.Int("pages", pages),
	)

	pool := proxy.New(nil, cfg.Proxies.FailThreshold, logger)
	if useProxies {
		pool, err = proxy.LoadFile(cfg.Proxies.File, cfg.Proxies.FailThreshold, logger)
		if err != nil {
			logger.Fatal("loading the proxies file", zap.String("file", cfg.Proxies.File), zap.Error(err))
		}
	}

	gate := throttle.New(time.Duration(rateLimit * float64(time.Second)))
	gate.SetBackoff(cfg.BackoffBase(), cfg.BackoffMax())

	fetcher := fetch.New(fetch.Config{
		MaxAttempts:  cfg.HTTP.MaxRetries,
		Timeout:      cfg.Timeout(),
		UserAgents:   cfg.HTTP.UserAgents,
		BlockMarkers: cfg.Hellowork.BlockMarkers,
		Anchors:      cfg.Hellowork.Anchors,
	}, pool, gate, logger)
	if debugHTML {
		fetcher.SetArtifactSink(&fetch.DirArtifactSink{Dir: filepath.Join(cfg.App.DataDir, "debug_html")})
	}

	sinks, closeSinks, err := buildSinks(cfg, logger)
	if err != nil {
		logger.Fatal("preparing the export sinks", zap.Error(err))
	}
	defer closeSinks()

	p := pipeline.New(pipeline.Options{
		Query:          jobQuery,
		Location:       location,
		Contract:       contract,
		Pages:          pages,
		Letters:        letters,
		BaseURL:        cfg.Hellowork.BaseURL,
		CVFile:         cfg.Letters.CVFile,
		BackgroundFile: cfg.Letters.BackgroundFile,
	}, pipeline.Deps{
		Fetcher: fetcher,
		Vocab:   skills.NewVocabulary(cfg.Skills.Vocabulary),
		Profile: cfg.Profile,
		Sinks:   sinks,
		Letters: &letter.DirSink{Dir: filepath.Join(cfg.App.DataDir, cfg.App.LettersDir)},
		Logger:  logger,
	})

	records, err := p.Run(ctx)
	if err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}

	if len(records) == 0 {
		logger.Info("exiting", zap.String("reason", "no offers found"))
		return
	}

	logger.Info("run finished",
		zap.Int("offers", len(records)),
		zap.String("state", p.State().String()),
	)
}

func buildSinks(cfg config.Config, logger *zap.Logger) ([]export.Sink, func(), error) {
	var sinks []export.Sink
	var closers []func() error

	if csvOut {
		sinks = append(sinks, &export.CSVSink{
			Path: filepath.Join(cfg.App.DataDir, "offres_hellowork.csv"),
		})
	}
	if sqliteOut {
		db, err := export.OpenSQLite(filepath.Join(cfg.App.DataDir, "offres.db"), logger)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, db)
		closers = append(closers, db.Close)
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("closing a sink", zap.Error(err))
			}
		}
	}
	return sinks, closeAll, nil
}
