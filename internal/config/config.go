package config

import (
	"os"
	"time"

	"github.com/MohamedB94/scrapper-hellowork/internal/domain"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir    string `yaml:"data_dir"`
		LettersDir string `yaml:"letters_dir"`
	} `yaml:"app"`

	HTTP struct {
		TimeoutSeconds     int      `yaml:"timeout_seconds"`
		MaxRetries         int      `yaml:"max_retries"`
		BackoffBaseSeconds int      `yaml:"backoff_base_seconds"`
		BackoffMaxSeconds  int      `yaml:"backoff_max_seconds"`
		UserAgents         []string `yaml:"user_agents"`
	} `yaml:"http"`

	Proxies struct {
		File          string `yaml:"file"`
		FailThreshold int    `yaml:"fail_threshold"`
	} `yaml:"proxies"`

	Hellowork struct {
		BaseURL string `yaml:"base_url"`
		// Strings whose presence marks a response as an anti-bot
		// challenge page. Site-specific, expected to drift.
		BlockMarkers []string `yaml:"block_markers"`
		// At least one must appear in a body for the page to count
		// as a real result page.
		Anchors []string `yaml:"anchors"`
	} `yaml:"hellowork"`

	Skills struct {
		Vocabulary []string `yaml:"vocabulary"`
	} `yaml:"skills"`

	Profile domain.Profile `yaml:"profile"`

	Letters struct {
		CVFile         string `yaml:"cv_file"`
		BackgroundFile string `yaml:"background_file"`
	} `yaml:"letters"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.DataDir == "" {
		c.App.DataDir = "."
	}
	if c.App.LettersDir == "" {
		c.App.LettersDir = "lettres"
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		c.HTTP.TimeoutSeconds = 20
	}
	if c.HTTP.MaxRetries <= 0 {
		c.HTTP.MaxRetries = 3
	}
	if c.HTTP.BackoffBaseSeconds <= 0 {
		c.HTTP.BackoffBaseSeconds = 2
	}
	if c.HTTP.BackoffMaxSeconds <= 0 {
		c.HTTP.BackoffMaxSeconds = 60
	}
	if len(c.HTTP.UserAgents) == 0 {
		c.HTTP.UserAgents = DefaultUserAgents
	}
	if c.Proxies.File == "" {
		c.Proxies.File = "proxies.txt"
	}
	if c.Proxies.FailThreshold <= 0 {
		c.Proxies.FailThreshold = 3
	}
	if c.Hellowork.BaseURL == "" {
		c.Hellowork.BaseURL = "https://www.hellowork.com"
	}
	if len(c.Hellowork.BlockMarkers) == 0 {
		c.Hellowork.BlockMarkers = DefaultBlockMarkers
	}
	if len(c.Skills.Vocabulary) == 0 {
		c.Skills.Vocabulary = DefaultVocabulary
	}
	if c.Letters.CVFile == "" {
		c.Letters.CVFile = "cv.txt"
	}
	if c.Letters.BackgroundFile == "" {
		c.Letters.BackgroundFile = "parcours.txt"
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

func (c Config) BackoffBase() time.Duration {
	return time.Duration(c.HTTP.BackoffBaseSeconds) * time.Second
}

func (c Config) BackoffMax() time.Duration {
	return time.Duration(c.HTTP.BackoffMaxSeconds) * time.Second
}
