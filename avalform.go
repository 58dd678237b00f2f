// Package avalform automates filling the multi-page Avalform survey for
// a batch of people read from a local data file. One browser page walks
// the form's eight pages per record: free-form fields on page 1, then a
// fixed sequence of radio-matrix and label-mediated choice pages, each
// answered with one random option per group and advanced with the
// continue control.
package avalform

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/google/uuid"

	"github.com/alihajqani/avalform-crawler/browser"
	"github.com/alihajqani/avalform-crawler/person"
	"github.com/alihajqani/avalform-crawler/screenshot"
)

// Timeouts and pauses for the page walk. Every wait is bounded; no
// operation blocks indefinitely.
const (
	navTimeout       = 30 * time.Second // first-page navigation
	containerTimeout = 10 * time.Second // form root container appearance
	actionTimeout    = 5 * time.Second  // per-control fill/click actions
	settlePause      = time.Second      // pause between pages for client-side navigation
)

// Selectors of the form's fixed controls.
const (
	containerSelector = "#form_container"
	continueSelector  = "input#submit_primary"
)

// Config holds crawler configuration.
type Config struct {
	// URL is the address of the form's first page.
	URL string

	// DataFile is the path of the person records file (.json, .yaml
	// or .yml). Defaults to "persons.json".
	DataFile string

	// Headless runs the browser without a visible window.
	Headless bool

	// Seed fixes the random source used to choose radio options,
	// making runs reproducible. 0 derives a seed from the clock.
	Seed int64

	// CaptureDir, when set, stores a page capture after each submitted
	// record and on fatal failures.
	CaptureDir string

	// SettlePause overrides the pause between form pages. 0 keeps the
	// 1-second default.
	SettlePause time.Duration

	// NoPrompt skips the interactive confirmation before the caller
	// closes the browser. Useful for headless and scripted runs.
	NoPrompt bool
}

// Crawler drives one browser page through the form for every record.
type Crawler struct {
	config   Config
	people   []person.Record
	launcher *launcher.Launcher
	browser  *browser.Browser
	page     Page
	captures *screenshot.Manager
	rng      *rand.Rand
	log      *Logger
	runID    string

	mu     sync.Mutex
	closed bool
}

// New loads the person records and prepares a crawler. The records file
// is read in full here, before any browser is launched; a missing file
// fails immediately with an error naming it.
func New(cfg Config) (*Crawler, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("URL is required")
	}
	if cfg.DataFile == "" {
		cfg.DataFile = "persons.json"
	}
	if cfg.SettlePause == 0 {
		cfg.SettlePause = settlePause
	}

	people, err := person.Load(cfg.DataFile)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &Crawler{
		config: cfg,
		people: people,
		rng:    rand.New(rand.NewSource(seed)),
		log:    NewLogger(true),
		runID:  uuid.New().String()[:8],
	}

	if cfg.CaptureDir != "" {
		c.captures = screenshot.NewManager(screenshot.Config{
			Dir:      cfg.CaptureDir,
			Max:      100,
			MaxWidth: 1280,
		})
	}

	return c, nil
}

// People returns the loaded records.
func (c *Crawler) People() []person.Record {
	return c.people
}

// Start launches Chromium and opens the single page the walk runs on.
func (c *Crawler) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("crawler is closed")
	}

	c.launcher = launcher.New().
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-infobars").
		Set("disable-dev-shm-usage").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-background-networking").
		Set("disable-default-apps").
		Set("disable-extensions").
		Set("disable-popup-blocking").
		Set("disable-sync").
		Set("disable-translate").
		Set("window-size", "1280,900").
		Headless(c.config.Headless)

	controlURL, err := c.launcher.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	rodBrowser := rod.New().ControlURL(controlURL)
	if err := rodBrowser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	c.browser = browser.New(rodBrowser)
	c.browser.SetHighlightEnabled(!c.config.Headless)
	if err := c.browser.Open(); err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	c.page = c.browser

	c.log.RunStart(c.runID, len(c.people))
	return nil
}

// Close shuts down the page, the browser, and the launcher's temp
// profile. Safe to call more than once.
func (c *Crawler) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	if c.launcher != nil {
		c.launcher.Cleanup()
		c.launcher = nil
	}
	return err
}
