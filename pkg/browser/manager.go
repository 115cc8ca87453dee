// Package browser captures DOM elements of live pages with headless Chrome.
//
// A [Manager] owns the Chrome process. [Open] navigates a tab and returns a
// [Page], which doubles as the font barrier for the export engine: its
// Ready method resolves when document.fonts.ready does. [Page.Element]
// turns a CSS selector into a region the engine can export.
//
//	mgr := browser.NewManager(browser.Config{Logger: logger})
//	if err := mgr.Start(ctx); err != nil { ... }
//	defer mgr.Close()
//
//	page, err := browser.Open(ctx, mgr, "http://localhost:5173/")
//	engine := export.NewEngine(export.WithFontGate(page))
//	art, err := engine.ExportRegion(ctx, page.Element("#slide-1"), spec)
package browser

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/matzehuels/microprint/pkg/errors"
)

// Config configures the browser manager.
type Config struct {
	// RemoteURL is the DevTools WebSocket URL of a running Chrome.
	// Empty launches a local headless Chrome.
	RemoteURL string

	// Bin is the Chrome binary. Empty lets the launcher find or download one.
	Bin string

	// NavigateTimeout bounds page navigation and load. Default: 30s.
	NavigateTimeout time.Duration

	Logger *log.Logger
}

func (c *Config) defaults() {
	if c.NavigateTimeout <= 0 {
		c.NavigateTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

// Available reports whether a local Chrome can be found without
// downloading one.
func Available() bool {
	_, ok := launcher.LookPath()
	return ok
}

// Manager manages the Chrome lifecycle.
type Manager struct {
	cfg     Config
	mu      sync.RWMutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewManager creates a Manager. Call Start to launch Chrome.
func NewManager(cfg Config) *Manager {
	cfg.defaults()
	return &Manager{cfg: cfg}
}

// Start launches Chrome, or connects to RemoteURL.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errors.New(errors.ErrCodeBackendUnavailable, "browser manager is closed")
	}
	if m.browser != nil {
		return nil
	}

	wsURL := m.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().Context(ctx).Headless(true)
		if m.cfg.Bin != "" {
			l = l.Bin(m.cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return errors.Wrap(errors.ErrCodeBackendUnavailable, err, "launch chrome")
		}
		wsURL = u
		m.lnch = l
		m.cfg.Logger.Debug("launched chrome", "url", wsURL)
	} else {
		m.cfg.Logger.Debug("connecting to chrome", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		m.cleanup()
		return errors.Wrap(errors.ErrCodeBackendUnavailable, err, "connect to chrome")
	}
	m.browser = b
	return nil
}

// Browser returns the rod browser, or nil before Start.
func (m *Manager) Browser() *rod.Browser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.browser
}

// Close shuts Chrome down. It is safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.cleanup()
	return nil
}

func (m *Manager) cleanup() {
	if m.browser != nil {
		_ = m.browser.Close()
		m.browser = nil
	}
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
}
