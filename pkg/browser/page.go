package browser

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/observability"
)

// Page is an open tab.
type Page struct {
	page   *rod.Page
	url    string
	logger *log.Logger
}

// Open creates a tab and navigates it to url, waiting for the load event.
func Open(ctx context.Context, m *Manager, url string) (*Page, error) {
	b := m.Browser()
	if b == nil {
		return nil, errors.New(errors.ErrCodeBackendUnavailable, "browser is not running")
	}

	start := time.Now()
	hooks := observability.Browser()

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "create tab")
	}

	navCtx, cancel := context.WithTimeout(ctx, m.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(url); err != nil {
		_ = page.Close()
		err = errors.Wrap(errors.ErrCodeRegionUnavailable, err, "navigate %s", url)
		hooks.OnPageLoad(ctx, url, time.Since(start), err)
		return nil, err
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		m.cfg.Logger.Warn("wait load timeout", "url", url, "err", err)
	}
	hooks.OnPageLoad(ctx, url, time.Since(start), nil)
	m.cfg.Logger.Debug("page loaded", "url", url, "duration", time.Since(start))

	return &Page{page: page, url: url, logger: m.cfg.Logger}, nil
}

// URL returns the address the page was opened with.
func (p *Page) URL() string { return p.url }

// Ready blocks until document.fonts.ready resolves. It implements
// export.FontGate.
func (p *Page) Ready(ctx context.Context) error {
	start := time.Now()
	if _, err := p.page.Context(ctx).Eval(`() => document.fonts.ready.then(() => true)`); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeBackendUnavailable, err, "await fonts on %s", p.url)
	}
	observability.Browser().OnFontsReady(ctx, p.url, time.Since(start))
	return nil
}

// metrics are the window dimensions in CSS pixels and the device ratio.
type metrics struct {
	width, height int
	ratio         float64
}

func (p *Page) metrics(ctx context.Context) (metrics, error) {
	res, err := p.page.Context(ctx).Eval(`() => ({w: window.innerWidth, h: window.innerHeight, dpr: window.devicePixelRatio})`)
	if err != nil {
		return metrics{}, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "read window metrics")
	}
	m := metrics{
		width:  res.Value.Get("w").Int(),
		height: res.Value.Get("h").Int(),
		ratio:  res.Value.Get("dpr").Num(),
	}
	if m.ratio <= 0 {
		m.ratio = 1
	}
	return m, nil
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.page.Close()
}
