// Package rod implements the typedex.Fetcher interface using Chrome browser
// automation, for documentation sites that render content with JavaScript.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the default number of pages fetched before the
// browser is recycled.
const DefaultRecycleAfter = 75

// BrowserManager owns the browser lifecycle and recycles the browser after a
// fixed number of pages. Chrome's heap grows steadily during long crawls and
// never returns to baseline even when every page is closed; restarting the
// browser periodically keeps long batch fetches bounded.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pages     atomic.Int64
	recycleAt int64
	closed    atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithRecycleAfter sets how many pages are fetched before the browser is
// recycled. Defaults to DefaultRecycleAfter.
func WithRecycleAfter(n int64) ManagerOption {
	return func(m *BrowserManager) {
		m.recycleAt = n
	}
}

// NewBrowserManager launches a headless Chrome browser. Close must be called
// when the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	m := &BrowserManager{recycleAt: DefaultRecycleAfter}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.launch(); err != nil {
		return nil, err
	}
	return m, nil
}

// Browser returns the current browser, recycling first if the page count has
// reached the recycle threshold. Call PageDone after each fetched page.
func (m *BrowserManager) Browser() *rod.Browser {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pages.Load() >= m.recycleAt {
		m.recycle()
	}
	return m.browser
}

// PageDone records one fetched page toward the recycle threshold.
func (m *BrowserManager) PageDone() {
	m.pages.Add(1)
}

// Close releases browser resources. Safe to call multiple times.
func (m *BrowserManager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shutdown()
}

// LauncherPID returns the browser launcher's process ID, for tests that
// verify process cleanup.
func (m *BrowserManager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.launcher == nil {
		return 0
	}
	return m.launcher.PID()
}

// launch starts a browser with flags that keep background pages rendering.
func (m *BrowserManager) launch() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser = browser
	m.launcher = lnchr
	return nil
}

// shutdown closes the current browser and launcher. Must hold mu.
func (m *BrowserManager) shutdown() error {
	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher = nil
	}
	return err
}

// recycle swaps in a fresh browser; on launch failure the old browser stays.
// Must hold mu.
func (m *BrowserManager) recycle() {
	oldBrowser := m.browser
	oldLauncher := m.launcher
	m.browser = nil
	m.launcher = nil

	if err := m.launch(); err != nil {
		m.browser = oldBrowser
		m.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	m.pages.Store(0)
}
