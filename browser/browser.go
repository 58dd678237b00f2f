// Package browser provides the browser automation layer using go-rod.
package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alihajqani/avalform-crawler/dom"
)

// defaultActionTimeout bounds element lookups performed as part of an
// action, so a missing control fails fast instead of blocking.
const defaultActionTimeout = 5 * time.Second

// Browser wraps a rod browser and the single page the walker drives.
// One page is reused across all records; there is no tab management.
type Browser struct {
	rod  *rod.Browser
	page *rod.Page

	highlighter      *Highlighter
	highlightEnabled bool

	mu sync.Mutex
}

// New creates a new browser wrapper.
func New(rodBrowser *rod.Browser) *Browser {
	return &Browser{rod: rodBrowser}
}

// SetHighlightEnabled toggles visual highlighting of acted-on controls.
// Highlighting only makes sense in headed mode.
func (b *Browser) SetHighlightEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.highlightEnabled = enabled
	if b.highlighter != nil {
		b.highlighter.SetEnabled(enabled)
	}
}

// Open creates the page all subsequent operations run against.
// Calling Open on an already-open browser is a no-op.
func (b *Browser) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page != nil {
		return nil
	}
	page, err := b.rod.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	b.page = page
	return nil
}

// getHighlighter returns a highlighter bound to the current page.
func (b *Browser) getHighlighter() *Highlighter {
	if b.page == nil {
		return nil
	}
	if b.highlighter == nil || b.highlighter.page != b.page {
		b.highlighter = NewHighlighter(b.page, b.highlightEnabled)
	}
	return b.highlighter
}

// waitForStableWithTimeout waits for the page to stabilize with an overall
// timeout. This prevents indefinite blocking on pages with continuous
// animations. stabilityDuration: how long the page must be unchanged to be
// considered ready; maxWait: maximum total time to wait before giving up.
func waitForStableWithTimeout(page *rod.Page, stabilityDuration, maxWait time.Duration) {
	if page == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = page.WaitStable(stabilityDuration)
	}()

	select {
	case <-done:
	case <-time.After(maxWait):
		// Page may still be settling but we continue anyway.
	}
}

// Navigate loads the given URL and waits for the page to be ready,
// bounded by timeout.
func (b *Browser) Navigate(url string, timeout time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return fmt.Errorf("no open page")
	}

	p := b.page.Timeout(timeout)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %q: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}

	waitForStableWithTimeout(b.page, 300*time.Millisecond, 2*time.Second)
	return nil
}

// WaitVisible waits until an element matching selector is present and
// visible, bounded by timeout.
func (b *Browser) WaitVisible(selector string, timeout time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return fmt.Errorf("no open page")
	}

	el, err := b.page.Timeout(timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("no element matching %q within %s: %w", selector, timeout, err)
	}
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("element %q did not become visible: %w", selector, err)
	}
	return nil
}

// Has reports whether an element matching selector currently exists.
// It does not wait.
func (b *Browser) Has(selector string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return false, fmt.Errorf("no open page")
	}

	has, _, err := b.page.Has(selector)
	if err != nil {
		return false, fmt.Errorf("failed to query %q: %w", selector, err)
	}
	return has, nil
}

// Fill replaces the content of a text input with value.
func (b *Browser) Fill(selector, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	el, err := b.actionElement(selector)
	if err != nil {
		return err
	}

	if h := b.getHighlighter(); h != nil {
		_ = h.HighlightElementNode(el, fmt.Sprintf("fill: %s", value))
		defer h.RemoveHighlights()
	}

	// Clear any pre-filled content before typing the new value.
	_ = el.SelectAllText()
	if err := el.Input(value); err != nil {
		return fmt.Errorf("failed to fill %q: %w", selector, err)
	}
	return nil
}

// SelectByValue chooses the option of a select control whose value
// attribute equals value.
func (b *Browser) SelectByValue(selector, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	el, err := b.actionElement(selector)
	if err != nil {
		return err
	}

	if h := b.getHighlighter(); h != nil {
		_ = h.HighlightElementNode(el, fmt.Sprintf("select: %s", value))
		defer h.RemoveHighlights()
	}

	optionSelector := fmt.Sprintf(`[value=%q]`, value)
	if err := el.Select([]string{optionSelector}, true, rod.SelectorTypeCSSSector); err != nil {
		return fmt.Errorf("failed to select option %q of %q: %w", value, selector, err)
	}
	return nil
}

// Check selects a radio or checkbox control by clicking it.
func (b *Browser) Check(selector string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	el, err := b.actionElement(selector)
	if err != nil {
		return err
	}

	if h := b.getHighlighter(); h != nil {
		_ = h.HighlightElementNode(el, "check")
		defer h.RemoveHighlights()
	}

	if err := clickElement(el); err != nil {
		return fmt.Errorf("failed to check %q: %w", selector, err)
	}
	return nil
}

// Click clicks the first element matching selector, waiting up to
// timeout for it to appear.
func (b *Browser) Click(selector string, timeout time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return fmt.Errorf("no open page")
	}

	el, err := b.page.Timeout(timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("no element matching %q within %s: %w", selector, timeout, err)
	}

	if h := b.getHighlighter(); h != nil {
		_ = h.HighlightElementNode(el, "click")
		defer h.RemoveHighlights()
	}

	if err := clickElement(el); err != nil {
		return fmt.Errorf("failed to click %q: %w", selector, err)
	}
	return nil
}

// Radios discovers every radio input on the current page, reporting the
// name, value and id attributes the fill strategies group on.
func (b *Browser) Radios() ([]dom.Radio, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return nil, fmt.Errorf("no open page")
	}

	els, err := b.page.Elements(`input[type="radio"]`)
	if err != nil {
		return nil, fmt.Errorf("failed to query radio inputs: %w", err)
	}

	radios := make([]dom.Radio, 0, len(els))
	for _, el := range els {
		radios = append(radios, dom.Radio{
			Name:  attr(el, "name"),
			Value: attr(el, "value"),
			ID:    attr(el, "id"),
		})
	}
	return radios, nil
}

// CaptureScreenshot takes a PNG screenshot of the current viewport.
func (b *Browser) CaptureScreenshot() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return nil, fmt.Errorf("no open page")
	}

	data, err := b.page.Screenshot(false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to take screenshot: %w", err)
	}
	return data, nil
}

// URL returns the current page URL, or "" when unavailable.
func (b *Browser) URL() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page == nil {
		return ""
	}
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// Close closes the page and the underlying browser.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page != nil {
		_ = b.page.Close()
		b.page = nil
	}
	if b.rod != nil {
		err := b.rod.Close()
		b.rod = nil
		return err
	}
	return nil
}

// actionElement looks up the element an action targets, bounded by the
// default action timeout (must hold lock).
func (b *Browser) actionElement(selector string) (*rod.Element, error) {
	if b.page == nil {
		return nil, fmt.Errorf("no open page")
	}
	el, err := b.page.Timeout(defaultActionTimeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("no element matching %q: %w", selector, err)
	}
	return el, nil
}

// clickElement scrolls an element into view and clicks it.
func clickElement(el *rod.Element) error {
	_ = el.ScrollIntoView()
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// attr reads an attribute, treating a missing attribute as "".
func attr(el *rod.Element, name string) string {
	v, err := el.Attribute(name)
	if err != nil || v == nil {
		return ""
	}
	return *v
}
