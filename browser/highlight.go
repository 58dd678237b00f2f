package browser

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// Highlighter provides visual feedback in headed mode by drawing
// animated corner brackets around the control about to be acted on.
type Highlighter struct {
	page    *rod.Page
	enabled bool
	delay   time.Duration // how long to show the highlight before acting
}

// NewHighlighter creates a new highlighter for the given page.
func NewHighlighter(page *rod.Page, enabled bool) *Highlighter {
	return &Highlighter{
		page:    page,
		enabled: enabled,
		delay:   200 * time.Millisecond,
	}
}

// SetEnabled enables or disables highlighting.
func (h *Highlighter) SetEnabled(enabled bool) {
	h.enabled = enabled
}

// SetDelay sets how long the highlight is shown before the action runs.
func (h *Highlighter) SetDelay(d time.Duration) {
	h.delay = d
}

// injectStyles injects the CSS for highlight animations if not already present.
func (h *Highlighter) injectStyles() error {
	_, err := h.page.Eval(`(function() {
		if (document.getElementById('afc-highlight-styles')) return;

		const style = document.createElement('style');
		style.id = 'afc-highlight-styles';
		style.textContent = ` + "`" + `
			.afc-highlight-corner {
				position: fixed;
				pointer-events: none;
				z-index: 999999;
				transition: all 0.15s ease-out;
			}
			.afc-highlight-corner-tl { border-top: 3px solid #ff6b35; border-left: 3px solid #ff6b35; }
			.afc-highlight-corner-tr { border-top: 3px solid #ff6b35; border-right: 3px solid #ff6b35; }
			.afc-highlight-corner-bl { border-bottom: 3px solid #ff6b35; border-left: 3px solid #ff6b35; }
			.afc-highlight-corner-br { border-bottom: 3px solid #ff6b35; border-right: 3px solid #ff6b35; }

			.afc-highlight-label {
				position: fixed;
				pointer-events: none;
				z-index: 999999;
				background: #ff6b35;
				color: white;
				padding: 2px 6px;
				font-size: 11px;
				font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
				font-weight: 500;
				border-radius: 3px;
				white-space: nowrap;
			}
		` + "`" + `;
		document.head.appendChild(style);
	})()`)
	return err
}

// HighlightElementNode shows corner brackets around an element about to
// be filled, checked or clicked.
func (h *Highlighter) HighlightElementNode(el *rod.Element, label string) error {
	if !h.enabled || h.page == nil || el == nil {
		return nil
	}

	shape, err := el.Shape()
	if err != nil {
		return nil // element has no box to draw around
	}
	box := shape.Box()
	if box == nil {
		return nil
	}

	return h.highlightBox(box.X, box.Y, box.Width, box.Height, label)
}

// highlightBox shows animated corner brackets around a bounding box.
func (h *Highlighter) highlightBox(x, y, width, height float64, label string) error {
	if err := h.injectStyles(); err != nil {
		return err
	}

	cornerSize := 14.0

	js := fmt.Sprintf(`(function() {
		document.querySelectorAll('.afc-highlight-corner, .afc-highlight-label').forEach(el => el.remove());

		const x = %f;
		const y = %f;
		const w = %f;
		const h = %f;
		const cornerSize = %f;
		const label = %q;
		const padding = 4;

		const corners = [
			{cls: 'afc-highlight-corner-tl', left: x - padding, top: y - padding, w: cornerSize, h: cornerSize},
			{cls: 'afc-highlight-corner-tr', left: x + w + padding - cornerSize, top: y - padding, w: cornerSize, h: cornerSize},
			{cls: 'afc-highlight-corner-bl', left: x - padding, top: y + h + padding - cornerSize, w: cornerSize, h: cornerSize},
			{cls: 'afc-highlight-corner-br', left: x + w + padding - cornerSize, top: y + h + padding - cornerSize, w: cornerSize, h: cornerSize},
		];

		corners.forEach(c => {
			const el = document.createElement('div');
			el.className = 'afc-highlight-corner ' + c.cls;
			el.style.left = c.left + 'px';
			el.style.top = c.top + 'px';
			el.style.width = c.w + 'px';
			el.style.height = c.h + 'px';
			document.body.appendChild(el);
		});

		if (label) {
			const labelEl = document.createElement('div');
			labelEl.className = 'afc-highlight-label';
			labelEl.textContent = label;
			labelEl.style.left = (x - padding) + 'px';
			labelEl.style.top = (y - padding - 22) + 'px';
			document.body.appendChild(labelEl);
		}
	})()`, x, y, width, height, cornerSize, label)

	if _, err := h.page.Eval(js); err != nil {
		return fmt.Errorf("failed to show element highlight: %w", err)
	}

	time.Sleep(h.delay)
	return nil
}

// RemoveHighlights removes all highlight elements from the page.
func (h *Highlighter) RemoveHighlights() error {
	if h.page == nil {
		return nil
	}

	_, err := h.page.Eval(`(function() {
		document.querySelectorAll('.afc-highlight-corner, .afc-highlight-label').forEach(el => el.remove());
	})()`)
	return err
}
