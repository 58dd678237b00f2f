package browser

import (
	"strings"
	"testing"
	"time"
)

// Operations against a browser whose page was never opened must fail
// cleanly instead of panicking or blocking.
func TestOperationsWithoutOpenPage(t *testing.T) {
	b := New(nil)

	tests := []struct {
		name string
		op   func() error
	}{
		{"Navigate", func() error { return b.Navigate("https://example.com", time.Second) }},
		{"WaitVisible", func() error { return b.WaitVisible("#form_container", time.Second) }},
		{"Fill", func() error { return b.Fill(`input[name="element_2"]`, "Ali") }},
		{"SelectByValue", func() error { return b.SelectByValue(`select[name="element_9"]`, "3") }},
		{"Check", func() error { return b.Check(`input[name="q1"][value="1"]`) }},
		{"Click", func() error { return b.Click("input#submit_primary", time.Second) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			if err == nil {
				t.Fatal("expected an error without an open page")
			}
			if !strings.Contains(err.Error(), "no open page") {
				t.Errorf("error = %q, want it to mention the missing page", err)
			}
		})
	}
}

func TestHasWithoutOpenPage(t *testing.T) {
	b := New(nil)
	ok, err := b.Has("#form_container")
	if err == nil {
		t.Fatal("expected an error without an open page")
	}
	if ok {
		t.Error("Has() = true, want false")
	}
}

func TestRadiosWithoutOpenPage(t *testing.T) {
	b := New(nil)
	radios, err := b.Radios()
	if err == nil {
		t.Fatal("expected an error without an open page")
	}
	if radios != nil {
		t.Errorf("Radios() = %v, want nil", radios)
	}
}

func TestCaptureScreenshotWithoutOpenPage(t *testing.T) {
	b := New(nil)
	if _, err := b.CaptureScreenshot(); err == nil {
		t.Fatal("expected an error without an open page")
	}
}

func TestURLWithoutOpenPage(t *testing.T) {
	b := New(nil)
	if got := b.URL(); got != "" {
		t.Errorf("URL() = %q, want empty", got)
	}
}

func TestCloseWithoutOpenPage(t *testing.T) {
	b := New(nil)
	if err := b.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
	// Close is safe to call twice.
	if err := b.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

func TestSetHighlightEnabled(t *testing.T) {
	b := New(nil)
	b.SetHighlightEnabled(true)
	b.SetHighlightEnabled(false)
	// No page, no highlighter: toggling must not panic.
}

func TestWaitForStableWithTimeout_NilPage(t *testing.T) {
	start := time.Now()
	waitForStableWithTimeout(nil, 100*time.Millisecond, time.Second)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("nil page wait took %s, want immediate return", elapsed)
	}
}
