package avalform

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alihajqani/avalform-crawler/dom"
)

// Page is the subset of browser operations the page walk needs.
// *browser.Browser satisfies it; tests substitute fakes.
type Page interface {
	Navigate(url string, timeout time.Duration) error
	WaitVisible(selector string, timeout time.Duration) error
	Has(selector string) (bool, error)
	Fill(selector, value string) error
	SelectByValue(selector, value string) error
	Check(selector string) error
	Click(selector string, timeout time.Duration) error
	Radios() ([]dom.Radio, error)
	CaptureScreenshot() ([]byte, error)
}

// pageStep is one page of the fixed walk after page 1: its console name
// and the fill strategy that answers it.
type pageStep struct {
	name string
	fill func(Page)
}

// steps returns the fixed page sequence after page 1. Pages 5 and 7
// render their radios under click-intercepting labels, so they use the
// label-click strategy.
func (c *Crawler) steps() []pageStep {
	return []pageStep{
		{"page 2 (matrix)", c.fillRadioMatrix},
		{"page 3 (matrix)", c.fillRadioMatrix},
		{"page 4 (matrix)", c.fillRadioMatrix},
		{"page 5 (choices)", c.fillLabelChoices},
		{"page 6 (matrix)", c.fillRadioMatrix},
		{"page 7 (choices)", c.fillLabelChoices},
		{"page 8 (matrix)", c.fillRadioMatrix},
	}
}

// Run walks the form once per loaded record. Failing to reach page 1 or
// to find the form container is fatal for the whole run; every other
// failure degrades to a logged warning or error and the walk continues.
// The final continue click on page 8 submits the record.
func (c *Crawler) Run(ctx context.Context) error {
	if c.page == nil {
		return fmt.Errorf("crawler not started")
	}

	steps := c.steps()

	for i, rec := range c.people {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.log.PersonStart(i+1, len(c.people))

		if err := c.page.Navigate(c.config.URL, navTimeout); err != nil {
			c.log.Fatal("could not load page 1; check the configured URL", err)
			c.capture("load-failure")
			return fmt.Errorf("failed to load first page: %w", err)
		}
		if err := c.page.WaitVisible(containerSelector, containerTimeout); err != nil {
			c.log.Fatal(fmt.Sprintf("%s not found on page 1", containerSelector), err)
			c.capture("container-missing")
			return fmt.Errorf("form container did not appear: %w", err)
		}

		c.fillFirstPage(c.page, rec)

		for _, step := range steps {
			c.settle()
			c.log.Step(step.name)
			step.fill(c.page)
			c.clickContinue(c.page)
		}

		c.capture(fmt.Sprintf("person-%03d", i+1))
		c.log.PersonDone(i + 1)
	}

	if !c.config.NoPrompt {
		c.log.Prompt("All done. Press Enter to close the browser...")
		waitForEnter(os.Stdin)
		c.log.Info("Closing browser...")
	}
	return nil
}

// settle pauses between pages so client-side navigation can finish.
func (c *Crawler) settle() {
	time.Sleep(c.config.SettlePause)
}

// capture stores a screenshot of the current page when captures are
// configured. Capture failures are logged, never fatal.
func (c *Crawler) capture(label string) {
	if c.captures == nil {
		return
	}

	data, err := c.page.CaptureScreenshot()
	if err != nil {
		c.log.Error("capture", err)
		return
	}
	path, err := c.captures.Save(data, fmt.Sprintf("%s-%s", c.runID, label))
	if err != nil {
		c.log.Error("capture", err)
		return
	}
	c.log.Capture(path)
}

// waitForEnter blocks until a line arrives, the manual gate before the
// browser closes.
func waitForEnter(r io.Reader) {
	_, _ = bufio.NewReader(r).ReadString('\n')
}
