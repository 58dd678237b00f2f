package avalform

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/alihajqani/avalform-crawler/dom"
)

// fakePage stands in for the browser and records every action a fill
// strategy performs against it.
type fakePage struct {
	selectors map[string]bool  // selectors that exist on the "page"
	failing   map[string]error // selector -> error its action returns
	radios    []dom.Radio
	navErr    error

	navigates []string
	fills     []fakeAction
	selects   []fakeAction
	checks    []string
	clicks    []string
}

type fakeAction struct {
	selector string
	value    string
}

func newFakePage() *fakePage {
	return &fakePage{
		selectors: make(map[string]bool),
		failing:   make(map[string]error),
	}
}

func (f *fakePage) withSelector(selector string) *fakePage {
	f.selectors[selector] = true
	return f
}

func (f *fakePage) withTextInput(field string) *fakePage {
	return f.withSelector(fmt.Sprintf(`input[name=%q], input#%s`, field, field))
}

func (f *fakePage) withSelect(field string) *fakePage {
	return f.withSelector(fmt.Sprintf(`select[name=%q], select#%s`, field, field))
}

func (f *fakePage) withContinue() *fakePage {
	return f.withSelector(continueSelector)
}

// withRadios registers radios together with the selectors the fill
// strategies derive from them.
func (f *fakePage) withRadios(radios ...dom.Radio) *fakePage {
	f.radios = append(f.radios, radios...)
	for _, r := range radios {
		f.withSelector(fmt.Sprintf(`input[name=%q][value=%q]`, r.Name, r.Value))
		if r.ID != "" {
			f.withSelector(fmt.Sprintf(`label[for=%q]`, r.ID))
		}
	}
	return f
}

func (f *fakePage) Navigate(url string, _ time.Duration) error {
	if f.navErr != nil {
		return f.navErr
	}
	f.navigates = append(f.navigates, url)
	return nil
}

func (f *fakePage) WaitVisible(selector string, _ time.Duration) error {
	if selector == `input[type="radio"]` {
		if len(f.radios) == 0 {
			return errors.New("wait timed out")
		}
		return nil
	}
	if f.selectors[selector] {
		return nil
	}
	return errors.New("wait timed out")
}

func (f *fakePage) Has(selector string) (bool, error) {
	return f.selectors[selector], nil
}

func (f *fakePage) Fill(selector, value string) error {
	if err := f.failing[selector]; err != nil {
		return err
	}
	f.fills = append(f.fills, fakeAction{selector, value})
	return nil
}

func (f *fakePage) SelectByValue(selector, value string) error {
	if err := f.failing[selector]; err != nil {
		return err
	}
	f.selects = append(f.selects, fakeAction{selector, value})
	return nil
}

func (f *fakePage) Check(selector string) error {
	if err := f.failing[selector]; err != nil {
		return err
	}
	f.checks = append(f.checks, selector)
	return nil
}

func (f *fakePage) Click(selector string, _ time.Duration) error {
	if !f.selectors[selector] {
		return errors.New("no element within timeout")
	}
	if err := f.failing[selector]; err != nil {
		return err
	}
	f.clicks = append(f.clicks, selector)
	return nil
}

func (f *fakePage) Radios() ([]dom.Radio, error) {
	return f.radios, nil
}

func (f *fakePage) CaptureScreenshot() ([]byte, error) {
	return nil, errors.New("captures not supported by fake page")
}

// countClicks reports how many recorded clicks hit the given selector.
func (f *fakePage) countClicks(selector string) int {
	n := 0
	for _, s := range f.clicks {
		if s == selector {
			n++
		}
	}
	return n
}

// newTestCrawler builds a crawler with a silent logger and a fixed
// random seed, without loading records or launching a browser.
func newTestCrawler(seed int64) *Crawler {
	return &Crawler{
		rng:   rand.New(rand.NewSource(seed)),
		log:   NewLogger(false),
		runID: "test",
	}
}
