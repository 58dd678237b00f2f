package avalform

import (
	"fmt"

	"github.com/alihajqani/avalform-crawler/dom"
	"github.com/alihajqani/avalform-crawler/person"
)

// fillFirstPage populates the free-text and select fields on page 1
// from one record, then clicks the primary submit control. A field
// whose name matches neither an input nor a select is a warning, not a
// failure, so records whose field set drifts from the live form still
// go through.
func (c *Crawler) fillFirstPage(p Page, rec person.Record) {
	for _, field := range rec.Fields() {
		value := rec.Value(field)

		inputSelector := fmt.Sprintf(`input[name=%q], input#%s`, field, field)
		ok, err := p.Has(inputSelector)
		if err != nil {
			c.log.Error(fmt.Sprintf("looking up field %q", field), err)
			continue
		}
		if ok {
			if err := p.Fill(inputSelector, value); err != nil {
				c.log.Error(fmt.Sprintf("filling %q with %q", field, value), err)
			}
			continue
		}

		selectSelector := fmt.Sprintf(`select[name=%q], select#%s`, field, field)
		ok, err = p.Has(selectSelector)
		if err != nil {
			c.log.Error(fmt.Sprintf("looking up field %q", field), err)
			continue
		}
		if ok {
			if err := p.SelectByValue(selectSelector, value); err != nil {
				c.log.Error(fmt.Sprintf("selecting %q for %q", value, field), err)
			}
			continue
		}

		c.log.Warn(fmt.Sprintf("no input/select found for %q", field))
	}

	c.clickContinue(p)
}

// fillRadioMatrix answers a matrix page: one option per radio group,
// chosen uniformly at random from the values discovered on the live
// page. A page without radios is a silent no-op, since not every page
// carries a matrix.
func (c *Crawler) fillRadioMatrix(p Page) {
	if err := p.WaitVisible(`input[type="radio"]`, actionTimeout); err != nil {
		return // no matrix on this page
	}

	radios, err := p.Radios()
	if err != nil {
		c.log.Error("discovering radio groups", err)
		return
	}

	for _, group := range dom.Groups(radios) {
		value := group.Values[c.rng.Intn(len(group.Values))]
		selector := fmt.Sprintf(`input[name=%q][value=%q]`, group.Name, value)

		ok, err := p.Has(selector)
		if err != nil {
			c.log.Error(fmt.Sprintf("looking up group %q", group.Name), err)
			continue
		}
		if !ok {
			c.log.Warn(fmt.Sprintf("group %q has no control with value %q", group.Name, value))
			continue
		}
		if err := p.Check(selector); err != nil {
			c.log.Error(fmt.Sprintf("checking %q", selector), err)
		}
	}
}

// fillLabelChoices answers pages whose radio inputs sit under labels
// that intercept clicks: it picks one (value, id) option per group and
// clicks the label bound to that id instead of the input. Options are
// distinct by id, so two options sharing a value remain separate
// choices.
func (c *Crawler) fillLabelChoices(p Page) {
	if err := p.WaitVisible(`input[type="radio"]`, actionTimeout); err != nil {
		return // no choice blocks on this page
	}

	radios, err := p.Radios()
	if err != nil {
		c.log.Error("discovering radio groups", err)
		return
	}

	for _, group := range dom.GroupOptions(radios) {
		opt := group.Options[c.rng.Intn(len(group.Options))]
		selector := fmt.Sprintf(`label[for=%q]`, opt.ID)

		ok, err := p.Has(selector)
		if err != nil {
			c.log.Error(fmt.Sprintf("looking up label for %q", opt.ID), err)
			continue
		}
		if !ok {
			c.log.Warn(fmt.Sprintf("no label for id %q", opt.ID))
			continue
		}
		if err := p.Click(selector, actionTimeout); err != nil {
			c.log.Warn(fmt.Sprintf("clicking label %q failed: %v", selector, err))
		}
	}
}

// clickContinue advances to the next page. On the final page the same
// control performs the submission. A missing or unclickable control is
// logged and the walk proceeds; multi-page forms are timing-dependent
// enough that best effort beats aborting a whole record.
func (c *Crawler) clickContinue(p Page) {
	if err := p.Click(continueSelector, actionTimeout); err != nil {
		c.log.Error("could not find/click the continue control", err)
	}
}
