// Package person loads respondent records from a local data file.
package person

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record maps a page-1 form field name to the scalar value to enter.
// Unknown fields are tolerated downstream; they produce a warning when
// no matching control exists on the page.
type Record map[string]any

// Fields returns the record's field names in sorted order so fills
// happen in a stable order from run to run.
func (r Record) Fields() []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Value returns the string form of a field's value. Numbers decoded
// from JSON arrive as float64; integral ones render without a decimal
// part so "12" is typed into the form, not "12.000000".
func (r Record) Value(field string) string {
	switch v := r[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Load reads the full ordered sequence of records from path before any
// browser work begins. JSON and YAML files are supported, dispatched on
// extension. A missing file is an error naming the file.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("data file %q not found", path)
		}
		return nil, fmt.Errorf("failed to read data file %q: %w", path, err)
	}

	var records []Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported data file extension %q (want .json, .yaml or .yml)", ext)
	}

	return records, nil
}
