package accounts

import (
	"sort"

	"github.com/demonstra-dev/demonstra/internal/acctcode"
	"github.com/demonstra-dev/demonstra/internal/model"
)

// Chart is the in-memory chart of accounts of a single file, keyed by
// normalized account code. Later entries for a code replace earlier ones.
type Chart struct {
	names map[string]string
}

// NewChart creates an empty Chart.
func NewChart() *Chart {
	return &Chart{names: make(map[string]string)}
}

// FromEntries builds a Chart from entries, in order.
func FromEntries(entries []model.ChartEntry) *Chart {
	c := NewChart()
	for _, e := range entries {
		c.Put(e.Code, e.Name)
	}
	return c
}

// Put normalizes code and stores name under it. It reports whether an
// existing name was replaced. Empty codes are ignored.
func (c *Chart) Put(code, name string) bool {
	code = acctcode.Normalize(code)
	if code == "" {
		return false
	}
	_, replaced := c.names[code]
	c.names[code] = name
	return replaced
}

// Name returns the account name for a normalized code.
func (c *Chart) Name(code string) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.names[code]
	return name, ok
}

// Describe returns the account name, or model.UnknownAccount on a miss.
func (c *Chart) Describe(code string) string {
	if name, ok := c.Name(code); ok && name != "" {
		return name
	}
	return model.UnknownAccount
}

// Len returns the number of accounts.
func (c *Chart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Entries returns all accounts sorted by code.
func (c *Chart) Entries() []model.ChartEntry {
	if c == nil {
		return nil
	}
	entries := make([]model.ChartEntry, 0, len(c.names))
	for code, name := range c.names {
		entries = append(entries, model.ChartEntry{Code: code, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries
}
