// Package export renders reports as downloadable files.
package export

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/demonstra-dev/demonstra/internal/report"
)

// Exporter writes a report in one file format.
type Exporter interface {
	Format() string
	ContentType() string
	Export(w io.Writer, rep *report.Report) error
}

// Registry holds exporters by format name.
type Registry struct {
	exporters map[string]Exporter
}

// NewRegistry creates an empty exporter registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[string]Exporter)}
}

// Register adds an exporter. Panics on duplicate format.
func (r *Registry) Register(e Exporter) {
	key := strings.ToLower(e.Format())
	if _, ok := r.exporters[key]; ok {
		panic("duplicate export format: " + key)
	}
	r.exporters[key] = e
}

// Get returns the exporter for format, or nil.
func (r *Registry) Get(format string) Exporter {
	return r.exporters[strings.ToLower(format)]
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.exporters))
	for k := range r.exporters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in exporters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSV{})
	r.Register(&XLSX{})
	r.Register(&JSON{})
	r.Register(&Text{})
	return r
}

// FileName is the suggested download name for rep in format.
func FileName(rep *report.Report, format string) string {
	base := filepath.Base(rep.Source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "demonstracoes." + strings.ToLower(format)
	}
	return base + "_demonstracoes." + strings.ToLower(format)
}
