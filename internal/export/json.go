package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/demonstra-dev/demonstra/internal/report"
)

// JSON writes the whole report, records included.
type JSON struct{}

// Format returns the exporter name.
func (j *JSON) Format() string { return "json" }

// ContentType returns the MIME type of the output.
func (j *JSON) ContentType() string { return "application/json" }

// Export writes rep to w.
func (j *JSON) Export(w io.Writer, rep *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
