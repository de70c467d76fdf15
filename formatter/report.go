package formatter

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/gtfs-csv/gtfs"
)

// WriteReportYAML writes a scan report as YAML.
func WriteReportYAML(w io.Writer, report *gtfs.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

// WriteReportJSON writes a scan report as indented JSON.
func WriteReportJSON(w io.Writer, report *gtfs.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
