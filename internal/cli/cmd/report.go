package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/timelapsetech/videocalc-db/internal/calc"
	"github.com/timelapsetech/videocalc-db/internal/events"
	"github.com/timelapsetech/videocalc-db/internal/model"
	"github.com/timelapsetech/videocalc-db/internal/share"
	"github.com/timelapsetech/videocalc-db/internal/util"
	"github.com/timelapsetech/videocalc-db/internal/util/format"
)

// calcReport is the machine-readable form of a calculation.
type calcReport struct {
	Category          string          `yaml:"category"`
	Codec             string          `yaml:"codec"`
	CodecName         string          `yaml:"codecName"`
	Variant           string          `yaml:"variant"`
	Resolution        string          `yaml:"resolution"`
	FrameRate         string          `yaml:"frameRate"`
	FallbackFrameRate string          `yaml:"fallbackFrameRate,omitempty"`
	Duration          string          `yaml:"duration"`
	TotalSeconds      int             `yaml:"totalSeconds"`
	BitrateMbps       float64         `yaml:"bitrateMbps"`
	FileSizeMB        float64         `yaml:"fileSizeMB"`
	FileSizeGB        float64         `yaml:"fileSizeGB"`
	FileSizeTB        float64         `yaml:"fileSizeTB"`
	PerMinuteMB       float64         `yaml:"perMinuteMB"`
	PerHourMB         float64         `yaml:"perHourMB"`
	Query             string          `yaml:"query"`
	Adjusted          []string        `yaml:"adjusted,omitempty"`
	Capacity          *capacityReport `yaml:"capacity,omitempty"`
}

type capacityReport struct {
	Size    string `yaml:"size"`
	Seconds int    `yaml:"seconds"`
	Fits    string `yaml:"fits"`
}

func newReport(res *model.CalculationResult, sel model.Selection, changes []events.Change) calcReport {
	r := calcReport{
		Category:          res.CategoryID,
		Codec:             res.Codec.ID,
		CodecName:         res.Codec.Name,
		Variant:           res.ResolvedVariant.Name,
		Resolution:        res.ResolvedResolution.ID,
		FrameRate:         res.ResolvedFrameRate.ID,
		FallbackFrameRate: res.FallbackFrameRate,
		Duration:          sel.Duration.String(),
		TotalSeconds:      res.TotalSeconds,
		BitrateMbps:       res.BitrateMbps,
		FileSizeMB:        res.FileSizeMB,
		FileSizeGB:        res.FileSizeGB,
		FileSizeTB:        res.FileSizeTB,
		PerMinuteMB:       calc.RatePerMinuteMB(res.BitrateMbps),
		PerHourMB:         calc.RatePerHourMB(res.BitrateMbps),
		Query:             share.Encode(sel).Encode(),
	}
	for _, c := range changes {
		r.Adjusted = append(r.Adjusted, describeChange(c))
	}
	return r
}

func (r *calcReport) setCapacity(mb float64, binary bool) {
	secs := calc.SecondsForSize(mb, r.BitrateMbps)
	r.Capacity = &capacityReport{
		Size:    format.FileSize(mb, binary),
		Seconds: secs,
		Fits:    format.Duration(model.DurationFromSeconds(secs)),
	}
}

func describeChange(c events.Change) string {
	switch {
	case c.To == "":
		return fmt.Sprintf("%s %q cleared (%s)", c.Field, c.From, c.Rule)
	case c.From == "":
		return fmt.Sprintf("%s set to %q (%s)", c.Field, c.To, c.Rule)
	default:
		return fmt.Sprintf("%s changed from %q to %q (%s)", c.Field, c.From, c.To, c.Rule)
	}
}

// writeReport writes r as YAML. When path is a directory, the file name is
// derived from the selection.
func writeReport(path string, r calcReport) (string, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		name := strings.Join([]string{r.Codec, r.Variant, r.Resolution, r.FrameRate}, "_")
		path = filepath.Join(path, util.SanitizeFilename(name)+".yaml")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	if err := util.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}
