package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/user/getinsights/pkg/engine"
)

// Format selects how the aggregate line is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted --output values
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q (choose from text, json, yaml)", s)
}

// Options is the view selected on the command line. It is built once and not modified.
type Options struct {
	All        bool               // every finding, whatever its category
	Summary    bool               // no per-finding detail at all
	Categories engine.CategorySet // findings of these categories
	Format     Format
	Color      bool
}

// NewOptions applies the default view: with no view flag, every finding is shown.
func NewOptions(all, summary bool, categories engine.CategorySet, format Format) Options {
	if !all && !summary && categories.Empty() {
		all = true
	}
	if format == "" {
		format = FormatText
	}
	return Options{
		All:        all,
		Summary:    summary,
		Categories: categories,
		Format:     format,
	}
}

// Selects reports whether f gets a detail block.
func (o Options) Selects(f engine.Finding) bool {
	if o.Summary {
		return false
	}
	return o.All || o.Categories.Has(f.Category)
}

// Render writes the selected detail blocks, then the aggregate line, and returns the tally.
func Render(w io.Writer, findings []engine.Finding, opts Options) (engine.Summary, error) {
	bw := bufio.NewWriter(w)
	p := newPrinter(bw, opts.Color)

	var sum engine.Summary
	for _, f := range findings {
		sum.Add(f)
		if opts.Selects(f) {
			p.finding(f)
		}
	}
	if p.err != nil {
		return sum, p.err
	}

	if err := writeSummary(bw, sum, opts.Format); err != nil {
		return sum, err
	}
	return sum, bw.Flush()
}

// SummaryLine is the human-readable aggregate sentence.
func SummaryLine(s engine.Summary) string {
	return fmt.Sprintf("Red Hat Insights found: Total issues: %d. Security issues: %d. Availability issues: %d. Stability issues: %d. Performance issues: %d",
		s.Total, s.Security, s.Availability, s.Stability, s.Performance)
}

func writeSummary(w io.Writer, s engine.Summary, format Format) error {
	switch format {
	case FormatJSON:
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		_, err := fmt.Fprintln(w, SummaryLine(s))
		return err
	}
}

const separator = "--------------"

type printer struct {
	w     io.Writer
	label *color.Color
	err   error
}

func newPrinter(w io.Writer, colored bool) *printer {
	label := color.New(color.FgCyan)
	if colored {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	return &printer{w: w, label: label}
}

func (p *printer) finding(f engine.Finding) {
	p.field("Rule_id:     ", f.RuleID)
	p.field("Rule type:   ", string(f.Category))
	p.field("Summary:     ", f.Summary)
	p.field("Description: ", f.Description)
	p.field("Impact:      ", f.Impact)
	p.field("Likelihood:  ", f.Likelihood)
	p.field("Total risk:  ", f.TotalRisk)
	p.field("Needs reboot: ", yesNo(f.RebootRequired))
	p.field("Publish date: ", f.PublishDate)
	p.line(separator)
}

// yesNo renders a flag as True or False.
func yesNo(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func (p *printer) field(label, value string) {
	p.line(p.label.Sprint(label) + value)
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}
