package wrappers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/user/getinsights/pkg/engine"
)

// InsightsResult is one element of the `insights-client --show-result` array.
type InsightsResult struct {
	Rule *InsightsRule `json:"rule"`
}

// InsightsRule holds the rule fields of a result record that end up in a Finding.
type InsightsRule struct {
	RuleID   string `json:"rule_id"`
	Category struct {
		Name string `json:"name"`
	} `json:"category"`
	Summary string `json:"summary"`
	Generic string `json:"generic"`
	Impact  struct {
		Name string `json:"name"`
	} `json:"impact"`
	Likelihood     Scalar `json:"likelihood"`
	TotalRisk      Scalar `json:"total_risk"`
	RebootRequired bool   `json:"reboot_required"`
	PublishDate    string `json:"publish_date"`
}

// Scalar accepts a JSON string, number, boolean or null and keeps its text form.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = Scalar(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*s = Scalar(normalizeNumber(n))
	}
	return nil
}

func normalizeNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

// ErrEmptyResult is returned for a result file with no content.
var ErrEmptyResult = errors.New("result is empty")

// ParseResult decodes the client's JSON array into findings, preserving order.
func ParseResult(data []byte) ([]engine.Finding, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyResult
	}

	var results *[]*InsightsResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("malformed result: %w", err)
	}
	if results == nil {
		return nil, errors.New("malformed result: expected a JSON array, got null")
	}

	findings := make([]engine.Finding, 0, len(*results))
	for i, r := range *results {
		switch {
		case r == nil || r.Rule == nil:
			return nil, fmt.Errorf("malformed result: record %d has no rule", i)
		case r.Rule.RuleID == "":
			return nil, fmt.Errorf("malformed result: record %d has no rule_id", i)
		case r.Rule.Category.Name == "":
			return nil, fmt.Errorf("malformed result: record %d (%s) has no category", i, r.Rule.RuleID)
		}
		findings = append(findings, engine.Finding{
			RuleID:         r.Rule.RuleID,
			Category:       engine.Category(r.Rule.Category.Name),
			Summary:        r.Rule.Summary,
			Description:    r.Rule.Generic,
			Impact:         r.Rule.Impact.Name,
			Likelihood:     string(r.Rule.Likelihood),
			TotalRisk:      string(r.Rule.TotalRisk),
			RebootRequired: r.Rule.RebootRequired,
			PublishDate:    r.Rule.PublishDate,
		})
	}
	return findings, nil
}

// LoadResult reads and parses a result file
func LoadResult(path string) ([]engine.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseResult(data)
}
