package engine

// Finding is one evaluated rule result from the Insights report
type Finding struct {
	RuleID         string   `json:"rule_id" yaml:"rule_id"`
	Category       Category `json:"category" yaml:"category"` // Security / Performance / Stability / Availability
	Summary        string   `json:"summary" yaml:"summary"`
	Description    string   `json:"description" yaml:"description"`
	Impact         string   `json:"impact" yaml:"impact"`
	Likelihood     string   `json:"likelihood" yaml:"likelihood"`
	TotalRisk      string   `json:"total_risk" yaml:"total_risk"`
	RebootRequired bool     `json:"reboot_required" yaml:"reboot_required"`
	PublishDate    string   `json:"publish_date" yaml:"publish_date"`
}
