package model

// CheckStatus is the outcome of a single quality check.
type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusWarn    CheckStatus = "warn"
	StatusFail    CheckStatus = "fail"
	StatusPending CheckStatus = "pending"
)

// QualityCheck is one named pass/warn/fail test over a built FactSheet.
type QualityCheck struct {
	Name   string      `json:"name"`
	Status CheckStatus `json:"status"`
	Detail string      `json:"detail"`
}

// Quality holds the check battery results and the aggregate status.
type Quality struct {
	ValidationStatus CheckStatus    `json:"validationStatus"`
	Checks           []QualityCheck `json:"checks"`
}

// AggregateStatus reduces a check list to the worst status seen:
// fail beats warn beats pass. Independent of check order.
func AggregateStatus(checks []QualityCheck) CheckStatus {
	status := StatusPass
	for _, c := range checks {
		switch c.Status {
		case StatusFail:
			return StatusFail
		case StatusWarn:
			status = StatusWarn
		}
	}
	return status
}
