package domain

import "strconv"

// OneDecimal is a float64 that always serializes to JSON with exactly one fractional
// digit (e.g. 40 -> "40.0"), as the output contract's score fields require.
type OneDecimal float64

// MarshalJSON implements json.Marshaler.
func (d OneDecimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(d), 'f', 1, 64)), nil
}

// Report is the stable serialization contract described in the specification's
// external-interfaces section. Field names and nesting are fixed; no additional
// top-level fields are permitted.
type Report struct {
	SuspiciousAccounts []SuspiciousAccount `json:"suspicious_accounts"`
	FraudRings         []ReportRing        `json:"fraud_rings"`
	Summary            Summary             `json:"summary"`
}

// SuspiciousAccount is one entry of Report.SuspiciousAccounts.
type SuspiciousAccount struct {
	AccountID        string     `json:"account_id"`
	SuspicionScore   OneDecimal `json:"suspicion_score"`
	DetectedPatterns []string   `json:"detected_patterns"`
	RingID           *string    `json:"ring_id"`
}

// ReportRing is one entry of Report.FraudRings.
type ReportRing struct {
	RingID         string     `json:"ring_id"`
	MemberAccounts []string   `json:"member_accounts"`
	PatternType    string     `json:"pattern_type"`
	RiskScore      OneDecimal `json:"risk_score"`
}

// Summary is Report.Summary.
type Summary struct {
	TotalAccountsAnalyzed     int        `json:"total_accounts_analyzed"`
	SuspiciousAccountsFlagged int        `json:"suspicious_accounts_flagged"`
	FraudRingsDetected        int        `json:"fraud_rings_detected"`
	ProcessingTimeSeconds     OneDecimal `json:"processing_time_seconds"`
}
