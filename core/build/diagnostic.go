package build

// Diagnostic kinds.
const (
	DiagUnresolvedTeacher = "unresolved_teacher"
	DiagBadSlot           = "bad_slot"
)

// Diagnostic is a non-fatal finding surfaced to the operator.
type Diagnostic struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
}

// Diagnose records a finding on the run.
func (r *Run) Diagnose(kind, subject, detail string) {
	r.diags = append(r.diags, Diagnostic{Kind: kind, Subject: subject, Detail: detail})
}

// Diagnostics returns the findings in the order they were recorded.
func (r *Run) Diagnostics() []Diagnostic { return r.diags }
