package edit

// Rejection carries structured context about a permission denial so an
// enrichment handler (or the agent) can explain what happened.
type Rejection struct {
	Operation    string `json:"operation"`
	Reason       string `json:"reason"`
	UserAction   string `json:"user_action"`
	PreviewShown bool   `json:"preview_shown"`
}

// Outcome is the structured result of one mutation call. Invariants:
// Success == false implies Changed == false, and Changed == true implies the
// Diff was computed from the exact bytes before the write occurred and
// exactly describes it.
type Outcome struct {
	Success   bool       `json:"success"`
	Path      string     `json:"path"`
	Message   string     `json:"message"`
	Changed   bool       `json:"changed"`
	Diff      string     `json:"diff,omitempty"`
	Error     *OpError   `json:"error,omitempty"`
	Rejection *Rejection `json:"rejection,omitempty"`
}

// stripDiff removes the diff before an outcome crosses the public boundary:
// it is consumed internally for display and by enrichment handlers, but is
// not part of the external contract.
func (o Outcome) stripDiff() Outcome {
	o.Diff = ""
	return o
}
