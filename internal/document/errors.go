package document

// Reasons an import can be refused.
const (
	ReasonParse         = "parse failure"
	ReasonMissingRoot   = "missing root"
	ReasonMultipleRoots = "multiple roots"
	ReasonInvalidFrame  = "invalid frame"
	ReasonInvalidNode   = "invalid node"
	ReasonDuplicateID   = "duplicate id"
)

// ImportError is returned when document text cannot be turned into a board.
// The board is never modified when an import fails.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return "import: " + e.Reason + ": " + e.Err.Error()
	}
	return "import: " + e.Reason
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
