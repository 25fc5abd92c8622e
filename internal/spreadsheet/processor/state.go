package processor

// State is where a submission got to in Writer.Submit.
type State int

const (
	Idle State = iota
	Validating
	KeyResolved
	TableDuplicated
	FieldsWritten
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Validating:
		return "Validating"
	case KeyResolved:
		return "KeyResolved"
	case TableDuplicated:
		return "TableDuplicated"
	case FieldsWritten:
		return "FieldsWritten"
	case Committed:
		return "Committed"
	case RolledBack:
		return "RolledBack"
	default:
		return "Unknown"
	}
}

// Terminal returns true for the two states a submission ends in once its
// region has been created.
func (s State) Terminal() bool {
	return s == Committed || s == RolledBack
}
