package aliaser

// Phase is the orchestrator's position in a sync cycle.
type Phase int

const (
	Idle Phase = iota
	Validating
	Scanning
	Patching
	Done
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Scanning:
		return "scanning"
	case Patching:
		return "patching"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
