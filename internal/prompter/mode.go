package prompter

// Mode is the editor's top-level mode. Auto-save only runs during setup;
// a running prompter or a read-only view never writes.
type Mode int

const (
	ModeSetup Mode = iota
	ModeRunning
	ModeReadonly
)

func (m Mode) String() string {
	switch m {
	case ModeSetup:
		return "setup"
	case ModeRunning:
		return "running"
	case ModeReadonly:
		return "readonly"
	default:
		return "unknown"
	}
}
