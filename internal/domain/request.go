package domain

// Verb identifies the file operation being performed. It is a closed
// enumeration consumed by the strategy selector's decision table.
type Verb int

const (
	VerbMove Verb = iota
	VerbCopy
	VerbRename
	VerbRemove
	VerbBackup
)

func (v Verb) String() string {
	switch v {
	case VerbMove:
		return "move"
	case VerbCopy:
		return "copy"
	case VerbRename:
		return "rename"
	case VerbRemove:
		return "remove"
	case VerbBackup:
		return "backup"
	default:
		return "unknown"
	}
}

// NeedsDestinationDir reports whether the verb requires a target directory.
// Rename takes a plain new name, Remove and Backup take no destination.
func (v Verb) NeedsDestinationDir() bool {
	return v == VerbMove || v == VerbCopy
}

type Options struct {
	AutoMkdir bool
	Force     bool
	Verbose   bool
	NoClobber bool
}

// OperationRequest is the fully validated input of one engine invocation.
// Sources are absolute paths. Destination is a directory path for Move/Copy,
// a plain new name for Rename, and empty for Remove/Backup.
type OperationRequest struct {
	Verb        Verb
	Sources     []string
	Destination string
	Options     Options
}
