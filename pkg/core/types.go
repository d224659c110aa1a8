package core

// Kind is the marker keyword that produced a finding
type Kind string

const (
	KindTodo  Kind = "TODO"
	KindFixme Kind = "FIXME"
)

// Finding represents a single TODO or FIXME marker found in a file
type Finding struct {
	Kind     Kind   `json:"type" yaml:"type"`
	Text     string `json:"text" yaml:"text"`
	FilePath string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
}

// Config represents the command-line configuration of a scan
type Config struct {
	Dir    string
	Output string

	// CreateIssues enables publishing findings as GitHub issues
	CreateIssues     bool
	IssueTitlePrefix string
}

// ScanError is returned when listing a directory, statting an entry or reading
// a file fails. Any ScanError aborts the whole scan.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
