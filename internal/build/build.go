package build

// Info describes the binary that is currently running.
type Info struct {
	Version string
	Commit  string
	Date    string
}

type Key struct{}

var InfoKey = Key{}
