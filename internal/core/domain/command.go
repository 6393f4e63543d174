package domain

import "strings"

// Command is a single external process invocation.
type Command struct {
	// Name is the executable, either a bare name resolved against PATH or a path.
	Name string
	// Args are the arguments passed after the executable.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds the complete environment for the process in "KEY=VALUE" format.
	Env []string
}

// String renders the command line for logs and error metadata.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}
