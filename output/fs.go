package output

import (
	"io"
	"os"
)

// CreateFS is a file system that can create files for writing.
type CreateFS interface {
	// Create creates a new file for writing, truncating any existing one.
	Create(name string) (file io.WriteCloser, err error)
}

type osFS struct{}

func (osFS) Create(name string) (file io.WriteCloser, err error) {
	return os.Create(name)
}

// OS creates files on the host file system, relative to the working
// directory.
var OS CreateFS = osFS{}
