package minipng

import (
	"fmt"
	"os"
)

// FileError records a failure to read or write the named file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s file '%s': %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ReadFile returns the contents of the named file.
func ReadFile(file string) ([]byte, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, &FileError{Op: "read", Path: file, Err: err}
	}
	return b, nil
}

// WriteFile writes b to the named file, creating or truncating it.
func WriteFile(file string, b []byte) error {
	if err := os.WriteFile(file, b, 0644); err != nil {
		return &FileError{Op: "write", Path: file, Err: err}
	}
	return nil
}
