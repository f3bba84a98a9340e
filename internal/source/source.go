package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacob-alan-henning/bfitui/internal/bf"
)

// ErrUnreadable matches every error raised while fetching program text.
var ErrUnreadable = errors.New("program source unreadable")

type Source struct {
	Name string
	Text []byte
}

type SourceError struct {
	Name string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("unable to read %q: %v", e.Name, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrUnreadable, e.Err}
}

func Open(filename string) (Source, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Source{Name: filename}, &SourceError{Name: filename, Err: err}
	}
	defer file.Close()

	return Read(filename, file)
}

func Read(name string, r io.Reader) (Source, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return Source{Name: name}, &SourceError{Name: name, Err: err}
	}
	return Source{Name: name, Text: text}, nil
}

// Program parses the source into an executable program.
func (s Source) Program() (*bf.Program, error) {
	prog, err := bf.Parse(s.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	return prog, nil
}

// Load opens filename and parses it.
func Load(filename string) (*bf.Program, error) {
	src, err := Open(filename)
	if err != nil {
		return nil, err
	}
	return src.Program()
}
