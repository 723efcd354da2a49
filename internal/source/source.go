// Package source handles reading and hashing C++ snippets.
package source

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Snippet holds loaded source text with its metadata.
type Snippet struct {
	FilePath string
	Raw      string
	Lines    []string
	Hash     string
}

// Load reads a snippet from path, or from standard input when path is "-".
func Load(path string) (*Snippet, error) {
	if path == Stdin {
		s, err := Read("<stdin>", os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("source.Load: %w", err)
		}
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source.Load: %w", err)
	}
	return FromBytes(path, data), nil
}

// Read consumes r fully and names the snippet after name.
func Read(name string, r io.Reader) (*Snippet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source.Read: %w", err)
	}
	return FromBytes(name, data), nil
}

// FromBytes wraps in-memory source text.
func FromBytes(name string, data []byte) *Snippet {
	raw := string(data)
	h := sha256.Sum256(data)
	return &Snippet{
		FilePath: name,
		Raw:      raw,
		Lines:    strings.Split(raw, "\n"),
		Hash:     fmt.Sprintf("sha256:%x", h),
	}
}
