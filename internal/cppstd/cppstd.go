// Package cppstd defines the C++ standard and compiler tags accepted by the engine.
package cppstd

import (
	"errors"
	"fmt"
)

// ErrInvalidVersion is returned when a standard tag is not one of the known tags.
var ErrInvalidVersion = errors.New("invalid C++ standard tag")

// Version is a C++ standard revision. Values are ordered oldest first.
type Version int

const (
	CXX98 Version = iota
	CXX11
	CXX14
	CXX17
	CXX20
	CXX23
)

// Default is the standard assumed when a caller supplies none.
const Default = CXX17

var versionTags = [...]string{"c++98", "c++11", "c++14", "c++17", "c++20", "c++23"}

// ParseVersion resolves an exact standard tag such as "c++17".
func ParseVersion(tag string) (Version, error) {
	for i, t := range versionTags {
		if t == tag {
			return Version(i), nil
		}
	}
	return 0, fmt.Errorf("cppstd.ParseVersion: %w: %q", ErrInvalidVersion, tag)
}

// MustParseVersion is like ParseVersion but panics on an unknown tag.
// It is meant for package-level tables of known tags.
func MustParseVersion(tag string) Version {
	v, err := ParseVersion(tag)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) Valid() bool {
	return v >= CXX98 && v <= CXX23
}

func (v Version) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return versionTags[v]
}

// AtLeast reports whether v is the same revision as floor or a later one.
func (v Version) AtLeast(floor Version) bool {
	return v >= floor
}

// Versions returns every known standard, oldest first.
func Versions() []Version {
	out := make([]Version, len(versionTags))
	for i := range versionTags {
		out[i] = Version(i)
	}
	return out
}

// Through returns every standard from C++98 up to and including v.
func Through(v Version) []Version {
	if !v.Valid() {
		return nil
	}
	return Versions()[:v+1]
}

// Compiler identifies the toolchain a snippet targets. Any string is accepted;
// unrecognized compilers simply never match compiler-specific rules.
type Compiler string

const (
	GCC   Compiler = "gcc"
	Clang Compiler = "clang"
	MSVC  Compiler = "msvc"
)

// DefaultCompiler is the compiler assumed when a caller supplies none.
const DefaultCompiler = GCC

// Known reports whether c is one of the compilers with dedicated rules or defaults.
func (c Compiler) Known() bool {
	switch c {
	case GCC, Clang, MSVC:
		return true
	}
	return false
}
