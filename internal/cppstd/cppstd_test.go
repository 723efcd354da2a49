package cppstd

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		tag  string
		want Version
	}{
		{"c++98", CXX98},
		{"c++11", CXX11},
		{"c++14", CXX14},
		{"c++17", CXX17},
		{"c++20", CXX20},
		{"c++23", CXX23},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseVersion(tt.tag)
			if err != nil {
				t.Fatalf("ParseVersion(%q): %v", tt.tag, err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.tag, got, tt.want)
			}
			if got.String() != tt.tag {
				t.Errorf("String() = %q, want %q", got.String(), tt.tag)
			}
		})
	}
}

func TestParseVersionUnknown(t *testing.T) {
	for _, tag := range []string{"c++26", "C++17", "c++0x", "", "17"} {
		t.Run(tag, func(t *testing.T) {
			_, err := ParseVersion(tag)
			if !errors.Is(err, ErrInvalidVersion) {
				t.Errorf("ParseVersion(%q) error = %v, want ErrInvalidVersion", tag, err)
			}
		})
	}
}

func TestAtLeast(t *testing.T) {
	if !CXX11.AtLeast(CXX11) {
		t.Error("c++11 should be at least c++11")
	}
	if !CXX23.AtLeast(CXX11) {
		t.Error("c++23 should be at least c++11")
	}
	if CXX98.AtLeast(CXX11) {
		t.Error("c++98 should not be at least c++11")
	}
}

func TestThrough(t *testing.T) {
	got := Through(CXX14)
	want := []Version{CXX98, CXX11, CXX14}
	if len(got) != len(want) {
		t.Fatalf("Through(c++14) returned %d versions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Through(c++14)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if Through(Version(42)) != nil {
		t.Error("Through of an invalid version should be nil")
	}
}

func TestVersionStringInvalid(t *testing.T) {
	if got := Version(-1).String(); got != "Version(-1)" {
		t.Errorf("String() = %q", got)
	}
}

func TestCompilerKnown(t *testing.T) {
	for _, c := range []Compiler{GCC, Clang, MSVC} {
		if !c.Known() {
			t.Errorf("expected %q to be known", c)
		}
	}
	if Compiler("icc").Known() {
		t.Error("expected icc to be unknown")
	}
}
