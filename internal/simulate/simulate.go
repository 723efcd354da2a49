// Package simulate approximates what a snippet would print by collecting the
// string literals streamed to cout and the format strings passed to printf.
// It never runs or compiles the code.
package simulate

import (
	"regexp"
	"strings"
)

// NoOutput is returned when no cout or printf statement is found.
const NoOutput = "[simulated output] no cout or printf statements detected."

var (
	coutStmt    = regexp.MustCompile(`cout\s*<<\s*([^;]+);`)
	stringLit   = regexp.MustCompile(`"[^"\\]*(?:\\.[^"\\]*)*"`)
	printfCall  = regexp.MustCompile(`printf\s*\(\s*"([^"\\]*(?:\\.[^"\\]*)*)"\s*[^)]*\);`)
	formatVerb  = regexp.MustCompile(`%[a-zA-Z]`)
	escapeChars = strings.NewReplacer(`\n`, "\n", `\t`, "\t")
)

// Output returns the simulated program output. All cout output comes first,
// followed by all printf output, each in source order.
func Output(code string) string {
	var b strings.Builder

	for _, m := range coutStmt.FindAllStringSubmatch(code, -1) {
		expr := m[1]
		for _, lit := range stringLit.FindAllString(expr, -1) {
			b.WriteString(escapeChars.Replace(lit[1 : len(lit)-1]))
		}
		if strings.Contains(expr, "endl") {
			b.WriteString("\n")
		}
	}

	for _, m := range printfCall.FindAllStringSubmatch(code, -1) {
		format := formatVerb.ReplaceAllString(m[1], "?")
		b.WriteString(strings.ReplaceAll(format, `\n`, "\n"))
	}

	if b.Len() == 0 {
		return NoOutput
	}
	return b.String()
}
