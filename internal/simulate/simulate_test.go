package simulate

import "testing"

func TestOutput(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"none", "int main() { return 0; }", NoOutput},
		{"cout endl", `std::cout << "hello" << std::endl;`, "hello\n"},
		{"cout escapes", `cout << "a\tb\n";`, "a\tb\n"},
		{"cout skips expressions", `cout << "value: " << *p << endl;`, "value: \n"},
		{"cout escaped quote", `cout << "say \"hi\"";`, `say \"hi\"`},
		{"printf verbs", `printf("%d items\n", n);`, "? items\n"},
		{"printf no args", `printf("done");`, "done"},
		{"cout before printf", "printf(\"b\");\ncout << \"a\";", "ab"},
		{"multiple cout", "cout << \"x\";\ncout << \"y\" << endl;", "xy\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Output(tt.code); got != tt.want {
				t.Errorf("Output() = %q, want %q", got, tt.want)
			}
		})
	}
}
