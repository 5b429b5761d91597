package compiler

import (
	"io"
	"strings"
	"testing"
)

func TestCompileEndToEnd(t *testing.T) {
	asm, err := Compile(`
module demo;
import math;

i32 square(i32 n) { return n * n; }

i32 main() {
    i32 x = 6;
    return square(x) + 4;
}`, TargetX86_64, OptNone, io.Discard)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	for _, want := range []string{"square:", "main:", "_start:", "call square", "imul %rbx, %rax"} {
		if !strings.Contains(asm, want) {
			t.Errorf("assembly missing %q", want)
		}
	}
}

func TestCompileParseErrorFailsUnit(t *testing.T) {
	var sb strings.Builder
	_, err := Compile("i32 main() { return 1 }", TargetX86_64, OptNone, &sb)
	if err == nil {
		t.Fatalf("malformed unit compiled cleanly")
	}
	if !strings.Contains(err.Error(), "parse error") {
		t.Errorf("error = %v, want a parse error", err)
	}
	if !strings.Contains(sb.String(), "Error at") {
		t.Errorf("diagnostics = %q", sb.String())
	}
}

func TestCompileRejectsUnimplementedTargets(t *testing.T) {
	for _, target := range []Target{TargetARM64, TargetRISCV64} {
		_, err := Compile("i32 main() { return 0; }", target, OptNone, io.Discard)
		if err == nil {
			t.Errorf("target %s compiled without error", target)
		}
	}
}

func TestCompilePartialASTOnError(t *testing.T) {
	ast, _, errCount := ParseSource("i32 f() { return 1 }", io.Discard)
	if errCount == 0 {
		t.Fatalf("expected parse errors")
	}
	if ast == nil || ast.Kind != NodeProgram {
		t.Fatalf("no partial AST returned")
	}
	if FindByValue(ast, "f") == nil {
		t.Errorf("partial AST lost the function that parsed before the error")
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name string
		want Target
		ok   bool
	}{
		{"x86_64", TargetX86_64, true},
		{"arm64", TargetARM64, true},
		{"riscv64", TargetRISCV64, true},
		{"mips", TargetX86_64, false},
	}
	for _, tt := range tests {
		got, ok := ParseTarget(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTarget(%q) = %v, %v", tt.name, got, ok)
		}
	}
}
