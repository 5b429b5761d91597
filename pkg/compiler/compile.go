package compiler

import (
	"fmt"
	"io"
)

// Compile runs the whole pipeline over one source unit and returns the
// generated assembly text. Parse and code generation errors are written to
// errw and reported through the returned error; the unit fails as a whole
// on any error.
func Compile(src string, target Target, opt OptLevel, errw io.Writer) (string, error) {
	if target != TargetX86_64 {
		return "", fmt.Errorf("target %s is not supported yet (only x86_64 emission is implemented)", target)
	}

	arena := NewArena()
	lex := NewLexer(src, arena.Pool())

	parser := NewParser(lex, arena)
	if errw != nil {
		parser.SetErrorWriter(errw)
	}
	ast := parser.Parse()
	if count := parser.ErrorCount(); count > 0 {
		return "", fmt.Errorf("%d parse error(s)", count)
	}

	if opt == OptSpeed || opt == OptSize {
		EliminateDeadFunctions(ast)
	}

	gen := NewCodeGen(target, opt, NewSymbolTable())
	if errw != nil {
		gen.SetErrorWriter(errw)
	}
	asm := gen.Generate(ast)
	if count := gen.ErrorCount(); count > 0 {
		return "", fmt.Errorf("%d code generation error(s)", count)
	}
	return asm, nil
}

// ParseSource lexes and parses src, returning the AST, the arena that owns
// it, and the parse error count. The driver parses through it so that it
// can print the debug dumps before running the later stages itself.
func ParseSource(src string, errw io.Writer) (*Node, *Arena, int) {
	arena := NewArena()
	parser := NewParser(NewLexer(src, arena.Pool()), arena)
	if errw != nil {
		parser.SetErrorWriter(errw)
	}
	ast := parser.Parse()
	return ast, arena, parser.ErrorCount()
}
