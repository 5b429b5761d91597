package driver

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/xiuxiu62/c-compiler/pkg/compiler"
)

// changeExtension swaps the extension of a file path ("main.c" -> "main.s").
func changeExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CompileFile compiles one source file to an object file: read, lex,
// parse, generate assembly, write X.s, then run the external assembler.
func CompileFile(path string, opts *Options, stdout, stderr io.Writer) error {
	if !fileExists(path) {
		return fmt.Errorf("file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read file %s: %w", path, err)
	}
	src := string(data)

	if opts.Verbose {
		fmt.Fprintf(stdout, "Read %d bytes from %s\n", len(src), path)
	}

	if opts.PrintTokens {
		fmt.Fprintf(stdout, "Tokens for %s:\n", path)
		compiler.DumpTokens(stdout, src)
		fmt.Fprintln(stdout)
	}

	ast, _, errCount := compiler.ParseSource(src, stderr)
	if errCount > 0 {
		return fmt.Errorf("parse error in %s (%d errors)", path, errCount)
	}

	if opts.PrintAST {
		fmt.Fprintf(stdout, "AST for %s:\n", path)
		compiler.Print(stdout, ast, 0)
		fmt.Fprintln(stdout)
	}

	if opts.Target != compiler.TargetX86_64 {
		return fmt.Errorf("target %s is not supported yet (only x86_64 emission is implemented)", opts.Target)
	}

	if opts.OptLevel == compiler.OptSpeed || opts.OptLevel == compiler.OptSize {
		compiler.EliminateDeadFunctions(ast)
	}

	gen := compiler.NewCodeGen(opts.Target, opts.OptLevel, compiler.NewSymbolTable())
	gen.SetErrorWriter(stderr)
	asm := gen.Generate(ast)
	if count := gen.ErrorCount(); count > 0 {
		return fmt.Errorf("code generation error in %s (%d errors)", path, count)
	}

	asmFile := changeExtension(path, ".s")
	if err := os.WriteFile(asmFile, []byte(asm), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", asmFile, err)
	}
	if opts.Verbose {
		fmt.Fprintf(stdout, "Generated assembly: %s\n", asmFile)
	}

	objFile := changeExtension(path, ".o")
	if err := Assemble(asmFile, objFile); err != nil {
		return err
	}
	if opts.Verbose {
		fmt.Fprintf(stdout, "Generated object file: %s\n", objFile)
	}
	return nil
}

// Assemble invokes the system assembler. Its own diagnostics are
// suppressed, matching the default configuration.
func Assemble(asmFile, objFile string) error {
	cmd := exec.Command("as", "-64", asmFile, "-o", objFile)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("assembly failed for %s", asmFile)
	}
	return nil
}

// Link invokes the system linker over the object files with the configured
// search paths and libraries.
func Link(objFiles []string, output string, opts *Options, stdout io.Writer) error {
	if len(objFiles) == 0 {
		return fmt.Errorf("no object files to link")
	}

	args := append([]string{}, objFiles...)
	for _, path := range opts.LibPaths {
		args = append(args, "-L"+path)
	}
	for _, lib := range opts.Libraries {
		args = append(args, "-l"+lib)
	}
	args = append(args, "-o", output)

	if opts.Verbose {
		fmt.Fprintf(stdout, "Link command: ld %s\n", strings.Join(args, " "))
	}

	cmd := exec.Command("ld", args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("linking failed")
	}
	return nil
}

// CreateStaticLibrary archives the object files with ar rcs.
func CreateStaticLibrary(objFiles []string, libFile string) error {
	if len(objFiles) == 0 {
		return fmt.Errorf("no object files for library")
	}
	args := append([]string{"rcs", libFile}, objFiles...)
	cmd := exec.Command("ar", args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("library creation failed")
	}
	return nil
}

func cleanupTempFiles(paths []string) {
	for _, path := range paths {
		if fileExists(path) {
			os.Remove(path)
		}
	}
}

// Run drives a whole compilation: compile every input, then link or
// archive, then clean up intermediates. It returns the process exit code.
func Run(opts *Options, stdout, stderr io.Writer) int {
	if len(opts.InputFiles) == 0 {
		fmt.Fprintln(stderr, "Error: No input files specified")
		return 1
	}

	fmt.Fprintf(stdout, "Input files: %d\n", len(opts.InputFiles))
	for _, file := range opts.InputFiles {
		fmt.Fprintf(stdout, "  %s\n", file)
	}
	fmt.Fprintf(stdout, "Output: %s\n", opts.OutputFile)
	fmt.Fprintf(stdout, "Target: %s, Optimization: %s\n", opts.Target, opts.OptLevel)

	var objFiles, tempFiles []string
	success := true

	for _, input := range opts.InputFiles {
		fmt.Fprintf(stdout, "Compiling %s...\n", input)

		if err := CompileFile(input, opts, stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "Failed to compile %s: %v\n", input, err)
			success = false
			break
		}

		objFile := changeExtension(input, ".o")
		objFiles = append(objFiles, objFile)
		if !opts.CompileOnly {
			tempFiles = append(tempFiles, objFile)
		}
		if !opts.KeepAsm {
			tempFiles = append(tempFiles, changeExtension(input, ".s"))
		}

		fmt.Fprintf(stdout, "Generated %s\n", objFile)
	}

	if success && !opts.CompileOnly {
		if opts.CreateLibrary {
			fmt.Fprintf(stdout, "Creating library %s...\n", opts.OutputFile)
			if err := CreateStaticLibrary(objFiles, opts.OutputFile); err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
				success = false
			}
		} else {
			fmt.Fprintf(stdout, "Linking %s...\n", opts.OutputFile)
			if err := Link(objFiles, opts.OutputFile, opts, stdout); err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
				success = false
			}
		}
	}

	cleanupTempFiles(tempFiles)

	if !success {
		fmt.Fprintln(stdout, "Compilation failed!")
		return 1
	}
	fmt.Fprintln(stdout, "Compilation completed successfully!")
	return 0
}
