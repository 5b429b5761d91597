package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/xiuxiu62/c-compiler/pkg/compiler"
)

const (
	version     = "1.0"
	maxLibPaths = 16
	maxLibs     = 16
)

// Options is the parsed command-line configuration for one run.
type Options struct {
	InputFiles []string
	OutputFile string

	CompileOnly   bool
	CreateLibrary bool
	KeepAsm       bool
	Verbose       bool
	PrintAST      bool
	PrintTokens   bool

	OptLevel  compiler.OptLevel
	DebugInfo bool
	Target    compiler.Target

	LibPaths  []string
	Libraries []string

	ShowHelp    bool
	ShowVersion bool
}

// ParseArgs interprets the command-line arguments (without the program
// name). Unknown options and unknown targets are errors.
func ParseArgs(args []string) (*Options, error) {
	opts := &Options{
		Target:   compiler.TargetX86_64,
		OptLevel: compiler.OptNone,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			opts.ShowHelp = true
		case arg == "--version":
			opts.ShowVersion = true
		case arg == "-o":
			if i+1 < len(args) {
				i++
				opts.OutputFile = args[i]
			}
		case arg == "-c":
			opts.CompileOnly = true
		case arg == "-lib":
			opts.CreateLibrary = true
		case arg == "-O0":
			opts.OptLevel = compiler.OptNone
		case arg == "-O1", arg == "-O2":
			opts.OptLevel = compiler.OptSpeed
		case arg == "-Os":
			opts.OptLevel = compiler.OptSize
		case arg == "-g":
			opts.DebugInfo = true
			opts.OptLevel = compiler.OptDebug
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
		case arg == "-S":
			opts.KeepAsm = true
		case arg == "--print-ast":
			opts.PrintAST = true
		case arg == "--print-tokens":
			opts.PrintTokens = true
		case arg == "--target":
			if i+1 < len(args) {
				i++
				target, ok := compiler.ParseTarget(args[i])
				if !ok {
					return nil, fmt.Errorf("unknown target architecture: %s", args[i])
				}
				opts.Target = target
			}
		case arg == "-L":
			if i+1 < len(args) && len(opts.LibPaths) < maxLibPaths {
				i++
				opts.LibPaths = append(opts.LibPaths, args[i])
			}
		case strings.HasPrefix(arg, "-l"):
			if len(opts.Libraries) < maxLibs {
				opts.Libraries = append(opts.Libraries, arg[2:])
			}
		case !strings.HasPrefix(arg, "-"):
			opts.InputFiles = append(opts.InputFiles, arg)
		default:
			return nil, fmt.Errorf("unknown option: %s", arg)
		}
	}

	if opts.OutputFile == "" {
		if opts.CreateLibrary {
			opts.OutputFile = "liboutput.a"
		} else {
			opts.OutputFile = "a.out"
		}
	}
	return opts, nil
}

// PrintUsage writes the option summary to w.
func PrintUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [options] <input-files>\n\n", prog)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -o <file>          Output file name")
	fmt.Fprintln(w, "  -c                 Compile only (don't link)")
	fmt.Fprintln(w, "  -lib               Create static library (.a)")
	fmt.Fprintln(w, "  -O0, -O1, -O2, -Os Optimization level (0=none, 1 and 2=speed, s=size)")
	fmt.Fprintln(w, "  -g                 Include debug information")
	fmt.Fprintln(w, "  -v, --verbose      Verbose output")
	fmt.Fprintln(w, "  -S                 Keep assembly files")
	fmt.Fprintln(w, "  --print-ast        Print abstract syntax tree")
	fmt.Fprintln(w, "  --print-tokens     Print token stream")
	fmt.Fprintln(w, "  --target <arch>    Target architecture (x86_64, arm64, riscv64)")
	fmt.Fprintln(w, "  -L <path>          Add library search path")
	fmt.Fprintln(w, "  -l<library>        Link with library")
	fmt.Fprintln(w, "  -h, --help         Show this help")
	fmt.Fprintln(w, "  --version          Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  %s main.c                    # Compile to a.out\n", prog)
	fmt.Fprintf(w, "  %s -o myapp main.c util.c    # Compile multiple files\n", prog)
	fmt.Fprintf(w, "  %s -c main.c                 # Compile to object file only\n", prog)
	fmt.Fprintf(w, "  %s -lib -o libutil.a util.c  # Create static library\n", prog)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "Modern C Compiler v%s\n", version)
	fmt.Fprintln(w, "Supports: i8, i16, i32, i64, u8, u16, u32, u64, f32, f64, bool")
	fmt.Fprintln(w, "Target architectures: x86_64 (arm64 and riscv64 are accepted by --target but not emitted)")
}
