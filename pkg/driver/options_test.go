package driver

import (
	"reflect"
	"strings"
	"testing"

	"github.com/xiuxiu62/c-compiler/pkg/compiler"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts *Options)
	}{
		{
			name: "Defaults",
			args: []string{"main.c"},
			check: func(t *testing.T, opts *Options) {
				if opts.OutputFile != "a.out" {
					t.Errorf("OutputFile = %q, want a.out", opts.OutputFile)
				}
				if opts.Target != compiler.TargetX86_64 || opts.OptLevel != compiler.OptNone {
					t.Errorf("defaults wrong: %+v", opts)
				}
				if !reflect.DeepEqual(opts.InputFiles, []string{"main.c"}) {
					t.Errorf("InputFiles = %v", opts.InputFiles)
				}
			},
		},
		{
			name: "Library Default Output",
			args: []string{"-lib", "util.c"},
			check: func(t *testing.T, opts *Options) {
				if !opts.CreateLibrary || opts.OutputFile != "liboutput.a" {
					t.Errorf("library options = %+v", opts)
				}
			},
		},
		{
			name: "Output And Multiple Inputs",
			args: []string{"-o", "myapp", "main.c", "util.c"},
			check: func(t *testing.T, opts *Options) {
				if opts.OutputFile != "myapp" || len(opts.InputFiles) != 2 {
					t.Errorf("opts = %+v", opts)
				}
			},
		},
		{
			name: "Optimization Levels",
			args: []string{"-O2", "main.c"},
			check: func(t *testing.T, opts *Options) {
				if opts.OptLevel != compiler.OptSpeed {
					t.Errorf("OptLevel = %v, want speed", opts.OptLevel)
				}
			},
		},
		{
			name: "Size Optimization",
			args: []string{"-Os", "main.c"},
			check: func(t *testing.T, opts *Options) {
				if opts.OptLevel != compiler.OptSize {
					t.Errorf("OptLevel = %v, want size", opts.OptLevel)
				}
			},
		},
		{
			name: "Debug Implies Debug Level",
			args: []string{"-O2", "-g", "main.c"},
			check: func(t *testing.T, opts *Options) {
				if !opts.DebugInfo || opts.OptLevel != compiler.OptDebug {
					t.Errorf("debug options = %+v", opts)
				}
			},
		},
		{
			name: "Compile Only And Keep Asm",
			args: []string{"-c", "-S", "-v", "main.c"},
			check: func(t *testing.T, opts *Options) {
				if !opts.CompileOnly || !opts.KeepAsm || !opts.Verbose {
					t.Errorf("flags = %+v", opts)
				}
			},
		},
		{
			name: "Target Selection",
			args: []string{"--target", "arm64", "main.c"},
			check: func(t *testing.T, opts *Options) {
				if opts.Target != compiler.TargetARM64 {
					t.Errorf("Target = %v, want arm64", opts.Target)
				}
			},
		},
		{
			name: "Library Paths And Libraries",
			args: []string{"-L", "/usr/lib", "-L", "/opt/lib", "-lm", "-lpthread", "main.c"},
			check: func(t *testing.T, opts *Options) {
				if !reflect.DeepEqual(opts.LibPaths, []string{"/usr/lib", "/opt/lib"}) {
					t.Errorf("LibPaths = %v", opts.LibPaths)
				}
				if !reflect.DeepEqual(opts.Libraries, []string{"m", "pthread"}) {
					t.Errorf("Libraries = %v", opts.Libraries)
				}
			},
		},
		{
			name: "Debug Dumps",
			args: []string{"--print-ast", "--print-tokens", "main.c"},
			check: func(t *testing.T, opts *Options) {
				if !opts.PrintAST || !opts.PrintTokens {
					t.Errorf("dump flags = %+v", opts)
				}
			},
		},
		{
			name: "Help",
			args: []string{"--help"},
			check: func(t *testing.T, opts *Options) {
				if !opts.ShowHelp {
					t.Errorf("ShowHelp not set")
				}
			},
		},
		{
			name: "Version",
			args: []string{"--version"},
			check: func(t *testing.T, opts *Options) {
				if !opts.ShowVersion {
					t.Errorf("ShowVersion not set")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("ParseArgs(%v) failed: %v", tt.args, err)
			}
			tt.check(t, opts)
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	if _, err := ParseArgs([]string{"--frobnicate", "main.c"}); err == nil {
		t.Errorf("unknown option accepted")
	}
	if _, err := ParseArgs([]string{"--target", "mips", "main.c"}); err == nil {
		t.Errorf("unknown target accepted")
	}
}

func TestParseArgsLibraryLimits(t *testing.T) {
	var args []string
	for i := 0; i < 20; i++ {
		args = append(args, "-L", "/p")
		args = append(args, "-lx")
	}
	args = append(args, "main.c")

	opts, err := ParseArgs(args)
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.LibPaths) != maxLibPaths || len(opts.Libraries) != maxLibs {
		t.Errorf("limits not enforced: %d paths, %d libs",
			len(opts.LibPaths), len(opts.Libraries))
	}
}

func TestUsageAndVersionOutput(t *testing.T) {
	var usage strings.Builder
	PrintUsage(&usage, "mcc")
	for _, want := range []string{"-o <file>", "--target", "-lib", "--print-ast"} {
		if !strings.Contains(usage.String(), want) {
			t.Errorf("usage missing %q", want)
		}
	}

	var ver strings.Builder
	PrintVersion(&ver)
	if !strings.Contains(ver.String(), version) {
		t.Errorf("version output missing %q: %q", version, ver.String())
	}
}
