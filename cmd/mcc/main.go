package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xiuxiu62/c-compiler/pkg/driver"
)

func main() {
	prog := filepath.Base(os.Args[0])

	if len(os.Args) < 2 {
		driver.PrintUsage(os.Stdout, prog)
		os.Exit(1)
	}

	opts, err := driver.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if opts.ShowHelp {
		driver.PrintUsage(os.Stdout, prog)
		return
	}
	if opts.ShowVersion {
		driver.PrintVersion(os.Stdout)
		return
	}

	os.Exit(driver.Run(opts, os.Stdout, os.Stderr))
}
