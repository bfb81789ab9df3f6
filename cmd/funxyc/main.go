// Command funxyc is the compiler driver: it reads a source file,
// compiles it through pkg/compiler, and either writes class files or
// reports diagnostics. It is the only place in this repo allowed to
// print to stderr and call os.Exit.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/funxyc/internal/config"
	"github.com/funvibe/funxyc/internal/diagnostics"
	"github.com/funvibe/funxyc/pkg/compiler"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: funxyc <source%s> [-o outdir]\n", config.SourceFileExt)
		os.Exit(2)
	}

	sourcePath := os.Args[1]
	outDir := "."
	for i := 2; i < len(os.Args)-1; i++ {
		if os.Args[i] == "-o" {
			outDir = os.Args[i+1]
		}
	}

	if !strings.HasSuffix(sourcePath, config.SourceFileExt) {
		fmt.Fprintf(os.Stderr, "funxyc: %s is not a %s file\n", sourcePath, config.SourceFileExt)
		os.Exit(2)
	}

	var opts compiler.Options
	color := detectColor()

	if cfgPath, err := config.FindDriverConfig(filepath.Dir(sourcePath)); err == nil && cfgPath != "" {
		if cfg, err := config.LoadDriverConfig(cfgPath); err == nil {
			opts.ClassFileVersion = cfg.ClassFileVersion
			if outDir == "." {
				outDir = cfg.OutputDir
			}
			if cfg.Color != nil {
				color = *cfg.Color
			}
		}
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "funxyc: reading %s: %v\n", sourcePath, err)
		os.Exit(1)
	}

	result, err := compiler.Compile(string(source), sourcePath, outDir, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "funxyc: %v\n", err)
		os.Exit(1)
	}

	if !result.Ok() {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, renderDiagnostic(e, color))
		}
		os.Exit(1)
	}

	fmt.Printf("funxyc: compiled %s -> %s (%d class%s)\n", sourcePath, outDir, len(result.Artifacts), plural(len(result.Artifacts)))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "es"
}

// detectColor mirrors the NO_COLOR convention and isatty detection the
// teacher's own terminal builtins use, applied here to diagnostic
// output instead of language-level print calls.
func detectColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func renderDiagnostic(e *diagnostics.Error, color bool) string {
	msg := fmt.Sprintf("[%s %s] %s", e.Kind, e.Code, e.Excerpt())
	if !color {
		return msg
	}
	return ansiRed + msg + ansiReset
}
