// Package compiler is the stable, embeddable entry point into the
// pipeline: one function call in, a set of class-file artifacts (or
// diagnostics) out. cmd/funxyc is a thin wrapper around this package;
// anything that wants to compile funxy-jvmc source without shelling
// out to the CLI should depend on this package instead of reaching
// into internal/pipeline directly.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/funvibe/funxyc/internal/diagnostics"
	"github.com/funvibe/funxyc/internal/emitter"
	"github.com/funvibe/funxyc/internal/pipeline"
)

// Options configures one compile. Nothing here changes compilation
// semantics (spec.md §6's "no environment variables/flags influence
// compilation semantics" extends to this struct too) beyond the
// class-file version targeted.
type Options struct {
	// ClassFileVersion is the target class-file major version. Zero
	// means config.DefaultClassFileMajorVersion.
	ClassFileVersion int
}

// Result is everything one compile produced.
type Result struct {
	Artifacts []emitter.Artifact
	Errors    []*diagnostics.Error
}

// Ok reports whether the compile produced no diagnostics at all.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

// Compile runs the full pipeline over one source file's contents and
// writes every resulting artifact under outDir (outDir may be empty: a
// dry-run compile that only wants Result.Errors/Result.Ok). A non-nil
// error return is reserved for conditions the pipeline itself can't
// turn into a diagnostic (a panic recovered at this boundary, or a
// filesystem failure while writing artifacts); anything the pipeline
// could attribute to the source comes back in Result.Errors instead,
// following the "a mid-program failure never leaves a partially-written
// class" discipline documented on the emitter.
func Compile(source, file, outDir string, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compiler: internal compiler error: %v", r)
		}
	}()

	ctx := pipeline.NewPipelineContext(source, file)
	ctx.ClassFileVersion = uint16(opts.ClassFileVersion)
	out := pipeline.Default().Run(ctx)

	result = &Result{Artifacts: out.Artifacts, Errors: out.Errors}
	if outDir != "" && result.Ok() {
		if err := WriteArtifacts(result.Artifacts, outDir); err != nil {
			return result, err
		}
	}
	return result, nil
}

// WriteArtifacts writes each artifact to outDir/<InternalName>.class,
// creating the directory tree an internal (slash-separated) name
// implies.
func WriteArtifacts(artifacts []emitter.Artifact, outDir string) error {
	if outDir == "" {
		outDir = "."
	}
	for _, a := range artifacts {
		path := filepath.Join(outDir, filepath.FromSlash(a.InternalName)+".class")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("compiler: creating output directory for %s: %w", a.InternalName, err)
		}
		if err := os.WriteFile(path, a.Bytes, 0o644); err != nil {
			return fmt.Errorf("compiler: writing %s: %w", path, err)
		}
	}
	return nil
}
