// Package pipeline wires the compiler's stages (lexer, parser, analyzer,
// emitter) into one ordered run over a shared context, following
// spec.md §3.7's front-to-back compilation flow.
package pipeline

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/diagnostics"
	"github.com/funvibe/funxyc/internal/emitter"
	"github.com/funvibe/funxyc/internal/symbols"
	"github.com/funvibe/funxyc/internal/token"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// PipelineContext carries one compilation unit through every stage.
// Each Processor reads what earlier stages left and writes what later
// stages need; nothing is threaded through return values beyond ctx
// itself.
type PipelineContext struct {
	FilePath string
	Source   string

	// ClassFileVersion overrides the emitter's target class-file major
	// version for this compile. Zero means the emitter's own default.
	ClassFileVersion uint16

	TokenStream []token.Token
	AstRoot     *ast.Program
	SymbolTable *symbols.Table
	TypeMap     map[ast.Expression]typesystem.Type
	Artifacts   []emitter.Artifact

	Errors []*diagnostics.Error
}

// NewPipelineContext starts a fresh context for one source file.
func NewPipelineContext(source, filePath string) *PipelineContext {
	return &PipelineContext{Source: source, FilePath: filePath}
}

// Processor is one pipeline stage. It receives the context produced by
// the previous stage and returns the context to hand to the next one;
// implementations mutate ctx in place and return it unchanged.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}
