package pipeline

import (
	"github.com/funvibe/funxyc/internal/analyzer"
	"github.com/funvibe/funxyc/internal/diagnostics"
	"github.com/funvibe/funxyc/internal/emitter"
	"github.com/funvibe/funxyc/internal/lexer"
	"github.com/funvibe/funxyc/internal/parser"
	"github.com/funvibe/funxyc/internal/token"
)

// emptyToken builds a zero-position token carrying only the file path,
// for diagnostics raised between stages rather than at a specific
// source location.
func emptyToken(ctx *PipelineContext) token.Token {
	return token.Token{File: ctx.FilePath}
}

// LexerProcessor turns ctx.Source into a token stream.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *PipelineContext) *PipelineContext {
	l := lexer.New(ctx.Source, ctx.FilePath)
	ctx.TokenStream = l.Tokens()
	ctx.Errors = append(ctx.Errors, l.Errors...)
	return ctx
}

// ParserProcessor turns ctx.TokenStream into ctx.AstRoot.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.TokenStream == nil {
		ctx.Errors = append(ctx.Errors, diagnostics.New(diagnostics.Syntactic, "P000", emptyToken(ctx), "parser: token stream is nil"))
		return ctx
	}
	p := parser.New(ctx.TokenStream, ctx.FilePath)
	ctx.AstRoot = p.ParseProgram()
	ctx.Errors = append(ctx.Errors, p.Errors...)
	return ctx
}

// AnalyzerProcessor runs the two-pass type check over ctx.AstRoot and
// exports the resulting symbol table and type map.
type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	a := analyzer.New()
	a.Collect(ctx.AstRoot)
	a.Check(ctx.AstRoot)

	ctx.SymbolTable = a.Table
	ctx.TypeMap = a.TypeMap
	ctx.Errors = append(ctx.Errors, a.Errors...)
	return ctx
}

// EmitterProcessor lowers the checked AST to class-file artifacts. It
// never runs over a program the analyzer already rejected: a program
// with unresolved types has nothing safe to emit.
type EmitterProcessor struct{}

func (ep *EmitterProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	e := emitter.New(ctx.SymbolTable, ctx.TypeMap)
	e.ClassFileVersion = ctx.ClassFileVersion
	artifacts, err := e.Emit(ctx.AstRoot)
	if err != nil {
		ctx.Errors = append(ctx.Errors, diagnostics.New(diagnostics.Compile, "E000", emptyToken(ctx), err.Error()))
		return ctx
	}
	ctx.Artifacts = artifacts
	return ctx
}

// Default builds the standard front-to-back pipeline: lex, parse,
// analyze, emit.
func Default() *Pipeline {
	return New(&LexerProcessor{}, &ParserProcessor{}, &AnalyzerProcessor{}, &EmitterProcessor{})
}
