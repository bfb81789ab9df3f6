package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPipelineCompilesAddFunction(t *testing.T) {
	ctx := NewPipelineContext(`fun add(x: Int, y: Int): Int { x + y }`, "add.funxy")
	out := Default().Run(ctx)

	require.Empty(t, out.Errors, "expected a clean compile")
	require.Len(t, out.Artifacts, 1)
	require.Equal(t, "add$", out.Artifacts[0].InternalName)
	require.NotEmpty(t, out.Artifacts[0].Bytes)
}

func TestDefaultPipelineStopsAtLexicalErrors(t *testing.T) {
	ctx := NewPipelineContext(`fun add(x: Int) { "unterminated }`, "bad.funxy")
	out := Default().Run(ctx)

	require.NotEmpty(t, out.Errors)
	require.Empty(t, out.Artifacts, "a lexically broken source must never reach the emitter")
}

func TestDefaultPipelineSkipsEmissionOnTypeError(t *testing.T) {
	ctx := NewPipelineContext(`fun add(x: Int, y: Int): Int { x + "oops" }`, "mismatch.funxy")
	out := Default().Run(ctx)

	require.NotEmpty(t, out.Errors)
	require.Empty(t, out.Artifacts, "a type error must suppress emission entirely")
}

func TestPipelineRunOrderIsLexParseAnalyzeEmit(t *testing.T) {
	var order []string
	recorder := func(name string, p Processor) Processor {
		return recordingProcessor{name: name, next: p, order: &order}
	}
	pipe := New(
		recorder("lex", &LexerProcessor{}),
		recorder("parse", &ParserProcessor{}),
		recorder("analyze", &AnalyzerProcessor{}),
		recorder("emit", &EmitterProcessor{}),
	)

	ctx := NewPipelineContext(`fun id(x: Int): Int { x }`, "id.funxy")
	pipe.Run(ctx)

	require.Equal(t, []string{"lex", "parse", "analyze", "emit"}, order)
}

type recordingProcessor struct {
	name  string
	next  Processor
	order *[]string
}

func (r recordingProcessor) Process(ctx *PipelineContext) *PipelineContext {
	*r.order = append(*r.order, r.name)
	return r.next.Process(ctx)
}
