package pipeline

// Pipeline is an ordered sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run drives ctx through every stage in order. Stages continue past an
// error on the assumption that later stages guard themselves (e.g. the
// emitter skips entirely once the analyzer has recorded any error), so
// a caller always sees every diagnostic a run could produce rather than
// only the first one.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
