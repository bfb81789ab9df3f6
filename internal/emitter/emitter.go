// Package emitter lowers a type-checked AST into one or more class-file
// artifacts, following spec.md §4.6's per-entity emission rules. It
// depends on the analyzer having already run: every expression must
// already carry an inferred type in the supplied TypeMap, and every
// top-level name must already be registered in the supplied symbol
// table. The emitter itself performs no type checking.
package emitter

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/config"
	"github.com/funvibe/funxyc/internal/symbols"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// state is the per-compilation-unit emitter state machine of spec.md
// §4.6: open, emitting a top-level entity, emitting a class/trait/
// object body, emitting a method body, or closed. No artifact is
// handed back to the caller before the whole program reaches closed,
// so a mid-program failure never leaves a partially-written class on
// disk.
type state int

const (
	stateOpen state = iota
	stateTopLevel
	stateEntityBody
	stateMethodBody
	stateClosed
)

// Artifact is one emitted class file: its fully-qualified internal
// name and serialized bytes.
type Artifact struct {
	InternalName string
	Bytes        []byte
}

// Emitter walks a checked Program and produces its class-file
// artifacts. Construct a fresh Emitter per compile, mirroring the
// analyzer's own per-compile-invocation discipline.
type Emitter struct {
	Table   *symbols.Table
	TypeMap map[ast.Expression]typesystem.Type

	// ClassFileVersion is the target class-file major version every
	// emitted artifact carries. Defaults to
	// config.DefaultClassFileMajorVersion when left at zero; callers
	// that need a newer target (still invokedynamic-capable) set it
	// explicitly, e.g. from a driver's funxyc.yaml.
	ClassFileVersion uint16

	state     state
	artifacts []Artifact
	lambdaSeq int
}

func New(table *symbols.Table, typeMap map[ast.Expression]typesystem.Type) *Emitter {
	return &Emitter{Table: table, TypeMap: typeMap, state: stateOpen}
}

// Emit lowers every declaration in prog to its class-file artifact(s).
// On any emission error nothing is returned: either the whole program
// emits cleanly or nothing does.
func (e *Emitter) Emit(prog *ast.Program) ([]Artifact, error) {
	if e.state != stateOpen {
		return nil, fmt.Errorf("emitter: Emit called out of sequence, state=%d", e.state)
	}
	for _, decl := range prog.Declarations {
		e.state = stateTopLevel
		if err := e.emitDeclaration(decl); err != nil {
			e.state = stateClosed
			return nil, err
		}
	}
	e.state = stateClosed
	return e.artifacts, nil
}

func (e *Emitter) emitDeclaration(decl ast.Declaration) error {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		return e.emitFunction(d)
	case *ast.ClassDeclaration:
		return e.emitClass(d)
	case *ast.TraitDeclaration:
		return e.emitTrait(d)
	case *ast.ObjectDeclaration:
		return e.emitObject(d)
	case *ast.ExtensionDeclaration:
		return e.emitExtension(d)
	default:
		return fmt.Errorf("emitter: unknown top-level declaration %T", decl)
	}
}

func (e *Emitter) addArtifact(internalName string, bytes []byte) {
	e.artifacts = append(e.artifacts, Artifact{InternalName: internalName, Bytes: bytes})
}

// nextLambdaName names a synthetic lambda-body method. The sequence
// number keeps names stable and readable within one compile; the uuid
// suffix is what actually guarantees global uniqueness across separate
// compiles that might otherwise land the same owner+sequence pair in
// the same output directory.
func (e *Emitter) nextLambdaName(owner string) string {
	e.lambdaSeq++
	return fmt.Sprintf("lambda$%s$%d$%s", owner, e.lambdaSeq, uuid.NewString()[:8])
}

func (e *Emitter) classMajorVersion() uint16 {
	if e.ClassFileVersion != 0 {
		return e.ClassFileVersion
	}
	return uint16(config.DefaultClassFileMajorVersion)
}
