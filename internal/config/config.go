// Package config holds compiler-wide constants: the version string, the
// recognised source file extension, and the names the rest of the
// pipeline treats as well-known rather than looking them up dynamically.
package config

// Version is the compiler's own version string, independent of the
// target class-file format version (see ClassFileVersion in
// pkg/compiler.Options).
const Version = "0.1.0"

// SourceFileExt is the file extension the driver recognises as a
// compilable source file.
const SourceFileExt = ".funxy"

// DefaultClassFileMajorVersion targets a class-file format version that
// supports invokedynamic callsites (spec.md §6 "a version that supports
// invokedynamic callsites").
const DefaultClassFileMajorVersion = 61

// RootSuperclass is the internal (slash-separated) name of the
// universal root type every class implicitly extends when it declares
// no `extends` clause (spec.md §4.6 "inheriting the declared super, or
// a universal root").
const RootSuperclass = "java/lang/Object"

// FunctionWrapperSuffix and ExtensionSuffix name the synthetic classes
// the emitter produces for a top-level function and for an extension's
// target type (spec.md §6 emission-target filenames).
const (
	FunctionWrapperSuffix = "$"
	ExtensionSuffix       = "$Extension"
)

// WellKnownBuiltinNames lists the identifiers the type checker and
// emitter recognise as having builtin semantics on List/Set/String
// rather than resolving through a user declaration.
var WellKnownBuiltinNames = []string{"size", "length", "get", "add", "substring"}
