// Package module defines the Module interface, its capability tags, the
// parameter model and the Result variants: a single virtual Execute plus
// capability tags rather than a template-based component hierarchy.
package module

import "tinkervision.dev/tv/colorspace"

// ID is a small signed integer chosen by the client; unique over live
// modules.
type ID int32

// Kind is the coarse role a module plays in the pipeline.
type Kind uint8

const (
	KindNone Kind = iota
	KindExecutable
	KindFx
	KindAnalysis
	KindOutput
)

// Tag carries the runtime flags layered on top of Kind: whether the module
// removes or disables itself after one successful exec, whether it may
// remove itself, and whether it is a blocking, single-threaded-stall
// module.
type Tag uint16

const (
	TagNone Tag = 0

	TagExecAndRemove Tag = 1 << iota // iota=1 here; first real flag is bit 1
	TagExecAndDisable
	TagRemovable
	TagSequential
)

// the block above yields 2,4,8,16 (bit 0 is deliberately left unused so
// TagNone's zero value never collides with a real flag)

func (t Tag) Has(flag Tag) bool { return t&flag != 0 }

// Module is the capability-tagged interface every vision pass implements,
// whether loaded from a plug-in or built in. It replaces the original's
// per-format component subclasses (BGRComponent, YUYVComponent, ...) with
// one InputColorSpace() method.
type Module interface {
	ID() ID
	TypeName() string
	Kind() Kind
	Tags() Tag

	// Active reports whether the scheduler should invoke this module.
	Active() bool
	SetActive(bool)

	// InputColorSpace is fixed for the module's lifetime. None declares
	// the module execute-free: it is still scheduled for bookkeeping but
	// skipped for frame delivery.
	InputColorSpace() colorspace.ColorSpace

	// OutputsImage reports whether the scheduler must supply a
	// pre-allocated output image obtained from OutputImageHeader.
	OutputsImage() bool
	OutputImageHeader(ref colorspace.ImageHeader) colorspace.ImageHeader

	ProducesResult() bool
	// DeclaredResultKind is the Result variant this module will produce,
	// fixed at construction time and independent of whether it has
	// executed yet (unlike Result().Kind, which is ResultNone until the
	// first pass).
	DeclaredResultKind() ResultKind
	HasResult() bool
	Result() Result

	// Execute is the per-frame entry point. Implementations must not
	// retain in or out past return.
	Execute(in colorspace.View, out *colorspace.Image) error

	Parameters() *Parameters
}

// Factory constructs a Module given an id and initial tags, mirroring the
// plug-in ABI's create(id, tags) symbol.
type Factory func(id ID, tags Tag) (Module, error)
