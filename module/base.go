package module

import (
	"sync"

	"tinkervision.dev/tv/colorspace"
)

// Base implements the bookkeeping shared by every module (id, active flag,
// tags, parameter table, last result) so concrete modules only need to
// embed it and implement Execute plus the format/output declarations.
// This is the Go replacement for the original's single-inheritance
// Component/Module base class.
type Base struct {
	mu sync.Mutex

	id          ID
	typeName    string
	kind        Kind
	tags        Tag
	active      bool
	inputCS     colorspace.ColorSpace
	outImg      bool
	producesRes bool
	resultKind  ResultKind
	lastResult  Result
	params      *Parameters
}

// NewBase builds a module's shared bookkeeping. resultKind is the Result
// variant this module declares at construction time, independent of
// whether it has executed yet; modules that never produce a result pass
// ResultNone.
func NewBase(id ID, typeName string, kind Kind, tags Tag, inputCS colorspace.ColorSpace, outputsImage, producesResult bool, resultKind ResultKind) Base {
	return Base{
		id:          id,
		typeName:    typeName,
		kind:        kind,
		tags:        tags,
		active:      true,
		inputCS:     inputCS,
		outImg:      outputsImage,
		producesRes: producesResult,
		resultKind:  resultKind,
		params:      NewParameters(),
	}
}

func (b *Base) ID() ID                                 { return b.id }
func (b *Base) TypeName() string                       { return b.typeName }
func (b *Base) Kind() Kind                             { return b.kind }
func (b *Base) Tags() Tag                              { return b.tags }
func (b *Base) InputColorSpace() colorspace.ColorSpace { return b.inputCS }
func (b *Base) OutputsImage() bool                     { return b.outImg }
func (b *Base) ProducesResult() bool                   { return b.producesRes }
func (b *Base) DeclaredResultKind() ResultKind         { return b.resultKind }
func (b *Base) Parameters() *Parameters                { return b.params }

func (b *Base) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

func (b *Base) SetActive(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = v
}

// SetResult records the module's result for this pass, to be read back by
// Result()/HasResult().
func (b *Base) SetResult(r Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastResult = r
}

func (b *Base) Result() Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastResult
}

func (b *Base) HasResult() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastResult.Kind != ResultNone
}

// OutputImageHeader returns a header with the same width, height and
// colorspace as ref. Most image-producing
// modules in this repo produce the same colorspace they consume; modules
// that transform size (e.g. downscale) override this method directly
// rather than embedding the default.
func (b *Base) OutputImageHeader(ref colorspace.ImageHeader) colorspace.ImageHeader {
	return colorspace.NewHeader(ref.Width, ref.Height, ref.ColorSpace, ref.Timestamp)
}
