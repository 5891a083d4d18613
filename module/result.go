package module

// ResultKind discriminates which variant of Result a module produced.
// Only one variant is produced per module.
type ResultKind uint8

const (
	ResultNone ResultKind = iota
	ResultString
	ResultScalar
	ResultPoint
	ResultRectangle
)

// Result is the typed value a module optionally produces each pass.
// Exactly one of the fields below is meaningful, selected by Kind.
type Result struct {
	Kind ResultKind

	String string
	Scalar int32
	X, Y   int32
	W, H   int32
}

func NoResult() Result              { return Result{Kind: ResultNone} }
func StringResult(s string) Result  { return Result{Kind: ResultString, String: s} }
func ScalarResult(v int32) Result   { return Result{Kind: ResultScalar, Scalar: v} }
func PointResult(x, y int32) Result { return Result{Kind: ResultPoint, X: x, Y: y} }
func RectResult(x, y, w, h int32) Result {
	return Result{Kind: ResultRectangle, X: x, Y: y, W: w, H: h}
}
