package colorspace

// ImageHeader describes a frame without owning its pixel data: width,
// height, byte count, timestamp and colorspace tag. ByteCount must always
// match the colorspace-specific packing of width x height.
type ImageHeader struct {
	Width      int
	Height     int
	ByteCount  int
	ColorSpace ColorSpace

	// Timestamp is monotonically non-decreasing across frames produced by
	// one CameraAdapter.
	Timestamp int64
}

// NewHeader builds a header whose ByteCount is derived from width, height
// and cs.
func NewHeader(width, height int, cs ColorSpace, timestamp int64) ImageHeader {
	return ImageHeader{
		Width:      width,
		Height:     height,
		ByteCount:  cs.ByteCount(width, height),
		ColorSpace: cs,
		Timestamp:  timestamp,
	}
}

// Image pairs an ImageHeader with its backing bytes. Images are immutable
// while modules read them; a module that is tagged as image-producing
// writes into a separate, pre-allocated output Image it does not own.
type Image struct {
	ImageHeader
	Data []byte
}

// View is a borrowed, read-only reference to an Image valid only for the
// duration of the current scheduler pass. Modules must not retain it past
// their execute() call returning.
type View struct {
	Header ImageHeader
	Data   []byte
}

func (img Image) View() View {
	return View{Header: img.ImageHeader, Data: img.Data}
}
