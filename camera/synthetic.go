package camera

import (
	"math"
	"sync"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/result"
)

// Synthetic is a deterministic Adapter that never touches real hardware:
// it emits solid-color YUYV frames (or a frame with an embedded colored
// rectangle, via PaintRect) on every Grab, with a monotonically
// increasing timestamp. It exists purely so tests and local runs can
// exercise the whole pipeline without OpenCV or a physical device.
type Synthetic struct {
	mu     sync.Mutex
	opened bool
	width  int
	height int
	ts     int64

	background [3]byte // default BGR fill
	rects      []coloredRect
}

type coloredRect struct {
	x, y, w, h int
	bgr        [3]byte
}

// NewSynthetic returns a Synthetic adapter producing width x height YUYV
// frames filled with background (given as B,G,R).
func NewSynthetic(width, height int, backgroundBGR [3]byte) *Synthetic {
	return &Synthetic{width: width, height: height, background: backgroundBGR}
}

// PaintRect paints a solid BGR rectangle into every subsequently produced
// frame, used to synthesize the S1 end-to-end scenario's colored target.
func (s *Synthetic) PaintRect(x, y, w, h int, bgr [3]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rects = append(s.rects, coloredRect{x, y, w, h, bgr})
}

// SetFrameSize implements FrameSizer, resizing subsequent frames; existing
// PaintRect rectangles are kept and simply clipped to the new dimensions.
func (s *Synthetic) SetFrameSize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	return nil
}

func (s *Synthetic) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = true
	return nil
}

func (s *Synthetic) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = false
	return nil
}

func (s *Synthetic) Grab() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return result.New(result.CameraAcquisitionFailed)
	}
	s.ts++
	return nil
}

func (s *Synthetic) GetProperties() (int, int, colorspace.ColorSpace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height, colorspace.YUYV
}

func (s *Synthetic) GetFrame() (colorspace.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return colorspace.Image{}, result.New(result.CameraAcquisitionFailed)
	}

	bgr := make([]byte, s.width*s.height*3)
	for i := 0; i < len(bgr); i += 3 {
		bgr[i], bgr[i+1], bgr[i+2] = s.background[0], s.background[1], s.background[2]
	}
	for _, r := range s.rects {
		for y := r.y; y < r.y+r.h && y < s.height; y++ {
			for x := r.x; x < r.x+r.w && x < s.width; x++ {
				off := (y*s.width + x) * 3
				bgr[off], bgr[off+1], bgr[off+2] = r.bgr[0], r.bgr[1], r.bgr[2]
			}
		}
	}

	yuyv := bgrToYUYV(bgr, s.width, s.height)
	return colorspace.Image{
		ImageHeader: colorspace.NewHeader(s.width, s.height, colorspace.YUYV, s.ts),
		Data:        yuyv,
	}, nil
}

// bgrToYUYV converts BGR to YUYV with full-range BT.601 coefficients (no
// 16 offset on Y), used only to synthesize camera-native frames for tests;
// it is not the exact inverse of the studio-RGB kernels in package
// colorspace, so a round trip through them shifts colors slightly.
func bgrToYUYV(bgr []byte, w, h int) []byte {
	out := make([]byte, w*h*2)
	toYUV := func(b, g, r byte) (y, u, v byte) {
		fy := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
		fu := -0.169*float64(r) - 0.331*float64(g) + 0.5*float64(b) + 128
		fv := 0.5*float64(r) - 0.419*float64(g) - 0.081*float64(b) + 128
		return byte(clampF(fy)), byte(clampF(fu)), byte(clampF(fv))
	}
	for i := 0; i < w*h; i += 2 {
		p0 := i * 3
		p1 := (i + 1) * 3
		y0, u0, v0 := toYUV(bgr[p0], bgr[p0+1], bgr[p0+2])
		y1, _, _ := toYUV(bgr[p1], bgr[p1+1], bgr[p1+2])
		o := i * 2
		out[o], out[o+1], out[o+2], out[o+3] = y0, u0, y1, v0
	}
	return out
}

func clampF(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return math.Round(v)
}
