package colorspace

import "sync"

// FrameBus distributes one frame at a time, lazily materializing and
// caching the colorspace variants a pass's modules ask for. It is built by
// a single producer (the scheduler) once per pass and read by many module
// executions within that pass.
type FrameBus struct {
	mu        sync.Mutex
	converter *Converter
	raw       Image
	cache     map[ColorSpace]Image
}

// NewFrameBus returns a FrameBus that derives every non-raw colorspace
// through conv.
func NewFrameBus(conv *Converter) *FrameBus {
	return &FrameBus{converter: conv}
}

// BeginPass clears all cached converted variants and stores the new raw
// frame.
func (fb *FrameBus) BeginPass(raw Image) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.raw = raw
	fb.cache = make(map[ColorSpace]Image, 2)
}

// View returns the cached frame in ColorSpace cs if present, otherwise
// converts, caches and returns it. Pointers into the returned View are
// valid only until the next BeginPass call.
func (fb *FrameBus) View(cs ColorSpace) (View, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if cs == fb.raw.ColorSpace {
		return fb.raw.View(), nil
	}
	if img, ok := fb.cache[cs]; ok {
		return img.View(), nil
	}
	img, err := fb.converter.Convert(cs, fb.raw)
	if err != nil {
		return View{}, err
	}
	fb.cache[cs] = img
	return img.View(), nil
}
