// Package camera defines the CameraAdapter collaborator interface (owned
// and invoked, never implemented, by the runtime core — a concrete
// OpenCV-style capture binding is out of scope) plus a refcounted
// singleton Handle and a deterministic synthetic adapter used for tests
// and local runs without real camera hardware.
package camera

import (
	"sync"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/result"
)

// Adapter is the narrow surface the scheduler drives each pass: open,
// close, grab a frame into the device's internal buffer, then retrieve it
// plus the device's native colorspace/resolution.
type Adapter interface {
	Open() error
	Close() error
	Grab() error
	GetFrame() (colorspace.Image, error)
	GetProperties() (width, height int, cs colorspace.ColorSpace)
}

// FrameSizer is an optional capability an Adapter may implement to support
// SetFrameSize/GetResolution; the Synthetic adapter implements it.
type FrameSizer interface {
	SetFrameSize(width, height int) error
}

// Handle is a refcounted singleton wrapper: the camera is acquired via
// refcounted Acquire/Release; when the refcount hits zero, it closes.
type Handle struct {
	mu      sync.Mutex
	adapter Adapter
	refs    int
	opened  bool
}

func NewHandle(adapter Adapter) *Handle {
	return &Handle{adapter: adapter}
}

// Acquire opens the camera on the first call and increments the refcount
// on every call. Returns CameraAcquisitionFailed if Open fails.
func (h *Handle) Acquire() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.opened {
		if err := h.adapter.Open(); err != nil {
			return result.Wrap(result.CameraAcquisitionFailed, err)
		}
		h.opened = true
	}
	h.refs++
	return nil
}

// Release decrements the refcount, closing the camera when it reaches
// zero.
func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.refs == 0 {
		return nil
	}
	h.refs--
	if h.refs == 0 && h.opened {
		h.opened = false
		return h.adapter.Close()
	}
	return nil
}

// SetFrameSize resizes the camera if its Adapter implements FrameSizer;
// otherwise it reports CameraSettingsFailed.
func (h *Handle) SetFrameSize(width, height int) error {
	sizer, ok := h.adapter.(FrameSizer)
	if !ok {
		return result.New(result.CameraSettingsFailed)
	}
	if err := sizer.SetFrameSize(width, height); err != nil {
		return result.Wrap(result.CameraSettingsFailed, err)
	}
	return nil
}

// Resolution reports the adapter's current width, height and colorspace.
func (h *Handle) Resolution() (width, height int, cs colorspace.ColorSpace) {
	return h.adapter.GetProperties()
}

// Refs reports the current acquisition refcount (for diagnostics/tests).
func (h *Handle) Refs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refs
}

// GrabFrame grabs and retrieves the next frame; CameraAcquisitionFailed if
// the camera is not currently acquired.
func (h *Handle) GrabFrame() (colorspace.Image, error) {
	h.mu.Lock()
	opened := h.opened
	h.mu.Unlock()
	if !opened {
		return colorspace.Image{}, result.New(result.CameraAcquisitionFailed)
	}
	if err := h.adapter.Grab(); err != nil {
		return colorspace.Image{}, result.Wrap(result.CameraAcquisitionFailed, err)
	}
	return h.adapter.GetFrame()
}
