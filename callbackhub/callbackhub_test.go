package callbackhub

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tinkervision.dev/tv/module"
	"tinkervision.dev/tv/result"
)

func TestSetCallbackMismatchRejected(t *testing.T) {
	h := New()
	err := h.SetCallback(1, module.ResultScalar, module.ResultPoint, func(module.ID, module.Result, any) {}, nil)
	assert.Error(t, err)
	assert.Equal(t, result.CallbackMismatch, result.CodeOf(err, result.OK))
}

func TestDispatchDeliversMatchingKind(t *testing.T) {
	h := New()
	var got module.Result
	err := h.SetCallback(1, module.ResultPoint, module.ResultNone, func(_ module.ID, r module.Result, _ any) { got = r }, nil)
	assert.NoError(t, err)

	h.Dispatch(1, module.PointResult(3, 4))
	assert.Equal(t, module.ResultPoint, got.Kind)
	assert.Equal(t, int32(3), got.X)
}

func TestDispatchFallsBackToDefaultOnMismatch(t *testing.T) {
	h := New()
	err := h.SetCallback(1, module.ResultScalar, module.ResultNone, func(module.ID, module.Result, any) {
		t.Fatal("scalar callback should not fire for a point result")
	}, nil)
	assert.NoError(t, err)

	var defaultGot module.Result
	h.EnableDefaultCallback(func(_ module.ID, r module.Result, _ any) { defaultGot = r }, nil)

	h.Dispatch(1, module.PointResult(1, 2))
	assert.Equal(t, module.ResultPoint, defaultGot.Kind)
}

func TestDispatchWithoutDefaultIsNoop(t *testing.T) {
	h := New()
	h.Dispatch(42, module.ScalarResult(7))
}

func TestRemoveClearsRegistration(t *testing.T) {
	h := New()
	called := false
	assert.NoError(t, h.SetCallback(1, module.ResultScalar, module.ResultNone, func(module.ID, module.Result, any) { called = true }, nil))
	h.Remove(1)
	h.Dispatch(1, module.ScalarResult(1))
	assert.False(t, called)
}
