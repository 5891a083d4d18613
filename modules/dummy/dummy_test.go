package dummy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tinkervision.dev/tv/colorspace"
	"tinkervision.dev/tv/module"
)

func TestNewDeclaresNoInputAndNoOutput(t *testing.T) {
	m, err := New(1, module.TagNone)
	assert.NoError(t, err)
	assert.Equal(t, "dummy", m.TypeName())
	assert.Equal(t, module.KindExecutable, m.Kind())
	assert.Equal(t, colorspace.None, m.InputColorSpace())
	assert.False(t, m.OutputsImage())
	assert.False(t, m.ProducesResult())
	assert.Equal(t, module.NoResult(), m.Result())
}

func TestExecuteCountsCallsAndNeverErrors(t *testing.T) {
	m, err := New(1, module.TagSequential)
	assert.NoError(t, err)

	in := colorspace.View{Header: colorspace.NewHeader(1, 1, colorspace.BGR888, 0), Data: make([]byte, 3)}
	assert.NoError(t, m.Execute(in, nil))
	assert.NoError(t, m.Execute(in, nil))

	d, ok := m.(*Module)
	assert.True(t, ok)
	assert.Equal(t, 2, d.Execs)
}
