package apperr

import (
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	err := Wrap(KindStorage, io.EOF, "failed to upsert group")
	require.Error(t, err)
	assert.Equal(t, "storage error: failed to upsert group: EOF", err.Error())
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, io.EOF, errors.Cause(err))
	assert.Nil(t, Wrap(KindStorage, nil, "unused"))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain", io.EOF, KindUnknown},
		{"network", New(KindNetwork, "timeout"), KindNetwork},
		{"wrapped by fmt", fmt.Errorf("outer: %w", Errorf(KindFormat, "bad %s", "xml")), KindFormat},
		{"wrapped by errors", errors.Wrap(Wrapf(KindConfig, io.EOF, "read %s", "x"), "load"), KindConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}

	assert.True(t, Is(New(KindRender, "too small"), KindRender))
	assert.False(t, Is(nil, KindRender))
}
