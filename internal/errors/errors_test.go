package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *PipelineError
		want string
	}{
		{
			name: "with stage",
			err:  &PipelineError{Kind: KindMalformedRecord, Stage: "load", Message: "bad row"},
			want: "[malformed_record] load: bad row",
		},
		{
			name: "without stage",
			err:  &PipelineError{Kind: KindNoInputFiles, Message: "nothing to read"},
			want: "[no_input_files] nothing to read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindExecution, KindOf(stderrors.New("plain")))
	assert.Equal(t, KindSourceNotFound, KindOf(NewSourceNotFound("data/raw", nil)))

	wrapped := fmt.Errorf("load failed: %w", NewNoInputFiles("data/raw"))
	assert.Equal(t, KindNoInputFiles, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNoInputFiles))
}

func TestNewMalformedRecordContext(t *testing.T) {
	err := NewMalformedRecord("wave_1.csv", 7, `gender "Unknown" is not a declared category`, nil)

	assert.Equal(t, KindMalformedRecord, err.Kind)
	assert.Contains(t, err.Error(), "wave_1.csv")
	assert.Contains(t, err.Error(), "row 7")
	assert.Equal(t, "wave_1.csv", err.Context["file"])
	assert.Equal(t, 7, err.Context["row"])
}

func TestWrapStage(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, WrapStage(nil, "load"))
	})

	t.Run("pipeline error keeps kind and gains stage", func(t *testing.T) {
		err := WrapStage(NewEmptyDataset(), "aggregate")
		assert.Equal(t, KindEmptyDataset, err.Kind)
		assert.Equal(t, "aggregate", err.Stage)
	})

	t.Run("existing stage is preserved", func(t *testing.T) {
		err := WrapStage(NewCancelled("load", nil), "aggregate")
		assert.Equal(t, "load", err.Stage)
	})

	t.Run("foreign error becomes execution", func(t *testing.T) {
		cause := stderrors.New("disk on fire")
		err := WrapStage(cause, "report")
		assert.Equal(t, KindExecution, err.Kind)
		assert.Equal(t, "report", err.Stage)
		require.ErrorIs(t, err, cause)
	})
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := NewDestinationUnwritable("docs/report.txt", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "docs/report.txt", err.Context["path"])
}
