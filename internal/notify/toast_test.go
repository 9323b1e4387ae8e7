package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_DefaultShape(t *testing.T) {
	t.Parallel()

	toast := Error("request failed", "please retry")

	assert.True(t, toast.Toast)
	assert.Equal(t, IconError, toast.Icon)
	assert.Equal(t, PositionTopEnd, toast.Position)
	assert.Equal(t, 5000, toast.Timer)
	assert.Equal(t, 5*time.Second, toast.Duration())
	assert.True(t, toast.TimerProgressBar)
	assert.False(t, toast.ShowConfirmButton)
	assert.True(t, toast.ShowCloseButton)
}

func TestToast_JSONFieldNames(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Success("saved", ""))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"toast", "title", "icon", "position", "timer", "timerProgressBar", "showConfirmButton", "showCloseButton"} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "text", "empty text is omitted")
}

func TestToast_WithTimer(t *testing.T) {
	t.Parallel()

	toast := Info("x", "").WithTimer(1500 * time.Millisecond)
	assert.Equal(t, 1500, toast.Timer)
}

func TestWriterNotifier_FormatsLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n := NewWriterNotifier(&buf)

	n.Notify(context.Background(), Error("fetch failed", "friends unavailable"))
	n.Notify(context.Background(), Success("done", ""))

	assert.Equal(t, "[error] fetch failed: friends unavailable\n[success] done\n", buf.String())
}

func TestRecorder_KeepsOrder(t *testing.T) {
	t.Parallel()

	var r Recorder
	r.Notify(context.Background(), Info("a", ""))
	r.Notify(context.Background(), Info("b", ""))

	require.Equal(t, 2, r.Len())
	assert.Equal(t, "a", r.Toasts()[0].Title)
	assert.Equal(t, "b", r.Toasts()[1].Title)
}
