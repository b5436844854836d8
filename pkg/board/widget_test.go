package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widgetRecorder struct {
	dragID    string
	dragX     float64
	dragY     float64
	dragCalls int
	textID    string
	text      string
	textCalls int
}

func (r *widgetRecorder) onDragEnd(id string, x, y float64) {
	r.dragID, r.dragX, r.dragY = id, x, y
	r.dragCalls++
}

func (r *widgetRecorder) onTextChange(id, text string) {
	r.textID, r.text = id, text
	r.textCalls++
}

func newTestWidget(rec *widgetRecorder) *Widget {
	return NewWidget("note-1", "hello", 100, 100, rec.onDragEnd, rec.onTextChange)
}

func TestDragMovesByPointerDelta(t *testing.T) {
	rec := &widgetRecorder{}
	w := newTestWidget(rec)

	// Grab the widget 10,5 inside its top-left corner; the grab point must
	// stay under the pointer for the whole drag.
	w.PointerDown(110, 105)
	w.PointerMove(160, 85)
	w.PointerUp()

	assert.Equal(t, 1, rec.dragCalls)
	assert.Equal(t, "note-1", rec.dragID)
	assert.Equal(t, 150.0, rec.dragX)
	assert.Equal(t, 80.0, rec.dragY)

	x, y := w.Position()
	assert.Equal(t, 150.0, x)
	assert.Equal(t, 80.0, y)
}

func TestMoveWithoutDownIsIgnored(t *testing.T) {
	rec := &widgetRecorder{}
	w := newTestWidget(rec)

	w.PointerMove(500, 500)
	w.PointerUp()

	x, y := w.Position()
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 100.0, y)
	assert.Zero(t, rec.dragCalls)
}

func TestClickEntersEditSeededWithCurrentText(t *testing.T) {
	rec := &widgetRecorder{}
	w := newTestWidget(rec)

	require.True(t, w.Click())
	assert.True(t, w.Editing())

	w.SetEditText("updated")
	w.Blur()

	assert.False(t, w.Editing())
	assert.Equal(t, "updated", w.Text())
	assert.Equal(t, 1, rec.textCalls)
	assert.Equal(t, "note-1", rec.textID)
	assert.Equal(t, "updated", rec.text)
}

func TestBlurWithUnchangedTextFiresNoCallback(t *testing.T) {
	rec := &widgetRecorder{}
	w := newTestWidget(rec)

	require.True(t, w.Click())
	w.SetEditText("hello")
	w.Blur()

	assert.Zero(t, rec.textCalls)
	assert.Equal(t, "hello", w.Text())
}

func TestSetEditTextOutsideEditModeIsIgnored(t *testing.T) {
	rec := &widgetRecorder{}
	w := newTestWidget(rec)

	w.SetEditText("typing into nothing")
	require.True(t, w.Click())
	w.Blur()

	assert.Zero(t, rec.textCalls)
}

func TestSyncTextSkippedWhileEditing(t *testing.T) {
	rec := &widgetRecorder{}
	w := newTestWidget(rec)

	require.True(t, w.Click())
	w.SetEditText("mine")

	// A feed update lands mid-edit; it must not clobber the draft.
	w.SyncText("theirs")
	w.Blur()

	assert.Equal(t, "mine", w.Text())

	// Once idle, external updates apply normally.
	w.SyncText("theirs")
	assert.Equal(t, "theirs", w.Text())
}

func TestClickDuringDragIsNotConsumed(t *testing.T) {
	rec := &widgetRecorder{}
	w := newTestWidget(rec)

	w.PointerDown(110, 105)
	assert.False(t, w.Click())
	assert.False(t, w.Editing())
}
