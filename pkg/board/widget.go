package board

// Widget is the sticky note's local state machine. It has two orthogonal
// axes: drag {idle, dragging} and edit {viewing, editing}. It knows nothing
// about the network; changes are reported upward through the callbacks.
type Widget struct {
	id   string
	x, y float64
	text string

	dragging         bool
	offsetX, offsetY float64

	editing  bool
	editText string

	onDragEnd    func(id string, x, y float64)
	onTextChange func(id, text string)
}

func NewWidget(id, text string, x, y float64, onDragEnd func(string, float64, float64), onTextChange func(string, string)) *Widget {
	return &Widget{
		id:           id,
		x:            x,
		y:            y,
		text:         text,
		editText:     text,
		onDragEnd:    onDragEnd,
		onTextChange: onTextChange,
	}
}

// PointerDown starts a drag and records the offset between the pointer and
// the widget's top-left corner.
func (w *Widget) PointerDown(px, py float64) {
	if w.dragging {
		return
	}
	w.dragging = true
	w.offsetX = px - w.x
	w.offsetY = py - w.y
}

// PointerMove tracks the pointer continuously while dragging. The caller
// routes document-level moves here so the drag survives the pointer leaving
// the widget's bounds.
func (w *Widget) PointerMove(px, py float64) {
	if !w.dragging {
		return
	}
	w.x = px - w.offsetX
	w.y = py - w.offsetY
}

// PointerUp ends the drag and reports the final position.
func (w *Widget) PointerUp() {
	if !w.dragging {
		return
	}
	w.dragging = false
	if w.onDragEnd != nil {
		w.onDragEnd(w.id, w.x, w.y)
	}
}

// Click enters edit mode seeded with the current text. It returns true when
// the click was consumed, so the caller can stop it from reaching the
// canvas background.
func (w *Widget) Click() bool {
	if w.dragging {
		return false
	}
	w.editing = true
	w.editText = w.text
	return true
}

// SetEditText mirrors typing into the inline input.
func (w *Widget) SetEditText(text string) {
	if w.editing {
		w.editText = text
	}
}

// Blur leaves edit mode and reports the text only when it actually changed.
func (w *Widget) Blur() {
	if !w.editing {
		return
	}
	w.editing = false
	if w.editText != w.text {
		w.text = w.editText
		if w.onTextChange != nil {
			w.onTextChange(w.id, w.text)
		}
	}
}

// SyncText resynchronizes the text when it changes externally; an active
// edit is left alone.
func (w *Widget) SyncText(text string) {
	if w.editing {
		return
	}
	w.text = text
	w.editText = text
}

func (w *Widget) Position() (float64, float64) { return w.x, w.y }
func (w *Widget) Dragging() bool               { return w.dragging }
func (w *Widget) Editing() bool                { return w.editing }
func (w *Widget) Text() string                 { return w.text }
