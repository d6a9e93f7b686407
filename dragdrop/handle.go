package dragdrop

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// dragHandle wraps one stack item and forwards its pointer events to the
// stack in stack coordinates.
type dragHandle struct {
	widget.BaseWidget
	stack   *Stack
	content fyne.CanvasObject
}

func newDragHandle(s *Stack, content fyne.CanvasObject) *dragHandle {
	h := &dragHandle{stack: s, content: content}
	h.ExtendBaseWidget(h)
	return h
}

func (h *dragHandle) CreateRenderer() fyne.WidgetRenderer {
	return &dragHandleRenderer{h: h}
}

var (
	_ desktop.Mouseable = (*dragHandle)(nil)
	_ mobile.Touchable  = (*dragHandle)(nil)
	_ fyne.Draggable    = (*dragHandle)(nil)
)

func (h *dragHandle) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	h.stack.press(h.content, h.stack.localPosition(&e.PointEvent, h))
}

func (h *dragHandle) MouseUp(*desktop.MouseEvent) {
	h.stack.release()
}

func (h *dragHandle) TouchDown(e *mobile.TouchEvent) {
	h.stack.press(h.content, h.stack.localPosition(&e.PointEvent, h))
}

func (h *dragHandle) TouchUp(*mobile.TouchEvent) {
	h.stack.release()
}

func (h *dragHandle) TouchCancel(*mobile.TouchEvent) {
	h.stack.release()
}

func (h *dragHandle) Dragged(e *fyne.DragEvent) {
	h.stack.dragged(e)
}

func (h *dragHandle) DragEnd() {
	h.stack.dragEnd()
}

type dragHandleRenderer struct {
	h *dragHandle
}

func (r *dragHandleRenderer) Layout(size fyne.Size) {
	r.h.content.Resize(size)
	r.h.content.Move(fyne.NewPos(0, 0))
}

func (r *dragHandleRenderer) MinSize() fyne.Size {
	return r.h.content.MinSize()
}

func (r *dragHandleRenderer) Refresh() {
	r.h.content.Refresh()
}

func (r *dragHandleRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.h.content}
}

func (r *dragHandleRenderer) Destroy() {}
