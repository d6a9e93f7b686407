// Package dragdrop provides a vertical stack widget whose items can be
// reordered by long-pressing and dragging them.
//
// The reorder logic lives in Session, which only depends on the List,
// Renderer and Delegate interfaces. Stack wires a Session to Fyne: it lays
// out the items, recognises long presses and animates the floating proxy.
package dragdrop

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Stack is a vertical list of canvas objects that can be reordered by drag
// and drop. Items keep their minimum height and fill the stack's width.
type Stack struct {
	widget.BaseWidget

	config  Config
	list    *ItemList
	session *Session
	anim    *animator
	presses *pressRecognizer
	enabled bool

	handles map[fyne.CanvasObject]*dragHandle
	proxies []fyne.CanvasObject

	// pointer follows the active press in stack coordinates.
	pointer fyne.Position
	// passing receives drags that did not pick up an item.
	passing fyne.Draggable
}

// NewStack creates a stack holding items, top to bottom. An invalid config
// is logged and replaced by DefaultConfig.
func NewStack(config Config, items ...fyne.CanvasObject) *Stack {
	if err := config.Validate(); err != nil {
		fyne.LogError("using default drag and drop config", err)
		config = DefaultConfig()
	}

	s := &Stack{
		config:  config,
		enabled: true,
		handles: make(map[fyne.CanvasObject]*dragHandle),
	}
	s.list = NewItemList(theme.Padding())
	s.anim = newAnimator(s)
	s.session = NewSession(s.list, s.anim, nil, config)
	s.presses = newPressRecognizer(config.MinimumPressDuration, s.beginDrag, s.moveDrag, s.endDrag)

	for _, item := range items {
		s.add(item)
	}
	s.ExtendBaseWidget(s)
	return s
}

// Add appends item to the bottom of the stack.
func (s *Stack) Add(item fyne.CanvasObject) {
	if s.add(item) {
		s.Refresh()
	}
}

func (s *Stack) add(item fyne.CanvasObject) bool {
	if !s.list.Add(item) {
		return false
	}
	s.handles[item] = newDragHandle(s, item)
	return true
}

// Remove takes item out of the stack. Removing the dragged item ends the drag.
func (s *Stack) Remove(item fyne.CanvasObject) bool {
	if s.session.Item() == item {
		s.presses.reset()
		s.session.Cancel()
	}
	if !s.list.Remove(item) {
		return false
	}
	if h, ok := s.handles[item]; ok {
		s.anim.forget(h)
		delete(s.handles, item)
	}
	s.Refresh()
	return true
}

// Objects returns the items in their current order.
func (s *Stack) Objects() []fyne.CanvasObject {
	return s.list.Items()
}

// SetDelegate sets the observer notified about drags.
func (s *Stack) SetDelegate(d Delegate) {
	s.session.SetDelegate(d)
}

// SetDragDropEnabled turns reordering on or off. A new stack starts enabled.
// Disabling during a drag ends it in place.
func (s *Stack) SetDragDropEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.presses.release()
	}
}

func (s *Stack) DragDropEnabled() bool {
	return s.enabled
}

func (s *Stack) Config() Config {
	return s.config
}

func (s *Stack) IsDragging() bool {
	return s.session.IsDragging()
}

func (s *Stack) CreateRenderer() fyne.WidgetRenderer {
	return &stackRenderer{s: s}
}

func (s *Stack) press(item fyne.CanvasObject, pos fyne.Position) {
	if !s.enabled || s.session.IsDragging() {
		return
	}
	s.pointer = pos
	s.presses.press(item, pos)
}

func (s *Stack) move(pos fyne.Position) {
	s.pointer = pos
	s.presses.move(pos)
}

func (s *Stack) release() {
	s.presses.release()
}

// dragged tracks the pointer by its drag deltas, which stay valid while the
// dragged handle is moved around by swaps. Until an item is picked up the
// drag is also handed to the enclosing scroller.
func (s *Stack) dragged(e *fyne.DragEvent) {
	if !s.presses.active() {
		if s.passing == nil {
			s.passing = s.dragParent()
		}
		if s.passing != nil {
			s.passing.Dragged(e)
		}
	}
	s.move(s.pointer.Add(e.Dragged))
}

func (s *Stack) dragEnd() {
	if s.passing != nil {
		s.passing.DragEnd()
		s.passing = nil
	}
	s.release()
}

// dragParent returns the closest ancestor that handles drags itself, such as
// a scroll container on mobile.
func (s *Stack) dragParent() fyne.Draggable {
	app := fyne.CurrentApp()
	if app == nil {
		return nil
	}
	c := app.Driver().CanvasForObject(s)
	if c == nil {
		return nil
	}

	roots := append([]fyne.CanvasObject{c.Content()}, c.Overlays().List()...)
	for _, root := range roots {
		path := pathTo(root, s)
		for i := len(path) - 1; i >= 0; i-- {
			if d, ok := path[i].(fyne.Draggable); ok {
				return d
			}
		}
	}
	return nil
}

// pathTo lists the ancestors of target below root, outermost first. It walks
// containers and scrollers only and returns nil when target is not found.
func pathTo(root, target fyne.CanvasObject) []fyne.CanvasObject {
	if root == nil {
		return nil
	}
	if root == target {
		return []fyne.CanvasObject{}
	}

	var children []fyne.CanvasObject
	switch o := root.(type) {
	case *fyne.Container:
		children = o.Objects
	case *container.Scroll:
		children = []fyne.CanvasObject{o.Content}
	}
	for _, child := range children {
		if path := pathTo(child, target); path != nil {
			return append([]fyne.CanvasObject{root}, path...)
		}
	}
	return nil
}

func (s *Stack) beginDrag(item fyne.CanvasObject, pos fyne.Position) bool {
	if !s.enabled {
		return false
	}
	return s.session.Begin(item, pos)
}

func (s *Stack) moveDrag(pos fyne.Position) {
	s.session.Move(pos)
}

func (s *Stack) endDrag() {
	s.session.End()
}

// localPosition converts an event received by from into stack coordinates.
func (s *Stack) localPosition(ev *fyne.PointEvent, from fyne.CanvasObject) fyne.Position {
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(s); c != nil {
			return ev.AbsolutePosition.Subtract(app.Driver().AbsolutePositionForObject(s))
		}
	}
	return from.Position().Add(ev.Position)
}

func (s *Stack) addProxy(p fyne.CanvasObject) {
	s.proxies = append(s.proxies, p)
	s.Refresh()
}

func (s *Stack) removeProxy(p fyne.CanvasObject) {
	for i, o := range s.proxies {
		if o == p {
			s.proxies = append(s.proxies[:i], s.proxies[i+1:]...)
			break
		}
	}
	s.Refresh()
}

type stackRenderer struct {
	s *Stack
}

func (r *stackRenderer) Layout(size fyne.Size) {
	r.s.list.Arrange(size.Width)
	r.s.anim.layout()
}

func (r *stackRenderer) MinSize() fyne.Size {
	return r.s.list.MinSize()
}

func (r *stackRenderer) Refresh() {
	r.s.list.SetSpacing(theme.Padding())
	r.s.anim.layout()
	for _, o := range r.Objects() {
		o.Refresh()
	}
}

func (r *stackRenderer) Objects() []fyne.CanvasObject {
	items := r.s.list.Items()
	objs := make([]fyne.CanvasObject, 0, len(items)+len(r.s.proxies))
	for _, item := range items {
		objs = append(objs, r.s.handles[item])
	}
	return append(objs, r.s.proxies...)
}

func (r *stackRenderer) Destroy() {}
