package dragdrop

import (
	"fyne.io/fyne/v2"
)

// List is the view of the ordered items a Session needs. *ItemList
// implements it.
type List interface {
	Items() []fyne.CanvasObject
	IndexOf(item fyne.CanvasObject) int
	ItemBefore(index int) fyne.CanvasObject
	ItemAfter(index int) fyne.CanvasObject
	InsertAt(item fyne.CanvasObject, index int)
	Frame(item fyne.CanvasObject) (Frame, bool)
}

// Session turns a stream of begin, move and end calls into adjacent swaps of
// the dragged item. It is owned by one container and reused for every drag.
//
// All methods must be called from the event thread.
type Session struct {
	list     List
	renderer Renderer
	delegate Delegate
	config   Config

	state      State
	actual     fyne.CanvasObject
	proxy      fyne.CanvasObject
	startIndex int

	// original is the press position shifted by the began offset; pointer
	// offsets are measured from it.
	original fyne.Position
	// dropPoint holds the midY of the last committed slot and decides the
	// direction of the next move.
	dropPoint  fyne.Position
	startFrame Frame
	proxyFrame Frame
	finalFrame Frame
	up         bool
}

// NewSession creates an idle session. A nil delegate is allowed.
func NewSession(list List, renderer Renderer, delegate Delegate, config Config) *Session {
	s := &Session{
		list:     list,
		renderer: renderer,
		config:   config,
	}
	s.SetDelegate(delegate)
	return s
}

// SetDelegate replaces the lifecycle observer. Nil removes it.
func (s *Session) SetDelegate(d Delegate) {
	if d == nil {
		d = nopDelegate{}
	}
	s.delegate = d
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) IsDragging() bool {
	return s.state == Dragging
}

// Item returns the item being dragged, or nil when idle.
func (s *Session) Item() fyne.CanvasObject {
	if s.state != Dragging {
		return nil
	}
	return s.actual
}

// StartIndex is the index the dragged item had when the drag began.
func (s *Session) StartIndex() int {
	return s.startIndex
}

// DropPoint is the last committed vertical threshold.
func (s *Session) DropPoint() fyne.Position {
	return s.dropPoint
}

// ProxyFrame is the frame the proxy occupies for the latest pointer position.
func (s *Session) ProxyFrame() Frame {
	return s.proxyFrame
}

// FinalFrame is where the proxy lands when the drag ends.
func (s *Session) FinalFrame() Frame {
	return s.finalFrame
}

// MovingUp reports the direction decided by the latest Move.
func (s *Session) MovingUp() bool {
	return s.up
}

// Begin picks up item at the pointer position pos. It returns false without
// side effects when a drag is already running or item is not in the list.
func (s *Session) Begin(item fyne.CanvasObject, pos fyne.Position) bool {
	if s.state == Dragging {
		return false
	}
	index := s.list.IndexOf(item)
	if index < 0 {
		return false
	}
	frame, _ := s.list.Frame(item)

	s.state = Dragging
	s.delegate.DragBegan()

	s.actual = item
	s.startIndex = index
	s.up = false
	s.original = fyne.NewPos(pos.X, pos.Y-s.config.DragBeganOffsetY)
	s.dropPoint = s.original
	s.startFrame = frame
	s.finalFrame = frame
	s.proxyFrame = frame.Transformed(s.config.DragScale, s.config.DragBeganOffsetY)

	s.animatePickUp()
	return true
}

func (s *Session) animatePickUp() {
	s.renderer.SetClipping(s.config.ClipsToBounds)
	s.proxy = s.renderer.CreateProxy(s.actual, s.startFrame)
	s.renderer.SetSourceVisible(s.actual, false)

	proxy, actual := s.proxy, s.actual
	s.renderer.Animate(pickUpAnimation, func() {
		s.renderer.SetTransform(proxy, s.config.DragScale, s.config.DragBeganOffsetY)
		s.renderer.SetOpacity(proxy, s.config.ProxyAlpha)
		for _, item := range s.list.Items() {
			if item == actual {
				continue
			}
			s.renderer.SetTransform(item, s.config.OtherScale, 0)
		}
	}, nil)
}

// Move follows the pointer to pos and swaps the dragged item with its
// neighbour once the proxy's center passes the neighbour's center. It
// reports whether a swap happened and is a no-op when idle.
func (s *Session) Move(pos fyne.Position) bool {
	if s.state != Dragging {
		return false
	}

	offset := pos.Y - s.original.Y
	s.proxyFrame = s.startFrame.Transformed(s.config.DragScale, offset)
	if s.proxy != nil {
		s.renderer.SetTransform(s.proxy, s.config.DragScale, offset)
	}

	minY, midY, maxY := s.proxyFrame.MinY(), s.proxyFrame.MidY(), s.proxyFrame.MaxY()
	index := s.list.IndexOf(s.actual)
	if index < 0 {
		index = 0
	}

	if midY > s.dropPoint.Y {
		return s.moveDown(index, maxY, midY, minY)
	}
	return s.moveUp(index, maxY, midY, minY)
}

func (s *Session) moveDown(index int, maxY, midY, minY float32) bool {
	s.up = false
	s.delegate.Dragging(false, maxY, minY)

	next := s.list.ItemAfter(index)
	if next == nil {
		return false
	}
	nextFrame, ok := s.list.Frame(next)
	if !ok || midY <= nextFrame.MidY() {
		return false
	}

	s.list.InsertAt(next, index)
	s.list.InsertAt(s.actual, index+1)
	s.commitSwap()
	return true
}

func (s *Session) moveUp(index int, maxY, midY, minY float32) bool {
	s.up = true
	s.delegate.Dragging(true, maxY, minY)

	previous := s.list.ItemBefore(index)
	if previous == nil {
		return false
	}
	previousFrame, ok := s.list.Frame(previous)
	if !ok || midY >= previousFrame.MidY() {
		return false
	}

	s.list.InsertAt(previous, index)
	s.list.InsertAt(s.actual, index-1)
	s.commitSwap()
	return true
}

func (s *Session) commitSwap() {
	s.renderer.AnimateLayout(swapAnimation)
	if frame, ok := s.list.Frame(s.actual); ok {
		s.finalFrame = frame
		s.dropPoint.Y = frame.MidY()
	}
}

// End drops the dragged item into its current slot. Swaps made during the
// drag are kept. It is a no-op when idle.
func (s *Session) End() {
	if s.state != Dragging {
		return
	}
	s.animateDrop()

	s.state = Idle
	s.actual = nil
	s.proxy = nil
	s.delegate.DragEnded()
}

// Cancel ends the drag exactly like End; committed swaps are not reverted.
func (s *Session) Cancel() {
	s.End()
}

func (s *Session) animateDrop() {
	proxy, actual, final := s.proxy, s.actual, s.finalFrame

	s.renderer.Animate(dropAnimation, func() {
		if proxy != nil {
			s.renderer.SetTransform(proxy, 1, 0)
			s.renderer.SetFrame(proxy, final)
			s.renderer.SetOpacity(proxy, 1)
		}
	}, func() {
		if proxy != nil {
			s.renderer.RemoveProxy(proxy)
		}
		s.renderer.SetSourceVisible(actual, true)
		s.renderer.SetClipping(false)
	})

	s.renderer.Animate(restoreAnimation, func() {
		for _, item := range s.list.Items() {
			s.renderer.SetTransform(item, 1, 0)
		}
	}, nil)
}
