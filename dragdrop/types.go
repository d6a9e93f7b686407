package dragdrop

import (
	"fyne.io/fyne/v2"
)

// State is the lifecycle state of a drag session.
type State int

const (
	// Idle means no item is being dragged.
	Idle State = iota
	// Dragging means an item has been picked up and follows the pointer.
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Frame is a bounding box in container coordinates.
type Frame struct {
	Position fyne.Position
	Size     fyne.Size
}

// NewFrame returns the frame at (x, y) with the given width and height.
func NewFrame(x, y, width, height float32) Frame {
	return Frame{Position: fyne.NewPos(x, y), Size: fyne.NewSize(width, height)}
}

// FrameOf returns the frame an object currently occupies inside its parent.
func FrameOf(o fyne.CanvasObject) Frame {
	return Frame{Position: o.Position(), Size: o.Size()}
}

func (f Frame) MinY() float32   { return f.Position.Y }
func (f Frame) MidY() float32   { return f.Position.Y + f.Size.Height/2 }
func (f Frame) MaxY() float32   { return f.Position.Y + f.Size.Height }
func (f Frame) Height() float32 { return f.Size.Height }

// Scaled returns the frame scaled by s about its center.
func (f Frame) Scaled(s float32) Frame {
	size := fyne.NewSize(f.Size.Width*s, f.Size.Height*s)
	return Frame{
		Position: fyne.NewPos(
			f.Position.X+(f.Size.Width-size.Width)/2,
			f.Position.Y+(f.Size.Height-size.Height)/2,
		),
		Size: size,
	}
}

// Translated returns the frame moved vertically by dy.
func (f Frame) Translated(dy float32) Frame {
	return Frame{Position: fyne.NewPos(f.Position.X, f.Position.Y+dy), Size: f.Size}
}

// Transformed applies a scale about the center followed by a vertical translation.
func (f Frame) Transformed(scale, translateY float32) Frame {
	return f.Scaled(scale).Translated(translateY)
}

// Lerp interpolates between f and to. t may fall outside [0, 1] for spring overshoot.
func (f Frame) Lerp(to Frame, t float32) Frame {
	return Frame{
		Position: fyne.NewPos(lerp(f.Position.X, to.Position.X, t), lerp(f.Position.Y, to.Position.Y, t)),
		Size:     fyne.NewSize(lerp(f.Size.Width, to.Size.Width, t), lerp(f.Size.Height, to.Size.Height, t)),
	}
}

// Clamped keeps the frame inside bounds where it fits.
func (f Frame) Clamped(bounds fyne.Size) Frame {
	pos := f.Position
	if pos.Y+f.Size.Height > bounds.Height {
		pos.Y = bounds.Height - f.Size.Height
	}
	if pos.Y < 0 {
		pos.Y = 0
	}
	if pos.X+f.Size.Width > bounds.Width {
		pos.X = bounds.Width - f.Size.Width
	}
	if pos.X < 0 {
		pos.X = 0
	}
	return Frame{Position: pos, Size: f.Size}
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Delegate receives drag lifecycle notifications. All calls happen on the
// event thread, synchronously from the session.
type Delegate interface {
	DragBegan()
	// Dragging fires on every pointer move with the proxy's vertical extent.
	Dragging(up bool, maxY, minY float32)
	DragEnded()
}

// DelegateFuncs adapts plain functions to a Delegate. Nil fields are skipped.
type DelegateFuncs struct {
	OnDragBegan func()
	OnDragging  func(up bool, maxY, minY float32)
	OnDragEnded func()
}

func (d DelegateFuncs) DragBegan() {
	if d.OnDragBegan != nil {
		d.OnDragBegan()
	}
}

func (d DelegateFuncs) Dragging(up bool, maxY, minY float32) {
	if d.OnDragging != nil {
		d.OnDragging(up, maxY, minY)
	}
}

func (d DelegateFuncs) DragEnded() {
	if d.OnDragEnded != nil {
		d.OnDragEnded()
	}
}

type nopDelegate struct{}

func (nopDelegate) DragBegan()                      {}
func (nopDelegate) Dragging(bool, float32, float32) {}
func (nopDelegate) DragEnded()                      {}
