package dragdrop

import (
	"time"

	"fyne.io/fyne/v2"
)

// Animation describes a timed transition. A Damping of 1 or more settles
// without overshoot; lower values bounce. Velocity is the initial velocity in
// units of the full distance per animation duration.
type Animation struct {
	Duration time.Duration
	Damping  float32
	Velocity float32
}

var (
	pickUpAnimation  = Animation{Duration: 400 * time.Millisecond, Damping: 0.8}
	dropAnimation    = Animation{Duration: 400 * time.Millisecond, Damping: 0.8}
	swapAnimation    = Animation{Duration: 200 * time.Millisecond, Damping: 1}
	restoreAnimation = Animation{Duration: 300 * time.Millisecond, Damping: 1}
)

// Renderer draws the visual side of a drag. The session only calls it from
// the event thread and never waits on it.
//
// Objects passed to SetTransform, SetOpacity and SetFrame are either list
// items or a proxy returned by CreateProxy.
type Renderer interface {
	// CreateProxy returns a stand-in for source drawn above the list at frame.
	CreateProxy(source fyne.CanvasObject, frame Frame) fyne.CanvasObject
	RemoveProxy(proxy fyne.CanvasObject)

	// SetTransform scales obj about its center then moves it down by translateY.
	SetTransform(obj fyne.CanvasObject, scale, translateY float32)
	SetOpacity(obj fyne.CanvasObject, alpha float32)
	SetFrame(obj fyne.CanvasObject, frame Frame)

	// SetSourceVisible hides the dragged item while its proxy is shown.
	SetSourceVisible(item fyne.CanvasObject, visible bool)
	SetClipping(clip bool)

	// Animate runs body synchronously; property changes it makes are
	// interpolated over a. completion, if not nil, runs once when settled.
	Animate(a Animation, body func(), completion func())
	// AnimateLayout moves every item to its current list frame over a.
	AnimateLayout(a Animation)
}
