package dragdrop

import (
	"time"

	"fyne.io/fyne/v2"
)

// allowableMovement is how far a press may wander before it is recognised
// as a long press. Moving further fails the press.
const allowableMovement = 10

// pressRecognizer turns press, move and release events into drag begin,
// move and end calls once a press has been held for the minimum duration.
type pressRecognizer struct {
	minDuration time.Duration
	schedule    func(d time.Duration, f func()) (cancel func())

	onBegin func(item fyne.CanvasObject, pos fyne.Position) bool
	onMove  func(pos fyne.Position)
	onEnd   func()

	item    fyne.CanvasObject
	start   fyne.Position
	last    fyne.Position
	pressed bool
	began   bool
	gen     int
	cancel  func()
}

func newPressRecognizer(minDuration time.Duration, onBegin func(fyne.CanvasObject, fyne.Position) bool, onMove func(fyne.Position), onEnd func()) *pressRecognizer {
	return &pressRecognizer{
		minDuration: minDuration,
		schedule:    afterFunc,
		onBegin:     onBegin,
		onMove:      onMove,
		onEnd:       onEnd,
	}
}

// afterFunc runs f on the event thread after d.
func afterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, func() {
		fyne.Do(f)
	})
	return func() {
		t.Stop()
	}
}

// press starts tracking item. Presses are ignored while another press is
// active, so only one item can be picked up at a time.
func (r *pressRecognizer) press(item fyne.CanvasObject, pos fyne.Position) {
	if r.pressed {
		return
	}
	r.reset()
	r.pressed = true
	r.item = item
	r.start = pos
	r.last = pos

	if r.minDuration <= 0 {
		r.recognize()
		return
	}
	gen := r.gen
	r.cancel = r.schedule(r.minDuration, func() {
		if r.gen != gen || !r.pressed || r.began {
			return
		}
		r.cancel = nil
		r.recognize()
	})
}

func (r *pressRecognizer) recognize() {
	if r.onBegin(r.item, r.last) {
		r.began = true
		return
	}
	r.reset()
}

func (r *pressRecognizer) move(pos fyne.Position) {
	if !r.pressed {
		return
	}
	r.last = pos
	if r.began {
		r.onMove(pos)
		return
	}

	dx, dy := pos.X-r.start.X, pos.Y-r.start.Y
	if dx*dx+dy*dy > allowableMovement*allowableMovement {
		r.reset()
	}
}

// release ends the press. A recognised press ends its drag; cancel and
// failure take the same path.
func (r *pressRecognizer) release() {
	if !r.pressed {
		return
	}
	began := r.began
	r.reset()
	if began {
		r.onEnd()
	}
}

func (r *pressRecognizer) active() bool {
	return r.began
}

func (r *pressRecognizer) reset() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
	r.pressed = false
	r.began = false
	r.item = nil
}
