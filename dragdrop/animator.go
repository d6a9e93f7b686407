package dragdrop

import (
	"fyne.io/fyne/v2"
)

type visualState struct {
	base      Frame // proxies only; items follow their list frame
	scale     float32
	translate float32
	alpha     float32

	// owner is the animation currently driving the object, 0 when at rest.
	owner int
}

type visualSnapshot struct {
	frame Frame
	alpha float32
}

type transaction struct {
	from  map[fyne.CanvasObject]visualSnapshot
	order []fyne.CanvasObject
}

func newTransaction() *transaction {
	return &transaction{from: make(map[fyne.CanvasObject]visualSnapshot)}
}

// animator is the Stack's Renderer. Item transforms are applied to the
// item's drag handle; proxies are positioned directly.
type animator struct {
	stack  *Stack
	states map[fyne.CanvasObject]*visualState
	clip   bool
	tx     *transaction
	lastID int

	start func(*fyne.Animation)
}

func newAnimator(s *Stack) *animator {
	return &animator{
		stack:  s,
		states: make(map[fyne.CanvasObject]*visualState),
		start: func(a *fyne.Animation) {
			a.Start()
		},
	}
}

var _ Renderer = (*animator)(nil)

func (a *animator) CreateProxy(source fyne.CanvasObject, frame Frame) fyne.CanvasObject {
	img := snapshot(a.drawn(source), a.stack.config.DragScale)
	p := newDragProxy(img, a.stack.config.CornerRadius)
	a.states[p] = &visualState{base: frame, scale: 1, alpha: 1}
	a.apply(p, a.target(p, a.states[p]), 1)
	a.stack.addProxy(p)
	return p
}

func (a *animator) RemoveProxy(proxy fyne.CanvasObject) {
	delete(a.states, proxy)
	a.stack.removeProxy(proxy)
}

func (a *animator) SetTransform(obj fyne.CanvasObject, scale, translateY float32) {
	a.change(obj, func(st *visualState) {
		st.scale = scale
		st.translate = translateY
	})
}

func (a *animator) SetOpacity(obj fyne.CanvasObject, alpha float32) {
	a.change(obj, func(st *visualState) {
		st.alpha = alpha
	})
}

func (a *animator) SetFrame(obj fyne.CanvasObject, frame Frame) {
	a.change(obj, func(st *visualState) {
		st.base = frame
	})
}

// SetSourceVisible hides the item's content only. Its handle stays visible so
// it keeps receiving the drag and release events.
func (a *animator) SetSourceVisible(item fyne.CanvasObject, visible bool) {
	if visible {
		item.Show()
	} else {
		item.Hide()
	}
	if h, ok := a.stack.handles[item]; ok {
		h.Refresh()
	}
}

func (a *animator) SetClipping(clip bool) {
	a.clip = clip
}

func (a *animator) Animate(anim Animation, body func(), completion func()) {
	tx := newTransaction()
	outer := a.tx
	a.tx = tx
	if body != nil {
		body()
	}
	a.tx = outer
	a.run(anim, tx, completion)
}

func (a *animator) AnimateLayout(anim Animation) {
	tx := newTransaction()
	for _, item := range a.stack.list.Items() {
		a.record(tx, a.drawn(item))
	}
	a.run(anim, tx, nil)
}

// layout places every object that is not mid-animation at its target.
func (a *animator) layout() {
	for _, item := range a.stack.list.Items() {
		d := a.drawn(item)
		st := a.stateFor(d)
		if st.owner == 0 {
			a.apply(d, a.target(d, st), st.alpha)
		}
	}
	for _, p := range a.stack.proxies {
		if st, ok := a.states[p]; ok && st.owner == 0 {
			a.apply(p, a.target(p, st), st.alpha)
		}
	}
}

func (a *animator) run(anim Animation, tx *transaction, completion func()) {
	a.lastID++
	id := a.lastID
	for _, d := range tx.order {
		if st, ok := a.states[d]; ok {
			st.owner = id
		}
	}

	curve := SpringCurve(anim.Damping, anim.Velocity)
	done := false
	tick := func(p float32) {
		if done {
			return
		}
		v := curve(p)
		for _, d := range tx.order {
			st, ok := a.states[d]
			if !ok || st.owner != id {
				continue
			}
			to := a.target(d, st)
			if p >= 1 {
				st.owner = 0
				a.apply(d, to, st.alpha)
				continue
			}
			from := tx.from[d]
			a.apply(d, from.frame.Lerp(to, v), lerp(from.alpha, st.alpha, v))
		}
		if p >= 1 {
			done = true
			if completion != nil {
				completion()
			}
		}
	}

	if anim.Duration <= 0 || len(tx.order) == 0 {
		tick(1)
		return
	}
	fa := fyne.NewAnimation(anim.Duration, tick)
	fa.Curve = fyne.AnimationLinear
	a.start(fa)
}

func (a *animator) change(obj fyne.CanvasObject, mutate func(*visualState)) {
	d := a.drawn(obj)
	st := a.stateFor(d)
	if a.tx != nil {
		a.record(a.tx, d)
		mutate(st)
		return
	}
	mutate(st)
	st.owner = 0
	a.apply(d, a.target(d, st), st.alpha)
}

func (a *animator) record(tx *transaction, d fyne.CanvasObject) {
	if _, seen := tx.from[d]; seen {
		return
	}
	a.stateFor(d)
	tx.from[d] = a.current(d)
	tx.order = append(tx.order, d)
}

func (a *animator) drawn(obj fyne.CanvasObject) fyne.CanvasObject {
	if h, ok := a.stack.handles[obj]; ok {
		return h
	}
	return obj
}

func (a *animator) stateFor(d fyne.CanvasObject) *visualState {
	st, ok := a.states[d]
	if !ok {
		st = &visualState{base: FrameOf(d), scale: 1, alpha: 1}
		a.states[d] = st
	}
	return st
}

func (a *animator) forget(d fyne.CanvasObject) {
	delete(a.states, d)
}

func (a *animator) target(d fyne.CanvasObject, st *visualState) Frame {
	base := st.base
	if h, ok := d.(*dragHandle); ok {
		if f, ok := a.stack.list.Frame(h.content); ok {
			base = f
		}
	}
	f := base.Transformed(st.scale, st.translate)
	if _, isProxy := d.(*dragProxy); isProxy && a.clip {
		if bounds := a.stack.Size(); bounds.Height > 0 && bounds.Width > 0 {
			f = f.Clamped(bounds)
		}
	}
	return f
}

func (a *animator) current(d fyne.CanvasObject) visualSnapshot {
	alpha := float32(1)
	if p, ok := d.(*dragProxy); ok {
		alpha = p.alpha
	}
	return visualSnapshot{frame: FrameOf(d), alpha: alpha}
}

func (a *animator) apply(d fyne.CanvasObject, f Frame, alpha float32) {
	d.Move(f.Position)
	d.Resize(f.Size)
	if p, ok := d.(*dragProxy); ok {
		p.setAlpha(alpha)
	}
}
