package dragdrop

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

type fakeRenderer struct {
	proxies    []fyne.CanvasObject
	removed    []fyne.CanvasObject
	hidden     map[fyne.CanvasObject]bool
	transforms map[fyne.CanvasObject][2]float32
	opacity    map[fyne.CanvasObject]float32
	frames     map[fyne.CanvasObject]Frame
	clip       bool
	layouts    int
	animations int

	holdCompletions bool
	pending         []func()
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		hidden:     make(map[fyne.CanvasObject]bool),
		transforms: make(map[fyne.CanvasObject][2]float32),
		opacity:    make(map[fyne.CanvasObject]float32),
		frames:     make(map[fyne.CanvasObject]Frame),
	}
}

func (r *fakeRenderer) CreateProxy(source fyne.CanvasObject, frame Frame) fyne.CanvasObject {
	p := canvas.NewRectangle(color.White)
	r.proxies = append(r.proxies, p)
	r.frames[p] = frame
	return p
}

func (r *fakeRenderer) RemoveProxy(proxy fyne.CanvasObject) {
	r.removed = append(r.removed, proxy)
}

func (r *fakeRenderer) SetTransform(obj fyne.CanvasObject, scale, translateY float32) {
	r.transforms[obj] = [2]float32{scale, translateY}
}

func (r *fakeRenderer) SetOpacity(obj fyne.CanvasObject, alpha float32) {
	r.opacity[obj] = alpha
}

func (r *fakeRenderer) SetFrame(obj fyne.CanvasObject, frame Frame) {
	r.frames[obj] = frame
}

func (r *fakeRenderer) SetSourceVisible(item fyne.CanvasObject, visible bool) {
	r.hidden[item] = !visible
}

func (r *fakeRenderer) SetClipping(clip bool) {
	r.clip = clip
}

func (r *fakeRenderer) Animate(a Animation, body func(), completion func()) {
	r.animations++
	if body != nil {
		body()
	}
	if completion == nil {
		return
	}
	if r.holdCompletions {
		r.pending = append(r.pending, completion)
		return
	}
	completion()
}

func (r *fakeRenderer) AnimateLayout(Animation) {
	r.layouts++
}

type recordingDelegate struct {
	began, ended int
	moves        []bool
	lastMaxY     float32
	lastMinY     float32
}

func (d *recordingDelegate) DragBegan() { d.began++ }
func (d *recordingDelegate) DragEnded() { d.ended++ }
func (d *recordingDelegate) Dragging(up bool, maxY, minY float32) {
	d.moves = append(d.moves, up)
	d.lastMaxY, d.lastMinY = maxY, minY
}

func newRow(height float32) *canvas.Rectangle {
	r := canvas.NewRectangle(color.Black)
	r.SetMinSize(fyne.NewSize(50, height))
	return r
}

// testConfig uses a drag scale that is exact in binary floating point so
// threshold comparisons can be checked for equality.
func testConfig() Config {
	c := DefaultConfig()
	c.DragScale = 1.25
	return c
}

// newTestSession builds four 100 high rows A-D with no spacing, so row i
// spans [100i, 100i+100] and has its center at 100i+50.
func newTestSession(t *testing.T) (*Session, *ItemList, []fyne.CanvasObject, *fakeRenderer, *recordingDelegate) {
	t.Helper()
	rows := []fyne.CanvasObject{newRow(100), newRow(100), newRow(100), newRow(100)}
	list := NewItemList(0, rows...)
	list.Arrange(300)
	r := newFakeRenderer()
	d := &recordingDelegate{}
	return NewSession(list, r, d, testConfig()), list, rows, r, d
}

func assertOrder(t *testing.T, list *ItemList, want ...fyne.CanvasObject) {
	t.Helper()
	got := list.Items()
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected item at index %d (want index %d in original order)", i, indexIn(want, got[i]))
		}
	}
}

func indexIn(objs []fyne.CanvasObject, o fyne.CanvasObject) int {
	for i, x := range objs {
		if x == o {
			return i
		}
	}
	return -1
}

// With the default 4 unit began offset, a press at the row center puts the
// proxy center at pointer.Y + 4.
func TestSession_EndToEndDragDownTwice(t *testing.T) {
	s, list, rows, r, d := newTestSession(t)
	a, b, c, dd := rows[0], rows[1], rows[2], rows[3]

	if !s.Begin(a, fyne.NewPos(10, 50)) {
		t.Fatal("expected drag to begin")
	}
	if s.State() != Dragging || s.Item() != a {
		t.Fatalf("expected dragging A, got state %v", s.State())
	}

	if !s.Move(fyne.NewPos(10, 147)) {
		t.Fatal("expected swap with B once proxy center passes 150")
	}
	assertOrder(t, list, b, a, c, dd)

	if !s.Move(fyne.NewPos(10, 247)) {
		t.Fatal("expected swap with C once proxy center passes 250")
	}
	assertOrder(t, list, b, c, a, dd)

	s.End()
	assertOrder(t, list, b, c, a, dd)

	if s.State() != Idle {
		t.Fatalf("expected idle after end, got %v", s.State())
	}
	if d.began != 1 || d.ended != 1 {
		t.Fatalf("expected one begin and one end, got %d/%d", d.began, d.ended)
	}
	if r.layouts != 2 {
		t.Fatalf("expected a layout animation per swap, got %d", r.layouts)
	}
}

func TestSession_DownwardSwapBoundary(t *testing.T) {
	s, list, rows, _, _ := newTestSession(t)
	s.Begin(rows[0], fyne.NewPos(10, 50))

	// Proxy center exactly on B's center.
	if s.Move(fyne.NewPos(10, 146)) {
		t.Fatal("expected no swap when proxy center equals next center")
	}
	assertOrder(t, list, rows...)
	if got := s.ProxyFrame().MidY(); got != 150 {
		t.Fatalf("expected proxy midY 150, got %v", got)
	}

	if !s.Move(fyne.NewPos(10, 146.5)) {
		t.Fatal("expected swap just past next center")
	}
	assertOrder(t, list, rows[1], rows[0], rows[2], rows[3])
}

func TestSession_UpwardSwapBoundary(t *testing.T) {
	s, list, rows, _, d := newTestSession(t)
	s.Begin(rows[2], fyne.NewPos(10, 250))

	// B's center is 150; proxy center = pointer + 4.
	if s.Move(fyne.NewPos(10, 146)) {
		t.Fatal("expected no swap when proxy center equals previous center")
	}
	if !d.moves[len(d.moves)-1] {
		t.Fatal("expected upward direction")
	}
	assertOrder(t, list, rows...)

	if !s.Move(fyne.NewPos(10, 145)) {
		t.Fatal("expected swap just past previous center")
	}
	assertOrder(t, list, rows[0], rows[2], rows[1], rows[3])
	if !s.MovingUp() {
		t.Fatal("expected session to report upward movement")
	}
}

func TestSession_SwapUpdatesDropPointAndFinalFrame(t *testing.T) {
	s, list, rows, _, _ := newTestSession(t)
	a := rows[0]
	s.Begin(a, fyne.NewPos(10, 50))

	if got := s.DropPoint().Y; got != 46 {
		t.Fatalf("expected initial drop point 46, got %v", got)
	}

	s.Move(fyne.NewPos(10, 160))
	if idx := list.IndexOf(a); idx != 1 {
		t.Fatalf("expected dragged item at index 1, got %d", idx)
	}
	frame, _ := list.Frame(a)
	if s.DropPoint().Y != frame.MidY() {
		t.Fatalf("expected drop point %v, got %v", frame.MidY(), s.DropPoint().Y)
	}
	if s.FinalFrame() != frame {
		t.Fatalf("expected final frame %+v, got %+v", frame, s.FinalFrame())
	}
}

func TestSession_MovesWithoutCrossingKeepOrder(t *testing.T) {
	s, list, rows, _, d := newTestSession(t)
	s.Begin(rows[1], fyne.NewPos(10, 150))

	for _, y := range []float32{150, 170, 200, 240, 180, 120, 60, 47, 100} {
		if s.Move(fyne.NewPos(10, y)) {
			t.Fatalf("unexpected swap at pointer y %v", y)
		}
	}
	assertOrder(t, list, rows...)
	if len(d.moves) != 9 {
		t.Fatalf("expected a dragging signal per move, got %d", len(d.moves))
	}
}

func TestSession_DirectionUsesDropPoint(t *testing.T) {
	s, _, rows, _, d := newTestSession(t)
	s.Begin(rows[1], fyne.NewPos(10, 150))

	// Drop point is 146. Proxy center 154 is below it even though the
	// pointer moved up from the previous sample.
	s.Move(fyne.NewPos(10, 180))
	s.Move(fyne.NewPos(10, 150))
	if d.moves[1] {
		t.Fatal("expected downward direction while proxy center is below the drop point")
	}

	s.Move(fyne.NewPos(10, 100))
	if !d.moves[2] {
		t.Fatal("expected upward direction once proxy center is above the drop point")
	}
}

func TestSession_DraggingReportsProxyExtent(t *testing.T) {
	s, _, rows, _, d := newTestSession(t)
	s.Begin(rows[0], fyne.NewPos(10, 50))
	s.Move(fyne.NewPos(10, 76))

	// Start frame [0,100] scaled by 1.25 about its center is [-12.5,112.5], moved by 30.
	if d.lastMinY != 17.5 || d.lastMaxY != 142.5 {
		t.Fatalf("expected extent [17.5,142.5], got [%v,%v]", d.lastMinY, d.lastMaxY)
	}
}

func TestSession_LastItemNeverSwapsDown(t *testing.T) {
	s, list, rows, _, _ := newTestSession(t)
	s.Begin(rows[3], fyne.NewPos(10, 350))

	for _, y := range []float32{400, 1000, 10000} {
		if s.Move(fyne.NewPos(10, y)) {
			t.Fatalf("unexpected swap for last item at y %v", y)
		}
	}
	assertOrder(t, list, rows...)
}

func TestSession_FirstItemNeverSwapsUp(t *testing.T) {
	s, list, rows, _, _ := newTestSession(t)
	s.Begin(rows[0], fyne.NewPos(10, 50))

	if s.Move(fyne.NewPos(10, -500)) {
		t.Fatal("unexpected swap for first item moving up")
	}
	assertOrder(t, list, rows...)
}

func TestSession_BeginWhileDraggingIsRejected(t *testing.T) {
	s, _, rows, r, d := newTestSession(t)
	s.Begin(rows[0], fyne.NewPos(10, 50))
	before := s.DropPoint()

	if s.Begin(rows[2], fyne.NewPos(10, 250)) {
		t.Fatal("expected second begin to be rejected")
	}
	if s.DropPoint() != before || s.Item() != rows[0] || s.StartIndex() != 0 {
		t.Fatal("second begin must not reset the running drag")
	}
	if d.began != 1 || len(r.proxies) != 1 {
		t.Fatalf("expected one begin and one proxy, got %d/%d", d.began, len(r.proxies))
	}
}

func TestSession_BeginRejectsUnknownItem(t *testing.T) {
	s, _, _, r, d := newTestSession(t)
	if s.Begin(newRow(100), fyne.NewPos(0, 0)) {
		t.Fatal("expected begin with a foreign item to fail")
	}
	if s.State() != Idle || d.began != 0 || len(r.proxies) != 0 {
		t.Fatal("rejected begin must have no side effects")
	}
}

func TestSession_MoveAndEndWhileIdleAreNoOps(t *testing.T) {
	s, list, rows, r, d := newTestSession(t)
	if s.Move(fyne.NewPos(10, 1000)) {
		t.Fatal("expected no swap while idle")
	}
	s.End()
	s.Cancel()
	assertOrder(t, list, rows...)
	if d.ended != 0 || len(d.moves) != 0 || r.animations != 0 {
		t.Fatal("expected no callbacks while idle")
	}
}

func TestSession_CancelKeepsCommittedSwaps(t *testing.T) {
	s, list, rows, _, d := newTestSession(t)
	s.Begin(rows[0], fyne.NewPos(10, 50))
	s.Move(fyne.NewPos(10, 160))
	s.Cancel()

	assertOrder(t, list, rows[1], rows[0], rows[2], rows[3])
	if d.ended != 1 {
		t.Fatalf("expected cancel to signal drag end, got %d", d.ended)
	}
}

func TestSession_VisualEffects(t *testing.T) {
	s, _, rows, r, _ := newTestSession(t)
	cfg := testConfig()
	r.holdCompletions = true

	s.Begin(rows[1], fyne.NewPos(10, 150))
	if len(r.proxies) != 1 {
		t.Fatalf("expected a proxy, got %d", len(r.proxies))
	}
	proxy := r.proxies[0]
	if !r.hidden[rows[1]] {
		t.Fatal("expected dragged source to be hidden")
	}
	if got := r.transforms[proxy]; got != [2]float32{cfg.DragScale, cfg.DragBeganOffsetY} {
		t.Fatalf("unexpected proxy transform %v", got)
	}
	if r.opacity[proxy] != cfg.ProxyAlpha {
		t.Fatalf("expected proxy alpha %v, got %v", cfg.ProxyAlpha, r.opacity[proxy])
	}
	for i, row := range rows {
		if i == 1 {
			continue
		}
		if got := r.transforms[row]; got[0] != cfg.OtherScale {
			t.Fatalf("expected row %d scaled to %v, got %v", i, cfg.OtherScale, got[0])
		}
	}

	s.Move(fyne.NewPos(10, 160))
	s.End()

	// Drop body ran, completion has not.
	if got := r.transforms[proxy]; got != [2]float32{1, 0} {
		t.Fatalf("expected proxy back to identity, got %v", got)
	}
	if r.frames[proxy] != s.FinalFrame() {
		t.Fatal("expected proxy to land on the final frame")
	}
	if len(r.removed) != 0 || !r.hidden[rows[1]] {
		t.Fatal("cleanup must wait for the drop animation to settle")
	}

	for _, f := range r.pending {
		f()
	}
	if len(r.removed) != 1 || r.removed[0] != proxy {
		t.Fatal("expected proxy removed on settle")
	}
	if r.hidden[rows[1]] {
		t.Fatal("expected source visible again on settle")
	}
	for i, row := range rows {
		if got := r.transforms[row]; got != [2]float32{1, 0} {
			t.Fatalf("expected row %d restored to identity, got %v", i, got)
		}
	}
}

func TestSession_NilDelegate(t *testing.T) {
	rows := []fyne.CanvasObject{newRow(40), newRow(40)}
	list := NewItemList(0, rows...)
	s := NewSession(list, newFakeRenderer(), nil, testConfig())

	s.Begin(rows[0], fyne.NewPos(0, 20))
	s.Move(fyne.NewPos(0, 100))
	s.End()
	assertOrder(t, list, rows[1], rows[0])
}
