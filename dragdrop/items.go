package dragdrop

import (
	"fyne.io/fyne/v2"
)

// ItemList is the ordered sequence of draggable items together with the
// frames they occupy when stacked top to bottom. Index 0 is the topmost item.
//
// Frames are recomputed after every mutation so the post-reorder layout can
// be read back immediately, before any rendering happens.
type ItemList struct {
	items   []fyne.CanvasObject
	frames  []Frame
	width   float32
	spacing float32
}

// NewItemList creates a list with the given vertical spacing between items.
// Duplicate items are ignored.
func NewItemList(spacing float32, items ...fyne.CanvasObject) *ItemList {
	l := &ItemList{spacing: spacing}
	for _, item := range items {
		if item == nil || l.IndexOf(item) >= 0 {
			continue
		}
		l.items = append(l.items, item)
	}
	l.arrange()
	return l
}

func (l *ItemList) Len() int {
	return len(l.items)
}

// Items returns a copy of the items in display order.
func (l *ItemList) Items() []fyne.CanvasObject {
	out := make([]fyne.CanvasObject, len(l.items))
	copy(out, l.items)
	return out
}

// At returns the item at index, or nil when the index is out of range.
func (l *ItemList) At(index int) fyne.CanvasObject {
	if index < 0 || index >= len(l.items) {
		return nil
	}
	return l.items[index]
}

// IndexOf returns the current index of item, or -1 when it is not in the list.
func (l *ItemList) IndexOf(item fyne.CanvasObject) int {
	if item == nil {
		return -1
	}
	for i, o := range l.items {
		if o == item {
			return i
		}
	}
	return -1
}

// ItemBefore returns the item directly above index, or nil at the top.
func (l *ItemList) ItemBefore(index int) fyne.CanvasObject {
	return l.At(index - 1)
}

// ItemAfter returns the item directly below index, or nil at the bottom.
func (l *ItemList) ItemAfter(index int) fyne.CanvasObject {
	return l.At(index + 1)
}

// Add appends item to the bottom of the list. It reports false if the item
// is nil or already present.
func (l *ItemList) Add(item fyne.CanvasObject) bool {
	if item == nil || l.IndexOf(item) >= 0 {
		return false
	}
	l.items = append(l.items, item)
	l.arrange()
	return true
}

// Remove deletes item from the list, reporting whether it was present.
func (l *ItemList) Remove(item fyne.CanvasObject) bool {
	i := l.IndexOf(item)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.arrange()
	return true
}

// InsertAt moves item to index, removing it from its old position first when
// it is already in the list. Items at and after index shift down by one.
// The index is clamped to the valid range.
func (l *ItemList) InsertAt(item fyne.CanvasObject, index int) {
	if item == nil {
		return
	}
	if i := l.IndexOf(item); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
	}
	if index < 0 {
		index = 0
	}
	if index > len(l.items) {
		index = len(l.items)
	}

	l.items = append(l.items, nil)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = item
	l.arrange()
}

// Frame returns the laid out frame of item.
func (l *ItemList) Frame(item fyne.CanvasObject) (Frame, bool) {
	i := l.IndexOf(item)
	if i < 0 {
		return Frame{}, false
	}
	return l.frames[i], true
}

// FrameAt returns the laid out frame at index.
func (l *ItemList) FrameAt(index int) (Frame, bool) {
	if index < 0 || index >= len(l.frames) {
		return Frame{}, false
	}
	return l.frames[index], true
}

// Arrange recomputes all frames for a container of the given width.
func (l *ItemList) Arrange(width float32) {
	l.width = width
	l.arrange()
}

// SetSpacing changes the gap between consecutive items.
func (l *ItemList) SetSpacing(spacing float32) {
	l.spacing = spacing
	l.arrange()
}

// MinSize is the smallest size that fits every item stacked vertically.
// Hidden items keep their slot, as the dragged source does while its proxy is shown.
func (l *ItemList) MinSize() fyne.Size {
	var size fyne.Size
	for i, item := range l.items {
		itemMin := item.MinSize()
		size.Width = fyne.Max(size.Width, itemMin.Width)
		size.Height += itemMin.Height
		if i > 0 {
			size.Height += l.spacing
		}
	}
	return size
}

func (l *ItemList) arrange() {
	l.frames = l.frames[:0]
	width := fyne.Max(l.width, 0)
	y := float32(0)
	for i, item := range l.items {
		if i > 0 {
			y += l.spacing
		}
		itemMin := item.MinSize()
		w := width
		if w == 0 {
			w = itemMin.Width
		}
		l.frames = append(l.frames, NewFrame(0, y, w, itemMin.Height))
		y += itemMin.Height
	}
}
