package dragdrop

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// dragProxy is the floating stand-in drawn above the stack while an item is
// dragged. It shows a snapshot of the item over a rounded shadow.
type dragProxy struct {
	widget.BaseWidget

	bg    *canvas.Rectangle
	image *canvas.Image
	alpha float32

	shadow color.Color
}

func newDragProxy(img image.Image, cornerRadius float32) *dragProxy {
	p := &dragProxy{
		bg:     canvas.NewRectangle(theme.Color(theme.ColorNameShadow)),
		image:  canvas.NewImageFromImage(img),
		alpha:  1,
		shadow: theme.Color(theme.ColorNameShadow),
	}
	p.bg.CornerRadius = cornerRadius
	p.image.FillMode = canvas.ImageFillStretch
	p.image.ScaleMode = canvas.ImageScaleSmooth
	if img == nil {
		p.image.Hide()
		p.bg.FillColor = theme.Color(theme.ColorNameHover)
		p.shadow = p.bg.FillColor
	}
	p.ExtendBaseWidget(p)
	return p
}

func (p *dragProxy) setAlpha(alpha float32) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	if p.alpha == alpha {
		return
	}
	p.alpha = alpha
	p.image.Translucency = 1 - float64(alpha)

	c := color.NRGBAModel.Convert(p.shadow).(color.NRGBA)
	c.A = uint8(float32(c.A) * alpha)
	p.bg.FillColor = c
	p.Refresh()
}

func (p *dragProxy) CreateRenderer() fyne.WidgetRenderer {
	return &dragProxyRenderer{p: p}
}

type dragProxyRenderer struct {
	p *dragProxy
}

func (r *dragProxyRenderer) Layout(size fyne.Size) {
	r.p.bg.Resize(size)
	r.p.image.Resize(size)
	r.p.image.Move(fyne.NewPos(0, 0))
}

func (r *dragProxyRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *dragProxyRenderer) Refresh() {
	r.p.bg.Refresh()
	r.p.image.Refresh()
}

func (r *dragProxyRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.p.bg, r.p.image}
}

func (r *dragProxyRenderer) Destroy() {}
