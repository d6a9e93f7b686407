package dragdrop

import (
	"errors"
	"image"

	"fyne.io/fyne/v2"
	"golang.org/x/image/draw"
)

var errNoCanvas = errors.New("object is not on a canvas")

// snapshot captures obj as it is currently drawn, pre-scaled by scale so the
// proxy stays sharp when enlarged. It returns nil when obj cannot be captured.
func snapshot(obj fyne.CanvasObject, scale float32) image.Image {
	app := fyne.CurrentApp()
	if app == nil || obj.Size().IsZero() {
		return nil
	}
	c := app.Driver().CanvasForObject(obj)
	if c == nil {
		fyne.LogError("could not snapshot drag item", errNoCanvas)
		return nil
	}

	full := c.Capture()
	if full == nil {
		return nil
	}
	pos := app.Driver().AbsolutePositionForObject(obj)
	return cropScaled(full, pixelRect(pos, obj.Size(), c.Scale()), scale)
}

func pixelRect(pos fyne.Position, size fyne.Size, pixelScale float32) image.Rectangle {
	return image.Rect(
		int(pos.X*pixelScale),
		int(pos.Y*pixelScale),
		int((pos.X+size.Width)*pixelScale),
		int((pos.Y+size.Height)*pixelScale),
	)
}

// cropScaled copies rect out of src resampled by scale.
func cropScaled(src image.Image, rect image.Rectangle, scale float32) image.Image {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil
	}
	if scale <= 0 {
		scale = 1
	}

	w := max(int(float32(rect.Dx())*scale), 1)
	h := max(int(float32(rect.Dy())*scale), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, rect, draw.Src, nil)
	return dst
}
