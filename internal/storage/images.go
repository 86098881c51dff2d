package storage

import (
	"bytes"
	"image"
	"io"

	// register decoders for the formats clients actually upload
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/salonlink/salon-scheduler/internal/httperr"
)

const (
	maxPhotoEdge = 800
	webpQuality  = 80
)

// normalizePhoto decodes an uploaded image, scales it down to fit
// maxPhotoEdge and re-encodes as webp. Every stored photo ends up in the
// same format and size class regardless of what the client sent.
func normalizePhoto(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxPhotoEdge || h > maxPhotoEdge {
		if w >= h {
			h = h * maxPhotoEdge / w
			w = maxPhotoEdge
		} else {
			w = w * maxPhotoEdge / h
			h = maxPhotoEdge
		}

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
