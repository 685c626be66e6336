package imaging

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

// Lado máximo da foto de perfil após o redimensionamento
const maxEdge = 512

// ToProfileWebP decodifica a imagem enviada (JPEG, PNG ou WebP), limita ao
// tamanho máximo e recodifica em WebP.
func ToProfileWebP(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		src, err = webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
	}

	src = shrink(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func shrink(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
