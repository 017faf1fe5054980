package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// AvatarGenerator produit l'avatar PNG par défaut d'un utilisateur à partir
// de la première lettre de son nom. Le rendu est déterministe: même lettre,
// même image.
type AvatarGenerator interface {
	Generate(letter rune, width, height int) ([]byte, error)
}

var Avatars AvatarGenerator = &letterAvatarGenerator{}

type letterAvatarGenerator struct{}

func (g *letterAvatarGenerator) Generate(letter rune, width, height int) ([]byte, error) {
	background := letterColor(letter)
	foreground := color.RGBA{0, 0, 0, 255}
	if isColorDark(background) {
		foreground = color.RGBA{255, 255, 255, 255}
	}

	// La lettre est dessinée sur une petite tuile avec la fonte bitmap, puis
	// agrandie au plus proche voisin pour garder des bords nets
	tileW, tileH := width/4, height/4
	tile := image.NewRGBA(image.Rect(0, 0, tileW, tileH))
	xdraw.Draw(tile, tile.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  tile,
		Src:  image.NewUniform(foreground),
		Face: face,
	}
	advance := drawer.MeasureString(string(letter))
	drawer.Dot = fixed.Point26_6{
		X: (fixed.I(tileW) - advance) / 2,
		Y: fixed.I((tileH-face.Height)/2 + face.Ascent),
	}
	drawer.DrawString(string(letter))

	avatar := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(avatar, avatar.Bounds(), tile, tile.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, avatar); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func letterColor(letter rune) color.RGBA {
	ascii := int(letter)
	return color.RGBA{
		R: uint8(ascii * 123 % 256),
		G: uint8(ascii * 321 % 256),
		B: uint8(ascii * 543 % 256),
		A: 255,
	}
}

func isColorDark(c color.RGBA) bool {
	luminance := (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
	return luminance <= 0.5
}
