package slideshow

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Frame geometry. Portrait phone-shaped frames, white background.
const (
	frameW = 480
	frameH = 720

	marginTop = 80

	charFontSize    = 202
	pinyinFontSize  = 74
	englishFontSize = 58

	// Vertical gaps between the three text blocks
	charY    = marginTop
	pinyinY  = charY + charFontSize + 62
	englishY = pinyinY + pinyinFontSize + 47
)

var (
	bgColor      = color.RGBA{255, 255, 255, 255}
	textColor    = color.RGBA{0, 0, 0, 255}
	pinyinColor  = color.RGBA{100, 100, 100, 255}
	englishColor = color.RGBA{80, 80, 80, 255}
)

var cjkFontCandidates = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
}

var latinFontCandidates = []string{
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
	"/usr/share/fonts/noto/NotoSans-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// Renderer draws slideshow frames. All frames of one card keep the hanzi,
// pinyin and english at identical positions so the slides read as one
// progressively revealed image.
type Renderer struct {
	char    font.Face
	pinyin  font.Face
	english font.Face
}

// NewRenderer loads the CJK and Latin fonts. A CJK font is required; a
// missing Latin font falls back to the CJK face, which covers Latin too.
func NewRenderer(cjkPath, latinPath string) (*Renderer, error) {
	cjkPath = firstExistingFont(cjkPath, cjkFontCandidates)
	if cjkPath == "" {
		return nil, fmt.Errorf("no CJK font found; set fonts.cjk in the config")
	}
	cjk, err := loadFont(cjkPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load CJK font: %w", err)
	}

	latin := cjk
	if path := firstExistingFont(latinPath, latinFontCandidates); path != "" {
		latin, err = loadFont(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load Latin font: %w", err)
		}
	}

	charFace, err := newFace(cjk, charFontSize)
	if err != nil {
		return nil, err
	}
	pinyinFace, err := newFace(latin, pinyinFontSize)
	if err != nil {
		return nil, err
	}
	englishFace, err := newFace(latin, englishFontSize)
	if err != nil {
		return nil, err
	}

	return &Renderer{char: charFace, pinyin: pinyinFace, english: englishFace}, nil
}

// FrameChar renders the hanzi alone.
func (r *Renderer) FrameChar(hanzi string) *image.RGBA {
	img := newFrame()
	drawCentered(img, hanzi, r.char, charY, textColor)
	return img
}

// FrameCharPinyin renders the hanzi with the pinyin below it.
func (r *Renderer) FrameCharPinyin(hanzi, pinyin string) *image.RGBA {
	img := newFrame()
	drawCentered(img, hanzi, r.char, charY, textColor)
	drawCentered(img, pinyin, r.pinyin, pinyinY, pinyinColor)
	return img
}

// FrameCharDiagram renders the hanzi with its stroke-order diagram below.
func (r *Renderer) FrameCharDiagram(hanzi string, diagram image.Image) *image.RGBA {
	img := newFrame()
	drawCentered(img, hanzi, r.char, charY, textColor)

	b := diagram.Bounds()
	x := (frameW - b.Dx()) / 2
	y := pinyinY
	draw.Draw(img, image.Rect(x, y, x+b.Dx(), y+b.Dy()), diagram, b.Min, draw.Over)
	return img
}

// FrameAll renders hanzi, pinyin and english gloss.
func (r *Renderer) FrameAll(hanzi, pinyin, english string) *image.RGBA {
	img := newFrame()
	drawCentered(img, hanzi, r.char, charY, textColor)
	drawCentered(img, pinyin, r.pinyin, pinyinY, pinyinColor)
	drawCentered(img, english, r.english, englishY, englishColor)
	return img
}

func newFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frameW, frameH))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)
	return img
}

// drawCentered draws text horizontally centered with its top edge at topY.
func drawCentered(img *image.RGBA, text string, face font.Face, topY int, col color.Color) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	width := d.MeasureString(text).Ceil()
	x := (frameW - width) / 2
	baseline := topY + face.Metrics().Ascent.Ceil()
	d.Dot = fixed.P(x, baseline)
	d.DrawString(text)
}

func loadFont(path string) (*sfnt.Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// .ttc collections hold several fonts; take the first
	if strings.HasSuffix(strings.ToLower(path), ".ttc") {
		coll, err := opentype.ParseCollection(b)
		if err != nil {
			return nil, err
		}
		return coll.Font(0)
	}
	return opentype.Parse(b)
}

func newFace(f *sfnt.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func firstExistingFont(configured string, candidates []string) string {
	if configured != "" {
		return configured
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
