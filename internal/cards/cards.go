package cards

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"codeberg.org/laohu/zhkit/internal/strokes"
	"codeberg.org/laohu/zhkit/internal/vocab"
)

// Layout constants, all in millimeters on A4 paper. 6 cards per page,
// 2 columns by 3 rows.
const (
	pageW = 210.0
	pageH = 297.0

	cols = 2
	rows = 3

	marginX = 15.0
	marginY = 15.0

	cardW = (pageW - 2*marginX) / cols
	cardH = (pageH - 2*marginY) / rows

	cardsPerPage = cols * rows

	// Ratio of the practice grid / stroke diagram to the card's short side
	gridRatio   = 0.72
	strokeRatio = 0.85
	// Hanzi font size as a fraction of the card's short side
	charRatio = 0.52

	detailFontPt = 11.0
	detailPad    = 4.0

	strokeRasterPx = 512
)

// Options configures the card sheet generator
type Options struct {
	Output        string // Output PDF path
	CJKFontPath   string // TTF with CJK coverage; empty tries the candidates
	LatinFontPath string // TTF for the detail text; empty tries the candidates
	StrokeDir     string // Local stroke SVG cache ({codepoint}.svg); empty disables diagrams
}

// Font locations tried when Options does not name a font.
var cjkFontCandidates = []string{
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/arphic/uming.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttf",
}

var latinFontCandidates = []string{
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
	"/usr/share/fonts/noto/NotoSans-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// Generator renders a vocabulary file as double-sided A4 flashcard sheets.
// Fronts show the hanzi large, over a 田字格 practice grid or a stroke-order
// diagram when one is cached. Backs are horizontally mirrored so cards line
// up when the sheet is printed double-sided and print the remaining columns
// across the top, leaving room for handwritten notes.
type Generator struct {
	options   *Options
	cjkFont   string // font family actually registered, "" means core fallback
	latinFont string
}

// NewGenerator creates a new card sheet generator
func NewGenerator(options *Options) *Generator {
	if options == nil {
		options = &Options{Output: "cards.pdf"}
	}
	return &Generator{options: options}
}

// Generate writes the PDF.
func (g *Generator) Generate(file *vocab.File) error {
	if len(file.Entries) == 0 {
		return fmt.Errorf("vocabulary file has no entries")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	g.registerFonts(pdf)

	totalPages := (len(file.Entries) + cardsPerPage - 1) / cardsPerPage

	for page := 0; page < totalPages; page++ {
		start := page * cardsPerPage
		end := start + cardsPerPage
		if end > len(file.Entries) {
			end = len(file.Entries)
		}
		batch := file.Entries[start:end]

		// Front page
		pdf.AddPage()
		for i, entry := range batch {
			x, y, w, h := cardRect(i%cols, i/cols)
			g.drawFront(pdf, x, y, w, h, entry.Hanzi)
		}

		// Back page, mirrored horizontally for double-sided printing
		pdf.AddPage()
		for i, entry := range batch {
			x, y, w, h := cardRect(mirrorCol(i%cols), i/cols)
			g.drawBack(pdf, x, y, w, h, entry.Details(file.Columns))
		}
	}

	if err := pdf.OutputFileAndClose(g.options.Output); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Printf("Written %s (%d cards, %d pages)\n", g.options.Output, len(file.Entries), totalPages*2)
	return nil
}

// registerFonts loads the configured or first available TTF fonts. Without
// a CJK font the hanzi degrade to the core font, same as the sheets did
// before a font was installed.
func (g *Generator) registerFonts(pdf *fpdf.Fpdf) {
	if path := firstExisting(g.options.CJKFontPath, cjkFontCandidates); path != "" {
		pdf.AddUTF8Font("cjk", "", path)
		if pdf.Err() {
			pdf.ClearError()
		} else {
			g.cjkFont = "cjk"
		}
	}
	if path := firstExisting(g.options.LatinFontPath, latinFontCandidates); path != "" {
		pdf.AddUTF8Font("latin", "", path)
		if pdf.Err() {
			pdf.ClearError()
		} else {
			g.latinFont = "latin"
		}
	}
}

func (g *Generator) drawFront(pdf *fpdf.Fpdf, x, y, w, h float64, hanzi string) {
	drawBorder(pdf, x, y, w, h)

	// Single characters get their stroke-order diagram when one is cached
	if g.options.StrokeDir != "" && utf8.RuneCountInString(hanzi) == 1 {
		if g.drawStrokeDiagram(pdf, x, y, w, h, hanzi) {
			return
		}
	}

	drawGrid(pdf, x, y, w, h)

	fontSize := min(w, h) * charRatio
	family := g.cjkFont
	if family == "" {
		family = "Helvetica"
	}
	pdf.SetFont(family, "", 0)
	pdf.SetFontUnitSize(fontSize)
	pdf.SetTextColor(0, 0, 0)

	tw := pdf.GetStringWidth(hanzi)
	tx := x + (w-tw)/2
	ty := y + (h+fontSize)/2 - fontSize*0.1
	pdf.Text(tx, ty, hanzi)
}

func (g *Generator) drawBack(pdf *fpdf.Fpdf, x, y, w, h float64, details string) {
	drawBorder(pdf, x, y, w, h)
	if details == "" {
		return
	}

	family := g.latinFont
	if family == "" {
		family = "Helvetica"
	}
	// Pinyin detail cells carry diacritics, which the core font lacks;
	// fall back to the CJK font when no latin TTF was registered.
	if g.latinFont == "" && g.cjkFont != "" {
		family = g.cjkFont
	}
	pdf.SetFont(family, "", detailFontPt)
	pdf.SetTextColor(38, 38, 38)
	pdf.Text(x+detailPad, y+detailPad+detailFontPt*0.3528, details)
}

// drawStrokeDiagram embeds the rasterized stroke SVG if present. Reports
// whether the diagram was drawn.
func (g *Generator) drawStrokeDiagram(pdf *fpdf.Fpdf, x, y, w, h float64, hanzi string) bool {
	char, _ := utf8.DecodeRuneInString(hanzi)
	svgPath := fmt.Sprintf("%s/%d.svg", g.options.StrokeDir, char)
	if _, err := os.Stat(svgPath); err != nil {
		return false
	}

	pngData, err := strokes.RasterizePNG(svgPath, strokeRasterPx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to rasterize stroke SVG for %s: %v\n", hanzi, err)
		return false
	}

	name := fmt.Sprintf("stroke-%d", char)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(pngData))

	side := min(w, h) * strokeRatio
	ix := x + (w-side)/2
	iy := y + (h-side)/2
	pdf.ImageOptions(name, ix, iy, side, side, false, opts, 0, "")
	return true
}

// drawBorder draws the cut line around a card
func drawBorder(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(102, 102, 102)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "D")
}

// drawGrid draws a 田字格 practice grid inside the card area
func drawGrid(pdf *fpdf.Fpdf, x, y, w, h float64) {
	side := min(w, h) * gridRatio
	gx := x + (w-side)/2
	gy := y + (h-side)/2

	// Outer square
	pdf.SetDrawColor(102, 102, 102)
	pdf.SetLineWidth(0.28)
	pdf.Rect(gx, gy, side, side, "D")

	// Dashed cross
	pdf.SetDrawColor(209, 209, 209)
	pdf.SetLineWidth(0.18)
	pdf.SetDashPattern([]float64{1.2, 1.2}, 0)
	pdf.Line(gx+side/2, gy, gx+side/2, gy+side)
	pdf.Line(gx, gy+side/2, gx+side, gy+side/2)
	pdf.SetDashPattern([]float64{}, 0)
}

// cardRect returns the top-left corner and size of a card position.
func cardRect(col, row int) (x, y, w, h float64) {
	x = marginX + float64(col)*cardW
	y = marginY + float64(row)*cardH
	return x, y, cardW, cardH
}

// mirrorCol swaps the column so back pages align with front pages when
// the sheet is flipped on its long edge.
func mirrorCol(col int) int {
	return (cols - 1) - col
}

func firstExisting(configured string, candidates []string) string {
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
