// Package pdf renders generated curriculum text into PDF documents.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// Artifact describes a rendered PDF on disk.
type Artifact struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Pages    int    `json:"pages"`
	Size     int64  `json:"size"`
}

// Renderer writes curriculum documents as PDFs into an output directory.
type Renderer struct {
	outputDir string
}

// NewRenderer creates a renderer that writes into outputDir, creating the
// directory if needed.
func NewRenderer(outputDir string) (*Renderer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("pdf: create output dir: %w", err)
	}
	return &Renderer{outputDir: outputDir}, nil
}

// OutputDir returns the directory rendered files are written to.
func (r *Renderer) OutputDir() string { return r.outputDir }

var filenameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Filename builds a collision-free file name for a document. A random
// fragment keeps concurrent requests for the same grade from clobbering
// each other.
func Filename(docType, grade string) string {
	grade = filenameUnsafe.ReplaceAllString(strings.ToLower(grade), "_")
	fragment := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s.pdf", docType, grade, fragment)
}

// Render writes content as a PDF and returns the artifact metadata.
// The content is treated as lightweight markdown: #/##/### headings,
// "-"/"*" bullets, numbered items, and **bold** spans.
func (r *Renderer) Render(filename, title, subtitle, content string) (*Artifact, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(25.4, 25.4, 25.4)
	doc.SetAutoPageBreak(true, 25.4)
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "I", 8)
		doc.SetTextColor(128, 128, 128)
		doc.CellFormat(0, 10, fmt.Sprintf("Page %d", doc.PageNo()), "", 0, "C", false, 0, "")
	})
	doc.AddPage()

	// Core fonts are cp1252. Model output carries em dashes and curly
	// quotes, so every string has to go through the translator.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 18)
	doc.MultiCell(0, 9, tr(title), "", "C", false)
	if subtitle != "" {
		doc.SetFont("Helvetica", "", 12)
		doc.SetTextColor(90, 90, 90)
		doc.MultiCell(0, 6, tr(subtitle), "", "C", false)
	}
	doc.Ln(2)
	doc.SetDrawColor(180, 180, 180)
	x0, y := doc.GetX(), doc.GetY()
	w, _ := doc.GetPageSize()
	doc.Line(x0, y, w-25.4, y)
	doc.Ln(6)
	doc.SetTextColor(0, 0, 0)

	writeBody(doc, tr, content)

	path := filepath.Join(r.outputDir, filename)
	if err := doc.OutputFileAndClose(path); err != nil {
		return nil, fmt.Errorf("pdf: write %s: %w", filename, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("pdf: stat %s: %w", filename, err)
	}
	return &Artifact{
		Filename: filename,
		Path:     path,
		Pages:    doc.PageCount(),
		Size:     info.Size(),
	}, nil
}

var (
	numberedItem = regexp.MustCompile(`^\d+[.)]\s+`)
	boldSpan     = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

func writeBody(doc *fpdf.Fpdf, tr func(string) string, content string) {
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			doc.Ln(3)
		case strings.HasPrefix(trimmed, "### "):
			doc.SetFont("Helvetica", "B", 12)
			doc.MultiCell(0, 6, tr(strings.TrimPrefix(trimmed, "### ")), "", "L", false)
			doc.Ln(1)
		case strings.HasPrefix(trimmed, "## "):
			doc.SetFont("Helvetica", "B", 14)
			doc.MultiCell(0, 7, tr(strings.TrimPrefix(trimmed, "## ")), "", "L", false)
			doc.Ln(1)
		case strings.HasPrefix(trimmed, "# "):
			doc.SetFont("Helvetica", "B", 16)
			doc.MultiCell(0, 8, tr(strings.TrimPrefix(trimmed, "# ")), "", "L", false)
			doc.Ln(2)
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			writeStyled(doc, tr("• "+stripBold(trimmed[2:])), 10)
		case numberedItem.MatchString(trimmed):
			writeStyled(doc, tr(stripBold(trimmed)), 10)
		case strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") && len(trimmed) > 4:
			doc.SetFont("Helvetica", "B", 10)
			doc.MultiCell(0, 5, tr(stripBold(trimmed)), "", "L", false)
		default:
			writeStyled(doc, tr(stripBold(trimmed)), 10)
		}
	}
}

func writeStyled(doc *fpdf.Fpdf, text string, size float64) {
	doc.SetFont("Helvetica", "", size)
	doc.MultiCell(0, 5, text, "", "L", false)
}

// stripBold removes ** markers. fpdf's MultiCell has no inline styling, so
// fully-bold lines are handled as headings upstream and inline bold is
// flattened to plain text.
func stripBold(s string) string {
	return boldSpan.ReplaceAllString(s, "$1")
}
