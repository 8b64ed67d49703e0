// Package source loads the study material a quiz is generated from.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/abhisek/quizcraft/internal/quizgen"
)

// DefaultMaxPages bounds how much of a PDF is read.
const DefaultMaxPages = 10

// ErrNoSource is returned when no option yields any text.
var ErrNoSource = errors.New("no source text: provide a PDF, a text file or inline text")

// Options selects the source. The first non-empty of PDFPath, TextPath and
// Text is used. TextPath "-" reads Stdin.
type Options struct {
	PDFPath  string
	TextPath string
	Text     string
	MaxPages int

	Stdin io.Reader // defaults to os.Stdin
}

// Load returns the normalized source text.
func Load(ctx context.Context, opts Options) (string, error) {
	var (
		raw string
		err error
	)

	switch {
	case opts.PDFPath != "":
		raw, err = ReadPDF(ctx, opts.PDFPath, opts.MaxPages)
	case opts.TextPath != "":
		raw, err = readText(opts)
	default:
		raw = opts.Text
	}
	if err != nil {
		return "", err
	}

	text := quizgen.NormalizeText(raw)
	if text == "" {
		return "", ErrNoSource
	}
	return text, nil
}

// ReadPDF extracts the plain text of the first maxPages pages of the PDF at
// path, one line per page. maxPages <= 0 uses DefaultMaxPages.
func ReadPDF(ctx context.Context, path string, maxPages int) (string, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	n := min(r.NumPage(), maxPages)
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

func readText(opts Options) (string, error) {
	if opts.TextPath == "-" {
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		b, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(opts.TextPath)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(b), nil
}
