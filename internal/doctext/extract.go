// Package doctext turns uploaded claim documents (PDF, HTML, plain text)
// into best-effort plain text for the extraction pipeline.
package doctext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/apex/log"
	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// ErrUnreadable is the only extraction failure surfaced to callers: the
// document bytes could not be interpreted as PDF, HTML, or text. Every
// other problem degrades to whatever text could be recovered.
var ErrUnreadable = errors.New("document is not readable as text")

// ocrThreshold is the text length below which a PDF is assumed to be a
// scanned/image-only document and the OCR fallback is attempted
const ocrThreshold = 40

// OCRFunc runs optical character recognition over raw document bytes
type OCRFunc func(ctx context.Context, data []byte) (string, error)

// Extractor converts document bytes to plain text. OCR, when set, is the
// fallback strategy for PDFs whose text layer is effectively empty.
type Extractor struct {
	OCR OCRFunc
}

// NewExtractor creates a text extractor without an OCR fallback
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns best-effort plain text from document bytes
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		text, err := pdfText(data)
		if err == nil {
			return e.maybeOCR(ctx, data, text), nil
		}
		log.WithError(err).Debug("pdf text layer extraction failed, trying plain text")
	}

	if looksLikeHTML(data) {
		if text, err := htmlText(data); err == nil {
			return text, nil
		}
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	return "", ErrUnreadable
}

// maybeOCR runs the OCR fallback when the text layer came back nearly
// empty, which signals a scanned document
func (e *Extractor) maybeOCR(ctx context.Context, data []byte, text string) string {
	if len(strings.TrimSpace(text)) >= ocrThreshold || e.OCR == nil {
		return text
	}

	ocrText, err := e.OCR(ctx, data)
	if err != nil {
		log.WithError(err).Warn("OCR fallback failed")
		return text
	}
	return text + "\n" + ocrText
}

// pdfText extracts the text layer of a PDF, page by page
func pdfText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}

func looksLikeHTML(data []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(data))
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) ||
		bytes.HasPrefix(head, []byte("<html")) ||
		bytes.Contains(head, []byte("<body"))
}

// htmlText extracts visible text nodes, skipping scripts and styles
func htmlText(data []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}
