package doctext

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExtract_PlainText(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract(context.Background(), []byte("Policy Number: P100\nName: John Smith"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(text, "P100") {
		t.Errorf("expected text passthrough, got %q", text)
	}
}

func TestExtract_HTML(t *testing.T) {
	e := NewExtractor()

	doc := `<!DOCTYPE html>
<html>
<head><style>body { color: red; }</style><script>alert("x")</script></head>
<body>
	<p>Policy Number: P100</p>
	<p>Estimated cost: $5,000.00</p>
</body>
</html>`

	text, err := e.Extract(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(text, "Policy Number: P100") {
		t.Errorf("expected visible text, got %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color: red") {
		t.Errorf("expected scripts and styles skipped, got %q", text)
	}
}

func TestExtract_BinaryUnreadable(t *testing.T) {
	e := NewExtractor()

	// Invalid UTF-8 that is neither PDF nor HTML
	_, err := e.Extract(context.Background(), []byte{0xff, 0xfe, 0x00, 0x81, 0xff})
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestExtract_MalformedPDFFallsThrough(t *testing.T) {
	e := NewExtractor()

	// Carries the PDF magic but is not a parseable PDF; since the bytes are
	// valid UTF-8 the extractor degrades to treating them as text
	data := []byte("%PDF-1.7 this is not really a pdf")
	text, err := e.Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("expected degrade to plain text, got %v", err)
	}
	if !strings.Contains(text, "not really a pdf") {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestMaybeOCR(t *testing.T) {
	called := false
	e := &Extractor{
		OCR: func(ctx context.Context, data []byte) (string, error) {
			called = true
			return "recovered by ocr", nil
		},
	}

	// Short text layer triggers OCR; result is appended
	out := e.maybeOCR(context.Background(), []byte("raw"), "tiny")
	if !called {
		t.Fatal("expected OCR to run for a near-empty text layer")
	}
	if !strings.Contains(out, "recovered by ocr") {
		t.Errorf("expected OCR text appended, got %q", out)
	}

	// Long enough text layer skips OCR
	called = false
	long := strings.Repeat("text ", 20)
	out = e.maybeOCR(context.Background(), []byte("raw"), long)
	if called {
		t.Error("expected OCR skipped for a populated text layer")
	}
	if out != long {
		t.Errorf("expected text unchanged, got %q", out)
	}
}

func TestMaybeOCR_FailureKeepsTextLayer(t *testing.T) {
	e := &Extractor{
		OCR: func(ctx context.Context, data []byte) (string, error) {
			return "", errors.New("ocr backend down")
		},
	}

	out := e.maybeOCR(context.Background(), []byte("raw"), "tiny")
	if out != "tiny" {
		t.Errorf("expected original text kept on OCR failure, got %q", out)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{"doctype", "<!DOCTYPE html><html></html>", true},
		{"html tag", "  <html><body>x</body></html>", true},
		{"body only", "<div><body>x</body></div>", true},
		{"plain text", "just a claim description", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeHTML([]byte(tt.data)); got != tt.want {
				t.Errorf("looksLikeHTML(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}
