package docx2md

// Notes:
// - Tests rodConverter with a mock renderer; the real browser path is not
//   exercised here.
// - Tests resolvePageDimensions for all page sizes and orientations
// - Tests buildPDFOptions margins and paper sizes

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockRenderer struct {
	Result     []byte
	Err        error
	CloseErr   error
	CalledWith string
	CalledHTML string
	CalledOpts *pdfOptions
	Closed     int
}

func (m *mockRenderer) RenderFromFile(_ context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.CalledWith = filePath
	m.CalledOpts = opts
	if data, err := os.ReadFile(filePath); err == nil {
		m.CalledHTML = string(data)
	}
	return m.Result, m.Err
}

func (m *mockRenderer) Close() error {
	m.Closed++
	return m.CloseErr
}

// ---------------------------------------------------------------------------
// TestRodConverter_ToPDF - PDF Conversion with Mock Renderer
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		mock    *mockRenderer
		wantErr bool
	}{
		{
			name: "successful render returns PDF bytes",
			html: "<html><body><h1>Report</h1></body></html>",
			mock: &mockRenderer{Result: []byte("%PDF-1.4 fake pdf content")},
		},
		{
			name:    "renderer error propagates",
			html:    "<html></html>",
			mock:    &mockRenderer{Err: ErrPageLoad},
			wantErr: true,
		},
		{
			name: "empty HTML is valid",
			html: "",
			mock: &mockRenderer{Result: []byte("%PDF-1.4")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			converter := &rodConverter{renderer: tt.mock}
			page := &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: 1}

			result, err := converter.ToPDF(context.Background(), tt.html, &pdfOptions{Page: page})

			if tt.wantErr {
				if !errors.Is(err, tt.mock.Err) {
					t.Fatalf("error = %v, want %v", err, tt.mock.Err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != string(tt.mock.Result) {
				t.Errorf("result = %q, want %q", result, tt.mock.Result)
			}
			if !strings.Contains(tt.mock.CalledWith, "docx2md-") || !strings.HasSuffix(tt.mock.CalledWith, ".html") {
				t.Errorf("renderer called with %q, want docx2md temp html", tt.mock.CalledWith)
			}
			if tt.mock.CalledHTML != tt.html {
				t.Errorf("temp file content = %q, want %q", tt.mock.CalledHTML, tt.html)
			}
			if tt.mock.CalledOpts == nil || tt.mock.CalledOpts.Page != page {
				t.Error("page settings not forwarded to renderer")
			}
			if _, err := os.Stat(tt.mock.CalledWith); !os.IsNotExist(err) {
				t.Error("temp file should be removed after rendering")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewRodConverter / Close
// ---------------------------------------------------------------------------

func TestNewRodConverter(t *testing.T) {
	t.Parallel()

	converter := newRodConverter(defaultTimeout)

	renderer, ok := converter.renderer.(*rodRenderer)
	if !ok {
		t.Fatalf("renderer = %T, want *rodRenderer", converter.renderer)
	}
	if renderer.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", renderer.timeout, defaultTimeout)
	}
	if renderer.browser != nil {
		t.Error("browser should start lazily")
	}
}

func TestRodRenderer_Close_Idempotent(t *testing.T) {
	t.Parallel()

	renderer := newRodRenderer(defaultTimeout)
	for i := 0; i < 3; i++ {
		if err := renderer.Close(); err != nil {
			t.Errorf("Close() #%d error = %v", i+1, err)
		}
	}
}

func TestRodConverter_Close(t *testing.T) {
	t.Parallel()

	t.Run("nil renderer", func(t *testing.T) {
		t.Parallel()

		if err := (&rodConverter{}).Close(); err != nil {
			t.Errorf("Close() with nil renderer should not error, got %v", err)
		}
	})

	t.Run("error propagates", func(t *testing.T) {
		t.Parallel()

		mock := &mockRenderer{CloseErr: errors.New("browser stuck")}
		if err := (&rodConverter{renderer: mock}).Close(); err == nil {
			t.Error("expected close error")
		}
		if mock.Closed != 1 {
			t.Errorf("Closed = %d, want 1", mock.Closed)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolvePageDimensions
// ---------------------------------------------------------------------------

func TestResolvePageDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       *PageSettings
		wantW      float64
		wantH      float64
		wantMargin float64
	}{
		{"nil uses letter portrait", nil, 8.5, 11, DefaultMargin},
		{"letter landscape swaps", &PageSettings{Size: "letter", Orientation: "landscape", Margin: 0.5}, 11, 8.5, 0.5},
		{"a4 portrait", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 1}, 8.27, 11.69, 1},
		{"a4 landscape", &PageSettings{Size: "A4", Orientation: "Landscape", Margin: 2}, 11.69, 8.27, 2},
		{"legal portrait", &PageSettings{Size: "legal", Orientation: "portrait", Margin: 0.25}, 8.5, 14, 0.25},
		{"unknown size falls back to letter", &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 0.5}, 8.5, 11, 0.5},
		{"zero margin uses default", &PageSettings{Size: "letter", Orientation: "portrait"}, 8.5, 11, DefaultMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, m := resolvePageDimensions(tt.page)
			if w != tt.wantW || h != tt.wantH || m != tt.wantMargin {
				t.Errorf("resolvePageDimensions() = (%v, %v, %v), want (%v, %v, %v)", w, h, m, tt.wantW, tt.wantH, tt.wantMargin)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - PDF Options Construction
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	renderer := &rodRenderer{timeout: defaultTimeout}

	t.Run("nil opts uses defaults", func(t *testing.T) {
		t.Parallel()

		opts := renderer.buildPDFOptions(nil)
		if *opts.PaperWidth != 8.5 || *opts.PaperHeight != 11 {
			t.Errorf("paper = %vx%v, want 8.5x11", *opts.PaperWidth, *opts.PaperHeight)
		}
		for _, m := range []*float64{opts.MarginTop, opts.MarginBottom, opts.MarginLeft, opts.MarginRight} {
			if *m != DefaultMargin {
				t.Errorf("margin = %v, want %v", *m, DefaultMargin)
			}
		}
		if !opts.PrintBackground {
			t.Error("expected backgrounds printed")
		}
		if opts.DisplayHeaderFooter {
			t.Error("expected no header/footer")
		}
	})

	t.Run("page settings applied", func(t *testing.T) {
		t.Parallel()

		opts := renderer.buildPDFOptions(&pdfOptions{
			Page: &PageSettings{Size: "a4", Orientation: "landscape", Margin: 1.0},
		})
		if *opts.PaperWidth != 11.69 || *opts.PaperHeight != 8.27 {
			t.Errorf("paper = %vx%v, want 11.69x8.27", *opts.PaperWidth, *opts.PaperHeight)
		}
		if *opts.MarginTop != 1.0 || *opts.MarginBottom != 1.0 {
			t.Errorf("margins = %v/%v, want 1.0", *opts.MarginTop, *opts.MarginBottom)
		}
	})
}

func TestPageDimensions_AllSizesPresent(t *testing.T) {
	t.Parallel()

	for _, size := range []string{PageSizeLetter, PageSizeA4, PageSizeLegal} {
		dims, ok := pageDimensions[size]
		if !ok {
			t.Errorf("pageDimensions missing %q", size)
			continue
		}
		if dims.width <= 0 || dims.height <= dims.width {
			t.Errorf("%s dimensions %+v should be positive portrait", size, dims)
		}
	}
}
