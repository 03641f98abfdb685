package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"rentrix_backend/internals/configs"
)

// PDFRenderer turns a self-contained HTML document into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// Renderer is the process-wide PDF renderer. Tests replace it.
var Renderer PDFRenderer = NewRodRenderer("")

// RodRenderer prints pages with a headless Chromium started on first use.
// An empty bin falls back to CHROME_BIN, then to rod's browser lookup.
type RodRenderer struct {
	bin string

	mu      sync.Mutex
	browser *rod.Browser
	closeFn func(*rod.Browser) error
}

func NewRodRenderer(bin string) *RodRenderer {
	return &RodRenderer{bin: bin, closeFn: (*rod.Browser).Close}
}

func (r *RodRenderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}

	bin := r.bin
	if bin == "" {
		bin = configs.GetEnv("CHROME_BIN")
	}
	l := launcher.New().Headless(true).Leakless(false)
	if bin != "" {
		l = l.Bin(bin)
	} else if path, ok := launcher.LookPath(); ok {
		l = l.Bin(path)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect chromium: %w", err)
	}
	configs.Log.Info("pdf renderer ready", zap.String("control_url", u))
	r.browser = b
	return b, nil
}

func (r *RodRenderer) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	b, err := r.connect()
	if err != nil {
		return nil, err
	}
	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		r.reset()
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.SetDocumentContent(string(html)); err != nil {
		r.failed(ctx)
		return nil, fmt.Errorf("load receipt html: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		r.failed(ctx)
		return nil, fmt.Errorf("wait receipt html: %w", err)
	}
	stream, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		r.failed(ctx)
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return io.ReadAll(stream)
}

// failed resets the browser unless the caller simply gave up.
func (r *RodRenderer) failed(ctx context.Context) {
	if ctx.Err() == nil {
		r.reset()
	}
}

// reset drops a browser that stopped answering so the next call relaunches it.
func (r *RodRenderer) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		_ = r.closeFn(r.browser)
		r.browser = nil
	}
}

// Close shuts the browser down if it was started.
func (r *RodRenderer) Close() error {
	r.reset()
	return nil
}
