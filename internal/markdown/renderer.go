// Package markdown converts journal text into the HTML subset Apple Notes
// accepts as a note body.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// DefaultEmbedScheme is the URL scheme Day One uses for inline attachments.
const DefaultEmbedScheme = "dayone-moment"

// Engine converts markdown source into markup written to w.
type Engine func(source []byte, w io.Writer) error

// NewEngine returns the goldmark configuration used for journal text:
// hard line breaks, autolinked bare URLs and strikethrough. HTML written in
// an entry is shown as text rather than passed through or dropped.
func NewEngine() Engine {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Strikethrough,
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			renderer.WithNodeRenderers(util.Prioritized(escapedHTMLRenderer{}, 100)),
		),
	)
	return func(source []byte, w io.Writer) error {
		return md.Convert(source, w)
	}
}

// Renderer turns entry text into note markup. The zero value is not usable;
// create one with NewRenderer.
type Renderer struct {
	engine Engine
	embeds *regexp.Regexp
	logger zerolog.Logger
}

type Option func(*Renderer)

// WithEngine replaces the markdown engine. A nil engine forces plain text output.
func WithEngine(engine Engine) Option {
	return func(r *Renderer) {
		r.engine = engine
	}
}

// WithEmbedScheme changes which image links are treated as attachment embeds.
func WithEmbedScheme(scheme string) Option {
	return func(r *Renderer) {
		r.embeds = embedPattern(scheme)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		engine: NewEngine(),
		embeds: embedPattern(DefaultEmbedScheme),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func embedPattern(scheme string) *regexp.Regexp {
	return regexp.MustCompile(`!\[[^\]]*\]\(` + regexp.QuoteMeta(scheme) + `://[^)]+\)`)
}

// StripEmbeds removes attachment embed tokens such as
// ![](dayone-moment://ABC123). Other links are left untouched.
func (r *Renderer) StripEmbeds(text string) string {
	return r.embeds.ReplaceAllString(text, "")
}

// Render converts text to markup. It never fails: when the engine is missing,
// returns an error or panics, the escaped plain text form is returned instead.
func (r *Renderer) Render(text string) string {
	text = r.StripEmbeds(text)

	if r.engine == nil {
		return PlainText(text)
	}

	out, err := r.convert(text)
	if err != nil {
		r.logger.Warn().Err(err).Msg("markdown conversion failed, using plain text")
		return PlainText(text)
	}
	return out
}

func (r *Renderer) convert(text string) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("markdown engine panic: %v", p)
		}
	}()

	var buf bytes.Buffer
	if err := r.engine([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlainText escapes text for embedding in markup and turns newlines into
// line breaks.
func PlainText(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>\n")
}

// escapedHTMLRenderer renders raw HTML blocks and inline tags as escaped text.
type escapedHTMLRenderer struct{}

func (r escapedHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r escapedHTMLRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.HTMLBlock)

	var raw bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		raw.Write(segment.Value(source))
	}
	if n.HasClosure() {
		raw.Write(n.ClosureLine.Value(source))
	}

	_, _ = w.WriteString("<p>")
	_, _ = w.WriteString(PlainText(strings.TrimRight(raw.String(), "\n")))
	_, _ = w.WriteString("</p>\n")
	return ast.WalkSkipChildren, nil
}

func (r escapedHTMLRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		_, _ = w.WriteString(html.EscapeString(string(segment.Value(source))))
	}
	return ast.WalkSkipChildren, nil
}
