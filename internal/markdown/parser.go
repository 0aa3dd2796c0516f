package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
		),
	)

	return &Parser{
		md: md,
	}
}

// Parse renders source to HTML and decodes its YAML frontmatter into meta.
// A document without frontmatter leaves meta untouched.
func (p *Parser) Parse(source []byte, meta any) ([]byte, error) {
	ctx := parser.NewContext()
	var buf bytes.Buffer

	err := p.md.Convert(source, &buf, parser.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	data := frontmatter.Get(ctx)
	if data == nil || meta == nil {
		return buf.Bytes(), nil
	}

	err = data.Decode(meta)
	if err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}

	return buf.Bytes(), nil
}
