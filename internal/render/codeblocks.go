package render

import (
	"bytes"

	"github.com/dgallion1/deckdown/internal/deck"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is one fenced code block embedded in a slide body.
type CodeBlock struct {
	Language string // Fence language identifier, "" when untagged.
	Code     string
}

// CodeBlocks extracts the fenced code blocks of a slide by walking the
// markdown AST. The code itself is passed through uninterpreted.
func (r *Renderer) CodeBlocks(s *deck.Slide) []CodeBlock {
	src := []byte(s.Body)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lang := ""
		if l := fcb.Language(src); l != nil {
			lang = string(l)
		}
		var code bytes.Buffer
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			code.Write(seg.Value(src))
		}
		blocks = append(blocks, CodeBlock{Language: lang, Code: code.String()})
		return ast.WalkContinue, nil
	})
	return blocks
}
