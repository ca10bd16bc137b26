package view

import (
	"strings"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

// Block is one labelled section of the detail view. A nil block means the
// record did not carry the field; a block with no lines means the field was
// sent but held nothing displayable.
type Block struct {
	Label string   `json:"label"`
	Lines []string `json:"lines"`
}

// Visible reports whether the block has anything to render
func (b *Block) Visible() bool {
	return b != nil && len(b.Lines) > 0
}

// Text returns the lines joined by newlines
func (b *Block) Text() string {
	if b == nil {
		return ""
	}
	return strings.Join(b.Lines, "\n")
}

// lineBlock makes a block with one line per non-blank value
func lineBlock(label string, values []string) *Block {
	if values == nil {
		return nil
	}
	return &Block{Label: label, Lines: compact(values)}
}

// joinedBlock makes a block whose single line is the values joined by sep
func joinedBlock(label string, values []string, sep string) *Block {
	if values == nil {
		return nil
	}
	block := &Block{Label: label, Lines: []string{}}
	if s, ok := finna.JoinText(compact(values), sep); ok {
		block.Lines = append(block.Lines, s)
	}
	return block
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
