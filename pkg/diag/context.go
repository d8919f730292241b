package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Context is a range of text in an expression. It is used for errors that can
// be associated with a part of the expression, like parse errors and domain
// errors.
type Context struct {
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(source string, r Ranger) *Context {
	return &Context{source, r.Range()}
}

// Variables controlling the style of the culprit marker.
var (
	culpritMarker = "^"
	culpritIndent = " "
)

// Culprit returns the part of the source covered by the context.
func (c *Context) Culprit() string {
	if err := c.checkPosition(); err != nil {
		return ""
	}
	return c.Source[c.From:c.To]
}

// Show shows the source on one line and marks the culprit on the next line.
// Calculator expressions never span multiple lines.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return indent + err.Error()
	}
	head := utf8.RuneCountInString(c.Source[:c.From])
	width := utf8.RuneCountInString(c.Source[c.From:c.To])
	if width == 0 {
		width = 1
	}
	return indent + c.Source + "\n" +
		indent + strings.Repeat(culpritIndent, head) +
		strings.Repeat(culpritMarker, width)
}

func (c *Context) checkPosition() error {
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("invalid position %d-%d", c.From, c.To)
	}
	return nil
}
