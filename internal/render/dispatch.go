package render

import (
	"fmt"
	"strings"

	"github.com/chattatrader/chattacli/internal/models"
)

// variantRenderer renders one message variant. Implementations may assume
// the payload invariant holds but must tolerate it not holding.
type variantRenderer func(msg models.Message, width int) string

// dispatchTable maps each known variant to its renderer. Plain text has no
// entry: it shares the fallback path with unknown variants.
var dispatchTable = map[models.Variant]variantRenderer{
	models.VariantTokenInfo:     renderTokenInfo,
	models.VariantTrade:         renderTrade,
	models.VariantSearchResults: renderSearchResults,
	models.VariantAudio:         renderAttachment,
	models.VariantImage:         renderAttachment,
}

// Dispatch renders a message for terminal display. Unknown or missing
// variants fall back to the message content as markdown, and a panicking
// renderer is confined to its own message so siblings still draw.
func Dispatch(msg models.Message, width int) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = errorBlockStyle().Render(
				fmt.Sprintf("[unrenderable %s message]", msg.Variant))
		}
	}()

	if width < 20 {
		width = 20
	}

	if fn, ok := dispatchTable[msg.Variant]; ok {
		return fn(msg, width)
	}
	return renderText(msg, width)
}

// renderText is the fallback: message content as markdown.
func renderText(msg models.Message, width int) string {
	rendered, err := MarkdownWithWidth(msg.Content, width)
	if err != nil {
		return msg.Content
	}
	return strings.TrimRight(rendered, "\n")
}
