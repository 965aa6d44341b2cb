// Package models defines the chat message types exchanged with the
// ChattaTrader backend.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	apierrors "github.com/chattatrader/chattacli/internal/errors"
)

// Role identifies the author of a message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Variant is the discriminating tag selecting a message's payload shape
// and renderer.
type Variant string

// Message variants understood by the client. Anything else renders as
// plain text.
const (
	VariantText          Variant = "text"
	VariantTokenInfo     Variant = "token_info"
	VariantTrade         Variant = "trade_execution"
	VariantSearchResults Variant = "search_results"
	VariantAudio         Variant = "audio"
	VariantImage         Variant = "image"
)

// TokenInfo carries the token metadata shown in a token-info card.
// Price and the change fields arrive pre-formatted from the backend.
type TokenInfo struct {
	Name           string `json:"name"`
	Chain          string `json:"chain"`
	Price          string `json:"price"`
	MarketCap      string `json:"mc"`
	Liquidity      string `json:"liquidity"`
	OneHour        string `json:"oneHour"`
	TwentyFourHour string `json:"twentyFourHour"`
	Address        string `json:"address"`
}

// TradeAction is the direction of a trade.
type TradeAction string

// Trade directions.
const (
	TradeBuy  TradeAction = "buy"
	TradeSell TradeAction = "sell"
)

// Trade carries the parameters and outcome of a trade-execution message.
// Completion is data on the message: a trade moving from pending to done
// arrives as a new message, the old one is never edited.
type Trade struct {
	ID        string      `json:"id,omitempty"`
	Hash      string      `json:"hash,omitempty"`
	Action    TradeAction `json:"type"`
	Amount    float64     `json:"amount"`
	Token     string      `json:"name"`
	Address   string      `json:"address"`
	Completed bool        `json:"isCompleted,omitempty"`
	Success   bool        `json:"success,omitempty"`
}

// SearchRow is one row of a token search-results table.
type SearchRow struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	MarketCap float64 `json:"mcap"`
}

// AttachmentKind discriminates captured binary attachments.
type AttachmentKind string

// Attachment kinds.
const (
	AttachmentAudio AttachmentKind = "audio"
	AttachmentImage AttachmentKind = "image"
)

// Attachment is a captured binary blob pending transmission. On the wire
// its bytes travel base64-encoded in the message content.
type Attachment struct {
	Kind AttachmentKind
	MIME string
	Data []byte
}

// Message is a single chat message. Exactly one variant payload is set,
// matching Variant; messages are immutable once appended to a store.
type Message struct {
	ID             string      `json:"id,omitempty"`
	Role           string      `json:"role"`
	ConversationID string      `json:"chatId"`
	Content        string      `json:"content"`
	Variant        Variant     `json:"type,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
	TokenInfo      *TokenInfo  `json:"infoData,omitempty"`
	Trade          *Trade      `json:"tradeData,omitempty"`
	SearchResults  []SearchRow `json:"searchData,omitempty"`

	// Attachment holds decoded binary content for audio/image variants.
	// It never marshals directly; EncodeWire base64s it into content.
	Attachment *Attachment `json:"-"`
}

// NewTextMessage builds a user text message for the given conversation.
func NewTextMessage(conversationID, content string) Message {
	return Message{
		ID:             uuid.NewString(),
		Role:           RoleUser,
		ConversationID: conversationID,
		Content:        content,
		Variant:        VariantText,
		Timestamp:      time.Now(),
	}
}

// NewAttachmentMessage builds a user message carrying a captured attachment.
func NewAttachmentMessage(conversationID string, att *Attachment) Message {
	variant := VariantAudio
	if att.Kind == AttachmentImage {
		variant = VariantImage
	}
	return Message{
		ID:             uuid.NewString(),
		Role:           RoleUser,
		ConversationID: conversationID,
		Variant:        variant,
		Timestamp:      time.Now(),
		Attachment:     att,
	}
}

// Validate checks the variant/payload pairing: exactly the payload named
// by the variant may be present.
func (m *Message) Validate() error {
	switch m.Variant {
	case VariantTokenInfo:
		if m.TokenInfo == nil {
			return apierrors.NewParseError("token_info message without infoData")
		}
	case VariantTrade:
		if m.Trade == nil {
			return apierrors.NewParseError("trade_execution message without tradeData")
		}
	case VariantSearchResults:
		if m.SearchResults == nil {
			return apierrors.NewParseError("search_results message without searchData")
		}
	}
	if m.Variant != VariantTokenInfo && m.TokenInfo != nil {
		return apierrors.NewParseError(fmt.Sprintf("infoData on %q message", m.Variant))
	}
	if m.Variant != VariantTrade && m.Trade != nil {
		return apierrors.NewParseError(fmt.Sprintf("tradeData on %q message", m.Variant))
	}
	if m.Variant != VariantSearchResults && m.SearchResults != nil {
		return apierrors.NewParseError(fmt.Sprintf("searchData on %q message", m.Variant))
	}
	return nil
}

// DecodeMessage parses an inbound wire payload into a Message and checks
// its variant invariant. Errors are ParseErrors: callers drop and log.
func DecodeMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, apierrors.NewParseError(err.Error())
	}
	if msg.Role != RoleUser && msg.Role != RoleAssistant {
		return Message{}, apierrors.NewParseError(fmt.Sprintf("unknown role %q", msg.Role))
	}
	if err := msg.Validate(); err != nil {
		return Message{}, err
	}
	return msg, nil
}
