package models

import (
	"testing"

	apierrors "github.com/chattatrader/chattacli/internal/errors"
)

func TestDecodeMessageValid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		variant Variant
	}{
		{
			name:    "plain text",
			payload: `{"role":"assistant","chatId":"chat_1","content":"hello","type":"text"}`,
			variant: VariantText,
		},
		{
			name: "token info",
			payload: `{"role":"assistant","chatId":"chat_1","content":"","type":"token_info",
				"infoData":{"name":"Ethereum","chain":"ethereum","price":"$3,400","mc":"$420B",
				"liquidity":"$1.2B","oneHour":"+0.4%","twentyFourHour":"-1.2%","address":"0xabc"}}`,
			variant: VariantTokenInfo,
		},
		{
			name: "trade execution",
			payload: `{"role":"assistant","chatId":"chat_1","content":"","type":"trade_execution",
				"tradeData":{"type":"buy","amount":100,"name":"ARB","address":"0xdef"}}`,
			variant: VariantTrade,
		},
		{
			name: "search results",
			payload: `{"role":"assistant","chatId":"chat_1","content":"","type":"search_results",
				"searchData":[{"name":"Arbitrum","address":"0x912C","mcap":1250000000}]}`,
			variant: VariantSearchResults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeMessage([]byte(tt.payload))
			if err != nil {
				t.Fatalf("DecodeMessage: %v", err)
			}
			if msg.Variant != tt.variant {
				t.Errorf("Variant = %q, want %q", msg.Variant, tt.variant)
			}
		})
	}
}

func TestDecodeMessageRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"role":"assistant",`},
		{"unknown role", `{"role":"system","chatId":"c","content":"x","type":"text"}`},
		{"trade without payload", `{"role":"assistant","chatId":"c","content":"","type":"trade_execution"}`},
		{"token info without payload", `{"role":"assistant","chatId":"c","content":"","type":"token_info"}`},
		{"payload on wrong variant", `{"role":"assistant","chatId":"c","content":"x","type":"text","tradeData":{"type":"buy","amount":1,"name":"A","address":"0x1"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMessage([]byte(tt.payload))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !apierrors.IsParseError(err) {
				t.Errorf("error %v is not a ParseError", err)
			}
		})
	}
}

func TestNewTextMessage(t *testing.T) {
	msg := NewTextMessage("chat_7", "gm")
	if msg.ID == "" {
		t.Error("ID not assigned")
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.ConversationID != "chat_7" {
		t.Errorf("ConversationID = %q, want chat_7", msg.ConversationID)
	}
	if msg.Variant != VariantText {
		t.Errorf("Variant = %q, want text", msg.Variant)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestNewAttachmentMessageVariant(t *testing.T) {
	audio := NewAttachmentMessage("c", &Attachment{Kind: AttachmentAudio, MIME: "audio/wav"})
	if audio.Variant != VariantAudio {
		t.Errorf("audio attachment variant = %q", audio.Variant)
	}
	image := NewAttachmentMessage("c", &Attachment{Kind: AttachmentImage, MIME: "image/png"})
	if image.Variant != VariantImage {
		t.Errorf("image attachment variant = %q", image.Variant)
	}
}

func TestValidateAllowsBareText(t *testing.T) {
	msg := Message{Role: RoleAssistant, Variant: VariantText, Content: "hi"}
	if err := msg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
