package models

import "time"

// Conversation is a titled, ordered sequence of messages scoped to one
// chat session. Conversations are created server-side; the client only
// selects among them.
type Conversation struct {
	ID        string    `json:"chatId"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"userId"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	Messages  []Message `json:"messages"`
}

// SampleConversations returns the built-in fixture conversations used when
// no local history exists yet.
func SampleConversations() []*Conversation {
	ts := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}

	return []*Conversation{
		{
			ID:      "chat_123",
			Title:   "Ethereum Trading Discussion",
			OwnerID: "user_456",
			Messages: []Message{
				{
					Role:           RoleUser,
					ConversationID: "chat_123",
					Content:        "What's the price of Ethereum today?",
					Variant:        VariantText,
					Timestamp:      ts("2023-05-15T10:00:00Z"),
				},
				{
					Role:           RoleAssistant,
					ConversationID: "chat_123",
					Content:        "Here's the information about Ethereum:",
					Variant:        VariantTokenInfo,
					Timestamp:      ts("2023-05-15T10:00:05Z"),
					TokenInfo: &TokenInfo{
						Name:           "Ethereum",
						Chain:          "Ethereum",
						Price:          "$1.8k",
						MarketCap:      "$216.1b",
						Liquidity:      "$2.5b",
						OneHour:        "0.25%",
						TwentyFourHour: "2.75%",
						Address:        "0xdAC17F958D2ee523a2206206994597C13D831ec7",
					},
				},
				{
					Role:           RoleUser,
					ConversationID: "chat_123",
					Content:        "Sell 50% of my ETH position",
					Variant:        VariantText,
					Timestamp:      ts("2023-05-15T10:05:00Z"),
				},
				{
					Role:           RoleAssistant,
					ConversationID: "chat_123",
					Content:        "Please confirm your trade:",
					Variant:        VariantTrade,
					Timestamp:      ts("2023-05-15T10:05:05Z"),
					Trade: &Trade{
						Action:  TradeSell,
						Amount:  50,
						Token:   "Ethereum",
						Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
					},
				},
			},
		},
		{
			ID:      "chat_456",
			Title:   "New Altcoin Research",
			OwnerID: "user_789",
			Messages: []Message{
				{
					Role:           RoleUser,
					ConversationID: "chat_456",
					Content:        "Research new Layer 2 tokens with good fundamentals",
					Variant:        VariantText,
					Timestamp:      ts("2023-06-20T14:30:00Z"),
				},
				{
					Role:           RoleAssistant,
					ConversationID: "chat_456",
					Content:        "Your earlier trade did not complete:",
					Variant:        VariantTrade,
					Timestamp:      ts("2023-06-20T14:30:02Z"),
					Trade: &Trade{
						Hash:      "samplehash",
						Action:    TradeSell,
						Amount:    50,
						Token:     "Ethereum",
						Address:   "0xdAC17F958D2ee523a2206206994597C13D831ec7",
						Completed: true,
						Success:   false,
					},
				},
				{
					Role:           RoleAssistant,
					ConversationID: "chat_456",
					Content:        "Here are 2 promising Layer 2 tokens:",
					Variant:        VariantSearchResults,
					Timestamp:      ts("2023-06-20T14:30:05Z"),
					SearchResults: []SearchRow{
						{
							Name:      "Arbitrum",
							Address:   "0x912CE59144191C1204E64559FE8253a0e49E6548",
							MarketCap: 1250000000,
						},
						{
							Name:      "Optimism",
							Address:   "0x4200000000000000000000000000000000000042",
							MarketCap: 890000000,
						},
					},
				},
			},
		},
	}
}
