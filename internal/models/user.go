package models

// Holding is one token position attached to a user wallet.
type Holding struct {
	Address string `json:"address"`
	Chain   string `json:"chain"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// User is the account record returned by the auth API. Wallet balances and
// holdings are owned by the backend; the client only displays them.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	WalletAddress    string    `json:"walletAddress,omitempty"`
	SolWalletAddress string    `json:"solWalletAddress,omitempty"`
	EthHoldings      []Holding `json:"ethholding,omitempty"`
	BaseHoldings     []Holding `json:"baseholding,omitempty"`
	SolHoldings      []Holding `json:"solholding,omitempty"`
	Verified         bool      `json:"isVerified"`
	Token            string    `json:"token,omitempty"`
}
