package render

import "fmt"

// FormatMarketCap renders a market cap with a B/M/K suffix. Values under
// a thousand keep two decimal places.
func FormatMarketCap(value float64) string {
	switch {
	case value >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", value/1_000_000_000)
	case value >= 1_000_000:
		return fmt.Sprintf("$%.1fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("$%.1fK", value/1_000)
	default:
		return fmt.Sprintf("$%.2f", value)
	}
}

// TruncateAddress shortens a chain address for display: first 6 characters,
// an ellipsis, then the last 4. The full value is kept for clipboard copies.
func TruncateAddress(address string) string {
	if address == "" {
		return ""
	}
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
