package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chattatrader/chattacli/internal/models"
)

func cardStyle(width int) lipgloss.Style {
	theme := GetTUITheme()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(width)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(GetTUITheme().Accent).Bold(true)
}

func errorBlockStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(GetTUITheme().Error)
}

// renderTokenInfo draws the two-column token metadata card.
func renderTokenInfo(msg models.Message, width int) string {
	token := msg.TokenInfo
	if token == nil {
		return renderText(msg, width)
	}

	label := labelStyle()
	left := []string{
		label.Render("Name: ") + token.Name,
		label.Render("Price: ") + token.Price,
		label.Render("Liquidity: ") + token.Liquidity,
		label.Render("24h Change: ") + token.TwentyFourHour,
	}
	right := []string{
		label.Render("Chain: ") + token.Chain,
		label.Render("Market Cap: ") + token.MarketCap,
		label.Render("1h Change: ") + token.OneHour,
		label.Render("Address: ") + TruncateAddress(token.Address),
	}

	colWidth := (width - 6) / 2
	leftCol := lipgloss.NewStyle().Width(colWidth).Render(strings.Join(left, "\n"))
	rightCol := lipgloss.NewStyle().Width(colWidth).Render(strings.Join(right, "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)
	if msg.Content != "" {
		body = msg.Content + "\n" + body
	}
	return cardStyle(width - 2).Render(body)
}

// renderTrade draws a trade-execution message: a confirmation prompt while
// pending, a success or failure summary once completed.
func renderTrade(msg models.Message, width int) string {
	trade := msg.Trade
	if trade == nil {
		return renderText(msg, width)
	}

	theme := GetTUITheme()
	titleStyle := lipgloss.NewStyle().Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	position := fmt.Sprintf("$%.0f of %s", trade.Amount, trade.Token)
	if trade.Action == models.TradeSell {
		position = fmt.Sprintf("%.0f%% of your %s tokens", trade.Amount, trade.Token)
	}

	var lines []string
	switch {
	case trade.Completed && trade.Success:
		lines = append(lines,
			titleStyle.Foreground(theme.Secondary).Render("✔ Trade Successful"),
			fmt.Sprintf("You %s %s", pastTense(trade.Action), position),
			dim.Render("Transaction Hash: ")+trade.Hash,
		)
	case trade.Completed:
		lines = append(lines,
			titleStyle.Foreground(theme.Error).Render("✘ Trade Failed"),
			fmt.Sprintf("Your trade to %s %s did not complete successfully.",
				trade.Action, position),
		)
		if trade.Hash != "" {
			lines = append(lines, dim.Render("Transaction Hash: ")+trade.Hash)
		}
	default:
		lines = append(lines,
			titleStyle.Foreground(theme.Warning).Render("⟳ Trade Confirmation"),
			fmt.Sprintf("Are you sure you want to %s %s?", trade.Action, position),
			dim.Render("Address: ")+trade.Address,
			dim.Render("Press ")+labelStyle().Render("y")+
				dim.Render(" to confirm, ")+labelStyle().Render("n")+
				dim.Render(" to cancel, ")+labelStyle().Render("c")+
				dim.Render(" to copy the address"),
		)
	}

	return cardStyle(width - 2).Render(strings.Join(lines, "\n"))
}

func pastTense(action models.TradeAction) string {
	if action == models.TradeBuy {
		return "bought"
	}
	return "sold"
}

// renderSearchResults draws the token table: name, truncated address,
// formatted market cap.
func renderSearchResults(msg models.Message, width int) string {
	rows := msg.SearchResults
	if len(rows) == 0 {
		return renderText(msg, width)
	}

	theme := GetTUITheme()
	header := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	nameW, addrW := 0, 0
	for _, row := range rows {
		if len(row.Name) > nameW {
			nameW = len(row.Name)
		}
		if n := len(TruncateAddress(row.Address)); n > addrW {
			addrW = n
		}
	}
	if nameW < 4 {
		nameW = 4
	}
	if addrW < 7 {
		addrW = 7
	}

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-*s  %-*s  %s",
		nameW, "Name", addrW, "Address", "Market Cap")))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-*s  %-*s  %s",
			nameW, row.Name,
			addrW, TruncateAddress(row.Address),
			FormatMarketCap(row.MarketCap)))
	}

	body := b.String()
	if msg.Content != "" {
		body = msg.Content + "\n" + body
	}
	return cardStyle(width - 2).Render(body)
}

// renderAttachment draws an audio/image chip pointing at the spilled file.
func renderAttachment(msg models.Message, width int) string {
	theme := GetTUITheme()
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	icon, kind := "♪", "audio clip"
	if msg.Variant == models.VariantImage {
		icon, kind = "▣", "image"
	}

	size := ""
	if msg.Attachment != nil && len(msg.Attachment.Data) > 0 {
		size = fmt.Sprintf(" (%.1f KB)", float64(len(msg.Attachment.Data))/1024)
	}

	line := fmt.Sprintf("%s %s%s", icon, kind, size)
	if msg.Content != "" {
		line += "\n" + dim.Render(msg.Content)
	}
	return cardStyle(width - 2).Render(line)
}
