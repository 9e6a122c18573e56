package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/cardhouse/blackjack/pkg/blackjack"
	"github.com/cardhouse/blackjack/pkg/entities"
	"github.com/cardhouse/blackjack/pkg/services/table"
)

var suitSymbols = map[entities.Suit]string{
	entities.Hearts:   "♥",
	entities.Diamonds: "♦",
	entities.Clubs:    "♣",
	entities.Spades:   "♠",
}

// Model is the Bubble Tea model for the table. All game state lives in
// the table service; the model only polls the read-only queries each
// render and forwards key presses as actions.
type Model struct {
	svc    *table.Service
	logger *log.Logger

	betInput textinput.Model
	lastErr  string
	quitting bool
}

// New creates the table model.
func New(svc *table.Service, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "bet amount"
	ti.CharLimit = 10
	ti.Width = 12
	ti.Prompt = "bet> "
	ti.Focus()

	return &Model{
		svc:      svc,
		logger:   logger.WithPrefix("tui"),
		betInput: ti,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.betInput, cmd = m.betInput.Update(msg)
		return m, cmd
	}

	// The bet prompt only takes input between rounds.
	if m.svc.RoundActive() {
		m.betInput.Blur()
	} else if !m.betInput.Focused() {
		m.betInput.Focus()
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		if !m.betInput.Focused() || keyMsg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.svc.RoundActive() {
		return m.updateRound(keyMsg)
	}
	return m.updateIdle(keyMsg)
}

// updateIdle handles input between rounds: bet entry plus rebet/reset.
func (m *Model) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.betInput.Value())
		if value == "" {
			m.act(m.svc.Rebet(ctx))
			return m, nil
		}
		bet, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			m.lastErr = "bets are whole numbers"
			return m, nil
		}
		if m.act(m.svc.StartRound(ctx, bet)) {
			m.betInput.SetValue("")
		}
		return m, nil
	case "ctrl+r":
		m.act(m.svc.ResetBankroll(ctx))
		return m, nil
	}

	var cmd tea.Cmd
	m.betInput, cmd = m.betInput.Update(msg)
	return m, cmd
}

// updateRound maps keys to player actions while a round runs.
func (m *Model) updateRound(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	actions := m.svc.LegalActions()

	switch msg.String() {
	case "h":
		if actions.Hit {
			m.act(m.svc.Hit(ctx))
		}
	case "s":
		if actions.Stand {
			m.act(m.svc.Stand(ctx))
		}
	case "d":
		if actions.Double {
			m.act(m.svc.Double(ctx))
		}
	case "p":
		if actions.Split {
			m.act(m.svc.Split(ctx))
		}
	case "u":
		if actions.Surrender {
			m.act(m.svc.Surrender(ctx))
		}
	case "i":
		if actions.TakeInsurance {
			m.act(m.svc.TakeInsurance(ctx, false))
		}
	case "e":
		if actions.TakeInsurance {
			m.act(m.svc.TakeInsurance(ctx, true))
		}
	case "n":
		if actions.DeclineInsurance {
			m.act(m.svc.DeclineInsurance(ctx))
		}
	}
	return m, nil
}

// act records an action error for display; returns true on success.
func (m *Model) act(err error) bool {
	if err != nil {
		m.lastErr = err.Error()
		m.logger.Debug("action rejected", "error", err)
		return false
	}
	m.lastErr = ""
	return true
}

// View renders the table from the read-only queries.
func (m *Model) View() string {
	if m.quitting {
		return "thanks for playing\n"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(" ♠ blackjack ♥ "))
	sb.WriteString("\n\n")

	balance, err := m.svc.Balance(context.Background())
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("bankroll unavailable: %v", err))
	}
	sb.WriteString(balanceStyle.Render(fmt.Sprintf("balance %d", balance)))
	if committed := m.svc.Committed(); committed > 0 {
		sb.WriteString(hintStyle.Render(fmt.Sprintf("  (in play %d)", committed)))
	}
	sb.WriteString("\n\n")

	if m.svc.RoundActive() {
		m.renderRound(&sb)
	} else {
		m.renderIdle(&sb)
	}

	if m.lastErr != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.lastErr))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m *Model) renderRound(sb *strings.Builder) {
	dealer := m.svc.DealerHand()
	line := formatCards(dealer)
	if len(dealer) == 1 {
		line += " [?]"
	} else {
		line += fmt.Sprintf("  (%d)", blackjack.HandValue(dealer))
	}
	sb.WriteString(dealerStyle.Render("dealer  ") + line + "\n\n")

	current := m.svc.CurrentHandIndex()
	for i, hand := range m.svc.Hands() {
		style := handStyle
		marker := "  "
		if i == current {
			style = activeHandStyle
			marker = "▶ "
		}
		status := ""
		switch {
		case hand.Surrendered:
			status = " surrendered"
		case hand.Bust():
			status = " bust"
		case hand.Done:
			status = " standing"
		}
		sb.WriteString(style.Render(fmt.Sprintf("%shand %d  %s  (%d)  bet %d%s",
			marker, i+1, formatCards(hand.Cards), hand.Value(), hand.Bet, status)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render(m.actionHints()))
	sb.WriteString("\n")
}

func (m *Model) renderIdle(sb *strings.Builder) {
	if sum := m.svc.LastSummary(); sum != nil {
		m.renderSummary(sb, sum)
	}

	sb.WriteString(m.betInput.View())
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("enter: deal (blank repeats last bet) · ctrl+r: reset bankroll · q: quit"))
	sb.WriteString("\n")
}

func (m *Model) renderSummary(sb *strings.Builder, sum *blackjack.Summary) {
	sb.WriteString(dealerStyle.Render("dealer  "))
	sb.WriteString(fmt.Sprintf("%s  (%d)", formatCards(sum.DealerCards), sum.DealerValue))
	if sum.DealerBlackjack {
		sb.WriteString("  blackjack")
	}
	sb.WriteString("\n")

	for i, hand := range sum.Hands {
		style := loseStyle
		if hand.Net >= 0 {
			style = winStyle
		}
		sb.WriteString(fmt.Sprintf("  hand %d  %s  %s %+d\n",
			i+1, formatCards(hand.Cards), style.Render(hand.Result.String()), hand.Net))
	}
	if ins := sum.Insurance; ins != nil {
		label := "insurance"
		if ins.EvenMoney {
			label = "even money"
		}
		sb.WriteString(fmt.Sprintf("  %s %+d\n", label, ins.Net))
	}

	style := loseStyle
	if sum.NetTotal >= 0 {
		style = winStyle
	}
	sb.WriteString(style.Render(fmt.Sprintf("  net %+d", sum.NetTotal)))
	sb.WriteString("\n\n")
}

func (m *Model) actionHints() string {
	actions := m.svc.LegalActions()
	hints := make([]string, 0, 8)
	if actions.Hit {
		hints = append(hints, "h: hit")
	}
	if actions.Stand {
		hints = append(hints, "s: stand")
	}
	if actions.Double {
		hints = append(hints, "d: double")
	}
	if actions.Split {
		hints = append(hints, "p: split")
	}
	if actions.Surrender {
		hints = append(hints, "u: surrender")
	}
	if actions.TakeInsurance {
		hints = append(hints, "i: insurance", "e: even money")
	}
	if actions.DeclineInsurance {
		hints = append(hints, "n: no insurance")
	}
	hints = append(hints, "q: quit")
	return strings.Join(hints, " · ")
}

func formatCards(cards []entities.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = string(card.Rank) + suitSymbols[card.Suit]
	}
	return strings.Join(parts, " ")
}
