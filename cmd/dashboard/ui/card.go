package ui

import (
	"math"
	"strconv"
	"strings"

	"asset-dashboard/backend/app/dto"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	cardTitle       = "Selected Asset Details"
	nestedTitle     = "Connected Components"
	toggleLabel     = "Toggle Status"
	minCardWidth    = 40
	colorGreen      = "green"
	colorRed        = "red"
	statusOnText    = "on"
	statusOffText   = "off"
	switchOnGlyph   = "[x]"
	switchOffGlyph  = "[ ]"
	zeroLoadDisplay = "0"
)

// StatusView is a coloured on/off span.
type StatusView struct {
	Text  string
	Color string
}

type ToggleView struct {
	Label   string
	Checked bool
}

// NestedView is one entry of the "Connected Components" section.
type NestedView struct {
	Heading string
	Status  StatusView
}

// CardView is the view tree of the asset detail card. It holds no
// references into the AssetInfo it was built from.
type CardView struct {
	Title   string
	Heading string
	Status  StatusView
	Load    string
	Toggle  ToggleView
	Nested  []NestedView
}

func statusView(status int) StatusView {
	if status == 1 {
		return StatusView{Text: statusOnText, Color: colorGreen}
	}
	return StatusView{Text: statusOffText, Color: colorRed}
}

// formatLoad shows two decimals, or a bare 0 when the load is absent, zero or NaN.
func formatLoad(load *float64) string {
	if load == nil || *load == 0 || math.IsNaN(*load) {
		return zeroLoadDisplay
	}
	return strconv.FormatFloat(*load, 'f', 2, 64)
}

// BuildCard projects an asset onto the card view tree.
func BuildCard(info dto.AssetInfo, key string) CardView {
	v := CardView{
		Title:   cardTitle,
		Heading: "Asset: " + key + "-" + info.Type,
		Status:  statusView(info.Status),
		Load:    formatLoad(info.Load),
		Toggle:  ToggleView{Label: toggleLabel, Checked: info.Status != 0},
	}
	for _, c := range info.Children {
		v.Nested = append(v.Nested, NestedView{
			Heading: "Nested Asset: " + c.Key + "-" + c.Info.Type,
			Status:  statusView(c.Info.Status),
		})
	}
	return v
}

func renderStatus(s StatusView) string {
	return lipgloss.NewStyle().Foreground(statusColors[s.Color]).Render(s.Text)
}

// Render draws the card; width is the outer width including the border.
func (v CardView) Render(width int, focused bool) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	border := cardBorder(focused)
	boxWidth := width - border.GetHorizontalBorderSize()
	inner := boxWidth - border.GetHorizontalPadding()
	rule := cardRuleStyle.Render(strings.Repeat("─", inner))

	glyph, switchStyle := switchOffGlyph, cardSwitchOffStyle
	if v.Toggle.Checked {
		glyph, switchStyle = switchOnGlyph, cardSwitchOnStyle
	}

	lines := []string{
		cardHeaderStyle.Width(inner).Render(v.Title),
		"",
		cardHeadingStyle.Render(v.Heading),
		"Status: " + renderStatus(v.Status),
		"Current Load: " + v.Load,
		rule,
		switchStyle.Render(glyph) + " " + v.Toggle.Label,
		rule,
	}
	if len(v.Nested) > 0 {
		lines = append(lines, cardSubheadingStyle.Render(nestedTitle))
		for _, n := range v.Nested {
			lines = append(lines,
				cardHeadingStyle.Render(n.Heading),
				"::Status-"+renderStatus(n.Status),
			)
		}
	}
	return border.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// ChangeStatusFunc asks the owner of an asset to change its status. The card
// passes its props through untouched; computing the new state is up to the callee.
type ChangeStatusFunc func(key string, info dto.AssetInfo) tea.Cmd

// CardModel hosts the card in a Bubble Tea program.
type CardModel struct {
	Key          string
	Info         dto.AssetInfo
	ChangeStatus ChangeStatusFunc
	Width        int
	focused      bool
}

func NewCardModel(key string, info dto.AssetInfo, changeStatus ChangeStatusFunc) CardModel {
	return CardModel{Key: key, Info: info, ChangeStatus: changeStatus, Width: minCardWidth}
}

func (m CardModel) Init() tea.Cmd { return nil }

func (m *CardModel) Focus() { m.focused = true }

func (m *CardModel) Blur() { m.focused = false }

func (m CardModel) Focused() bool { return m.focused }

func (m CardModel) Update(msg tea.Msg) (CardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}
	switch keyMsg.String() {
	case " ", "t", "enter":
		if m.ChangeStatus == nil {
			return m, nil
		}
		return m, m.ChangeStatus(m.Key, m.Info)
	}
	return m, nil
}

func (m CardModel) View() string {
	return BuildCard(m.Info, m.Key).Render(m.Width, m.focused)
}
