package ui

import (
	"strconv"

	"asset-dashboard/backend/app/dto"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AssetTableModel lists the top-level assets.
type AssetTableModel struct {
	Table  table.Model
	Assets dto.AssetMap
}

func NewAssetTableModel(height int) AssetTableModel {
	columns := []table.Column{
		{Title: "Key", Width: 10},
		{Title: "Type", Width: 14},
		{Title: "Status", Width: 8},
		{Title: "Load (A)", Width: 10},
		{Title: "Parts", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return AssetTableModel{Table: t}
}

// SetAssets replaces the rows, keeping the cursor on the same asset when it is still listed.
func (m *AssetTableModel) SetAssets(assets dto.AssetMap) {
	selected := m.SelectedKey()
	m.Assets = assets
	rows := make([]table.Row, len(assets))
	cursor := 0
	for i, e := range assets {
		st := statusView(e.Info.Status)
		rows[i] = table.Row{e.Key, e.Info.Type, st.Text, formatLoad(e.Info.Load), strconv.Itoa(len(e.Info.Children))}
		if e.Key == selected {
			cursor = i
		}
	}
	m.Table.SetRows(rows)
	if len(rows) > 0 {
		m.Table.SetCursor(cursor)
	}
}

func (m AssetTableModel) SelectedKey() string {
	row := m.Table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func (m AssetTableModel) Update(msg tea.Msg) (AssetTableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m AssetTableModel) View() string {
	return m.Table.View()
}
