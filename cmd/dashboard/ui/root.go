package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asset-dashboard/backend/app/dto"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const requestTimeout = 20 * time.Second

type focus int

const (
	focusTable focus = iota
	focusCard
)

type assetsLoadedMsg struct {
	Assets dto.AssetMap
	Err    error
}

type statusChangedMsg struct {
	Key  string
	Info dto.AssetInfo
	Err  error
}

type refreshTickMsg struct{}

type RootModel struct {
	Session         *Session
	Table           AssetTableModel
	Card            CardModel
	Selected        string
	Assets          dto.AssetMap
	Err             error
	Notice          string
	RefreshInterval time.Duration
	Focus           focus
	Quitting        bool
	width           int
	height          int
}

func NewRootModel(s *Session, refresh time.Duration) RootModel {
	return RootModel{
		Session:         s,
		Table:           NewAssetTableModel(24),
		RefreshInterval: refresh,
		Focus:           focusTable,
	}
}

func (m RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchAssets(), m.tick()}
	if m.Session.Subscribed() {
		cmds = append(cmds, m.Session.WaitForMsg)
	}
	return tea.Batch(cmds...)
}

// changeStatus is handed to the card as its ChangeStatus callback.
func (m RootModel) changeStatus(key string, _ dto.AssetInfo) tea.Cmd {
	client := m.Session.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		info, err := client.Toggle(ctx, key)
		if err != nil {
			m.Session.Log.Error().Err(err).Str("asset", key).Msg("toggle failed")
		} else {
			m.Session.Log.Info().Str("asset", key).Int("status", info.Status).Msg("toggled")
		}
		return statusChangedMsg{Key: key, Info: info, Err: err}
	}
}

func (m RootModel) fetchAssets() tea.Cmd {
	client := m.Session.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		assets, err := client.Assets(ctx)
		return assetsLoadedMsg{Assets: assets, Err: err}
	}
}

// tick schedules the next poll. Polling only runs while no live subscription is up.
func (m RootModel) tick() tea.Cmd {
	if m.RefreshInterval <= 0 || m.Session.Subscribed() {
		return nil
	}
	return tea.Tick(m.RefreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func (m *RootModel) selectAsset(key string) {
	info, ok := m.Assets.Get(key)
	if !ok {
		return
	}
	focused := m.Card.Focused()
	m.Selected = key
	m.Card = NewCardModel(key, info, m.changeStatus)
	m.Card.Width = m.cardWidth()
	if focused {
		m.Card.Focus()
	}
}

func (m RootModel) cardWidth() int {
	if m.width == 0 {
		return minCardWidth + 8
	}
	return max(m.width/2-4, minCardWidth)
}

func (m *RootModel) setFocus(f focus) {
	m.Focus = f
	if f == focusCard && m.Selected != "" {
		m.Table.Table.Blur()
		m.Card.Focus()
		return
	}
	m.Focus = focusTable
	m.Card.Blur()
	m.Table.Table.Focus()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Table.Table.SetHeight(max(msg.Height-10, 3))
		m.Card.Width = m.cardWidth()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			m.Session.Close()
			return m, tea.Quit
		case "tab":
			if m.Focus == focusTable {
				m.setFocus(focusCard)
			} else {
				m.setFocus(focusTable)
			}
			return m, nil
		case "esc":
			m.setFocus(focusTable)
			return m, nil
		case "r":
			m.Notice = "refreshing..."
			return m, m.fetchAssets()
		}

	case assetsLoadedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Err = nil
		if m.Notice == "refreshing..." {
			m.Notice = ""
		}
		m.Assets = msg.Assets
		m.Table.SetAssets(msg.Assets)
		switch {
		case m.Selected != "":
			if _, ok := m.Assets.Get(m.Selected); ok {
				m.selectAsset(m.Selected)
			} else {
				m.Selected = ""
				m.setFocus(focusTable)
			}
		case len(m.Assets) > 0:
			m.selectAsset(m.Table.SelectedKey())
		}
		return m, nil

	case statusChangedMsg:
		if msg.Err != nil {
			m.Err = fmt.Errorf("toggle %s: %w", msg.Key, msg.Err)
			return m, nil
		}
		m.Err = nil
		m.Notice = fmt.Sprintf("asset %s is now %s", msg.Key, statusView(msg.Info.Status).Text)
		for i := range m.Assets {
			if m.Assets[i].Key == msg.Key {
				m.Assets[i].Info = msg.Info
			}
		}
		m.Table.SetAssets(m.Assets)
		if m.Selected == msg.Key {
			m.selectAsset(msg.Key)
		}
		// loads of the whole power chain moved too
		return m, m.fetchAssets()

	case StateUpdatedMsg:
		return m, tea.Batch(m.fetchAssets(), m.Session.WaitForMsg)

	case refreshTickMsg:
		return m, tea.Batch(m.fetchAssets(), m.tick())
	}

	// Dispatch update ONLY to focused component
	if m.Focus == focusCard {
		var cmd tea.Cmd
		m.Card, cmd = m.Card.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		var cmd tea.Cmd
		m.Table, cmd = m.Table.Update(msg)
		cmds = append(cmds, cmd)
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "enter":
				if key := m.Table.SelectedKey(); key != "" {
					m.selectAsset(key)
					m.setFocus(focusCard)
				}
			case "up", "down", "k", "j", "pgup", "pgdown", "home", "end", "g", "G":
				if key := m.Table.SelectedKey(); key != "" && key != m.Selected {
					m.selectAsset(key)
				}
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}

	var left strings.Builder
	left.WriteString(titleStyle.Render("Assets") + "\n\n")
	left.WriteString(m.Table.View())

	right := blurredStyle.Render("No asset selected")
	if m.Selected != "" {
		right = m.Card.View()
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, docStyle.Render(left.String()), docStyle.Render(right))

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(errorMessageStyle(m.Err.Error()) + "\n")
	} else if m.Notice != "" {
		b.WriteString(statusMessageStyle(m.Notice) + "\n")
	}
	help := "Enter: select • Tab: switch focus • Space/t: toggle status • r: refresh • q: quit"
	if m.Focus == focusCard {
		b.WriteString(focusedStyle.Render(help))
	} else {
		b.WriteString(blurredStyle.Render(help))
	}
	return b.String()
}
