package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/wippyai/strings-engine/mem"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	totalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#90EE90"))

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	tickInterval  = 100 * time.Millisecond
	stepsPerTick  = 25
	tagColumnSize = 18
)

type tickMsg time.Time

type interactiveModel struct {
	world  *world
	table  table.Model
	paused bool
}

func newInteractiveModel(w *world) *interactiveModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Tag", Width: tagColumnSize},
			{Title: "Outstanding", Width: 16},
		}),
		table.WithHeight(mem.NumTags+1),
	)
	m := &interactiveModel{world: w, table: t}
	m.refresh()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *interactiveModel) Init() tea.Cmd {
	return tick()
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "d":
			m.world.drainScene()
		case "s":
			m.world.step()
		case "r":
			m.world.reset()
		}
		m.refresh()

	case tickMsg:
		if !m.paused {
			for range stepsPerTick {
				m.world.step()
			}
			m.refresh()
		}
		return m, tick()
	}
	return m, nil
}

func (m *interactiveModel) refresh() {
	u := m.world.ledger.Snapshot()
	rows := make([]table.Row, 0, mem.NumTags)
	for _, tag := range mem.Tags() {
		rows = append(rows, table.Row{tag.String(), mem.FormatBytes(u.Tagged[tag])})
	}
	m.table.SetRows(rows)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Memory Ledger"))
	if m.paused {
		b.WriteString(" ")
		b.WriteString(pausedStyle.Render("paused"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(totalStyle.Render(fmt.Sprintf("%*s  %s", tagColumnSize, "Total", mem.FormatBytes(m.world.ledger.TotalAllocation()))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s operations • %d entities • %d textures • %d scene nodes\n\n",
		humanize.Comma(int64(m.world.ops)),
		m.world.entities.Len(),
		m.world.textures.Len(),
		m.world.scene.Len(),
	)
	b.WriteString(helpStyle.Render("space pause • s step • d drain scene • r reset • q quit"))

	return b.String()
}

func runInteractive(ctx context.Context, seed uint64, script bool) error {
	w, err := newWorld(ctx, mem.Default(), seed, script)
	if err != nil {
		return err
	}
	defer w.close(ctx)

	p := tea.NewProgram(newInteractiveModel(w), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
