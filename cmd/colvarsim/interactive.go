package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leelasd/colvars/proxy"
	"github.com/leelasd/colvars/testbed"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type tickMsg time.Time

type simModel struct {
	cfg     simConfig
	eng     *testbed.Engine
	proxy   *proxy.Proxy
	watched []int // slot indices shown in the table
	pulled  int
	step    int
	energy  float64
	paused  bool
	done    bool
	err     error
	spin    spinner.Model
}

func newSimModel(cfg simConfig) (*simModel, error) {
	eng := testbed.New(cfg.engineConfig(0))
	p, err := proxy.New(eng)
	if err != nil {
		return nil, err
	}

	m := &simModel{
		cfg:   cfg,
		eng:   eng,
		proxy: p,
	}

	shown := cfg.Atoms
	if shown > 8 {
		shown = 8
	}
	for i := 0; i < shown; i++ {
		idx, err := p.InitAtom(eng.AtomID(i))
		if err != nil {
			return nil, err
		}
		m.watched = append(m.watched, idx)
	}
	m.pulled = m.watched[0]

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	return m, nil
}

func (m *simModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *simModel) advance() {
	m.eng.BeginStep(m.proxy)
	m.proxy.ApplyForce(m.pulled, m.cfg.pull())
	m.proxy.AddEnergy(m.cfg.pull().Norm2())
	m.energy = m.eng.CompleteStep(m.proxy)
	m.step++
	if m.step >= m.cfg.Steps {
		m.done = true
	}
}

func (m *simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			return m, nil
		case "s":
			if m.paused && !m.done {
				m.advance()
			}
			return m, nil
		}

	case tickMsg:
		if !m.paused && !m.done && m.err == nil {
			m.advance()
		}
		if m.done {
			return m, nil
		}
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *simModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("colvarsim"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	status := m.spin.View() + " running"
	switch {
	case m.done:
		status = valueStyle.Render("✓ finished")
	case m.paused:
		status = pausedStyle.Render("⏸ paused")
	}

	fmt.Fprintf(&b, "%s  %s %s\n", status,
		labelStyle.Render("step"),
		valueStyle.Render(fmt.Sprintf("%d/%d", m.step, m.cfg.Steps)))
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		labelStyle.Render("T"),
		valueStyle.Render(fmt.Sprintf("%.0fK", m.proxy.Temperature())),
		labelStyle.Render("dt"),
		valueStyle.Render(fmt.Sprintf("%.1ffs", m.proxy.Timestep())),
		labelStyle.Render("E"),
		valueStyle.Render(fmt.Sprintf("%.3f", m.energy)))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("%5s %4s %24s %12s", "slot", "id", "position", "|sysF|²")))
	b.WriteString("\n")
	for _, idx := range m.watched {
		pos := m.proxy.AtomPosition(idx)
		f := m.proxy.AtomSystemForce(idx)
		line := fmt.Sprintf("%5d %4d  (%7.2f %7.2f %7.2f) %12.3f",
			idx, m.proxy.AtomID(idx), pos[0], pos[1], pos[2], f.Norm2())
		if idx == m.pulled {
			line += pausedStyle.Render("  ← pulled")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause · s single-step · q quit"))
	b.WriteString("\n")
	return b.String()
}

func runInteractive(cfg simConfig) error {
	m, err := newSimModel(cfg)
	if err != nil {
		return err
	}
	defer m.proxy.Close()

	prog := tea.NewProgram(m)
	_, err = prog.Run()
	return err
}
