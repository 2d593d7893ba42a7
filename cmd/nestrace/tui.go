package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"nes6502/cpu"
)

// model is a passive trace pager: space/j steps the CPU one instruction and
// appends its trace line to history, rather than offering any way to edit
// memory or registers.
type model struct {
	cpu     *cpu.Cpu
	history []string
	err     error
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.history = append(m.history, m.cpu.Trace())
			if len(m.history) > 20 {
				m.history = m.history[len(m.history)-20:]
			}
			m.cpu.Step()
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := m.cpu.Bus.Read8(addr)
		if addr == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}
	base := m.cpu.PC &^ 0x0f
	lines := []string{header}
	for i := -2; i <= 2; i++ {
		lines = append(lines, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	return fmt.Sprintf(`
PC: %04X
 A: %02X
 X: %02X
 Y: %02X
SP: %02X
 P: %02X
CLK: %d
`,
		m.cpu.PC, m.cpu.A, m.cpu.X, m.cpu.Y, m.cpu.SP, m.cpu.P, m.cpu.Clock)
}

func (m model) View() string {
	op := cpu.Decode(m.cpu.Bus.Read8(m.cpu.PC))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		strings.Join(m.history, "\n"),
		m.cpu.Trace(),
		spew.Sdump(op),
	)
}

// runTUI opens an interactive pager over c's instruction stream. Unlike a
// live debugger, there is no way to mutate registers or memory from here;
// the only input is "step" and "quit".
func runTUI(c *cpu.Cpu) {
	m, err := tea.NewProgram(model{cpu: c}).Run()
	if err != nil {
		fmt.Println("nestrace:", err)
		return
	}
	if x, ok := m.(model); ok && x.err != nil {
		fmt.Println("nestrace:", x.err)
	}
}
