package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacob-alan-henning/bfitui/internal/bf"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	historyLen = 12
	// instructions executed per runMsg while running freely
	runBurst = 1 << 14
)

type model struct {
	name               string
	machine            *bf.Machine
	instructionHistory []string
	running            bool
	progEnded          bool
}

func NewModel(name string, m *bf.Machine) model {
	return model{
		name:               name,
		machine:            m,
		instructionHistory: make([]string, 0, historyLen),
		progEnded:          m.Halted(),
	}
}

type runMsg struct{}

func runCmd() tea.Msg {
	return runMsg{}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		if !m.running {
			return m, nil
		}
		for range runBurst {
			if m.progEnded {
				break
			}
			m.step()
		}
		if m.progEnded {
			m.running = false
			return m, nil
		}
		return m, runCmd
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s", "enter", " ":
			m.running = false
			if !m.progEnded {
				m.step()
			}
		case "r":
			if !m.progEnded && !m.running {
				m.running = true
				return m, runCmd
			}
		}
	}
	return m, nil
}

func (m *model) step() {
	in, err := m.machine.Step()
	if err != nil {
		m.progEnded = true
		if errors.Is(err, bf.ErrHalted) {
			return
		}
	}
	m.record(in)
	if m.machine.Halted() {
		m.progEnded = true
	}
}

func (m *model) record(in bf.Instruction) {
	entry := fmt.Sprintf("%6d  %s", in.Pos, in.Op)
	if len(m.instructionHistory) == historyLen {
		m.instructionHistory = append(m.instructionHistory[:0], m.instructionHistory[1:]...)
	}
	m.instructionHistory = append(m.instructionHistory, entry)
}

func (m model) buildInstructionHistory() string {
	var stateBuilder strings.Builder
	curr := len(m.instructionHistory) - 1
	for i := range m.instructionHistory {
		if curr != i {
			fmt.Fprintf(&stateBuilder, "   %s\n", m.instructionHistory[i])
		} else {
			fmt.Fprintf(&stateBuilder, "*  %s\n", m.instructionHistory[i])
		}
	}
	return stateBuilder.String()
}

func (m model) buildStatus() string {
	var b strings.Builder
	fmt.Fprintf(&b, "program: %s\n", m.name)
	fmt.Fprintf(&b, "steps: %d\n", m.machine.Steps())
	fmt.Fprintf(&b, "pointer: %d\n", m.machine.Tape().Pointer())
	if last, ok := m.machine.Last(); ok {
		fmt.Fprintf(&b, "command executed: %s\n", last.Op)
	}
	switch {
	case m.machine.Err() != nil:
		b.WriteString(errorStyle.Render(m.machine.Err().Error()))
	case m.progEnded:
		b.WriteString("program finished")
	case m.running:
		b.WriteString("running")
	}
	return b.String()
}

func (m model) View() string {
	titleContent := titleStyle.
		Foreground(lipgloss.Color("20")).
		Align(lipgloss.Left).
		Height(1).
		Render("BFITUI - intuitive brainfuck stepper")

	srcContent := titleStyle.Render("Instructions") + "\n" + boxStyle.Width(84).Render(BuildSource(m.machine.Program(), m.machine.PC()))
	consoleContent := titleStyle.Render("Console") + "\n" + boxStyle.Width(84).Render(BuildConsole(m.machine.Output()))

	statusContent := titleStyle.Render("Status") + "\n" + boxStyle.Render(m.buildStatus())
	instContent := titleStyle.Render("Instruction History") + "\n" + boxStyle.Render(m.buildInstructionHistory())
	memContent := titleStyle.Render("Memory") + "\n" + boxStyle.Render(BuildMemoryState(m.machine.Tape(), memoryWindow))

	cmd := titleStyle.Render("Commands") + "\n" + boxStyle.Render("(q)uit \n(s)tep \n(r)un to end")

	sideArea := lipgloss.JoinVertical(lipgloss.Left, statusContent, instContent, cmd)
	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, sideArea, memContent)

	return lipgloss.JoinVertical(lipgloss.Left, titleContent, srcContent, consoleContent, mainArea)
}

// Run drives the machine from an interactive terminal program until the
// user quits. It returns the machine's fatal error, if any.
func Run(name string, m *bf.Machine, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewModel(name, m), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("step ui: %w", err)
	}
	return m.Err()
}
