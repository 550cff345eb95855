package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tani1964/compiler-api/pkg/compiler"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	codeStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	stageStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	result *compiler.Result
	note   string
	isErr  bool
}

type consoleModel struct {
	textInput   textinput.Model
	cfg         compiler.Config
	compiler    *compiler.Compiler
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous statement"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next statement"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "compile"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
}

func newConsoleModel(cfg compiler.Config) consoleModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement, e.g. a=b+c*d"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "compile> "

	return consoleModel{
		textInput:  ti,
		cfg:        cfg,
		compiler:   compiler.NewCompiler(cfg),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func (m consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 12
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			m.history = append(m.history, m.compile(input))
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m consoleModel) handleCommand(input string) (consoleModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":ops", ":o":
		m.cfg.Lexer.ExtendedOperators = !m.cfg.Lexer.ExtendedOperators
		m.compiler = compiler.NewCompiler(m.cfg)
		m.history = append(m.history, historyEntry{
			input: input,
			note:  "Operator set: " + operatorSetName(m.cfg),
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input: input,
			note:  fmt.Sprintf("Unknown command: %s", cmd),
			isErr: true,
		})
	}
	return m, nil
}

func (m consoleModel) compile(input string) historyEntry {
	res, err := m.compiler.Compile(input)
	if err != nil {
		return historyEntry{input: input, note: err.Error(), isErr: true}
	}
	return historyEntry{input: input, result: res, isErr: !res.Valid()}
}

func operatorSetName(cfg compiler.Config) string {
	if cfg.Lexer.ExtendedOperators {
		return "extended (** && ||)"
	}
	return "base"
}

func (m consoleModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("Compiler Console")
	ops := mutedStyle.Render("operators: " + operatorSetName(m.cfg))
	b.WriteString(header + " " + ops + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	// Only the most recent entries fit; each stage panel takes several rows.
	start := 0
	if keep := max(m.height/12, 1); len(m.history) > keep {
		start = len(m.history) - keep
	}
	for _, entry := range m.history[start:] {
		b.WriteString(renderEntry(entry))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render(":help") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render(":ops") + helpDescStyle.Render(" operators  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderEntry(e historyEntry) string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render("  › ") + e.input + "\n")

	if e.result == nil {
		if e.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+e.note) + "\n")
		} else {
			b.WriteString("  " + codeStyle.Render("→ "+e.note) + "\n")
		}
		return b.String()
	}

	b.WriteString(renderStages(e.result))
	b.WriteString("\n")
	return b.String()
}

// renderStages draws the four stage outputs of res in a bordered panel.
func renderStages(res *compiler.Result) string {
	var lines []string

	toks := make([]string, len(res.Tokens))
	for i, tok := range res.Tokens {
		toks[i] = fmt.Sprintf("%s %s", tok.Text, mutedStyle.Render(tok.Kind.String()))
	}
	lines = append(lines, stageStyle.Render("Tokens"), "  "+strings.Join(toks, ", "))

	lines = append(lines, stageStyle.Render("AST"))
	if res.Valid() {
		lines = append(lines, "  "+res.ASTText())
	} else {
		lines = append(lines, "  "+errorStyle.Render(res.ASTText()), "  "+mutedStyle.Render(res.SyntaxErr.Error()))
	}

	lines = append(lines, stageStyle.Render("Intermediate Code"))
	for _, l := range res.IntermediateCode {
		lines = append(lines, "  "+codeStyle.Render(l))
	}

	lines = append(lines, stageStyle.Render("Machine Code"))
	for _, l := range res.MachineLines {
		if !l.Supported && !l.Comment {
			lines = append(lines, "  "+errorStyle.Render(l.String()))
			continue
		}
		lines = append(lines, "  "+codeStyle.Render(l.String()))
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate statement history"},
		{"Enter", "Compile statement"},
		{":help", "Toggle this help"},
		{":ops", "Toggle extended operators (** && ||)"},
		{":clear", "Clear history"},
		{":quit", "Exit console"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func main() {
	p := tea.NewProgram(newConsoleModel(compiler.DefaultConfig()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "console error:", err)
		os.Exit(1)
	}
}
