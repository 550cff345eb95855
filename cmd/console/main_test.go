package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tani1964/compiler-api/pkg/compiler"
)

func enter(t *testing.T, m consoleModel, input string) (consoleModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	cm, ok := model.(consoleModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return cm, cmd
}

func TestUpdateCompilesStatement(t *testing.T) {
	m := newConsoleModel(compiler.DefaultConfig())
	m, cmd := enter(t, m, "a=b+c")

	if cmd != nil {
		t.Fatalf("expected no command after compiling")
	}
	if len(m.history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(m.history))
	}
	entry := m.history[0]
	if entry.result == nil || entry.isErr {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.result.MachineCode != "100010 temp0, b\n000000 temp0, c\n100010 a, temp0" {
		t.Errorf("machine code = %q", entry.result.MachineCode)
	}
	if m.textInput.Value() != "" {
		t.Errorf("input not cleared after compiling")
	}
	if len(m.cmdHistory) != 1 || m.cmdHistory[0] != "a=b+c" {
		t.Errorf("cmdHistory = %q", m.cmdHistory)
	}
}

func TestUpdateInvalidSyntaxMarksError(t *testing.T) {
	m := newConsoleModel(compiler.DefaultConfig())
	m, _ = enter(t, m, "a+b")

	entry := m.history[0]
	if !entry.isErr || entry.result == nil || entry.result.Valid() {
		t.Fatalf("expected invalid syntax entry, got %+v", entry)
	}
	if out := renderStages(entry.result); !strings.Contains(out, compiler.InvalidSyntaxAST) {
		t.Errorf("stage panel missing invalid syntax marker:\n%s", out)
	}
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	m := newConsoleModel(compiler.DefaultConfig())
	m, cmd := enter(t, m, ":quit")

	if !m.quitting {
		t.Fatalf("quitting flag not set")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateCommands(t *testing.T) {
	m := newConsoleModel(compiler.DefaultConfig())

	m, cmd := enter(t, m, ":help")
	if cmd != nil || !m.showHelp {
		t.Fatalf("help toggle should be enabled without a command")
	}

	m, _ = enter(t, m, "x=1")
	m, _ = enter(t, m, ":clear")
	if len(m.history) != 0 {
		t.Fatalf("history not cleared: %d entries", len(m.history))
	}

	m, _ = enter(t, m, ":bogus")
	if len(m.history) != 1 || !m.history[0].isErr {
		t.Fatalf("unknown command should record an error entry")
	}
}

func TestUpdateToggleOperators(t *testing.T) {
	m := newConsoleModel(compiler.DefaultConfig())

	m, _ = enter(t, m, "a=b**c")
	if m.history[0].isErr {
		t.Fatalf("** should compile with extended operators")
	}

	m, _ = enter(t, m, ":ops")
	if m.cfg.Lexer.ExtendedOperators {
		t.Fatalf(":ops did not switch to the base operator set")
	}
	m, _ = enter(t, m, "a=b**c")
	if last := m.history[len(m.history)-1]; !last.isErr {
		t.Fatalf("** should be invalid with the base operator set")
	}
}

func TestUpdateHistoryNavigation(t *testing.T) {
	m := newConsoleModel(compiler.DefaultConfig())
	m, _ = enter(t, m, "a=1")
	m, _ = enter(t, m, "b=2")

	press := func(k tea.KeyType) {
		model, _ := m.Update(tea.KeyMsg{Type: k})
		m = model.(consoleModel)
	}

	press(tea.KeyUp)
	if got := m.textInput.Value(); got != "b=2" {
		t.Fatalf("first up: got %q", got)
	}
	press(tea.KeyUp)
	if got := m.textInput.Value(); got != "a=1" {
		t.Fatalf("second up: got %q", got)
	}
	press(tea.KeyUp)
	if got := m.textInput.Value(); got != "a=1" {
		t.Fatalf("up past oldest: got %q", got)
	}
	press(tea.KeyDown)
	if got := m.textInput.Value(); got != "b=2" {
		t.Fatalf("down: got %q", got)
	}
	press(tea.KeyDown)
	if got := m.textInput.Value(); got != "" || m.historyIdx != -1 {
		t.Fatalf("down past newest: got %q idx %d", got, m.historyIdx)
	}
}

func TestViewRendersStages(t *testing.T) {
	m := newConsoleModel(compiler.DefaultConfig())
	if m.View() != "Loading..." {
		t.Fatalf("expected loading view before window size")
	}

	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	m = model.(consoleModel)
	m, _ = enter(t, m, "a=b*c")

	view := m.View()
	for _, want := range []string{"Compiler Console", "Tokens", "Intermediate Code", "IMUL temp0, c", "0000111110101111 temp0, c"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
