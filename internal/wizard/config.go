package wizard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lyricdeck/internal/config"
)

type configStep struct {
	label       string
	placeholder string
	secret      bool
	boolean     bool
	cleanerOnly bool
}

type configModel struct {
	steps    []configStep
	inputs   []textinput.Model
	current  int
	done     bool
	canceled bool
	inputErr error
}

func newConfigModel(defaults *config.Config) configModel {
	steps := []configStep{
		{label: "Music directory", placeholder: defaults.Paths.MusicDir},
		{label: "Output directory", placeholder: defaults.Paths.OutputDir},
		{label: "Enable AI lyric cleaning (y/n)", placeholder: boolWord(defaults.Cleaner.Enabled), boolean: true},
		{label: "Cleaner API key", secret: true, cleanerOnly: true},
		{label: "Cleaner base URL", placeholder: defaults.Cleaner.BaseURL, cleanerOnly: true},
		{label: "Cleaner model", placeholder: defaults.Cleaner.Model, cleanerOnly: true},
	}

	inputs := make([]textinput.Model, len(steps))
	for i, step := range steps {
		in := textinput.New()
		in.Prompt = "> "
		in.Placeholder = step.placeholder
		in.CharLimit = 256
		in.Width = 48
		if step.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}

	m := configModel{steps: steps, inputs: inputs}
	m.inputs[0].Focus()
	return m
}

func (m configModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m configModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.accept()
		}
	}
	var cmd tea.Cmd
	m.inputs[m.current], cmd = m.inputs[m.current].Update(msg)
	return m, cmd
}

// accept validates the current answer and moves on, skipping the cleaner
// connection prompts when cleaning stays disabled.
func (m configModel) accept() (tea.Model, tea.Cmd) {
	step := m.steps[m.current]
	if step.boolean {
		if v := strings.TrimSpace(m.inputs[m.current].Value()); v != "" {
			if _, err := parseBoolAnswer(v); err != nil {
				m.inputErr = err
				return m, nil
			}
		}
	}
	m.inputErr = nil
	m.inputs[m.current].Blur()

	next := m.current + 1
	for next < len(m.steps) && m.steps[next].cleanerOnly && !m.cleaningEnabled() {
		next++
	}
	if next >= len(m.steps) {
		m.done = true
		return m, tea.Quit
	}
	m.current = next
	return m, m.inputs[m.current].Focus()
}

// cleaningEnabled resolves the boolean answer, falling back to the
// placeholder default when the field was left empty.
func (m configModel) cleaningEnabled() bool {
	for i, step := range m.steps {
		if !step.boolean {
			continue
		}
		answer := strings.TrimSpace(m.inputs[i].Value())
		if answer == "" {
			answer = step.placeholder
		}
		enabled, err := parseBoolAnswer(answer)
		return err == nil && enabled
	}
	return false
}

// apply overlays the collected answers on defaults; empty answers keep the
// default value.
func (m configModel) apply(defaults config.Config) config.Config {
	cfg := defaults
	if v := strings.TrimSpace(m.inputs[0].Value()); v != "" {
		cfg.Paths.MusicDir = v
	}
	if v := strings.TrimSpace(m.inputs[1].Value()); v != "" {
		cfg.Paths.OutputDir = v
	}
	if v := strings.TrimSpace(m.inputs[2].Value()); v != "" {
		if enabled, err := parseBoolAnswer(v); err == nil {
			cfg.Cleaner.Enabled = enabled
		}
	}
	if v := strings.TrimSpace(m.inputs[3].Value()); v != "" {
		cfg.Cleaner.APIKey = v
	}
	if v := strings.TrimSpace(m.inputs[4].Value()); v != "" {
		cfg.Cleaner.BaseURL = v
	}
	if v := strings.TrimSpace(m.inputs[5].Value()); v != "" {
		cfg.Cleaner.Model = v
	}
	return cfg
}

func (m configModel) View() string {
	faint := lipgloss.NewStyle().Faint(true)
	focused := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))

	if m.canceled {
		return faint.Render("  canceled") + "\n"
	}

	var sb strings.Builder
	sb.WriteString("\n  " + focused.Render("lyricdeck setup") + "\n\n")

	for i := 0; i < len(m.steps); i++ {
		if i > m.current || (i == m.current && !m.done) {
			break
		}
		value := strings.TrimSpace(m.inputs[i].Value())
		shown := value
		if m.steps[i].secret && value != "" {
			shown = strings.Repeat("•", utf8.RuneCountInString(value))
		}
		if shown == "" {
			shown = faint.Render(m.steps[i].placeholder + " (default)")
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", faint.Render(fmt.Sprintf("%-32s", m.steps[i].label)), shown))
	}
	if m.done {
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("\n  " + focused.Render(m.steps[m.current].label) + "\n")
	sb.WriteString("  " + m.inputs[m.current].View() + "\n")
	if m.inputErr != nil {
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		sb.WriteString("  " + red.Render(m.inputErr.Error()) + "\n")
	}
	sb.WriteString("\n" + faint.Render("  [Enter] Accept  [Esc] Cancel") + "\n")
	return sb.String()
}

// RunConfig walks through the setup prompts and returns a copy of defaults
// with the answers applied. The caller decides where to persist it.
func RunConfig(defaults *config.Config) (*config.Config, error) {
	if defaults == nil {
		d := config.Default()
		defaults = &d
	}
	if !stdinIsTerminal() {
		return nil, ErrNoTerminal
	}

	final, err := tea.NewProgram(newConfigModel(defaults)).Run()
	if err != nil {
		return nil, err
	}
	m := final.(configModel)
	if m.canceled {
		return nil, ErrCanceled
	}
	cfg := m.apply(*defaults)
	return &cfg, nil
}

func parseBoolAnswer(answer string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "true", "on", "1":
		return true, nil
	case "n", "no", "false", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("answer y or n")
}

func boolWord(v bool) string {
	if v {
		return "y"
	}
	return "n"
}
