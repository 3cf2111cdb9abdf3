package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item is one selectable row in the picker.
type Item struct {
	Label  string
	Detail string
}

type pickerModel struct {
	title    string
	items    []Item
	order    []int // item indexes in pick order
	cursor   int
	done     bool
	canceled bool
}

func newPickerModel(title string, items []Item) pickerModel {
	return pickerModel{title: title, items: items}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ", "space":
		m.toggle(m.cursor)
	case "enter":
		m.done = true
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.canceled = true
		return m, tea.Quit
	}
	return m, nil
}

// toggle picks the item at index, or withdraws it when already picked so
// the remaining picks keep their relative order.
func (m *pickerModel) toggle(index int) {
	for i, picked := range m.order {
		if picked == index {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
	m.order = append(m.order, index)
}

// pickPosition returns the 1-based pick position of index, or 0 when the
// item is not picked.
func (m pickerModel) pickPosition(index int) int {
	for i, picked := range m.order {
		if picked == index {
			return i + 1
		}
	}
	return 0
}

// selection resolves the final pick: the explicit order when anything was
// picked, otherwise every item in display order.
func (m pickerModel) selection() []int {
	if len(m.order) > 0 {
		return append([]int(nil), m.order...)
	}
	all := make([]int, len(m.items))
	for i := range m.items {
		all[i] = i
	}
	return all
}

func (m pickerModel) View() string {
	faint := lipgloss.NewStyle().Faint(true)
	focused := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))

	if m.canceled {
		return faint.Render("  canceled") + "\n"
	}
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n  " + focused.Render(m.title) + "\n\n")
	for i, item := range m.items {
		prefix := "  "
		label := item.Label
		if i == m.cursor {
			prefix = "▸ "
			label = focused.Render(label)
		}
		badge := faint.Render("[ ]")
		if pos := m.pickPosition(i); pos > 0 {
			badge = fmt.Sprintf("[%d]", pos)
		}
		line := fmt.Sprintf("%s%s %s", prefix, badge, label)
		if item.Detail != "" {
			line += "  " + faint.Render(item.Detail)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(faint.Render("  [↑↓] Navigate  [Space] Pick  [Enter] Confirm  [Esc] Cancel"))
	sb.WriteString("\n")
	sb.WriteString(faint.Render("  Confirming without picks takes everything in listed order."))
	sb.WriteString("\n")
	return sb.String()
}

// RunPicker shows an ordered multi-select over items and returns the chosen
// item indexes in pick order. Confirming without picking anything selects
// every item in display order.
func RunPicker(title string, items []Item) ([]int, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("nothing to pick from")
	}
	if !stdinIsTerminal() {
		return nil, ErrNoTerminal
	}

	final, err := tea.NewProgram(newPickerModel(title, items)).Run()
	if err != nil {
		return nil, err
	}
	m := final.(pickerModel)
	if m.canceled {
		return nil, ErrCanceled
	}
	return m.selection(), nil
}
