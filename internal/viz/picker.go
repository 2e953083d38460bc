package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orrery/internal/config"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

var presetInfo = map[string]string{
	"solar":   "sun, planets and major moons",
	"inner":   "sun to mars",
	"outer":   "sun, giants and their moons",
	"jovian":  "jupiter and the galilean moons",
	"classic": "solar, softened rocket gravity",
	"binary":  "planet around two suns",
}

// picker is a menu of presets shown before the live view.
type picker struct {
	presets []string
	cursor  int
	chosen  string
}

func newPicker() picker {
	return picker{presets: config.ListPresets()}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		p.chosen = p.presets[p.cursor]
		return p, tea.Quit
	}
	return p, nil
}

func (p picker) View() string {
	var s strings.Builder
	s.WriteString("\n  " + cyan.Bold(true).Render("orrery") + dim.Render("  choose a system") + "\n\n")
	for i, name := range p.presets {
		line := fmt.Sprintf("%-10s %s", name, dimmer.Render(presetInfo[name]))
		if i == p.cursor {
			s.WriteString("  " + cyan.Render("›") + " " + white.Render(line) + "\n")
		} else {
			s.WriteString("    " + dim.Render(line) + "\n")
		}
	}
	s.WriteString("\n  " + dimmer.Render("↑↓ select · enter start · q quit") + "\n")
	return s.String()
}

// Pick shows the preset menu and returns the chosen preset name, or ""
// when the user quits.
func Pick() (string, error) {
	final, err := tea.NewProgram(newPicker(), tea.WithAltScreen()).Run()
	if err != nil {
		return "", err
	}
	return final.(picker).chosen, nil
}
