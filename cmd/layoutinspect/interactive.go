package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/gpu-layout/layout"
	"github.com/wippyai/gpu-layout/shader"
	"github.com/wippyai/gpu-layout/uniforms"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	treeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type itemKind int

const (
	itemUniform itemKind = iota
	itemStorage
	itemInputs
)

func (k itemKind) String() string {
	switch k {
	case itemUniform:
		return "uniform"
	case itemStorage:
		return "storage"
	default:
		return "inputs"
	}
}

type item struct {
	name string
	kind itemKind
}

type modelState int

const (
	stateBrowse modelState = iota
	stateDetail
)

type interactiveModel struct {
	reflection *shader.Reflection
	filename   string
	items      []item
	visible    []item
	filter     textinput.Model
	selected   int
	state      modelState
}

func newInteractiveModel(filename string, r *shader.Reflection) *interactiveModel {
	var items []item
	for _, name := range r.UniformBlocks() {
		items = append(items, item{name: name, kind: itemUniform})
	}
	for _, name := range r.StorageBuffers() {
		items = append(items, item{name: name, kind: itemStorage})
	}
	if len(r.Inputs()) > 0 {
		items = append(items, item{name: "vertex inputs", kind: itemInputs})
	}

	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()

	m := &interactiveModel{
		reflection: r,
		filename:   filename,
		items:      items,
		filter:     ti,
		state:      stateBrowse,
	}
	m.applyFilter()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for _, it := range m.items {
		if strings.Contains(strings.ToLower(it.name), query) {
			m.visible = append(m.visible, it)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "up":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.state == stateBrowse && len(m.visible) > 0 {
				m.state = stateDetail
				m.filter.Blur()
			}
			return m, nil

		case "esc":
			if m.state == stateDetail {
				m.state = stateBrowse
				m.filter.Focus()
				return m, nil
			}
			return m, tea.Quit

		case "q":
			if m.state == stateDetail {
				return m, tea.Quit
			}
		}
	}

	if m.state != stateBrowse {
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Layout Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no matches"))
			b.WriteString("\n")
		}
		for i, it := range m.visible {
			line := fmt.Sprintf("%-8s %s", it.kind, it.name)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + nameStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • enter show • esc quit"))

	case stateDetail:
		it := m.visible[m.selected]
		b.WriteString(nameStyle.Render(it.name))
		b.WriteString(" ")
		b.WriteString(typeStyle.Render(m.summary(it)))
		b.WriteString("\n\n")
		b.WriteString(treeStyle.Render(m.detail(it)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) summary(it item) string {
	label := bindingLabel(m.reflection, it.name)
	switch it.kind {
	case itemUniform:
		block, _ := m.reflection.UniformBlock(it.name)
		return fmt.Sprintf("%s %d bytes", label, uniforms.Size(block))
	case itemStorage:
		if d, ok := m.reflection.StorageBuffer(it.name); ok {
			return fmt.Sprintf("%s %s", label, d)
		}
		return label
	default:
		return fmt.Sprintf("%d inputs", len(m.reflection.Inputs()))
	}
}

func (m *interactiveModel) detail(it item) string {
	switch it.kind {
	case itemUniform:
		block, _ := m.reflection.UniformBlock(it.name)
		return layout.Tree(block)
	case itemStorage:
		block, _ := m.reflection.StorageBlock(it.name)
		return layout.Tree(block)
	default:
		var b strings.Builder
		for _, in := range m.reflection.Inputs() {
			fmt.Fprintf(&b, "@location(%d) %s\n", in.Location, in.Name)
		}
		return b.String()
	}
}

func runInteractive(filename string, r *shader.Reflection) error {
	p := tea.NewProgram(newInteractiveModel(filename, r), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
