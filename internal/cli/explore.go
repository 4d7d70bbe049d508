package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/commute/internal/corpus"
	"github.com/matzehuels/commute/pkg/derive"
	"github.com/matzehuels/commute/pkg/diagram"
	"github.com/matzehuels/commute/pkg/dsl"
	"github.com/matzehuels/commute/pkg/errors"
	"github.com/matzehuels/commute/pkg/reconstruct"
	"github.com/matzehuels/commute/pkg/render/latex"
)

// exploreCommand creates the explore command, an interactive browser of
// diagrams and their equations.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [file...]",
		Short: "Browse diagrams and their equations interactively",
		Long: `Explore opens a terminal browser listing the given diagram files, followed by
the reference diagrams. The detail pane shows each diagram, its derived
equations, the round-trip verdict and its codi source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout) {
				return errors.New(errors.ErrCodeUnsupported, "explore needs an interactive terminal")
			}
			var items []exploreItem
			for _, path := range args {
				g, err := loadDiagram(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				items = append(items, exploreItem{name: path, g: g})
			}
			for _, e := range corpus.All() {
				items = append(items, exploreItem{name: e.Name, g: e.Graph()})
			}

			p := tea.NewProgram(newExploreModel(items), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
}

const exploreListWidth = 26

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	paneStyle         = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

type exploreItem struct {
	name string
	g    *diagram.Graph
}

// exploreModel is the bubbletea model behind explore: a list on the left
// and a scrollable detail viewport on the right.
type exploreModel struct {
	items  []exploreItem
	cursor int
	offset int
	height int
	detail viewport.Model
	cache  map[int]string
}

func newExploreModel(items []exploreItem) exploreModel {
	m := exploreModel{
		items:  items,
		height: 20,
		detail: viewport.New(60, 20),
		cache:  make(map[int]string),
	}
	m.refresh()
	return m
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
				m.refresh()
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
				m.refresh()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-4, 3)
		m.detail.Width = max(msg.Width-exploreListWidth-6, 20)
		m.detail.Height = m.height
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// refresh loads the detail text of the selected item into the viewport.
func (m *exploreModel) refresh() {
	if len(m.items) == 0 {
		return
	}
	text, ok := m.cache[m.cursor]
	if !ok {
		text = exploreDetail(m.items[m.cursor].g)
		m.cache[m.cursor] = text
	}
	m.detail.SetContent(text)
	m.detail.GotoTop()
}

func (m exploreModel) View() string {
	var list strings.Builder
	end := min(m.offset+m.height, len(m.items))
	for i := m.offset; i < end; i++ {
		name := m.items[i].name
		if len(name) > exploreListWidth-2 {
			name = name[:exploreListWidth-3] + "…"
		}
		if i == m.cursor {
			list.WriteString(listSelectedStyle.Render("▸ " + name))
		} else {
			list.WriteString(listNormalStyle.Render("  " + name))
		}
		list.WriteString("\n")
	}
	left := lipgloss.NewStyle().Width(exploreListWidth).Render(list.String())
	right := paneStyle.Render(m.detail.View())

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Commutative diagrams"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  pgup/pgdn scroll  q quit"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.items))))
	return b.String()
}

// exploreDetail renders the detail pane for g.
func exploreDetail(g *diagram.Graph) string {
	var b strings.Builder
	section := func(title string) {
		b.WriteString(StyleTitle.Render(title))
		b.WriteString("\n")
	}

	section("Diagram")
	b.WriteString(dsl.SerializeDiagram(g))
	b.WriteString("\n")

	section("Equations")
	res, err := derive.Equations(g, derive.Options{})
	if err != nil {
		b.WriteString(StyleError.Render(errors.UserMessage(err)))
		return b.String()
	}
	for _, l := range res.Lines() {
		b.WriteString(highlightEquation(l))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	section("Round trip")
	rebuilt, err := reconstruct.FromEquations(res.Equations)
	switch {
	case err != nil:
		b.WriteString(StyleError.Render(errors.UserMessage(err)))
	case diagram.Equivalent(g, rebuilt):
		b.WriteString(StyleSuccess.Render(iconSuccess + " rebuilt diagram matches"))
	default:
		b.WriteString(StyleError.Render(iconError + " rebuilt diagram differs"))
	}
	b.WriteString("\n\n")

	section("codi")
	b.WriteString(latex.Codi(g))
	return b.String()
}
