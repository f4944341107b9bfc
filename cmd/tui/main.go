package main

// Terminal browser for a compiled fastac namespace. Point it at the JSON
// produced by `fastac -f json` and page through blocks, their metadata and
// their positional comments.

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	accentColor  = lipgloss.Color("#F59E0B")
	surfaceColor = lipgloss.Color("#1F2937")
	textColor    = lipgloss.Color("#F3F4F6")
	mutedColor   = lipgloss.Color("#9CA3AF")
	borderColor  = lipgloss.Color("#374151")
)

var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	typeStyles = map[string]lipgloss.Style{
		"dna":   lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		"rna":   lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true),
		"amino": lipgloss.NewStyle().Foreground(accentColor).Bold(true),
	}
)

// CompiledBlock mirrors the structured-document export of the compiler.
type CompiledBlock struct {
	Title    string         `json:"title"`
	Sequence string         `json:"sequence"`
	Meta     map[string]any `json:"meta"`
	Type     string         `json:"type"`
}

type listItem struct {
	block CompiledBlock
}

func (i listItem) FilterValue() string { return i.block.Title }

func (i listItem) Title() string { return i.block.Title }

func (i listItem) Description() string {
	style, ok := typeStyles[i.block.Type]
	if !ok {
		style = mutedStyle
	}
	return fmt.Sprintf("%s    %d residues", style.Render(i.block.Type), len(i.block.Sequence))
}

type mode int

const (
	modeSequence mode = iota
	modeMeta
	modeComments
)

func (m mode) String() string {
	switch m {
	case modeSequence:
		return "Sequence"
	case modeMeta:
		return "Metadata"
	case modeComments:
		return "Comments"
	default:
		return "Unknown"
	}
}

type model struct {
	list        list.Model
	blocks      []CompiledBlock
	currentMode mode
	showHelp    bool
	width       int
	height      int
}

func loadBlocks(path string) ([]CompiledBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]CompiledBlock
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	blocks := make([]CompiledBlock, 0, len(doc))
	for _, b := range doc {
		blocks = append(blocks, b)
	}
	// the document mapping carries no order; present titles alphabetically
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Title < blocks[j].Title })
	return blocks, nil
}

func newModel(blocks []CompiledBlock) model {
	items := make([]list.Item, len(blocks))
	for i, b := range blocks {
		items[i] = listItem{block: b}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Compiled blocks"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)
	return model{list: l, blocks: blocks, currentMode: modeSequence}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) cycleMode() model {
	m.currentMode = (m.currentMode + 1) % 3
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width / 3)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h":
			m.showHelp = !m.showHelp
			return m, nil
		case "tab":
			return m.cycleMode(), nil
		case "1":
			m.currentMode = modeSequence
			return m, nil
		case "2":
			m.currentMode = modeMeta
			return m, nil
		case "3":
			m.currentMode = modeComments
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelpModal()
	}

	left := containerStyle.
		Width(m.width/3 - 2).
		Height(m.height - 4).
		Render(m.list.View())

	right := containerStyle.
		Width((m.width*2)/3 - 2).
		Height(m.height - 4).
		Render(m.renderRightPanel())

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m model) renderRightPanel() string {
	selected := m.list.SelectedItem()
	if selected == nil {
		return "No block selected"
	}
	block := selected.(listItem).block
	return strings.Join(m.buildRightLines(block), "\n")
}

// buildRightLines renders the detail panel for one block under the current
// mode, wrapped to the panel width.
func (m model) buildRightLines(block CompiledBlock) []string {
	width := (m.width*2)/3 - 6
	if width < 10 {
		width = 10
	}
	lines := []string{titleStyle.Render(block.Title), ""}

	switch m.currentMode {
	case modeSequence:
		lines = append(lines, headingStyle.Render("Sequence:"), "")
		seq := block.Sequence
		if seq == "" {
			return append(lines, mutedStyle.Render("no sequence"))
		}
		for i := 0; i < len(seq); i += width {
			end := i + width
			if end > len(seq) {
				end = len(seq)
			}
			lines = append(lines, seq[i:end])
		}

	case modeMeta:
		lines = append(lines, headingStyle.Render("Metadata:"), "")
		blob, err := json.MarshalIndent(block.Meta, "", "  ")
		if err != nil {
			return append(lines, mutedStyle.Render("unrenderable metadata"))
		}
		lines = append(lines, strings.Split(string(blob), "\n")...)

	case modeComments:
		lines = append(lines, headingStyle.Render("Comments:"), "")
		comments, _ := block.Meta["comments"].([]any)
		if len(comments) == 0 {
			return append(lines, mutedStyle.Render("no comments"))
		}
		for _, c := range comments {
			triple, ok := c.([]any)
			if !ok || len(triple) != 3 {
				continue
			}
			lines = append(lines, fmt.Sprintf("%v..%v  %v", triple[0], triple[1], triple[2]))
		}
	}
	return lines
}

func (m model) renderStatusBar() string {
	left := fmt.Sprintf("%d/%d blocks", m.list.Index()+1, len(m.blocks))
	center := fmt.Sprintf("Mode: %s", m.currentMode.String())
	right := "'h' help - 'q' quit"

	spacing := m.width - len(left) - len(center) - len(right) - 6
	var content string
	if spacing > 0 {
		l := spacing / 2
		content = left + strings.Repeat(" ", l) + center + strings.Repeat(" ", spacing-l) + right
	} else {
		content = left + " | " + center
	}
	return statusBarStyle.Width(m.width).Render(content)
}

func (m model) renderHelpModal() string {
	help := `fastac namespace browser

Navigation:
  up/down, j/k   Navigate list
  /              Filter blocks

View modes:
  1, 2, 3        Sequence / Metadata / Comments
  tab            Cycle modes

General:
  h              Toggle this help
  q, Ctrl+C      Quit
`
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Foreground(textColor).
		Width(50).
		Render(help)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func main() {
	input := flag.String("in", "compiled.json", "structured JSON export to browse")
	flag.Parse()

	blocks, err := loadBlocks(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p := tea.NewProgram(newModel(blocks), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
