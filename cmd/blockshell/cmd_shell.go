package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	styleHelp   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	stylePrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// maxScrollback bounds the lines kept on screen.
const maxScrollback = 200

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Place and connect blocks on a scratch workspace interactively",
	Long: "Open an interactive shell over a scratch workspace. Place blocks,\n" +
		"connect them, and watch connection checks and tooltips respond.\n" +
		"`reload` re-reads the block files and drops connections the new\n" +
		"definitions no longer allow. Type `help` inside the shell for commands.\n\n" +
		"--plain swaps the full-screen view for a line prompt with persistent history.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPalette(logger)
		if err != nil {
			return err
		}
		sess := newSession(p, func() (*palette, error) { return loadPalette(logger) })
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			return runPlainShell(sess)
		}
		_, err = tea.NewProgram(newShellModel(sess)).Run()
		return err
	},
}

type shellModel struct {
	sess       *session
	input      textinput.Model
	lines      []string
	suggestion string
}

func newShellModel(sess *session) shellModel {
	ti := textinput.New()
	ti.Placeholder = "type a command (help for a list)"
	ti.Focus()
	ti.CharLimit = 200
	return shellModel{
		sess:  sess,
		input: ti,
		lines: []string{styleHelp.Render("palette: " + strings.Join(sess.reg.Names(), ", "))},
	}
}

func (m shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab:
			if m.suggestion != "" {
				m.input.SetValue(m.suggestion)
				m.input.CursorEnd()
				m.suggestion = ""
			}
			return m, nil

		case tea.KeyEnter:
			raw := strings.TrimSpace(m.input.Value())
			if raw == "" {
				return m, nil
			}
			if raw == "exit" {
				return m, tea.Quit
			}
			m.lines = append(m.lines, stylePrompt.Render("> ")+raw)
			out, err := m.sess.exec(raw)
			if err != nil {
				m.lines = append(m.lines, styleErr.Render(err.Error()))
			} else if out != "" {
				m.lines = append(m.lines, out)
			}
			if len(m.lines) > maxScrollback {
				m.lines = m.lines[len(m.lines)-maxScrollback:]
			}
			m.input.SetValue("")
			m.suggestion = ""
			return m, nil

		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.suggestion = m.sess.complete(m.input.Value())
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render(appName+" shell") + "\n\n")
	for _, line := range m.lines {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + m.input.View())
	if m.suggestion != "" && m.suggestion != m.input.Value() {
		sb.WriteString("\n" + styleHelp.Render("  tab → "+m.suggestion))
	}
	sb.WriteString("\n\n" + styleHelp.Render("[tab] complete  [enter] run  [ctrl+c] quit") + "\n")
	return sb.String()
}

func init() {
	shellCmd.Flags().Bool("plain", false, "use a line prompt instead of the full-screen view")
}
