// internal/ui/app.go
// The tabbed view over one evaluation session: analysis, chat, preview, and
// logs. The view never mutates session state directly; every change goes
// through a session method so the state machine stays authoritative.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"htmljudge/internal/commands"
	"htmljudge/internal/export"
	"htmljudge/internal/preview"
	"htmljudge/internal/session"
)

// turnDoneMsg signals that an evaluation round trip finished. The outcome is
// already recorded in the session; err carries only guard rejections.
type turnDoneMsg struct {
	err error
}

var tabOrder = []session.ViewMode{
	session.ModeAnalysis,
	session.ModeChat,
	session.ModePreview,
	session.ModeLogs,
}

type Model struct {
	sess      *session.Session
	sanitizer *preview.Sanitizer
	exportDir string
	createdAt time.Time

	width, height int
	ready         bool

	editor    textarea.Model
	chatInput textinput.Model
	viewport  viewport.Model
	spin      spinner.Model

	editing bool
	status  string
}

func New(sess *session.Session, exportDir string) Model {
	ed := textarea.New()
	ed.Placeholder = "Paste or type HTML here, then ctrl+s to evaluate"
	ed.CharLimit = 0

	in := textinput.New()
	in.Placeholder = "Follow-up message, or /help"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		sess:      sess,
		sanitizer: preview.NewSanitizer(),
		exportDir: exportDir,
		createdAt: time.Now(),
		editor:    ed,
		chatInput: in,
		spin:      sp,
		status:    "press e to open the editor, ? for help",
	}
}

func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 5
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.viewport.MouseWheelEnabled = true
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.editor.SetWidth(msg.Width - 4)
		m.editor.SetHeight(vpHeight - 2)
		m.chatInput.Width = msg.Width - 4
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.sess.Busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case turnDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = "evaluation complete"
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.editing {
		return m.handleEditorKey(msg)
	}

	mode := m.sess.ViewMode()

	switch msg.String() {
	case "tab":
		m.selectTab(nextTab(mode))
		return m, nil
	case "1", "2", "3", "4":
		m.selectTab(tabOrder[int(msg.String()[0]-'1')])
		return m, nil
	}

	if mode == session.ModeChat {
		return m.handleChatKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "e", "ctrl+e":
		m.openEditor()
		return m, nil
	case "a":
		if mode == session.ModePreview {
			m.sess.ApplyFix(m.sess.PreviewDocument())
			m.status = "preview document applied to editor"
		}
		return m, nil
	case "x":
		m.status = m.exportReport()
		return m, nil
	case "?":
		m.sess.AddNotice(commands.HelpText())
		m.selectTab(session.ModeChat)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.editor.Blur()
		m.status = "editor closed"
		return m, nil
	case "ctrl+s":
		doc := m.editor.Value()
		m.editing = false
		m.editor.Blur()
		return m.startEvaluation(doc)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.chatInput.Value())
		m.chatInput.SetValue("")
		if input == "" {
			return m, nil
		}
		return m.handleInput(input)
	case "ctrl+e":
		m.openEditor()
		return m, nil
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// handleInput routes chat-tab input: slash commands are executed, anything
// else becomes a follow-up chat turn.
func (m Model) handleInput(input string) (tea.Model, tea.Cmd) {
	cmd := commands.Parse(input)
	if cmd == nil {
		return m.startChat(input)
	}

	switch c := cmd.(type) {
	case commands.Help:
		m.sess.AddNotice(commands.HelpText())
		m.refresh()
	case commands.Evaluate:
		return m.startEvaluation(m.sess.EditorDocument())
	case commands.Apply:
		m.sess.ApplyFix(m.sess.PreviewDocument())
		m.status = "preview document applied to editor"
	case commands.Export:
		m.status = m.exportReport()
	case commands.Reset:
		if err := m.sess.Reset(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "conversation cleared"
			m.refresh()
		}
	case commands.Tab:
		mode, ok := session.ParseViewMode(c.Name)
		if !ok {
			m.status = "unknown tab: " + c.Name
		} else {
			m.selectTab(mode)
		}
	case commands.Quit:
		return m, tea.Quit
	case commands.ParseError:
		m.status = c.Message
	}

	return m, nil
}

func (m *Model) openEditor() {
	m.editing = true
	m.editor.SetValue(m.sess.EditorDocument())
	m.editor.Focus()
	m.status = "editing: ctrl+s evaluates, esc closes"
}

func (m *Model) selectTab(mode session.ViewMode) {
	m.sess.SetViewMode(mode)
	if mode == session.ModeChat {
		m.chatInput.Focus()
	} else {
		m.chatInput.Blur()
	}
	m.refresh()
}

func (m Model) startEvaluation(doc string) (tea.Model, tea.Cmd) {
	if m.sess.Busy() {
		m.status = "an evaluation is already in flight"
		return m, nil
	}
	m.status = "evaluating..."
	m.chatInput.Blur()
	sess := m.sess
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		return turnDoneMsg{err: sess.SubmitEvaluation(context.Background(), doc)}
	})
}

func (m Model) startChat(text string) (tea.Model, tea.Cmd) {
	if m.sess.Busy() {
		m.status = "an evaluation is already in flight"
		return m, nil
	}
	m.status = "waiting for the judge..."
	sess := m.sess
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		return turnDoneMsg{err: sess.SubmitChat(context.Background(), text)}
	})
}

func (m *Model) exportReport() string {
	path, err := export.WriteSession(&export.SessionExport{
		ID:         m.sess.ID(),
		CreatedAt:  m.createdAt,
		Turns:      m.sess.History(),
		Result:     m.latestResult(),
		PreviewDoc: m.sess.PreviewDocument(),
		Tiers:      m.sess.Tiers(),
	}, m.exportDir)
	if err != nil {
		return "export failed: " + err.Error()
	}
	return "exported to " + path
}

// refresh re-renders the active tab into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	var content string
	switch m.sess.ViewMode() {
	case session.ModeChat:
		content = m.renderConversation()
	case session.ModePreview:
		content = m.renderPreview()
	case session.ModeLogs:
		content = m.renderLogs()
	default:
		content = m.renderAnalysis()
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
	if m.sess.ViewMode() == session.ModeChat {
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.editing {
		return fmt.Sprintf("%s\n%s\n%s",
			TitleStyle.Render("EDITOR"),
			ActiveBox.Render(m.editor.View()),
			DimStyle.Render(m.status))
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.sess.ViewMode() == session.ModeChat {
		b.WriteString(m.chatInput.View())
		b.WriteString("\n")
	} else {
		b.WriteString(DimStyle.Render("tab: switch  e: edit  a: apply  x: export  q: quit"))
		b.WriteString("\n")
	}

	b.WriteString(DimStyle.Render(m.status))
	return b.String()
}

func (m Model) renderTabs() string {
	var parts []string
	active := m.sess.ViewMode()
	for i, mode := range tabOrder {
		label := fmt.Sprintf("%d:%s", i+1, mode)
		if mode == active {
			parts = append(parts, ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, InactiveTabStyle.Render(label))
		}
	}
	line := strings.Join(parts, DimStyle.Render(" | "))
	if m.sess.Busy() {
		line += "  " + m.spin.View() + NoticeStyle.Render(" evaluating")
	}
	return line
}

func nextTab(mode session.ViewMode) session.ViewMode {
	for i, t := range tabOrder {
		if t == mode {
			return tabOrder[(i+1)%len(tabOrder)]
		}
	}
	return tabOrder[0]
}
