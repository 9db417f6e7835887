package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wsd/internal/config"
	"wsd/internal/export"
	"wsd/internal/open"
	"wsd/internal/render"
	"wsd/internal/scan"
	"wsd/internal/store"
)

const debounceDelay = 200 * time.Millisecond

// Session carries everything the interactive view needs: the parsed
// export, the resolved group (may be nil), and the open store.
type Session struct {
	Cfg      *config.Config
	Store    *store.Store
	File     scan.ExportFile
	Messages []export.Message
	Group    *store.Group
	Override string
}

// message types

type debounceTickMsg struct {
	value string
}

type editorFinishedMsg struct {
	err error
}

// model

type model struct {
	cfg   *config.Config
	st    *store.Store
	file  scan.ExportFile
	msgs  []export.Message
	group *store.Group

	report export.Report
	cutoff export.Cutoff
	stored *time.Time
	newIDs map[string]bool

	overrideInput textinput.Model
	override      string

	cursor     int
	listOffset int
	preview    viewport.Model
	previewID  string
	width      int
	height     int
	ready      bool
	quitting   bool
	note       string // transient feedback (copied, synced, errors)
	noteErr    bool
}

func initialModel(s Session) model {
	ti := textinput.New()
	ti.Placeholder = "Cutoff override, e.g. 2026-02-25T19:03 or [25/02/26, 7:03:37 PM]"
	ti.Focus()
	ti.SetValue(s.Override)
	ti.Prompt = "cutoff> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 64

	m := model{
		cfg:           s.Cfg,
		st:            s.Store,
		file:          s.File,
		msgs:          s.Messages,
		group:         s.Group,
		overrideInput: ti,
		override:      s.Override,
		preview:       viewport.New(0, 0),
	}
	m.stored = m.storedCheckpoint()
	m.rebuild()
	return m
}

// Run starts the interactive diff view and blocks until it exits.
func Run(s Session) error {
	p := tea.NewProgram(initialModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// storedCheckpoint reads the persisted checkpoint for the current group.
func (m model) storedCheckpoint() *time.Time {
	if m.group == nil {
		return nil
	}
	cps := m.st.LoadCheckpoints()
	if t, ok := store.CheckpointTime(cps, m.group.Name); ok {
		return &t
	}
	return nil
}

// rebuild re-resolves the cutoff from the override and stored checkpoint
// and recomputes the partition. The cursor lands on the first new message.
func (m *model) rebuild() {
	m.cutoff = export.ResolveCutoff(m.override, "", m.stored)
	m.report = export.BuildReport(m.msgs, m.cutoff.Ptr())

	m.newIDs = make(map[string]bool, len(m.report.New))
	for _, msg := range m.report.New {
		m.newIDs[msg.ID] = true
	}

	m.cursor = 0
	for i, msg := range m.report.All {
		if m.newIDs[msg.ID] {
			m.cursor = i
			break
		}
	}
	m.listOffset = 0
	m.adjustListScroll(m.panelHeight())
	m.previewID = ""
}

func (m model) isNew(msg export.Message) bool {
	return m.newIDs[msg.ID]
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = viewport.New(m.previewWidth(), m.panelHeight())
		m.previewID = ""
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Copy):
			return m.copyNewMessages(), nil

		case key.Matches(msg, keys.Attachments):
			return m.copyAttachmentNames(), nil

		case key.Matches(msg, keys.Sync):
			return m.markSynced(), nil

		case key.Matches(msg, keys.OpenEditor):
			line := 1
			if len(m.report.All) > 0 && m.cursor < len(m.report.All) {
				line = m.report.All[m.cursor].Line
			}
			cmd := open.EditorCommand(m.file.Path, line)
			return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
				return editorFinishedMsg{err: err}
			})

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				m.refreshPreview()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.report.All)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				m.refreshPreview()
			}
			return m, nil

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil
		}

		// Pass remaining keys to the override input.
		var tiCmd tea.Cmd
		m.overrideInput, tiCmd = m.overrideInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if v := m.overrideInput.Value(); v != m.override {
			m.override = v
			m.note = ""
			m.noteErr = false
			cmds = append(cmds, tea.Tick(debounceDelay, func(time.Time) tea.Msg {
				return debounceTickMsg{value: v}
			}))
		}
		return m, tea.Batch(cmds...)

	case debounceTickMsg:
		// Only rebuild if the override hasn't changed since the tick was scheduled.
		if msg.value == m.override {
			m.rebuild()
			m.refreshPreview()
		}
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.note = "editor: " + msg.err.Error()
			m.noteErr = true
		}
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// copyNewMessages puts the new half of the diff on the clipboard in the
// original export format.
func (m model) copyNewMessages() model {
	if len(m.report.New) == 0 {
		m.note, m.noteErr = "nothing new to copy", false
		return m
	}
	if err := clipboard.WriteAll(export.FormatMessages(m.report.New)); err != nil {
		m.note, m.noteErr = "clipboard unavailable: "+err.Error(), true
		return m
	}
	m.note, m.noteErr = fmt.Sprintf("copied %d new messages", len(m.report.New)), false
	return m
}

func (m model) copyAttachmentNames() model {
	names := export.AttachmentFilenames(m.report.New)
	if len(names) == 0 {
		m.note, m.noteErr = "no attachments in the new half", false
		return m
	}
	if err := clipboard.WriteAll(strings.Join(names, "\n")); err != nil {
		m.note, m.noteErr = "clipboard unavailable: "+err.Error(), true
		return m
	}
	m.note, m.noteErr = fmt.Sprintf("copied %d attachment names", len(names)), false
	return m
}

// markSynced advances the stored checkpoint to the newest message and
// records the sync on the group, then clears the override so the stored
// value takes effect.
func (m model) markSynced() model {
	if len(m.report.New) == 0 {
		m.note, m.noteErr = "nothing new to sync", false
		return m
	}

	if m.group == nil {
		g, err := m.st.AddGroup(groupNameFromFile(m.file.Path))
		if err != nil {
			m.note, m.noteErr = "add group: "+err.Error(), true
			return m
		}
		m.group = &g
	}

	last := m.report.New[len(m.report.New)-1]
	if err := m.st.SetCheckpoint(m.group.Name, last.Timestamp); err != nil {
		m.note, m.noteErr = "save checkpoint: "+err.Error(), true
		return m
	}
	preview := export.Preview(last, m.cfg.PreviewLength)
	if err := m.st.UpdateGroupSync(m.group.ID, last.Timestamp, preview); err != nil {
		m.note, m.noteErr = "update group: "+err.Error(), true
		return m
	}

	t := last.Timestamp
	m.stored = &t
	m.override = ""
	m.overrideInput.SetValue("")
	m.rebuild()
	m.refreshPreview()
	m.note, m.noteErr = fmt.Sprintf("synced %q through %s", m.group.Name, export.FormatDateTimeLocal(t)), false
	return m
}

// refreshPreview re-renders the detail pane for the selected message.
func (m *model) refreshPreview() {
	if len(m.report.All) == 0 || m.cursor >= len(m.report.All) {
		m.preview.SetContent("")
		m.previewID = ""
		return
	}
	msg := m.report.All[m.cursor]
	if msg.ID == m.previewID {
		return
	}
	m.preview.SetContent(render.Detail(msg, m.isNew(msg), m.previewWidth()))
	m.preview.GotoTop()
	m.previewID = msg.ID
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.overrideInput.View()

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

func (m model) statusBar() string {
	if m.note != "" {
		if m.noteErr {
			return styleStatusWarn.Render(m.note)
		}
		return styleStatusNote.Render(m.note)
	}
	if len(m.cutoff.Warnings) > 0 {
		return styleStatusWarn.Render(m.cutoff.Warnings[0])
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d new / %d previous", m.report.Summary.NewCount, m.report.Summary.PrevCount))
	if m.group != nil {
		parts = append(parts, m.group.Name)
	}
	if m.cutoff.Ok() {
		parts = append(parts, fmt.Sprintf("cutoff %s (%s)", export.FormatDateTimeLocal(m.cutoff.Time), m.cutoff.Source))
	} else {
		parts = append(parts, "no cutoff")
	}
	parts = append(parts, "enter copy new")
	parts = append(parts, "C-s sync")
	parts = append(parts, "C-a attachments")
	parts = append(parts, "C-o open")
	parts = append(parts, "esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

// layout

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

// groupNameFromFile derives a registry name from an export filename,
// e.g. "WhatsApp Chat with Family.txt" becomes "Family".
func groupNameFromFile(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".txt")
	base = strings.TrimSuffix(base, ".TXT")
	for _, prefix := range []string{"WhatsApp Chat with ", "WhatsApp Chat - "} {
		if rest, ok := strings.CutPrefix(base, prefix); ok {
			return rest
		}
	}
	return base
}
