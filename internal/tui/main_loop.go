package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandrawisnu/noteshare/internal/service"
	"github.com/leandrawisnu/noteshare/internal/session"
	"github.com/leandrawisnu/noteshare/models"
)

type createStage int

const (
	createStageNone createStage = iota
	createStageTitle
	createStageContent
	createStageFiles
)

type pendingDelete int

const (
	pendingNone pendingDelete = iota
	pendingNote
	pendingAttachment
)

type uploadDoneMsg struct {
	outcomes []service.AttachmentUploadOutcome
}

type mainLoopModel struct {
	ctx     context.Context
	notes   service.ClientNoteService
	session *session.Session

	items   []models.Note
	idx     int
	loading bool
	status  string
	errMsg  string

	detail bool
	attIdx int

	createStage   createStage
	createTitle   textinput.Model
	createContent textarea.Model
	createFiles   textinput.Model
	createSaving  bool

	uploading   bool
	uploadInput textinput.Model

	confirm pendingDelete

	logout bool
}

func newMainLoopModel(ctx context.Context, notes service.ClientNoteService, sess *session.Session) mainLoopModel {
	return mainLoopModel{
		ctx:     ctx,
		notes:   notes,
		session: sess,
		loading: true,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadNotes()
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.notes
		if m.idx >= len(m.items) {
			m.idx = len(m.items) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case noteCreatedMsg:
		m.createSaving = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
			m.resetCreateFlow()
			return m, nil
		}
		m.status = createdStatusLine(msg.uploads)
		m.errMsg = ""
		m.resetCreateFlow()
		m.loading = true
		return m, m.cmdLoadNotes()
	case noteDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("delete failed: %v", msg.err)
			return m, nil
		}
		m.status = "Note deleted"
		m.errMsg = ""
		m.detail = false
		m.loading = true
		return m, m.cmdLoadNotes()
	case attachmentDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("attachment delete failed: %v", msg.err)
			return m, nil
		}
		m.status = "Attachment deleted"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadNotes()
	case uploadDoneMsg:
		m.uploading = false
		m.status = createdStatusLine(msg.outcomes)
		m.loading = true
		return m, m.cmdLoadNotes()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.createStage != createStageNone {
			return m.updateCreateFlow(msg)
		}
		if m.uploading {
			return m.updateUpload(msg)
		}
		return m, nil
	}

	if m.confirm != pendingNone {
		return m.updateConfirm(keyMsg)
	}

	if m.createStage != createStageNone {
		return m.updateCreateFlow(msg)
	}

	if m.uploading {
		return m.updateUpload(msg)
	}

	if key.Matches(keyMsg, keys.quit) {
		return m, tea.Quit
	}

	if m.detail {
		return m.updateDetail(keyMsg)
	}

	return m.updateList(keyMsg)
}

// ── list mode ───────────────────────────────────────────────────────────────

func (m mainLoopModel) updateList(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if _, ok := m.current(); !ok {
			m.status = "No notes"
			return m, nil
		}
		m.attIdx = 0
		m.detail = true
	case key.Matches(keyMsg, keys.newNote):
		if m.session.UserID() == 0 {
			m.status = "Sign in to create notes"
			return m, nil
		}
		m.startCreateFlow()
	case key.Matches(keyMsg, keys.refresh):
		m.loading = true
		m.status = ""
		return m, m.cmdLoadNotes()
	case key.Matches(keyMsg, keys.delete):
		note, ok := m.current()
		if !ok {
			m.status = "No notes"
			return m, nil
		}
		if !m.ownsNote(note) {
			m.status = "Only the owner can delete a note"
			return m, nil
		}
		m.confirm = pendingNote
	case key.Matches(keyMsg, keys.logout):
		m.session.Clear()
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

// ── detail mode ─────────────────────────────────────────────────────────────

func (m mainLoopModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	note, ok := m.current()
	if !ok {
		m.detail = false
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.detail = false
	case key.Matches(keyMsg, keys.up):
		if m.attIdx > 0 {
			m.attIdx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.attIdx < len(note.Attachments)-1 {
			m.attIdx++
		}
	case key.Matches(keyMsg, keys.copy):
		att, ok := m.currentAttachment(note)
		if !ok {
			m.status = "Nothing to copy"
			return m, nil
		}
		if err := clipboard.WriteAll(att.URL); err != nil {
			m.errMsg = fmt.Sprintf("copy failed: %v", err)
			return m, nil
		}
		m.status = "Attachment URL copied"
	case keyMsg.String() == "u":
		if m.session.UserID() == 0 {
			m.status = "Sign in to upload attachments"
			return m, nil
		}
		m.startUpload()
	case key.Matches(keyMsg, keys.remove):
		if _, ok := m.currentAttachment(note); !ok {
			m.status = "No attachments"
			return m, nil
		}
		if !m.ownsNote(note) {
			m.status = "Only the note owner can delete attachments"
			return m, nil
		}
		m.confirm = pendingAttachment
	case key.Matches(keyMsg, keys.delete):
		if !m.ownsNote(note) {
			m.status = "Only the owner can delete a note"
			return m, nil
		}
		m.confirm = pendingNote
	}

	return m, nil
}

// ── confirm overlay ─────────────────────────────────────────────────────────

func (m mainLoopModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		pending := m.confirm
		m.confirm = pendingNone

		note, ok := m.current()
		if !ok {
			return m, nil
		}

		switch pending {
		case pendingNote:
			return m, m.cmdDeleteNote(note.ID)
		case pendingAttachment:
			att, ok := m.currentAttachment(note)
			if !ok {
				return m, nil
			}
			return m, m.cmdDeleteAttachment(att.ID)
		}
	case key.Matches(keyMsg, keys.no):
		m.confirm = pendingNone
	}

	return m, nil
}

// ── create flow ─────────────────────────────────────────────────────────────

func (m *mainLoopModel) startCreateFlow() {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200
	title.Width = 48
	title.Focus()

	content := textarea.New()
	content.Placeholder = "content"
	content.SetWidth(48)
	content.SetHeight(6)

	files := textinput.New()
	files.Placeholder = "image paths, comma separated (optional)"
	files.Width = 48

	m.createTitle = title
	m.createContent = content
	m.createFiles = files
	m.createStage = createStageTitle
}

func (m *mainLoopModel) resetCreateFlow() {
	m.createStage = createStageNone
	m.createSaving = false
}

func (m mainLoopModel) updateCreateFlow(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.resetCreateFlow()
			return m, nil
		case "tab":
			m.advanceCreateStage()
			return m, nil
		case "enter":
			// enter inside the content textarea inserts a newline
			if m.createStage != createStageContent {
				if m.createStage == createStageTitle {
					m.advanceCreateStage()
					return m, nil
				}
				return m.submitCreate()
			}
		}
	}

	var cmd tea.Cmd
	switch m.createStage {
	case createStageTitle:
		m.createTitle, cmd = m.createTitle.Update(msg)
	case createStageContent:
		m.createContent, cmd = m.createContent.Update(msg)
	case createStageFiles:
		m.createFiles, cmd = m.createFiles.Update(msg)
	}
	return m, cmd
}

func (m *mainLoopModel) advanceCreateStage() {
	switch m.createStage {
	case createStageTitle:
		m.createTitle.Blur()
		m.createContent.Focus()
		m.createStage = createStageContent
	case createStageContent:
		m.createContent.Blur()
		m.createFiles.Focus()
		m.createStage = createStageFiles
	case createStageFiles:
		m.createFiles.Blur()
		m.createTitle.Focus()
		m.createStage = createStageTitle
	}
}

func (m mainLoopModel) submitCreate() (tea.Model, tea.Cmd) {
	if m.createSaving {
		return m, nil
	}

	// an empty title is a valid note
	title := strings.TrimSpace(m.createTitle.Value())

	m.createSaving = true
	return m, m.cmdCreateNote(title, m.createContent.Value(), splitPaths(m.createFiles.Value()))
}

// ── upload flow ─────────────────────────────────────────────────────────────

func (m *mainLoopModel) startUpload() {
	input := textinput.New()
	input.Placeholder = "image paths, comma separated"
	input.Width = 48
	input.Focus()

	m.uploadInput = input
	m.uploading = true
}

func (m mainLoopModel) updateUpload(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.uploading = false
			return m, nil
		case "enter":
			paths := splitPaths(m.uploadInput.Value())
			if len(paths) == 0 {
				return m, nil
			}
			note, hasNote := m.current()
			if !hasNote {
				m.uploading = false
				return m, nil
			}
			return m, m.cmdUploadAttachments(note.ID, paths)
		}
	}

	var cmd tea.Cmd
	m.uploadInput, cmd = m.uploadInput.Update(msg)
	return m, cmd
}

// ── commands ────────────────────────────────────────────────────────────────

func (m mainLoopModel) cmdLoadNotes() tea.Cmd {
	ctx := m.ctx
	notes := m.notes

	return func() tea.Msg {
		loaded, err := notes.ListNotes(ctx, 0)
		return notesLoadedMsg{notes: loaded, err: err}
	}
}

func (m mainLoopModel) cmdCreateNote(title, content string, paths []string) tea.Cmd {
	ctx := m.ctx
	notes := m.notes

	return func() tea.Msg {
		created, err := notes.CreateNote(ctx, models.Note{Title: title, Content: content})
		if err != nil {
			return noteCreatedMsg{err: err}
		}

		var uploads []service.AttachmentUploadOutcome
		if len(paths) > 0 {
			uploads = notes.UploadAttachments(ctx, created.ID, paths)
		}

		return noteCreatedMsg{note: created, uploads: uploads}
	}
}

func (m mainLoopModel) cmdDeleteNote(noteID int64) tea.Cmd {
	ctx := m.ctx
	notes := m.notes

	return func() tea.Msg {
		return noteDeletedMsg{err: notes.DeleteNote(ctx, noteID)}
	}
}

func (m mainLoopModel) cmdDeleteAttachment(attachmentID int64) tea.Cmd {
	ctx := m.ctx
	notes := m.notes

	return func() tea.Msg {
		return attachmentDeletedMsg{err: notes.DeleteAttachment(ctx, attachmentID)}
	}
}

func (m mainLoopModel) cmdUploadAttachments(noteID int64, paths []string) tea.Cmd {
	ctx := m.ctx
	notes := m.notes

	return func() tea.Msg {
		return uploadDoneMsg{outcomes: notes.UploadAttachments(ctx, noteID, paths)}
	}
}

// ── view ────────────────────────────────────────────────────────────────────

func (m mainLoopModel) View() string {
	if m.confirm != pendingNone {
		return m.viewConfirm()
	}
	if m.createStage != createStageNone {
		return m.viewCreate()
	}
	if m.uploading {
		return renderPage("UPLOAD ATTACHMENTS", "Paths │ ["+m.uploadInput.View()+"]", "esc: cancel │ enter: upload")
	}
	if m.detail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading...\n\n")
	}
	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n\n")
	}

	if len(m.items) == 0 && !m.loading {
		b.WriteString("No notes yet.\n")
	} else {
		b.WriteString(fmt.Sprintf("  %-5s │ %-30s │ %-6s │ %s\n", "ID", "Title", "Owner", "Images"))
		b.WriteString("  ──────┼────────────────────────────────┼────────┼───────\n")
		for i, note := range m.items {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-5d │ %-30s │ %-6d │ %d\n",
				cursor, note.ID, fitText(note.Title, 30), note.OwnerID, len(note.Attachments)))
		}
	}

	hotKeys := "enter: open │ n: new │ r: refresh │ ctrl+d: delete │ l: log out │ q: quit"
	if m.session.UserID() == 0 {
		hotKeys = "enter: open │ r: refresh │ q: quit"
	}

	return renderPage("NOTES", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m mainLoopModel) viewDetail() string {
	note, ok := m.current()
	if !ok {
		return renderPage("NOTE", "", "esc: back")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("ID      │ %d\n", note.ID))
	b.WriteString(fmt.Sprintf("Owner   │ %d\n", note.OwnerID))
	b.WriteString(fmt.Sprintf("Title   │ %s\n", note.Title))
	b.WriteString(fmt.Sprintf("Created │ %s\n", note.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n")
	b.WriteString(note.Content)
	b.WriteString("\n\n")

	if len(note.Attachments) == 0 {
		b.WriteString("No attachments.\n")
	} else {
		b.WriteString("Attachments:\n")
		for i, att := range note.Attachments {
			cursor := " "
			if i == m.attIdx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-5d │ %s\n", cursor, att.ID, fitText(att.URL, 60)))
		}
	}

	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	hotKeys := "esc: back │ c: copy URL │ u: upload │ x: delete attachment │ ctrl+d: delete note"
	if m.session.UserID() == 0 {
		hotKeys = "esc: back │ c: copy URL"
	}

	return renderPage("NOTE", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m mainLoopModel) viewCreate() string {
	var b strings.Builder
	b.WriteString("Title   │ [")
	b.WriteString(m.createTitle.View())
	b.WriteString("]\n\n")
	b.WriteString("Content:\n")
	b.WriteString(m.createContent.View())
	b.WriteString("\n\n")
	b.WriteString("Images  │ [")
	b.WriteString(m.createFiles.View())
	b.WriteString("]\n")

	if m.createSaving {
		b.WriteString("\n[Saving...]\n")
	}

	return renderPage("NEW NOTE", strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: save")
}

func (m mainLoopModel) viewConfirm() string {
	note, ok := m.current()
	if !ok {
		return ""
	}

	message := note.Title
	if m.confirm == pendingAttachment {
		if att, ok := m.currentAttachment(note); ok {
			message = att.URL
		}
	}

	return confirmModel{message: fitText(message, 48)}.View()
}

// ── helpers ─────────────────────────────────────────────────────────────────

func (m mainLoopModel) current() (models.Note, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return models.Note{}, false
	}
	return m.items[m.idx], true
}

func (m mainLoopModel) currentAttachment(note models.Note) (models.Attachment, bool) {
	if m.attIdx < 0 || m.attIdx >= len(note.Attachments) {
		return models.Attachment{}, false
	}
	return note.Attachments[m.attIdx], true
}

func (m mainLoopModel) ownsNote(note models.Note) bool {
	userID := m.session.UserID()
	return userID != 0 && userID == note.OwnerID
}

func splitPaths(raw string) []string {
	var paths []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}

func createdStatusLine(uploads []service.AttachmentUploadOutcome) string {
	if len(uploads) == 0 {
		return "Note saved"
	}

	failed := 0
	for _, outcome := range uploads {
		if outcome.Err != nil {
			failed++
		}
	}

	if failed == 0 {
		return fmt.Sprintf("Saved with %d attachment(s)", len(uploads))
	}
	return fmt.Sprintf("Saved, %d of %d attachment(s) failed", failed, len(uploads))
}
