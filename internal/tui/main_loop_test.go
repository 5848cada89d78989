package tui

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandrawisnu/noteshare/internal/mock"
	"github.com/leandrawisnu/noteshare/internal/session"
	"github.com/leandrawisnu/noteshare/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// tokenForUser builds an unsigned compact token whose payload claim decodes
// to the given identity.
func tokenForUser(userID int64) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"id":%d}`, userID)))
	return "header." + payload + ".signature"
}

// newTestMainLoop builds a main loop model over a mocked note service and a
// fresh anonymous session.
func newTestMainLoop(t *testing.T, notes []models.Note) (mainLoopModel, *mock.MockClientNoteService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockNotes := mock.NewMockClientNoteService(ctrl)

	m := newMainLoopModel(context.Background(), mockNotes, session.New())
	m.items = notes
	m.loading = false

	return m, mockNotes
}

// ── loading ─────────────────────────────────────────────────────────────────

func TestMainLoop_InitLoadsNotes(t *testing.T) {
	m, mockNotes := newTestMainLoop(t, nil)

	loaded := []models.Note{
		{ID: 2, OwnerID: 42, Title: "second"},
		{ID: 1, OwnerID: 7, Title: "first"},
	}
	mockNotes.EXPECT().ListNotes(gomock.Any(), int64(0)).Return(loaded, nil)

	cmd := m.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	result, ok := msg.(notesLoadedMsg)
	require.True(t, ok)
	require.NoError(t, result.err)

	updated, _ := m.Update(result)
	mm := updated.(mainLoopModel)

	assert.False(t, mm.loading)
	assert.Equal(t, loaded, mm.items)
	assert.Empty(t, mm.errMsg)
}

func TestMainLoop_LoadFailureIsHumanized(t *testing.T) {
	m, mockNotes := newTestMainLoop(t, nil)

	mockNotes.EXPECT().
		ListNotes(gomock.Any(), int64(0)).
		Return(nil, errors.New(`dial tcp 127.0.0.1:8080: connect: connection refused`))

	msg := m.Init()()
	updated, _ := m.Update(msg)
	mm := updated.(mainLoopModel)

	assert.Equal(t, "No network or the server is unreachable", mm.errMsg)
}

// ── create flow gating ──────────────────────────────────────────────────────

func TestMainLoop_AnonymousCannotCreate(t *testing.T) {
	m, _ := newTestMainLoop(t, nil)

	updated, _ := m.Update(keyRune('n'))
	mm := updated.(mainLoopModel)

	assert.Equal(t, "Sign in to create notes", mm.status)
	assert.Equal(t, createStageNone, mm.createStage)
}

func TestMainLoop_SignedInOpensCreateFlow(t *testing.T) {
	m, _ := newTestMainLoop(t, nil)
	m.session.Set(tokenForUser(42))

	updated, _ := m.Update(keyRune('n'))
	mm := updated.(mainLoopModel)

	assert.Equal(t, createStageTitle, mm.createStage)
}

// ── deletion ────────────────────────────────────────────────────────────────

func TestMainLoop_DeleteRequiresOwnership(t *testing.T) {
	m, _ := newTestMainLoop(t, []models.Note{{ID: 10, OwnerID: 42, Title: "not mine"}})
	m.session.Set(tokenForUser(7))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	mm := updated.(mainLoopModel)

	assert.Equal(t, "Only the owner can delete a note", mm.status)
	assert.Equal(t, pendingNone, mm.confirm)
}

func TestMainLoop_DeleteNoteConfirmed(t *testing.T) {
	m, mockNotes := newTestMainLoop(t, []models.Note{{ID: 10, OwnerID: 42, Title: "mine"}})
	m.session.Set(tokenForUser(42))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	mm := updated.(mainLoopModel)
	require.Equal(t, pendingNote, mm.confirm)

	mockNotes.EXPECT().DeleteNote(gomock.Any(), int64(10)).Return(nil)

	updated, cmd := mm.Update(keyRune('y'))
	mm = updated.(mainLoopModel)
	require.NotNil(t, cmd)
	assert.Equal(t, pendingNone, mm.confirm)

	msg := cmd()
	result, ok := msg.(noteDeletedMsg)
	require.True(t, ok)
	require.NoError(t, result.err)

	mockNotes.EXPECT().ListNotes(gomock.Any(), int64(0)).Return(nil, nil)

	updated, cmd = mm.Update(result)
	mm = updated.(mainLoopModel)
	assert.Equal(t, "Note deleted", mm.status)
	assert.True(t, mm.loading)
	require.NotNil(t, cmd)
	cmd()
}

func TestMainLoop_DeleteCancelled(t *testing.T) {
	m, _ := newTestMainLoop(t, []models.Note{{ID: 10, OwnerID: 42, Title: "mine"}})
	m.session.Set(tokenForUser(42))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	mm := updated.(mainLoopModel)
	require.Equal(t, pendingNote, mm.confirm)

	updated, cmd := mm.Update(keyRune('n'))
	mm = updated.(mainLoopModel)

	assert.Nil(t, cmd)
	assert.Equal(t, pendingNone, mm.confirm)
}

// ── logout ──────────────────────────────────────────────────────────────────

func TestMainLoop_LogoutClearsSession(t *testing.T) {
	m, _ := newTestMainLoop(t, nil)
	m.session.Set(tokenForUser(42))

	updated, cmd := m.Update(keyRune('l'))
	mm := updated.(mainLoopModel)

	assert.True(t, mm.logout)
	assert.EqualValues(t, 0, mm.session.UserID())
	require.NotNil(t, cmd)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func TestSplitPaths(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{raw: "", want: nil},
		{raw: "  ,  ,", want: nil},
		{raw: "a.png", want: []string{"a.png"}},
		{raw: " a.png , b.jpg ", want: []string{"a.png", "b.jpg"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitPaths(tt.raw), "raw=%q", tt.raw)
	}
}
