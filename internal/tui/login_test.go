package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandrawisnu/noteshare/internal/mock"
	"github.com/leandrawisnu/noteshare/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLogin_SubmitProducesLoginResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mock.NewMockClientAuthService(ctrl)

	mockAuth.EXPECT().
		Login(gomock.Any(), models.User{Email: "alice@example.com", Password: "secret"}).
		Return(models.Token{SignedString: "jwt", UserID: 42}, nil)

	m := NewLoginModel(context.Background(), mockAuth)
	m.inputs[0].SetValue("alice@example.com")
	m.inputs[1].SetValue("secret")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	result, ok := msg.(LoginResult)
	require.True(t, ok)

	assert.NoError(t, result.Err)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.Equal(t, int64(42), result.UserID)
}

func TestLogin_EmptyFieldsAreRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mock.NewMockClientAuthService(ctrl)

	m := NewLoginModel(context.Background(), mockAuth)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, "Email and password are required", m.errMsg)
}

func TestLogin_FailureIsShownInline(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mock.NewMockClientAuthService(ctrl)

	mockAuth.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(models.Token{}, errors.New("invalid email/password"))

	m := NewLoginModel(context.Background(), mockAuth)
	m.inputs[0].SetValue("alice@example.com")
	m.inputs[1].SetValue("wrong")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	result := cmd().(LoginResult)
	require.Error(t, result.Err)

	m.Update(result)

	assert.False(t, m.submitting)
	assert.Equal(t, "invalid email/password", m.errMsg)
}
