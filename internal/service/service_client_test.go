package service_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/mock"
	"github.com/leandrawisnu/noteshare/internal/service"
	"github.com/leandrawisnu/noteshare/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newClientSvc builds a ClientServices backed by a mocked server adapter.
func newClientSvc(t *testing.T) (*service.ClientServices, *mock.MockServerAdapter) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockServerAdapter(ctrl)

	return service.NewClientServices(mockAdapter, logger.Nop()), mockAdapter
}

// writeTempImage creates a small file on disk and returns its path.
func writeTempImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))
	return path
}

// ── UploadAttachments ────────────────────────────────────────────────────────

// TestUploadAttachments_ContinuesPastFailures verifies that one unreadable
// path and one server-side failure do not stop the remaining uploads.
func TestUploadAttachments_ContinuesPastFailures(t *testing.T) {
	svc, mockAdapter := newClientSvc(t)
	ctx := context.Background()

	good := writeTempImage(t, "good.png")
	rejected := writeTempImage(t, "rejected.png")
	missing := filepath.Join(t.TempDir(), "missing.png")

	uploadErr := errors.New("file exceeds size limit")

	mockAdapter.EXPECT().
		UploadAttachment(ctx, int64(15), rejected, gomock.Any()).
		Return(models.UploadAttachmentResponse{}, uploadErr)
	mockAdapter.EXPECT().
		UploadAttachment(ctx, int64(15), good, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ string, file io.Reader) (models.UploadAttachmentResponse, error) {
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, "png-bytes", string(data))
			return models.UploadAttachmentResponse{ID: 1, URL: "http://blob/notes/15/a.png"}, nil
		})

	outcomes := svc.NoteService.UploadAttachments(ctx, 15, []string{missing, rejected, good})

	require.Len(t, outcomes, 3)

	assert.Equal(t, missing, outcomes[0].Path)
	assert.Error(t, outcomes[0].Err)

	assert.Equal(t, rejected, outcomes[1].Path)
	assert.ErrorIs(t, outcomes[1].Err, uploadErr)

	assert.Equal(t, good, outcomes[2].Path)
	assert.NoError(t, outcomes[2].Err)
	assert.Equal(t, "http://blob/notes/15/a.png", outcomes[2].URL)
}

// TestUploadAttachments_Empty verifies a nil path list yields no outcomes and
// no adapter calls.
func TestUploadAttachments_Empty(t *testing.T) {
	svc, _ := newClientSvc(t)

	outcomes := svc.NoteService.UploadAttachments(context.Background(), 15, nil)

	assert.Empty(t, outcomes)
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestClientAuth_LoginFailure(t *testing.T) {
	svc, mockAdapter := newClientSvc(t)
	ctx := context.Background()

	loginErr := errors.New("client unauthorized")
	mockAdapter.EXPECT().
		Login(ctx, gomock.Any()).
		Return(models.Token{}, loginErr)

	_, err := svc.AuthService.Login(ctx, models.User{Email: "alice@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, loginErr)
}

func TestClientAuth_RegisterSuccess(t *testing.T) {
	svc, mockAdapter := newClientSvc(t)
	ctx := context.Background()

	user := models.User{Email: "alice@example.com", Password: "secret"}
	mockAdapter.EXPECT().
		Register(ctx, user).
		Return(models.Token{SignedString: "jwt", UserID: 42}, nil)

	token, err := svc.AuthService.Register(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, int64(42), token.UserID)
	assert.Equal(t, "jwt", token.SignedString)
}
