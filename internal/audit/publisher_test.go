package audit

import (
	"context"
	"testing"

	"github.com/leandrawisnu/noteshare/models"
	"github.com/stretchr/testify/assert"
)

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher()

	err := p.Publish(context.Background(), models.AuditEvent{
		Type:    models.EventNoteCreated,
		NoteID:  10,
		ActorID: 42,
	})
	assert.NoError(t, err)
	assert.NoError(t, p.Close())
}
