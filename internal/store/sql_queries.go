package store

import (
	"github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (email, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id, email, name, password_hash, created_at;`

	findUserByEmail = `SELECT id, email, name, password_hash, created_at
    FROM users
    WHERE email = $1;`

	createNote = `INSERT INTO notes (owner_id, title, content)
    VALUES ($1, $2, $3)
    RETURNING id, owner_id, title, content, created_at;`

	getNote = `SELECT id, owner_id, title, content, created_at
    FROM notes
    WHERE id = $1;`

	deleteNote = `DELETE FROM notes
    WHERE id = $1;`

	createAttachment = `INSERT INTO attachments (note_id, url, object_key)
    VALUES ($1, $2, $3)
    RETURNING id, note_id, url, object_key, created_at;`

	getAttachment = `SELECT id, note_id, url, object_key, created_at
    FROM attachments
    WHERE id = $1;`

	listAttachmentsByNote = `SELECT id, note_id, url, object_key, created_at
    FROM attachments
    WHERE note_id = $1
    ORDER BY id;`

	listObjectKeysByNote = `SELECT object_key
    FROM attachments
    WHERE note_id = $1;`

	deleteAttachment = `DELETE FROM attachments
    WHERE id = $1;`
)

// buildListNotesQuery builds the SELECT used for note listings. An ownerID
// greater than zero narrows the listing to a single owner's notes.
func buildListNotesQuery(ownerID int64) (string, []any, error) {
	queryBuilder := squirrel.
		Select("id",
			"owner_id",
			"title",
			"content",
			"created_at").
		From("notes")

	if ownerID > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"owner_id": ownerID})
	}

	queryBuilder = queryBuilder.OrderBy("created_at DESC, id DESC").
		PlaceholderFormat(squirrel.Dollar)

	return queryBuilder.ToSql()
}
