package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
)

const replyPrefix = "\nReply: "

type PostInput struct {
	Category  string
	Content   string
	CreatedAt time.Time
}

type PostFilter struct {
	Category string
	Limit    int
}

func CreatePost(db *sql.DB, in PostInput) (int64, error) {
	allowed, err := PostCategories(db)
	if err != nil {
		return 0, err
	}
	category, ok := canonicalCategory(allowed, in.Category)
	if !ok {
		return 0, invalidf("category %q is not one of %s", in.Category, strings.Join(allowed, ", "))
	}
	if strings.TrimSpace(in.Content) == "" {
		return 0, invalidf("post content is required")
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	res, err := db.Exec(`
INSERT INTO posts(category, content, timestamp)
VALUES(?, ?, ?)
`, category, in.Content, model.FormatTimestamp(in.CreatedAt))
	if err != nil {
		return 0, storageErr("create post", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("resolve post id", err)
	}
	return id, nil
}

// ListPosts returns posts newest first. Timestamps only have minute
// granularity, so ties fall back to id.
func ListPosts(db *sql.DB, f PostFilter) ([]model.Post, error) {
	query := `SELECT id, IFNULL(category, ''), IFNULL(content, ''), IFNULL(timestamp, '') FROM posts WHERE 1=1`
	args := make([]any, 0)

	if strings.TrimSpace(f.Category) != "" {
		allowed, err := PostCategories(db)
		if err != nil {
			return nil, err
		}
		category, _ := canonicalCategory(allowed, f.Category)
		query += ` AND category = ?`
		args = append(args, category)
	}

	query += ` ORDER BY timestamp DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, storageErr("list posts", err)
	}
	defer rows.Close()

	items := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Category, &p.Content, &p.Timestamp); err != nil {
			return nil, storageErr("scan post", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate posts", err)
	}
	return items, nil
}

func ListPostsByCategory(db *sql.DB, category string) ([]model.Post, error) {
	if strings.TrimSpace(category) == "" {
		return nil, invalidf("category is required")
	}
	return ListPosts(db, PostFilter{Category: category})
}

func GetPost(db *sql.DB, id int64) (model.Post, error) {
	if id <= 0 {
		return model.Post{}, invalidf("post id must be > 0")
	}
	var p model.Post
	err := db.QueryRow(`
SELECT id, IFNULL(category, ''), IFNULL(content, ''), IFNULL(timestamp, '')
FROM posts WHERE id = ?
`, id).Scan(&p.ID, &p.Category, &p.Content, &p.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Post{}, fmt.Errorf("post %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return model.Post{}, storageErr(fmt.Sprintf("get post %d", id), err)
	}
	return p, nil
}

// AppendReply appends "\nReply: <text>" to the post content in a single
// UPDATE, so concurrent replies to the same post cannot overwrite each other.
func AppendReply(db *sql.DB, id int64, text string) error {
	if id <= 0 {
		return invalidf("post id must be > 0")
	}
	if strings.TrimSpace(text) == "" {
		return invalidf("reply text is required")
	}
	res, err := db.Exec(`
UPDATE posts
SET content = IFNULL(content, '') || ?
WHERE id = ?
`, replyPrefix+text, id)
	if err != nil {
		return storageErr(fmt.Sprintf("append reply to post %d", id), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr("read rows affected", err)
	}
	if affected == 0 {
		return fmt.Errorf("post %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
