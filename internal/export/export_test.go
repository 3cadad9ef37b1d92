package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
)

var samplePosts = []model.Post{
	{ID: 2, Category: "Sleep", Content: "hello\nReply: nice", Timestamp: "2026-02-01 22:10"},
	{ID: 1, Category: "Exercise", Content: "zone 2", Timestamp: "2026-02-01 08:00"},
}

func TestPostsJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PostsJSON(&buf, samplePosts))

	var got PostsFile
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, samplePosts, got.Posts)
}

func TestPostsXLSX(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PostsXLSX(&buf, samplePosts))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Posts"}, f.GetSheetList())
	rows, err := f.GetRows("Posts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Category", "Timestamp", "Content"}, rows[0])
	assert.Equal(t, []string{"2", "Sleep", "2026-02-01 22:10", "hello\nReply: nice"}, rows[1])
}

func TestNotebookXLSXEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NotebookXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Notebook")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Timestamp", "Content"}, rows[0])
}
