package service_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/service"
)

func TestCreatePostThenListReturnsItFirst(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	older, err := service.CreatePost(db, service.PostInput{
		Category:  "Nutrition",
		Content:   "older",
		CreatedAt: time.Now().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("create older post: %v", err)
	}
	id, err := service.CreatePost(db, service.PostInput{Category: "Sleep", Content: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if id <= older {
		t.Fatalf("expected increasing ids, got %d after %d", id, older)
	}

	posts, err := service.ListPosts(db, service.PostFilter{})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	first := posts[0]
	if first.ID != id || first.Category != "Sleep" || first.Content != "hello" {
		t.Fatalf("unexpected first post: %+v", first)
	}
	if _, err := time.ParseInLocation(model.TimestampLayout, first.Timestamp, time.Local); err != nil {
		t.Fatalf("expected YYYY-MM-DD HH:MM timestamp, got %q", first.Timestamp)
	}
}

func TestListPostsBreaksSameMinuteTiesByID(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	at := time.Date(2026, 3, 1, 9, 15, 0, 0, time.Local)
	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := service.CreatePost(db, service.PostInput{Category: "Exercise", Content: fmt.Sprintf("p%d", i), CreatedAt: at.Add(time.Duration(i) * time.Second)})
		if err != nil {
			t.Fatalf("create post: %v", err)
		}
		ids = append(ids, id)
	}

	posts, err := service.ListPosts(db, service.PostFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(posts))
	}
	if posts[0].ID != ids[2] || posts[1].ID != ids[1] {
		t.Fatalf("expected ids %d,%d got %d,%d", ids[2], ids[1], posts[0].ID, posts[1].ID)
	}
	if posts[0].Timestamp != "2026-03-01 09:15" {
		t.Fatalf("unexpected timestamp %q", posts[0].Timestamp)
	}
}

func TestListPostsByCategoryReturnsExactSubsetInRecencyOrder(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.Local)
	cats := []string{"Exercise", "Sleep", "Exercise", "Nutrition", "Exercise", "Biomarkers"}
	for i, c := range cats {
		if _, err := service.CreatePost(db, service.PostInput{Category: c, Content: fmt.Sprintf("post %d", i), CreatedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}

	all, err := service.ListPosts(db, service.PostFilter{})
	if err != nil {
		t.Fatalf("list all posts: %v", err)
	}
	want := make([]model.Post, 0)
	for _, p := range all {
		if p.Category == "Exercise" {
			want = append(want, p)
		}
	}

	got, err := service.ListPostsByCategory(db, "exercise")
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(got) != len(want) || len(got) != 3 {
		t.Fatalf("expected 3 exercise posts, got %d (want %d)", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if got[0].Content != "post 4" || got[2].Content != "post 0" {
		t.Fatalf("expected newest first, got %q ... %q", got[0].Content, got[2].Content)
	}
}

func TestCreatePostValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.CreatePost(db, service.PostInput{Category: "Gossip", Content: "x"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unknown category to be rejected, got %v", err)
	}
	if _, err := service.CreatePost(db, service.PostInput{Category: "Sleep", Content: "   "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected blank content to be rejected, got %v", err)
	}

	id, err := service.CreatePost(db, service.PostInput{Category: "  biomarkers ", Content: "ApoB 70"})
	if err != nil {
		t.Fatalf("create post with loose category: %v", err)
	}
	p, err := service.GetPost(db, id)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if p.Category != "Biomarkers" {
		t.Fatalf("expected canonical category, got %q", p.Category)
	}

	if _, err := service.ListPostsByCategory(db, " "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected blank category filter to be rejected, got %v", err)
	}
}

func TestAppendReply(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	id, err := service.CreatePost(db, service.PostInput{Category: "Sleep", Content: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	before, err := service.GetPost(db, id)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}

	if err := service.AppendReply(db, id, "nice"); err != nil {
		t.Fatalf("append reply: %v", err)
	}
	p, err := service.GetPost(db, id)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if p.Content != "hello\nReply: nice" {
		t.Fatalf("unexpected content %q", p.Content)
	}
	if p.Timestamp != before.Timestamp {
		t.Fatalf("expected reply to keep creation timestamp %q, got %q", before.Timestamp, p.Timestamp)
	}

	if err := service.AppendReply(db, id, " "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected blank reply to be rejected, got %v", err)
	}
}

func TestAppendReplyMissingPostLeavesTableUnchanged(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.CreatePost(db, service.PostInput{Category: "Sleep", Content: "hello"}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	before, err := service.ListPosts(db, service.PostFilter{})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}

	err = service.AppendReply(db, 9999, "nice")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	after, err := service.ListPosts(db, service.PostFilter{})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(before) != len(after) || before[0] != after[0] {
		t.Fatalf("expected table unchanged, before=%+v after=%+v", before, after)
	}

	if _, err := service.GetPost(db, 9999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected get of missing post to be not found, got %v", err)
	}
}

func TestConcurrentRepliesAreNotLost(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	id, err := service.CreatePost(db, service.PostInput{Category: "Exercise", Content: "zone 2 thread"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- service.AppendReply(db, id, fmt.Sprintf("reply-%02d", i))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("append reply: %v", err)
		}
	}

	p, err := service.GetPost(db, id)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	lines := strings.Split(p.Content, "\n")
	if len(lines) != n+1 {
		t.Fatalf("expected %d lines, got %d", n+1, len(lines))
	}
	for i := 0; i < n; i++ {
		if !strings.Contains(p.Content, fmt.Sprintf("\nReply: reply-%02d", i)) {
			t.Fatalf("reply %d missing from content", i)
		}
	}
}
