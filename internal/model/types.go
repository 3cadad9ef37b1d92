package model

import "time"

// TimestampLayout is the minute-granularity local timestamp stored with posts
// and notebook entries.
const TimestampLayout = "2006-01-02 15:04"

type Post struct {
	ID        int64  `json:"id"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type NotebookEntry struct {
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

type Article struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Summary   string `json:"summary"`
}

func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}
