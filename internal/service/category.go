package service

import (
	"database/sql"
	"strings"
)

// DefaultCategories is used until a category set is stored in app_config.
var DefaultCategories = []string{"Sleep", "Exercise", "Nutrition", "Biomarkers"}

func PostCategories(db *sql.DB) ([]string, error) {
	raw, ok, err := GetConfig(db, ConfigPostCategories)
	if err != nil {
		return nil, err
	}
	if !ok {
		return append([]string(nil), DefaultCategories...), nil
	}
	cats := splitCategories(raw)
	if len(cats) == 0 {
		return append([]string(nil), DefaultCategories...), nil
	}
	return cats, nil
}

// SetPostCategories stores the category set. The set is persisted
// comma-separated, so names may not contain a comma.
func SetPostCategories(db *sql.DB, categories []string) ([]string, error) {
	for _, c := range categories {
		if strings.Contains(c, ",") {
			return nil, invalidf("category %q must not contain a comma", strings.TrimSpace(c))
		}
	}
	cats := dedupeCategories(categories)
	if len(cats) == 0 {
		return nil, invalidf("at least one category is required")
	}
	if err := SetConfig(db, ConfigPostCategories, strings.Join(cats, ",")); err != nil {
		return nil, err
	}
	return cats, nil
}

func splitCategories(raw string) []string {
	return dedupeCategories(strings.Split(raw, ","))
}

// dedupeCategories trims, drops blanks and removes case-insensitive
// duplicates, keeping the first spelling seen.
func dedupeCategories(names []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, part := range names {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

func canonicalCategory(allowed []string, category string) (string, bool) {
	name := strings.TrimSpace(category)
	for _, c := range allowed {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return name, false
}
