package handlers

import (
	"database/sql"
	"fmt"
)

// listColumns is the /list projection; created_at is never exposed.
const listColumns = `id, title, platform, region, price, original_price,
	discount_percentage, cover_image_url, has_cashback, stock_status`

// Ranks for search results, lower sorts first.
const (
	RankExactTitle     = 1
	RankTitleSubstring = 2
	RankPlatformOnly   = 3
)

// BuildListQuery returns the SQL and bind arguments for a listing. An empty
// term lists the whole catalog by title. Any other term, used verbatim,
// matches title or platform case-insensitively; exact title matches rank
// first, title substrings second, platform-only matches last, then title.
func BuildListQuery(term, dialect string) (string, []interface{}) {
	if term == "" {
		return "SELECT " + listColumns + " FROM games ORDER BY title ASC", nil
	}

	like := caseInsensitiveLike(dialect)
	query := fmt.Sprintf(`SELECT %[1]s
	FROM games
	WHERE title %[2]s @pattern OR platform %[2]s @pattern
	ORDER BY
		CASE
			WHEN title %[2]s @term THEN %[3]d
			WHEN title %[2]s @pattern THEN %[4]d
			ELSE %[5]d
		END,
		title ASC`,
		listColumns, like, RankExactTitle, RankTitleSubstring, RankPlatformOnly)

	return query, []interface{}{
		sql.Named("pattern", "%"+term+"%"),
		sql.Named("term", term),
	}
}

// caseInsensitiveLike picks the operator for the backend. SQLite's LIKE is
// already case-insensitive for ASCII and has no ILIKE.
func caseInsensitiveLike(dialect string) string {
	if dialect == "sqlite" {
		return "LIKE"
	}
	return "ILIKE"
}
