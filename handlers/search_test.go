package handlers

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQueryWithoutTerm(t *testing.T) {
	query, args := BuildListQuery("", "postgres")

	assert.Empty(t, args)
	assert.Contains(t, query, "FROM games ORDER BY title ASC")
	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "created_at")
}

func TestBuildListQueryWithTerm(t *testing.T) {
	query, args := BuildListQuery("Fifa", "postgres")

	assert.Contains(t, query, "title ILIKE @pattern OR platform ILIKE @pattern")
	assert.Contains(t, query, "WHEN title ILIKE @term THEN 1")
	assert.Contains(t, query, "WHEN title ILIKE @pattern THEN 2")
	assert.Contains(t, query, "ELSE 3")
	assert.Contains(t, query, "title ASC")

	require.Len(t, args, 2)
	assert.Equal(t, sql.Named("pattern", "%Fifa%"), args[0])
	assert.Equal(t, sql.Named("term", "Fifa"), args[1])
}

func TestBuildListQueryUsesLikeOnSQLite(t *testing.T) {
	query, _ := BuildListQuery("x", "sqlite")

	assert.NotContains(t, query, "ILIKE")
	assert.Contains(t, query, "title LIKE @pattern")
}

func TestBuildListQueryPassesTermVerbatim(t *testing.T) {
	term := "  o'brien; DROP TABLE games "
	query, args := BuildListQuery(term, "postgres")

	assert.NotContains(t, query, "o'brien")
	require.Len(t, args, 2)
	assert.Equal(t, sql.Named("pattern", "%"+term+"%"), args[0])
	assert.Equal(t, sql.Named("term", term), args[1])
}
