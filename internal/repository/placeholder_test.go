package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBind_OrderedPositional(t *testing.T) {
	sql, named, err := Bind("SELECT * FROM t WHERE a = ? AND b = ?", []any{5, "x"})

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = @param0 AND b = @param1", sql)
	assert.Equal(t, pgx.NamedArgs{"param0": 5, "param1": "x"}, named)
}

func TestBind_NoPlaceholders(t *testing.T) {
	sql, named, err := Bind("SELECT * FROM usuarios", nil)

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM usuarios", sql)
	assert.Nil(t, named)
}

func TestBind_CountMismatch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		args  []any
	}{
		{"too few args", "SELECT * FROM t WHERE a = ? AND b = ?", []any{1}},
		{"too many args", "SELECT * FROM t WHERE a = ?", []any{1, 2}},
		{"args without placeholders", "SELECT * FROM t", []any{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Bind(tt.query, tt.args)
			assert.True(t, errors.Is(err, ErrArgCount))
		})
	}
}

func TestBind_IgnoresQuotedAndCommentedMarks(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "string literal",
			query: "SELECT * FROM t WHERE note = 'why?' AND id = ?",
			want:  "SELECT * FROM t WHERE note = 'why?' AND id = @param0",
		},
		{
			name:  "escaped quote inside literal",
			query: "SELECT * FROM t WHERE note = 'it''s ?' AND id = ?",
			want:  "SELECT * FROM t WHERE note = 'it''s ?' AND id = @param0",
		},
		{
			name:  "backslash escape in E string",
			query: `SELECT * FROM t WHERE note = E'it\'s ?' AND id = ?`,
			want:  `SELECT * FROM t WHERE note = E'it\'s ?' AND id = @param0`,
		},
		{
			name:  "lower case e string",
			query: `SELECT * FROM t WHERE note = e'\\?\'?' AND id = ?`,
			want:  `SELECT * FROM t WHERE note = e'\\?\'?' AND id = @param0`,
		},
		{
			name:  "backslash is literal in standard strings",
			query: `SELECT * FROM t WHERE path = 'C:\' AND id = ?`,
			want:  `SELECT * FROM t WHERE path = 'C:\' AND id = @param0`,
		},
		{
			name:  "identifier ending in e before a literal",
			query: `SELECT * FROM t WHERE type='a\' AND id = ?`,
			want:  `SELECT * FROM t WHERE type='a\' AND id = @param0`,
		},
		{
			name:  "quoted identifier",
			query: `SELECT "odd?col" FROM t WHERE id = ?`,
			want:  `SELECT "odd?col" FROM t WHERE id = @param0`,
		},
		{
			name:  "line comment",
			query: "SELECT * FROM t -- really?\nWHERE id = ?",
			want:  "SELECT * FROM t -- really?\nWHERE id = @param0",
		},
		{
			name:  "block comment",
			query: "SELECT /* ? */ * FROM t WHERE id = ?",
			want:  "SELECT /* ? */ * FROM t WHERE id = @param0",
		},
		{
			name:  "dollar quoted body",
			query: "SELECT $tag$a ? b$tag$, $$?$$ FROM t WHERE id = ?",
			want:  "SELECT $tag$a ? b$tag$, $$?$$ FROM t WHERE id = @param0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, named, err := Bind(tt.query, []any{7})
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
			assert.Equal(t, pgx.NamedArgs{"param0": 7}, named)
		})
	}
}

func TestBind_InsertStatement(t *testing.T) {
	sql, named, err := Bind(
		"INSERT INTO pedidos (usuario_id, total, estado) VALUES (?, ?, ?) RETURNING id",
		[]any{2, 79.90, "pagado"},
	)

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO pedidos (usuario_id, total, estado) VALUES (@param0, @param1, @param2) RETURNING id", sql)
	assert.Len(t, named, 3)
	assert.Equal(t, "pagado", named["param2"])
}

func TestPlaceholderOffsets_UnterminatedLiteral(t *testing.T) {
	assert.Empty(t, placeholderOffsets("SELECT 'open ? literal"))
	assert.Equal(t, []int{7}, placeholderOffsets("SELECT ? /* never closed ?"))
}
