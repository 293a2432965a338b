package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
