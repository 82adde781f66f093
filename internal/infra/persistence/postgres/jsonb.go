package postgres

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// singletonArray renders id as a one-element JSON array for jsonb containment checks.
func singletonArray(id uuid.UUID) string {
	return `["` + id.String() + `"]`
}

// jsonbAddID appends id to a jsonb array column unless the array already holds it.
func jsonbAddID(column string, id uuid.UUID) clause.Expr {
	arr := singletonArray(id)

	return gorm.Expr("CASE WHEN "+column+" @> ?::jsonb THEN "+column+" ELSE "+column+" || ?::jsonb END", arr, arr)
}

// jsonbRemoveID removes every occurrence of id from a jsonb array column.
func jsonbRemoveID(column string, id uuid.UUID) clause.Expr {
	return gorm.Expr(column+" - ?", id.String())
}

// jsonbSetID adds or removes id depending on member.
func jsonbSetID(column string, id uuid.UUID, member bool) clause.Expr {
	if member {
		return jsonbAddID(column, id)
	}

	return jsonbRemoveID(column, id)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s as a literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// mustJSON encodes values that cannot fail to marshal, such as string slices.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}

	return string(data)
}
