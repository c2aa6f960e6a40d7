package vrt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"
)

var bareIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sqlKeywords are the sqlite keywords. A sheet named after one must be quoted.
var sqlKeywords = keywordSet(`
		ABORT ACTION ADD AFTER ALL ALTER ALWAYS ANALYZE AND AS ASC ATTACH
		AUTOINCREMENT BEFORE BEGIN BETWEEN BY CASCADE CASE CAST CHECK COLLATE
		COLUMN COMMIT CONFLICT CONSTRAINT CREATE CROSS CURRENT CURRENT_DATE
		CURRENT_TIME CURRENT_TIMESTAMP DATABASE DEFAULT DEFERRABLE DEFERRED
		DELETE DESC DETACH DISTINCT DO DROP EACH ELSE END ESCAPE EXCEPT EXCLUDE
		EXCLUSIVE EXISTS EXPLAIN FAIL FILTER FIRST FOLLOWING FOR FOREIGN FROM
		FULL GENERATED GLOB GROUP GROUPS HAVING IF IGNORE IMMEDIATE IN INDEX
		INDEXED INITIALLY INNER INSERT INSTEAD INTERSECT INTO IS ISNULL JOIN KEY
		LAST LEFT LIKE LIMIT MATCH MATERIALIZED NATURAL NO NOT NOTHING NOTNULL
		NULL NULLS OF OFFSET ON OR ORDER OTHERS OUTER OVER PARTITION PLAN PRAGMA
		PRECEDING PRIMARY QUERY RAISE RANGE RECURSIVE REFERENCES REGEXP REINDEX
		RELEASE RENAME REPLACE RESTRICT RETURNING RIGHT ROLLBACK ROW ROWS
		SAVEPOINT SELECT SET TABLE TEMP TEMPORARY THEN TIES TO TRANSACTION
		TRIGGER UNBOUNDED UNION UNIQUE UPDATE USING VACUUM VALUES VIEW VIRTUAL
		WHEN WHERE WINDOW WITH WITHOUT`)

func keywordSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, kw := range strings.Fields(list) {
		set[kw] = true
	}
	return set
}

// NewSelection returns a literal sheet selection when offset is 0 and a
// LIMIT/OFFSET query otherwise.
func NewSelection(sheet string, offset, limit int) models.Selection {
	if offset == 0 {
		return models.Selection{Sheet: sheet}
	}
	return models.Selection{Sheet: sheet, Query: Query(sheet, limit, offset)}
}

// Query builds the row window query for sheet.
func Query(sheet string, limit, offset int) string {
	return fmt.Sprintf("SELECT * FROM %s LIMIT %d OFFSET %d", quoteIdent(sheet), limit, offset)
}

// quoteIdent double-quotes names that are not bare identifiers or that
// collide with a keyword.
func quoteIdent(name string) string {
	if bareIdent.MatchString(name) && !sqlKeywords[strings.ToUpper(name)] {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// sqlToken is one query term. Quoted terms are never keywords.
type sqlToken struct {
	text   string
	quoted bool
}

// keyword reports whether t is the unquoted keyword kw.
func (t sqlToken) keyword(kw string) bool {
	return !t.quoted && strings.EqualFold(t.text, kw)
}

// tokenize splits a query on whitespace. A double-quoted run is one token
// with the quotes removed and doubled quotes unescaped.
func tokenize(q string) []sqlToken {
	var (
		tokens  []sqlToken
		cur     strings.Builder
		inQuote bool
		quoted  bool
		started bool
	)

	flush := func() {
		if started {
			tokens = append(tokens, sqlToken{text: cur.String(), quoted: quoted})
		}
		cur.Reset()
		started, quoted = false, false
	}

	runes := []rune(q)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote && r == '"':
			if i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
				continue
			}
			inQuote = false
		case inQuote:
			cur.WriteRune(r)
		case r == '"':
			inQuote, started, quoted = true, true, true
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()

	return tokens
}
