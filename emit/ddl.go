package emit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/j4587698/tinydb/catalog"
	"github.com/j4587698/tinydb/logger"
)

// ddlHeader is the version marker every DDL document emits as its first
// line, so a reader can reject a file generated by an incompatible
// version of this emitter before parsing anything else.
const ddlHeader = "-- TinyDbDDL v1"

// DDL renders metadata as the textual schema dialect: a header line
// followed by one `create table` statement, columns sorted by
// (ordinal asc, field name asc).
func DDL(metadata *catalog.MetadataDocument) string {
	logger.TraceIf("emit", "rendering DDL for table %s (%d columns)", metadata.TableName, len(metadata.Columns))
	var b strings.Builder
	b.WriteString(ddlHeader)
	b.WriteString("\n")

	fmt.Fprintf(&b, "create table %s type %s display %s desc %s (\n",
		quoteString(metadata.TableName), quoteString(metadata.TypeName),
		quoteString(metadata.DisplayName), quoteString(metadata.Description))

	cols := make([]catalog.Column, len(metadata.Columns))
	copy(cols, metadata.Columns)
	sort.SliceStable(cols, func(i, j int) bool {
		if cols[i].Ordinal != cols[j].Ordinal {
			return cols[i].Ordinal < cols[j].Ordinal
		}
		return cols[i].FieldName < cols[j].FieldName
	})

	for i, c := range cols {
		b.WriteString("  ")
		b.WriteString(ddlColumn(c))
		if i < len(cols)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");\n")
	return b.String()
}

func ddlColumn(c catalog.Column) string {
	var parts []string
	parts = append(parts, quoteString(c.FieldName))
	if c.PrimaryKey {
		parts = append(parts, "pk")
	}
	if c.Required && !c.PrimaryKey {
		parts = append(parts, "required")
	}
	parts = append(parts, "pn", quoteString(c.PropertyName))
	parts = append(parts, "order", strconv.Itoa(c.Ordinal))
	if c.DisplayName != "" {
		parts = append(parts, "dn", quoteString(c.DisplayName))
	}
	if c.Description != "" {
		parts = append(parts, "desc", quoteString(c.Description))
	}
	if c.ForeignKey != "" {
		parts = append(parts, "fk", quoteString(c.ForeignKey))
	}
	if c.HasDefault {
		parts = append(parts, "dv", renderDefaultValue(c.DefaultValue))
	}
	return strings.Join(parts, " ")
}

// quoteString renders s as a double-quoted DDL string literal, escaping
// backslashes and embedded quotes.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// renderDefaultValue renders a column's host-native DefaultValue per the
// DDL's default-value grammar: null, true/false, an invariant-culture
// number, a quoted string, or datetime("<ISO-8601 round-trip>").
func renderDefaultValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint8, uint16, uint32, uint, uint64:
		return fmt.Sprintf("%d", t)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return quoteString(t)
	case time.Time:
		return fmt.Sprintf("datetime(%s)", quoteString(t.UTC().Format(time.RFC3339Nano)))
	default:
		return quoteString(fmt.Sprint(t))
	}
}
