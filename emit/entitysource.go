package emit

import (
	"fmt"
	"strings"

	"github.com/j4587698/tinydb/catalog"
)

// EntitySourceOptions controls the shape of EntitySource's output. None of
// these affect runtime behavior; they only change what source text comes
// out, matching spec.md's "code-gen shape only; no runtime effect" framing
// for the equivalent configuration knobs.
type EntitySourceOptions struct {
	Namespace                string
	ClassName                string // defaults to metadata.TypeName when empty
	EmitNullableAnnotations  bool
	UseLanguageAliases       bool
	EmitMetadataAttributes   bool
	EmitForeignKeyAttributes bool
	FileScopedNamespace      bool
}

// languageAliases maps a column's stable type name to the host language's
// built-in alias, used when UseLanguageAliases is set; otherwise the
// CLR-style type name itself is emitted.
var languageAliases = map[string]string{
	"Int32":   "int",
	"Int64":   "long",
	"UInt32":  "uint",
	"UInt64":  "ulong",
	"Double":  "double",
	"Boolean": "bool",
	"String":  "string",
	"Decimal": "decimal",
	"Binary":  "byte[]",
}

func columnLangType(c catalog.Column, opts EntitySourceOptions) string {
	name := c.TypeName
	if opts.UseLanguageAliases {
		if alias, ok := languageAliases[name]; ok {
			name = alias
		}
	}
	if opts.EmitNullableAnnotations && !c.Required && !c.PrimaryKey {
		switch name {
		case "string", "String", "byte[]", "Binary":
			// reference types: nullable without "?" in this dialect
		default:
			name += "?"
		}
	}
	return name
}

// EntitySource renders a host-language class declaration for metadata:
// one property per column, the primary-key column tagged with an [Id]-
// style attribute analogue and, when EmitForeignKeyAttributes is set, any
// column with a foreign key tagged with a [ForeignKey] analogue.
func EntitySource(metadata *catalog.MetadataDocument, opts EntitySourceOptions) string {
	var b strings.Builder

	className := opts.ClassName
	if className == "" {
		className = cleanIdentifier(metadata.TypeName, "Entity")
	}

	if opts.Namespace != "" {
		if opts.FileScopedNamespace {
			fmt.Fprintf(&b, "namespace %s;\n\n", opts.Namespace)
		} else {
			fmt.Fprintf(&b, "namespace %s\n{\n", opts.Namespace)
		}
	}

	indent := ""
	if opts.Namespace != "" && !opts.FileScopedNamespace {
		indent = "    "
	}

	if opts.EmitMetadataAttributes {
		fmt.Fprintf(&b, "%s[Entity(\"%s\")]\n", indent, metadata.TableName)
	}
	fmt.Fprintf(&b, "%spublic class %s\n%s{\n", indent, className, indent)

	cols := make([]catalog.Column, len(metadata.Columns))
	copy(cols, metadata.Columns)

	seen := map[string]int{}
	for _, c := range cols {
		propName := disambiguate(cleanIdentifier(exportedName(c.PropertyName), "Field"), seen)
		memberIndent := indent + "    "

		if c.PrimaryKey {
			fmt.Fprintf(&b, "%s[Id]\n", memberIndent)
		}
		if opts.EmitForeignKeyAttributes && c.ForeignKey != "" {
			fmt.Fprintf(&b, "%s[ForeignKey(\"%s\")]\n", memberIndent, c.ForeignKey)
		}
		if opts.EmitMetadataAttributes && c.DisplayName != "" {
			fmt.Fprintf(&b, "%s[Display(\"%s\")]\n", memberIndent, c.DisplayName)
		}
		fmt.Fprintf(&b, "%spublic %s %s { get; set; }\n", memberIndent, columnLangType(c, opts), propName)
	}

	fmt.Fprintf(&b, "%s}\n", indent)
	if opts.Namespace != "" && !opts.FileScopedNamespace {
		b.WriteString("}\n")
	}
	return b.String()
}
