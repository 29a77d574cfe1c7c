package norm

import (
	"fmt"
	"strings"

	"github.com/gertd/go-pluralize"
	"github.com/iancoleman/strcase"
)

// Canonical field type names.
const (
	FieldPrimaryKey = "pk"
	FieldString     = "string"
	FieldInteger    = "int"
	FieldBoolean    = "bool"
	FieldForeignKey = "fk"
	FieldReferences = "references"
)

var fieldAliases = map[string]string{
	"pk":          FieldPrimaryKey,
	"primarykey":  FieldPrimaryKey,
	"primary_key": FieldPrimaryKey,
	"primary-key": FieldPrimaryKey,
	"string":      FieldString,
	"str":         FieldString,
	"int":         FieldInteger,
	"integer":     FieldInteger,
	"bool":        FieldBoolean,
	"boolean":     FieldBoolean,
	"fk":          FieldForeignKey,
	"foreignkey":  FieldForeignKey,
	"foreign_key": FieldForeignKey,
	"foreign-key": FieldForeignKey,
	"references":  FieldReferences,
	"ref":         FieldReferences,
}

const fieldSeparator = "::"

const defaultStringLength = "255"

// Field describes a column for CREATE TABLE.
//
// For a foreign key, Name is the referenced table, optionally followed by
// ".column" (default "id"); the local column is derived from the table
// name, so "fk::users" becomes user_id. For references, Name is the
// local column and Modifier the target as "table" or "table.column".
type Field struct {
	Type     string
	Name     string
	Modifier string
}

// ParseField reads the "<type>::<name>[::<modifier>]" form.
func ParseField(s string) (Field, error) {
	parts := strings.SplitN(s, fieldSeparator, 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Field{}, fmt.Errorf("norm: field %q is not <type>::<name>: %w", s, ErrInvalidField)
	}
	f := Field{Type: parts[0], Name: parts[1]}
	if len(parts) == 3 {
		f.Modifier = parts[2]
	}
	return f, nil
}

// String returns the "<type>::<name>" form of f.
func (f Field) String() string {
	s := f.Type + fieldSeparator + f.Name
	if f.Modifier != "" {
		s += fieldSeparator + f.Modifier
	}
	return s
}

// toField normalizes the accepted descriptor forms.
func toField(v any) (Field, error) {
	switch f := v.(type) {
	case Field:
		return f, nil
	case *Field:
		if f == nil {
			return Field{}, fmt.Errorf("norm: nil field: %w", ErrInvalidField)
		}
		return *f, nil
	case string:
		return ParseField(f)
	default:
		return Field{}, fmt.Errorf("norm: unsupported field descriptor %T: %w", v, ErrInvalidField)
	}
}

func canonicalType(t string) (string, bool) {
	c, ok := fieldAliases[strings.ToLower(t)]
	return c, ok
}

var plural = pluralize.NewClient()

// foreignKeyColumn derives the local column for a reference to table.
// Explicit column names are written as given.
func foreignKeyColumn(table string) string {
	return strcase.ToSnake(plural.Singular(table)) + "_id"
}

func splitTarget(target string) (string, string) {
	if i := strings.LastIndexByte(target, '.'); i > 0 && i < len(target)-1 {
		return target[:i], target[i+1:]
	}
	return target, "id"
}

// FieldTypes maps canonical field types to DDL templates. {0} is the
// column, {1} the modifier; the references template takes column,
// target table and target column.
type FieldTypes map[string]string

// Expand renders the column definition for f. Foreign keys expand to
// their local column only; see Reference.
func (ft FieldTypes) Expand(f Field) (string, error) {
	t, ok := canonicalType(f.Type)
	if !ok {
		return "", &UnknownFieldTypeError{Type: f.Type, Field: f.Name}
	}
	tmpl, ok := ft[t]
	if !ok {
		return "", &UnknownFieldTypeError{Type: f.Type, Field: f.Name}
	}
	switch t {
	case FieldPrimaryKey:
		name := f.Name
		if name == "" {
			name = "id"
		}
		return substitute(tmpl, []string{name}), nil
	case FieldString:
		size := f.Modifier
		if size == "" {
			size = defaultStringLength
		}
		return substitute(tmpl, []string{f.Name, size}), nil
	case FieldForeignKey:
		table, _ := splitTarget(f.Name)
		return strings.TrimSpace(substitute(tmpl, []string{foreignKeyColumn(table), f.Modifier})), nil
	case FieldReferences:
		if f.Modifier == "" {
			return "", fmt.Errorf("norm: references field %q has no target: %w", f.Name, ErrInvalidField)
		}
		table, column := splitTarget(f.Modifier)
		return ft.References(f.Name, table, column)
	default:
		return strings.TrimSpace(substitute(tmpl, []string{f.Name, f.Modifier})), nil
	}
}

// Reference returns the constraint clause a foreign key field implies,
// or "" for any other field type.
func (ft FieldTypes) Reference(f Field) (string, error) {
	t, ok := canonicalType(f.Type)
	if !ok {
		return "", &UnknownFieldTypeError{Type: f.Type, Field: f.Name}
	}
	if t != FieldForeignKey {
		return "", nil
	}
	table, column := splitTarget(f.Name)
	return ft.References(foreignKeyColumn(table), table, column)
}

// References renders a foreign key constraint on column pointing at
// table(targetColumn).
func (ft FieldTypes) References(column, table, targetColumn string) (string, error) {
	tmpl, ok := ft[FieldReferences]
	if !ok {
		return "", &UnknownFieldTypeError{Type: FieldReferences, Field: column}
	}
	if targetColumn == "" {
		targetColumn = "id"
	}
	return substitute(tmpl, []string{column, table, targetColumn}), nil
}

const referencesTemplate = "FOREIGN KEY ({0}) REFERENCES {1}({2})"

var sqliteFields = FieldTypes{
	FieldPrimaryKey: "{0} INTEGER PRIMARY KEY AUTOINCREMENT",
	FieldString:     "{0} VARCHAR({1})",
	FieldInteger:    "{0} INTEGER {1}",
	FieldBoolean:    "{0} BOOLEAN {1}",
	FieldForeignKey: "{0} INTEGER {1}",
	FieldReferences: referencesTemplate,
}

var mysqlFields = FieldTypes{
	FieldPrimaryKey: "{0} INT NOT NULL AUTO_INCREMENT PRIMARY KEY",
	FieldString:     "{0} VARCHAR({1})",
	FieldInteger:    "{0} INT {1}",
	FieldBoolean:    "{0} TINYINT(1) {1}",
	FieldForeignKey: "{0} INT {1}",
	FieldReferences: referencesTemplate,
}

var postgresFields = FieldTypes{
	FieldPrimaryKey: "{0} SERIAL PRIMARY KEY",
	FieldString:     "{0} VARCHAR({1})",
	FieldInteger:    "{0} INTEGER {1}",
	FieldBoolean:    "{0} BOOLEAN {1}",
	FieldForeignKey: "{0} INTEGER {1}",
	FieldReferences: referencesTemplate,
}

var mssqlFields = FieldTypes{
	FieldPrimaryKey: "{0} INT IDENTITY(1,1) PRIMARY KEY",
	FieldString:     "{0} NVARCHAR({1})",
	FieldInteger:    "{0} INT {1}",
	FieldBoolean:    "{0} BIT {1}",
	FieldForeignKey: "{0} INT {1}",
	FieldReferences: referencesTemplate,
}

var db2Fields = FieldTypes{
	FieldPrimaryKey: "{0} INTEGER NOT NULL GENERATED ALWAYS AS IDENTITY PRIMARY KEY",
	FieldString:     "{0} VARCHAR({1})",
	FieldInteger:    "{0} INTEGER {1}",
	FieldBoolean:    "{0} SMALLINT {1}",
	FieldForeignKey: "{0} INTEGER {1}",
	FieldReferences: referencesTemplate,
}

var firebirdFields = FieldTypes{
	FieldPrimaryKey: "{0} INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY",
	FieldString:     "{0} VARCHAR({1})",
	FieldInteger:    "{0} INTEGER {1}",
	FieldBoolean:    "{0} BOOLEAN {1}",
	FieldForeignKey: "{0} INTEGER {1}",
	FieldReferences: referencesTemplate,
}
