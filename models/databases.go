package models

// The backend talks to a single postgres database. The schema type still
// travels with every executor so a repository can refuse an executor built
// for another target, which catches miswired dependency injection early.
type DatabaseSchemaType int

const (
	DATABASE_SCHEMA_TYPE_FORESIGHT DatabaseSchemaType = iota
)

type DatabaseSchema struct {
	SchemaType DatabaseSchemaType
	Schema     string
}

var DATABASE_FORESIGHT_SCHEMA = DatabaseSchema{
	SchemaType: DATABASE_SCHEMA_TYPE_FORESIGHT,
	Schema:     "public",
}
