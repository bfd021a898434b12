package utils

import (
	"reflect"
)

// ColumnList returns the db-tagged column names of a row struct, in field
// order. Keeping the list next to the struct means a column added to one
// without the other fails loudly at scan time instead of silently.
func ColumnList[DBModel any]() []string {
	var dbModel DBModel
	modelType := reflect.TypeOf(dbModel)

	columns := make([]string, 0, modelType.NumField())
	for i := range modelType.NumField() {
		tag := modelType.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, tag)
	}
	return columns
}
