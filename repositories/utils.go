package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/getforesight/foresight-backend/pure_utils"
)

func columnsNames(tablename string, fields []string) []string {
	return pure_utils.Map(fields, func(f string) string {
		return fmt.Sprintf("%s.%s", tablename, f)
	})
}

// For countByHelper
type countByItem struct {
	Id    string
	Count int
}

// Helper function to count the number of items by org id, useful for metrics collection.
// The function expects the query to return a list of ID and count, we return a map of ID to count and set 0 for IDs that don't have any items
// Example:
// SELECT org_id, count(*) as count FROM queue_entries WHERE org_id IN ($1) AND status = $2 GROUP BY org_id
func countByHelper(ctx context.Context, exec Executor, query squirrel.Sqlizer, byIds []string) (map[string]int, error) {
	counts, err := SqlToListOfRow(ctx, exec, query, func(row pgx.CollectableRow) (countByItem, error) {
		var result countByItem
		err := row.Scan(&result.Id, &result.Count)
		if err != nil {
			return countByItem{}, err
		}
		return result, nil
	})
	if err != nil {
		return map[string]int{}, err
	}

	result := make(map[string]int, len(byIds))
	for _, count := range counts {
		result[count.Id] = count.Count
	}

	// Set 0 for IDs which don't have any items
	for _, byId := range byIds {
		if _, exists := result[byId]; !exists {
			result[byId] = 0
		}
	}

	return result, nil
}
