package docstore

import (
	"fmt"
	"strings"
)

// Query describes an ad-hoc finite query: optional partition scoping plus
// equality filters on top-level document fields.
type Query struct {
	PartitionKey string
	Filters      []Filter
}

// Filter matches documents whose named top-level field equals the value.
type Filter struct {
	Field string
	Value string
}

// InPartition scopes the query to a single partition.
func InPartition(partitionKey string) Query {
	return Query{PartitionKey: partitionKey}
}

// Where adds an equality filter and returns the query for chaining.
func (q Query) Where(field, value string) Query {
	q.Filters = append(q.Filters, Filter{Field: field, Value: value})
	return q
}

// build renders the WHERE clause and its arguments.
func (q Query) build() (string, []any) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if q.PartitionKey != "" {
		conditions = append(conditions, fmt.Sprintf("partition_key = $%d", argIndex))
		args = append(args, q.PartitionKey)
		argIndex++
	}

	for _, f := range q.Filters {
		conditions = append(conditions, fmt.Sprintf("doc->>$%d = $%d", argIndex, argIndex+1))
		args = append(args, f.Field, f.Value)
		argIndex += 2
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
