package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Query executes a raw SurrealQL query with parameters and returns the
// rows of its first statement. Every statement must report an OK status.
//
// Example:
//
//	query := "SELECT * FROM user WHERE email = $email"
//	users, err := Query[userRecord](ctx, db, query, map[string]any{"email": "a@x.com"})
func Query[T any](ctx context.Context, db *surrealdb.DB, query string, params map[string]any) ([]T, error) {
	queryResults, err := surrealdb.Query[[]T](ctx, db, query, params)
	if err != nil {
		return nil, NewDBError(err, "query execution failed").WithQuery(query)
	}
	if queryResults == nil || len(*queryResults) == 0 {
		return nil, nil
	}
	for _, res := range *queryResults {
		if !strings.EqualFold(res.Status, "OK") {
			return nil, NewDBError(ErrQueryFailed, fmt.Sprintf("statement returned status %q", res.Status)).WithQuery(query)
		}
	}
	return (*queryResults)[0].Result, nil
}

// QueryOne executes a query and returns a single result.
// If no results are found, it returns nil, nil.
func QueryOne[T any](ctx context.Context, db *surrealdb.DB, query string, params map[string]any) (*T, error) {
	// CREATE/UPDATE/DELETE statements don't support LIMIT.
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") && !hasLimitClause(query) {
		query += " LIMIT 1"
	}

	results, err := Query[T](ctx, db, query, params)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// Execute runs a query whose rows the caller does not need. Statement
// failures are still reported.
func Execute(ctx context.Context, db *surrealdb.DB, query string, params map[string]any) error {
	queryResults, err := surrealdb.Query[any](ctx, db, query, params)
	if err != nil {
		return NewDBError(err, "query execution failed").WithQuery(query)
	}
	if queryResults == nil {
		return nil
	}
	for _, res := range *queryResults {
		if !strings.EqualFold(res.Status, "OK") {
			return NewDBError(ErrQueryFailed, fmt.Sprintf("statement returned status %q: %v", res.Status, res.Result)).WithQuery(query)
		}
	}
	return nil
}

// hasLimitClause checks if the query already has a LIMIT clause
func hasLimitClause(query string) bool {
	query = " " + strings.ToUpper(query) + " "
	return strings.Contains(query, " LIMIT ")
}
