package repository

import (
	"context"
	"encoding/json"
	"log"

	"lusotown-backend/internal/domain/repository"
	"lusotown-backend/internal/infrastructure/database"
)

// PostgresPerformanceLogger records search timings through the
// log_business_search_performance stored procedure. Failures are logged and
// swallowed so telemetry can never break a search.
type PostgresPerformanceLogger struct {
	client *database.PostgreSQLClient
}

func NewPostgresPerformanceLogger(client *database.PostgreSQLClient) repository.SearchPerformanceLogger {
	return &PostgresPerformanceLogger{
		client: client,
	}
}

func (l *PostgresPerformanceLogger) Log(ctx context.Context, searchType string, executionTimeMs int64, resultCount int, params map[string]interface{}) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		log.Printf("warning: failed to serialize search performance params: %v", err)
		return
	}

	query := `SELECT log_business_search_performance($1, $2, $3, $4)`
	if _, err := l.client.DB.ExecContext(ctx, query, searchType, executionTimeMs, resultCount, paramsJSON); err != nil {
		log.Printf("warning: failed to log search performance (%s): %v", searchType, err)
	}
}
