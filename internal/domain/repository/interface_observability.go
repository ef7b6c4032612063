package repository

import (
	"context"

	"lusotown-backend/internal/domain/model"
)

// SearchPerformanceLogger fire-and-forget telemetry for directory searches.
// Implementations must swallow their own failures; observability never
// affects the search path.
type SearchPerformanceLogger interface {
	Log(ctx context.Context, searchType string, executionTimeMs int64, resultCount int, params map[string]interface{})
}

// SearchAnalyticsRepository archive for slow-search reports. Best-effort:
// callers log failures as warnings and move on.
type SearchAnalyticsRepository interface {
	SaveSlowSearchReport(ctx context.Context, report *model.SlowSearchReport) error
}
