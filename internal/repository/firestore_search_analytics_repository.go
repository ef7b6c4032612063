package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/repository"
)

// slowReportTTL how long a slow-search report stays in the archive before the
// collection's TTL policy removes it.
const slowReportTTL = 24 * time.Hour

// FirestoreSearchAnalyticsRepository archives slow-search reports in a
// TTL-managed Firestore collection.
type FirestoreSearchAnalyticsRepository struct {
	client *firestore.Client
}

func NewFirestoreSearchAnalyticsRepository(client *firestore.Client) repository.SearchAnalyticsRepository {
	return &FirestoreSearchAnalyticsRepository{
		client: client,
	}
}

// firestoreSlowSearchReport the stored document shape. ExpiresAt drives the
// collection TTL policy.
type firestoreSlowSearchReport struct {
	SearchType      string                 `firestore:"searchType"`
	ExecutionTimeMs int64                  `firestore:"executionTimeMs"`
	ThresholdMs     int64                  `firestore:"thresholdMs"`
	ResultCount     int                    `firestore:"resultCount"`
	Params          map[string]interface{} `firestore:"params"`
	ReportedAt      time.Time              `firestore:"reportedAt"`
	ExpiresAt       time.Time              `firestore:"expiresAt"`
}

func (r *FirestoreSearchAnalyticsRepository) SaveSlowSearchReport(ctx context.Context, report *model.SlowSearchReport) error {
	reportID := fmt.Sprintf("slow_%s", uuid.New().String())
	now := time.Now().UTC()

	doc := firestoreSlowSearchReport{
		SearchType:      report.SearchType,
		ExecutionTimeMs: report.ExecutionTimeMs,
		ThresholdMs:     report.ThresholdMs,
		ResultCount:     report.ResultCount,
		Params:          report.Params,
		ReportedAt:      now,
		ExpiresAt:       now.Add(slowReportTTL),
	}

	_, err := r.client.Collection("slowSearchReports").Doc(reportID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save slow search report: %w", err)
	}

	return nil
}
