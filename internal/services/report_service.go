package services

import (
	"context"
	"time"

	"github.com/phishcatcher/phishcatcher-backend/internal/database"
	"github.com/phishcatcher/phishcatcher-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reportsCollection = "reports"

// EnsureReportIndexes configures indexes for the reports collection.
// Called on startup from main after Mongo has connected.
func EnsureReportIndexes(ctx context.Context) error {
	col := database.MongoDB.Collection(reportsCollection)

	// Compound index on (user_id, created_at) to support newest-first listing.
	model := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_user_created"),
	}

	_, err := col.Indexes().CreateOne(ctx, model)
	return err
}

// CreateReport persists a caller-supplied report payload verbatim. Reports are
// immutable after creation; no server-side aggregation happens here.
func CreateReport(ctx context.Context, report models.Report) (*models.Report, error) {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	if report.Format == "" {
		report.Format = "pdf"
	}

	col := database.MongoDB.Collection(reportsCollection)
	res, err := col.InsertOne(ctx, report)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return &report, nil
}

// GetUserReports returns the caller's reports, newest first.
func GetUserReports(ctx context.Context, userID string) ([]models.Report, error) {
	col := database.MongoDB.Collection(reportsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reports := make([]models.Report, 0)
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
