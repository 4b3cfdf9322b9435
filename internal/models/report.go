package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is a user-requested export. The data payload is supplied by the caller
// and persisted verbatim; reports are immutable after creation.
type Report struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID    string                 `bson:"user_id" json:"userId"`
	Title     string                 `bson:"title" json:"title"`
	Type      string                 `bson:"type" json:"type"` // daily, weekly, monthly, custom
	DateRange map[string]interface{} `bson:"date_range,omitempty" json:"dateRange,omitempty"`
	Data      map[string]interface{} `bson:"data" json:"data"`
	Format    string                 `bson:"format" json:"format"` // pdf, csv, excel
	FilePath  string                 `bson:"file_path,omitempty" json:"filePath,omitempty"`
	CreatedAt time.Time              `bson:"created_at" json:"createdAt"`
}
