package repository

import (
	"context"
	"fmt"

	"feedback-portal/internal/database"
	"feedback-portal/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const feedbackCollection = "feedback"

// feedbackDocument stores additional_data as the client's JSON text so keys
// starting with "$" and numbers beyond float64 precision come back unchanged.
type feedbackDocument struct {
	models.Feedback `bson:",inline"`
	AdditionalData  string `bson:"additional_data"`
}

type FeedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo(db *database.Mongo) *FeedbackRepo {
	return &FeedbackRepo{
		collection: db.Collection(feedbackCollection),
	}
}

func (r *FeedbackRepo) Insert(ctx context.Context, feedback *models.Feedback) error {
	if _, err := r.collection.InsertOne(ctx, toDocument(feedback)); err != nil {
		return fmt.Errorf("inserting feedback %s: %w", feedback.ID, err)
	}
	return nil
}

func (r *FeedbackRepo) FindAll(ctx context.Context, limit int) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *FeedbackRepo) FindByCategory(ctx context.Context, category models.Category, limit int) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{"category": category}, limit)
}

func (r *FeedbackRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, fmt.Errorf("deleting feedback %s: %w", id, err)
	}
	return result.DeletedCount, nil
}

func (r *FeedbackRepo) find(ctx context.Context, filter bson.M, limit int) ([]models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}

	var docs []feedbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("reading feedback: %w", err)
	}

	out := make([]models.Feedback, 0, len(docs))
	for i := range docs {
		out = append(out, fromDocument(&docs[i]))
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes for the feedback collection
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDocument(f *models.Feedback) *feedbackDocument {
	return &feedbackDocument{Feedback: *f, AdditionalData: string(f.AdditionalData.Bytes())}
}

func fromDocument(doc *feedbackDocument) models.Feedback {
	f := doc.Feedback
	f.Timestamp = f.Timestamp.UTC()
	f.AdditionalData = models.AdditionalData(doc.AdditionalData)
	return f
}
