package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/fathima-sithara/media-catalog/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoMediaRepo struct {
	col *mongo.Collection
}

func NewMongoMediaRepo(db *mongo.Database, collection string) MediaRepository {
	return &mongoMediaRepo{col: db.Collection(collection)}
}

func (r *mongoMediaRepo) Insert(ctx context.Context, m *models.Media) error {
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

func (r *mongoMediaRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	var m models.Media
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, ErrMediaNotFound
	}
	return &m, err
}

// UpdateFields rewrites the scalar fields only; poster_id is owned by SetPoster.
func (r *mongoMediaRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, m *models.Media) error {
	set := bson.M{
		"title":        m.Title,
		"description":  m.Description,
		"release_year": m.ReleaseYear,
		"type":         m.Type,
		"director":     m.Director,
		"budget":       m.Budget,
		"location":     m.Location,
		"duration":     m.Duration,
		"updated_at":   time.Now().UTC(),
	}
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMediaNotFound
	}
	return nil
}

func (r *mongoMediaRepo) SetPoster(ctx context.Context, id primitive.ObjectID, posterID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"poster_id":  posterID,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMediaNotFound
	}
	return nil
}

func (r *mongoMediaRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrMediaNotFound
	}
	return nil
}

func (r *mongoMediaRepo) Find(ctx context.Context, f MediaFilter, skip, limit int64) ([]models.Media, error) {
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, buildMediaFilter(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Media{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoMediaRepo) Count(ctx context.Context, f MediaFilter) (int64, error) {
	return r.col.CountDocuments(ctx, buildMediaFilter(f))
}

func buildMediaFilter(f MediaFilter) bson.M {
	q := bson.M{}
	if f.ReleaseYear != nil {
		q["release_year"] = *f.ReleaseYear
	}
	if f.Director != "" {
		q["director"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Director), Options: "i"}
	}
	if f.Type != "" {
		q["type"] = f.Type
	}
	if f.Title != "" {
		q["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Title), Options: "i"}
	}
	return q
}
