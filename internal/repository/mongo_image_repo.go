package repository

import (
	"context"
	"time"

	"github.com/fathima-sithara/media-catalog/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoImageRepo struct {
	col *mongo.Collection
}

func NewMongoImageRepo(db *mongo.Database, collection string) ImageRepository {
	col := db.Collection(collection)
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "media_id", Value: 1}},
	})
	return &mongoImageRepo{col: col}
}

func (r *mongoImageRepo) Insert(ctx context.Context, img *models.Image) error {
	img.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, img)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		img.ID = oid
	}
	return nil
}

func (r *mongoImageRepo) InsertMany(ctx context.Context, imgs []models.Image) error {
	if len(imgs) == 0 {
		return nil
	}
	docs := make([]interface{}, len(imgs))
	now := time.Now().UTC()
	for i := range imgs {
		imgs[i].CreatedAt = now
		docs[i] = imgs[i]
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *mongoImageRepo) FindByMedia(ctx context.Context, mediaID primitive.ObjectID) ([]models.Image, error) {
	return r.find(ctx, bson.M{"media_id": mediaID})
}

func (r *mongoImageRepo) FindByMediaIDs(ctx context.Context, mediaIDs []primitive.ObjectID) ([]models.Image, error) {
	if len(mediaIDs) == 0 {
		return []models.Image{}, nil
	}
	return r.find(ctx, bson.M{"media_id": bson.M{"$in": mediaIDs}})
}

func (r *mongoImageRepo) find(ctx context.Context, q bson.M) ([]models.Image, error) {
	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Image{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoImageRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteGallery removes every image of a media except its current poster.
func (r *mongoImageRepo) DeleteGallery(ctx context.Context, mediaID primitive.ObjectID, posterID *primitive.ObjectID) error {
	q := bson.M{"media_id": mediaID}
	if posterID != nil {
		q["_id"] = bson.M{"$ne": *posterID}
	}
	_, err := r.col.DeleteMany(ctx, q)
	return err
}

func (r *mongoImageRepo) DeleteByMedia(ctx context.Context, mediaID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"media_id": mediaID})
	return err
}
