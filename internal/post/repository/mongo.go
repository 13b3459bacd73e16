package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/openpress/post-service/internal/post"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo is the MongoDB-backed post repository. Posts are keyed by
// ObjectID (_id) and page queries sort on createdAt descending.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// index backing the most-recent-first page queries
	idx := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Tags == nil {
		p.Tags = []string{}
	}
	res, err := m.col.InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return p, nil
}

func (m *MongoRepo) FindPage(ctx context.Context, limit, offset int64) ([]*post.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)
	out := []*post.Post{}
	for cur.Next(ctx) {
		var p post.Post
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		out = append(out, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) Count(ctx context.Context) (int64, error) {
	n, err := m.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func (m *MongoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*post.Post, error) {
	var p post.Post
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, post.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

func (m *MongoRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch post.UpdatePayload) (*post.Post, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Body != nil {
		set["body"] = *patch.Body
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p post.Post
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, post.ErrNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &p, nil
}

func (m *MongoRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	// DeletedCount is deliberately ignored: removing an id that is already
	// gone is a no-op success.
	if _, err := m.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
