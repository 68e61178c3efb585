package repository

import (
	"context"
	"fmt"

	"github.com/damascus-edu/training-center-bot/internal/model"
	"github.com/damascus-edu/training-center-bot/internal/repository/base"
	"github.com/damascus-edu/training-center-bot/internal/timeutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("scheduled_posts")}
}

// GetPending получает все посты в статусе pending
func (r *PostRepository) GetPending(ctx context.Context) ([]*model.ScheduledPost, error) {
	cursor, err := r.col.Find(ctx, bson.M{"status": model.PostStatusPending})
	if err != nil {
		return nil, fmt.Errorf("find pending posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*model.ScheduledPost
	for cursor.Next(ctx) {
		var post model.ScheduledPost
		if err := cursor.Decode(&post); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		post.ScheduledDatetime = timeutil.FromUTC(post.ScheduledDatetime)
		if post.PublishedAt != nil {
			local := timeutil.FromUTC(*post.PublishedAt)
			post.PublishedAt = &local
		}
		posts = append(posts, &post)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// Save сохраняет пост (upsert)
func (r *PostRepository) Save(ctx context.Context, post *model.ScheduledPost) error {
	doc := *post
	doc.ScheduledDatetime = timeutil.ToUTC(post.ScheduledDatetime)
	if post.PublishedAt != nil {
		utc := timeutil.ToUTC(*post.PublishedAt)
		doc.PublishedAt = &utc
	}

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": post.ID}, &doc, base.Upsert)
	if err != nil {
		return fmt.Errorf("save post: %w", err)
	}
	return nil
}
