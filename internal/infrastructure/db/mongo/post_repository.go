package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

const collectionPosts = "community_posts"

// PostRepository implements ports.PostRepository using MongoDB.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type mongoReply struct {
	ID         string    `bson:"id"`
	AuthorID   string    `bson:"author_id"`
	AuthorName string    `bson:"author_name,omitempty"`
	Body       string    `bson:"body"`
	CreatedAt  time.Time `bson:"created_at"`
}

type mongoPost struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID   string             `bson:"author_id"`
	AuthorName string             `bson:"author_name,omitempty"`
	Type       string             `bson:"type"`
	Town       string             `bson:"town"`
	Title      string             `bson:"title"`
	Body       string             `bson:"body"`
	TargetDate string             `bson:"target_date"`
	Likes      []string           `bson:"likes"`
	Replies    []mongoReply       `bson:"replies"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func toMongoPost(p *domain.Post) mongoPost {
	doc := mongoPost{
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		Type:       string(p.Type),
		Town:       p.Town,
		Title:      p.Title,
		Body:       p.Body,
		TargetDate: p.TargetDate,
		Likes:      append([]string{}, p.Likes...),
		Replies:    make([]mongoReply, len(p.Replies)),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	for i, r := range p.Replies {
		doc.Replies[i] = mongoReply(r)
	}
	if oid, ok := objectID(p.ID); ok {
		doc.ID = oid
	}
	return doc
}

func (mp *mongoPost) toDomain() *domain.Post {
	p := &domain.Post{
		ID:         mp.ID.Hex(),
		AuthorID:   mp.AuthorID,
		AuthorName: mp.AuthorName,
		Type:       domain.PostType(mp.Type),
		Town:       mp.Town,
		Title:      mp.Title,
		Body:       mp.Body,
		TargetDate: mp.TargetDate,
		Likes:      append([]string{}, mp.Likes...),
		Replies:    make([]domain.Reply, len(mp.Replies)),
		CreatedAt:  mp.CreatedAt.UTC(),
		UpdatedAt:  mp.UpdatedAt.UTC(),
	}
	for i, r := range mp.Replies {
		p.Replies[i] = domain.Reply(r)
		p.Replies[i].CreatedAt = r.CreatedAt.UTC()
	}
	return p
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoPost(p)
	doc.ID = primitive.NilObjectID
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns posts matching filter, newest first.
func (r *PostRepository) List(ctx context.Context, f ports.PostFilter) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.Town != "" {
		filter["town"] = f.Town
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, len(docs))
	for i := range docs {
		posts[i] = docs[i].toDomain()
	}
	return posts, nil
}

// Replace overwrites the editable fields of a post. Likes and replies are
// left alone so concurrent reactions are not lost to an author edit.
func (r *PostRepository) Replace(ctx context.Context, p *domain.Post) error {
	oid, ok := objectID(p.ID)
	if !ok {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"type":        string(p.Type),
		"town":        p.Town,
		"title":       p.Title,
		"body":        p.Body,
		"target_date": p.TargetDate,
		"updated_at":  p.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) AppendReply(ctx context.Context, id string, reply domain.Reply) (*domain.Post, error) {
	return r.update(ctx, id, bson.M{"$push": bson.M{"replies": mongoReply(reply)}})
}

func (r *PostRepository) AddLike(ctx context.Context, id, userID string) (*domain.Post, error) {
	return r.update(ctx, id, bson.M{"$addToSet": bson.M{"likes": userID}})
}

func (r *PostRepository) RemoveLike(ctx context.Context, id, userID string) (*domain.Post, error) {
	return r.update(ctx, id, bson.M{"$pull": bson.M{"likes": userID}})
}

// update applies a single-document update and returns the post after it.
func (r *PostRepository) update(ctx context.Context, id string, update bson.M) (*domain.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoPost
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates necessary indexes on the posts collection.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "town", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
