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

	"github.com/taskhub/task-system/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	users *mongo.Collection
	roles *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users: db.Collection(usersCollection),
		roles: db.Collection(rolesCollection),
	}
}

type mongoTask struct {
	ID          string `bson:"id"`
	Name        string `bson:"name"`
	IsCompleted bool   `bson:"is_completed"`
}

type mongoUser struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	Name         string              `bson:"name"`
	Email        string              `bson:"email"`
	PasswordHash string              `bson:"password_hash"`
	Role         *primitive.ObjectID `bson:"role,omitempty"`
	Tasks        []mongoTask         `bson:"tasks"`
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User, roleID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	roleOID, err := primitive.ObjectIDFromHex(roleID)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	doc := mongoUser{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         &roleOID,
		Tasks:        []mongoTask{},
	}

	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return r.toDomain(ctx, doc)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return r.toDomain(ctx, doc)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return r.toDomain(ctx, doc)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	roleIndex, err := r.roleIndex(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := r.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]domain.User, 0)
	for cur.Next(ctx) {
		var doc mongoUser
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		u := fromMongoUser(doc)
		if doc.Role != nil {
			if role, ok := roleIndex[doc.Role.Hex()]; ok {
				u.Role = &role
			}
		}
		users = append(users, *u)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ReplaceTasks overwrites the embedded task list of one user document. This
// is the single write backing assign, toggle, and remove; per-document
// atomicity makes it last-write-wins under concurrent callers.
func (r *UserRepository) ReplaceTasks(ctx context.Context, userID string, tasks []domain.Task) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]mongoTask, 0, len(tasks))
	for _, t := range tasks {
		docs = append(docs, mongoTask{ID: t.ID, Name: t.Name, IsCompleted: t.IsCompleted})
	}

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"tasks": docs}})
	if err != nil {
		return fmt.Errorf("replace tasks: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index the Conflict semantics rely on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// toDomain converts a user document, resolving its role reference with a
// second lookup (the store holds an id, not an embedded role).
func (r *UserRepository) toDomain(ctx context.Context, doc mongoUser) (*domain.User, error) {
	u := fromMongoUser(doc)
	if doc.Role == nil {
		return u, nil
	}

	var role mongoRole
	err := r.roles.FindOne(ctx, bson.M{"_id": *doc.Role}).Decode(&role)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Dangling reference: surface the user without a role so the
			// authorization rule fails closed.
			return u, nil
		}
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	u.Role = role.toDomain()
	return u, nil
}

func (r *UserRepository) roleIndex(ctx context.Context) (map[string]domain.Role, error) {
	cur, err := r.roles.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	defer cur.Close(ctx)

	index := make(map[string]domain.Role)
	for cur.Next(ctx) {
		var doc mongoRole
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		index[doc.ID.Hex()] = *doc.toDomain()
	}
	return index, cur.Err()
}

func fromMongoUser(doc mongoUser) *domain.User {
	tasks := make([]domain.Task, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		tasks = append(tasks, domain.Task{ID: t.ID, Name: t.Name, IsCompleted: t.IsCompleted})
	}
	return &domain.User{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Tasks:        tasks,
	}
}
