package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// defaultRoles is the seed set used on an empty roles collection. Rank is
// inverted: lower value means higher authority.
var defaultRoles = []mongoRole{
	{Name: "Director", Rank: 0},
	{Name: "Manager", Rank: 1},
	{Name: "Worker", Rank: 2},
}

// SeedRoles inserts the default role set when the roles collection is empty.
// In production roles are expected to be created out-of-band; this keeps a
// fresh development database usable.
func SeedRoles(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll := db.Collection(rolesCollection)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count roles: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(defaultRoles))
	for _, role := range defaultRoles {
		docs = append(docs, role)
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	log.Info().Int("count", len(defaultRoles)).Msg("seeded default roles")
	return nil
}
