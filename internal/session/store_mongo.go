package session

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists the session as a single upserted document. Useful when
// the deployment already runs MongoDB and no Redis is available.
type MongoStore struct {
	col *mongo.Collection
	id  string
}

type sessionDoc struct {
	ID        string   `bson:"_id"`
	Token     string   `bson:"token"`
	Scope     string   `bson:"scope"`
	Roles     []string `bson:"roles"`
	Username  string   `bson:"username"`
	ExpiresAt int64    `bson:"expiresAt"`
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col, id: "panel"}
}

func (m *MongoStore) Save(s Session) error {
	doc := sessionDoc{
		ID:        m.id,
		Token:     s.Token,
		Scope:     string(s.Scope),
		Roles:     s.Roles,
		Username:  s.Username,
		ExpiresAt: s.ExpiresAt,
	}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(context.Background(), bson.M{"_id": m.id}, bson.M{"$set": doc}, opts)
	return err
}

func (m *MongoStore) Load() (Session, error) {
	var doc sessionDoc
	if err := m.col.FindOne(context.Background(), bson.M{"_id": m.id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return Session{}, nil
		}
		return Session{}, err
	}
	return Session{
		Token:     doc.Token,
		Scope:     Scope(doc.Scope),
		Roles:     doc.Roles,
		Username:  doc.Username,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}
