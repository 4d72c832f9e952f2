package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Now returns the current time in UTC. Documents store UTC timestamps only.
func Now() time.Time {
	return time.Now().UTC()
}

// BuildIncrementUpdate returns an atomic $inc update that also bumps the
// document's updatedAt timestamp in the same operation.
func BuildIncrementUpdate(field string, value interface{}) bson.M {
	return bson.M{
		"$inc": bson.M{field: value},
		"$set": bson.M{"updatedAt": Now()},
	}
}
