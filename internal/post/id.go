package post

import "go.mongodb.org/mongo-driver/bson/primitive"

// ParseID checks that a raw identifier is a well-formed 24-character hex
// ObjectID. Malformed input is rejected here, before any store round trip,
// so driver-internal errors never leak for syntactically impossible ids.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
