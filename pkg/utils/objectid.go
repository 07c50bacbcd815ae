package utils

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewObjectId returns a fresh 24-character hex object identifier.
func NewObjectId() string {
	return primitive.NewObjectID().Hex()
}

// IsValidObjectId reports whether id is a well-formed 24-character hex
// object identifier. Every entity reference is checked with this before
// any store access.
func IsValidObjectId(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
