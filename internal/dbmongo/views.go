package dbmongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoWithOwner is the denormalized video row most read pipelines emit: the
// video fields plus the owner collapsed to a public profile.
type VideoWithOwner struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Owner       UserPublic         `bson:"owner" json:"owner"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
