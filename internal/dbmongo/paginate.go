package dbmongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is one page of an aggregated result set plus the total count computed
// over the same filter predicate, before skip/limit.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NormalizePage clamps invalid pagination parameters to the defaults instead
// of erroring. Pages are 1-based.
func NormalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// AggregatePaginate runs pipeline on coll wrapped in a $facet stage that
// produces the requested page slice and the total matching count in a single
// round trip. The facet is appended after all filter/join stages so page
// boundaries stay correct.
func AggregatePaginate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, page, limit int64) (*Page[T], error) {
	page, limit = NormalizePage(page, limit)

	faceted := append(pipeline, bson.D{{Key: "$facet", Value: bson.D{
		{Key: "items", Value: bson.A{
			bson.D{{Key: "$skip", Value: (page - 1) * limit}},
			bson.D{{Key: "$limit", Value: limit}},
		}},
		{Key: "total", Value: bson.A{
			bson.D{{Key: "$count", Value: "count"}},
		}},
	}}})

	cursor, err := coll.Aggregate(ctx, faceted)
	if err != nil {
		return nil, fmt.Errorf("paginated aggregate failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Items []T `bson:"items"`
		Total []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decoding paginated result failed: %w", err)
	}

	p := &Page[T]{
		Items: []T{},
		Page:  page,
		Limit: limit,
	}
	if len(results) > 0 {
		if results[0].Items != nil {
			p.Items = results[0].Items
		}
		if len(results[0].Total) > 0 {
			p.TotalCount = results[0].Total[0].Count
		}
	}
	p.TotalPages = (p.TotalCount + limit - 1) / limit
	return p, nil
}

// LookupUserPublic builds the recurring $lookup stage that joins a user
// reference and projects it down to the public profile fields. Collapse the
// resulting array with FirstOf.
func LookupUserPublic(localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: CollUsers},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
		{Key: "pipeline", Value: bson.A{
			bson.D{{Key: "$project", Value: PublicProfileProjection()}},
		}},
	}}}
}

// FirstOf collapses a to-one lookup result array to its first element.
func FirstOf(field string) bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: field, Value: bson.D{{Key: "$first", Value: "$" + field}}},
	}}}
}

// PublicProfileProjection keeps only the fields of a user document that other
// actors may see. Password and token fields must never pass through here.
func PublicProfileProjection() bson.D {
	return bson.D{
		{Key: "username", Value: 1},
		{Key: "fullName", Value: 1},
		{Key: "avatar", Value: 1},
		{Key: "coverImage", Value: 1},
	}
}
