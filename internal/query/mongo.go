package query

import (
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// BuildMongoFilter turns a Filter into a records collection filter
// document. The predicates mirror BuildSQL: the keyword becomes a
// case-insensitive literal substring match (all regex metacharacters
// quoted, so a hostile keyword cannot change the pattern), and time
// bounds become an inclusive $gte/$lte range. An owner, when set,
// is a mandatory userId equality.
func BuildMongoFilter(f Filter) (bson.M, error) {
	filter := bson.M{}

	if f.Owner != "" {
		oid, err := bson.ObjectIDFromHex(f.Owner)
		if err != nil {
			return nil, err
		}
		filter["userId"] = oid
	}
	if f.Keyword != "" {
		filter["remark"] = bson.M{"$regex": regexp.QuoteMeta(f.Keyword), "$options": "i"}
	}
	if f.StartAt != nil || f.EndAt != nil {
		rng := bson.M{}
		if f.StartAt != nil {
			rng["$gte"] = *f.StartAt
		}
		if f.EndAt != nil {
			rng["$lte"] = *f.EndAt
		}
		filter["date"] = rng
	}

	return filter, nil
}

// MongoFindOptions is the data-mode counterpart of BuildMongoFilter:
// newest first, skip/limit for the requested page. Count queries use
// the bare filter and none of this.
func MongoFindOptions(f Filter) *options.FindOptionsBuilder {
	return options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64(f.Offset())).
		SetLimit(int64(f.PageSize))
}
