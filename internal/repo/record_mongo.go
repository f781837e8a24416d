package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dom "github.com/1810649011/my-web-end/internal/domain"
	"github.com/1810649011/my-web-end/internal/query"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/errgroup"
)

// recordDoc is the stored shape in the records collection.
type recordDoc struct {
	ID     bson.ObjectID `bson:"_id,omitempty"`
	UserID bson.ObjectID `bson:"userId"`
	Remark string        `bson:"remark"`
	Date   time.Time     `bson:"date"`
}

func (d recordDoc) toRecord() dom.Record {
	return dom.Record{
		ID:      d.ID.Hex(),
		OwnerID: d.UserID.Hex(),
		Remark:  d.Remark,
		Date:    d.Date,
	}
}

// MongoRecordRepo implements RecordRepo with MongoDB. Every operation
// filters by both _id and userId, so a record belonging to another
// owner is indistinguishable from a missing one.
type MongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new MongoRecordRepo over db's records
// collection.
func NewMongoRecordRepo(db *mongo.Database) *MongoRecordRepo {
	return &MongoRecordRepo{coll: db.Collection("records")}
}

// EnsureIndexes creates the owner+date index used by list queries.
func (r *MongoRecordRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("records indexes: %w", err)
	}
	return nil
}

func (r *MongoRecordRepo) Create(ctx context.Context, owner, remark string, date time.Time) (dom.Record, error) {
	uid, err := bson.ObjectIDFromHex(owner)
	if err != nil {
		return dom.Record{}, fmt.Errorf("owner id: %w", err)
	}
	doc := recordDoc{ID: bson.NewObjectID(), UserID: uid, Remark: remark, Date: date}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return dom.Record{}, fmt.Errorf("insert record: %w", err)
	}
	return doc.toRecord(), nil
}

func (r *MongoRecordRepo) GetByID(ctx context.Context, owner, id string) (dom.Record, error) {
	filter, ok := scopedID(owner, id)
	if !ok {
		return dom.Record{}, ErrNotFound
	}
	var doc recordDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Record{}, ErrNotFound
	}
	if err != nil {
		return dom.Record{}, fmt.Errorf("find record: %w", err)
	}
	return doc.toRecord(), nil
}

func (r *MongoRecordRepo) UpdateRemark(ctx context.Context, owner, id, remark string, date time.Time) (dom.Record, error) {
	filter, ok := scopedID(owner, id)
	if !ok {
		return dom.Record{}, ErrNotFound
	}
	var doc recordDoc
	err := r.coll.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": bson.M{"remark": remark, "date": date}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Record{}, ErrNotFound
	}
	if err != nil {
		return dom.Record{}, fmt.Errorf("update record: %w", err)
	}
	return doc.toRecord(), nil
}

func (r *MongoRecordRepo) Delete(ctx context.Context, owner, id string) error {
	filter, ok := scopedID(owner, id)
	if !ok {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// errMissingOwner guards the owner-scoped store against unscoped list
// queries, which would span every tenant.
var errMissingOwner = errors.New("missing owner")

// List runs the count and the page fetch concurrently against the same
// filter document. Not transactional; the total can lag behind writes
// that land between the two reads. Like every other operation here,
// it fails closed without an owner.
func (r *MongoRecordRepo) List(ctx context.Context, f query.Filter) (Page, error) {
	if f.Owner == "" {
		return Page{}, errMissingOwner
	}
	filter, err := query.BuildMongoFilter(f)
	if err != nil {
		return Page{}, fmt.Errorf("build filter: %w", err)
	}

	var page Page
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cur, err := r.coll.Find(gctx, filter, query.MongoFindOptions(f))
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		var docs []recordDoc
		if err := cur.All(gctx, &docs); err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		var list []dom.Record
		for _, d := range docs {
			list = append(list, d.toRecord())
		}
		page.Items = list
		return nil
	})

	g.Go(func() error {
		total, err := r.coll.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count records: %w", err)
		}
		page.Total = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return Page{}, err
	}
	return page, nil
}

// scopedID builds the joint id+owner filter. A malformed id or owner
// cannot match anything, so callers report not found.
func scopedID(owner, id string) (bson.M, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	uid, err := bson.ObjectIDFromHex(owner)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "userId": uid}, true
}
