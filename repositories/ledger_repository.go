// repositories/ledger_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestioncomercial/gestion_backend/config"
	"github.com/gestioncomercial/gestion_backend/models"
)

// LedgerRepository wraps ledger record persistence: sequence allocation for
// the sync cursor and the paginated full fetch.
type LedgerRepository struct {
	DB *mongo.Client
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *mongo.Client) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

// NextSeq allocates the next value of the ledger sequence from the
// counters collection. The sequence is the monotonic key the sync loop
// pages by, so it must never be reused.
func (r *LedgerRepository) NextSeq(ctx context.Context) (int64, error) {
	counters := config.GetCollection(r.DB, "counters")

	var counter struct {
		Value int64 `bson:"value"`
	}
	err := counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "ledger_seq"},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, models.NewTransportError("allocate ledger sequence", err)
	}
	return counter.Value, nil
}

// Insert stores a new ledger record, allocating its sequence number.
func (r *LedgerRepository) Insert(ctx context.Context, record *models.LedgerRecord) error {
	seq, err := r.NextSeq(ctx)
	if err != nil {
		return err
	}
	record.Seq = seq
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	collection := config.GetCollection(r.DB, "ledger_records")
	if _, err := collection.InsertOne(ctx, record); err != nil {
		return models.NewTransportError("insert ledger record", err)
	}
	return nil
}

// FetchPage returns one sync page: records with seq strictly greater than
// afterSeq, ascending by seq, at most limit of them. An extra filter (e.g.
// an owner predicate for salesperson visibility) can be merged in.
func (r *LedgerRepository) FetchPage(ctx context.Context, extraFilter bson.M, afterSeq, limit int64) ([]models.LedgerRecord, error) {
	filter := bson.M{"seq": bson.M{"$gt": afterSeq}}
	for k, v := range extraFilter {
		filter[k] = v
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "seq", Value: 1}}).
		SetLimit(limit)

	collection := config.GetCollection(r.DB, "ledger_records")
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.LedgerRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchAll walks the whole ledger collection page by page. The filter
// scopes visibility (empty for admins, ownerId for salespersons). The
// returned result carries an incomplete flag when the page budget ran out.
func (r *LedgerRepository) FetchAll(ctx context.Context, filter bson.M, pageSize, maxPages int) (*models.LedgerSyncResult, error) {
	fetch := func(ctx context.Context, afterSeq, limit int64) ([]models.LedgerRecord, error) {
		return r.FetchPage(ctx, filter, afterSeq, limit)
	}
	key := func(record models.LedgerRecord) int64 {
		return record.Seq
	}

	records, pages, incomplete, err := FetchAllPages(ctx, pageSize, maxPages, fetch, key)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.LedgerRecord{}
	}
	return &models.LedgerSyncResult{Records: records, Incomplete: incomplete, Pages: pages}, nil
}

// FindInRange returns a salesperson's records within [from, to] inclusive,
// used to compute commission bases.
func (r *LedgerRepository) FindInRange(ctx context.Context, ownerID primitive.ObjectID, from, to time.Time) ([]models.LedgerRecord, error) {
	filter := bson.M{
		"ownerId": ownerID,
		"date":    bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	collection := config.GetCollection(r.DB, "ledger_records")
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, models.NewTransportError("find ledger records in range", err)
	}
	defer cursor.Close(ctx)

	var records []models.LedgerRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, models.NewTransportError("decode ledger records", err)
	}
	return records, nil
}
