package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
)

const itemsCollection = "items"

type ItemRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{db: db, coll: db.Collection(itemsCollection)}
}

type itemDoc struct {
	ID          int     `bson:"_id"`
	Name        string  `bson:"name"`
	Description string  `bson:"description,omitempty"`
	Price       float64 `bson:"price"`
	Status      string  `bson:"status"`
	OwnerID     int     `bson:"owner_id"`
	CreatedAt   int64   `bson:"created_at"`
	UpdatedAt   int64   `bson:"updated_at,omitempty"`
}

func toItemDoc(i *domain.Item) itemDoc {
	doc := itemDoc{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		Status:      string(i.Status),
		OwnerID:     i.OwnerID,
		CreatedAt:   i.CreatedAt.Unix(),
	}
	if i.UpdatedAt != nil {
		doc.UpdatedAt = i.UpdatedAt.Unix()
	}
	return doc
}

func (d itemDoc) toDomain() domain.Item {
	item := domain.Item{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Status:      domain.ItemStatus(d.Status),
		OwnerID:     d.OwnerID,
		CreatedAt:   unixToTime(d.CreatedAt),
	}
	if d.UpdatedAt != 0 {
		t := unixToTime(d.UpdatedAt)
		item.UpdatedAt = &t
	}
	return item
}

func listFilter(filter ports.ListItemsFilter) bson.M {
	query := bson.M{}
	if filter.OwnerID != 0 {
		query["owner_id"] = filter.OwnerID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	return query
}

func (r *ItemRepository) List(ctx context.Context, filter ports.ListItemsFilter) ([]domain.Item, int, error) {
	query := listFilter(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(filter.Skip)).
		SetLimit(int64(filter.Limit))
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer cur.Close(ctx)

	var items []domain.Item
	for cur.Next(ctx) {
		var doc itemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, int(total), cur.Err()
}

func (r *ItemRepository) GetByID(ctx context.Context, id int) (*domain.Item, error) {
	var doc itemDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	item := doc.toDomain()
	return &item, nil
}

func (r *ItemRepository) CountByOwner(ctx context.Context, ownerID int) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("count items by owner: %w", err)
	}
	return int(n), nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	id, err := nextID(ctx, r.db, itemsCollection)
	if err != nil {
		return nil, err
	}

	stored := *item
	stored.ID = id
	if _, err := r.coll.InsertOne(ctx, toItemDoc(&stored)); err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return &stored, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": item.ID}, toItemDoc(item))
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrItemNotFound
	}
	out := *item
	return &out, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
