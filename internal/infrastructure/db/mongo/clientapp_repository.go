package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starterkit/webapi/internal/core/domain"
)

const clientAppsCollection = "client_apps"

type ClientAppRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewClientAppRepository(db *mongo.Database) *ClientAppRepository {
	return &ClientAppRepository{db: db, coll: db.Collection(clientAppsCollection)}
}

type clientAppDoc struct {
	ID            int    `bson:"_id"`
	AppID         string `bson:"app_id"`
	AppSecretHash string `bson:"app_secret_hash"`
	Name          string `bson:"name"`
	Description   string `bson:"description,omitempty"`
	IsActive      bool   `bson:"is_active"`
	CreatedAt     int64  `bson:"created_at"`
	UpdatedAt     int64  `bson:"updated_at,omitempty"`
}

func toClientAppDoc(a *domain.ClientApp) clientAppDoc {
	doc := clientAppDoc{
		ID:            a.ID,
		AppID:         a.AppID,
		AppSecretHash: a.AppSecretHash,
		Name:          a.Name,
		Description:   a.Description,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt.Unix(),
	}
	if a.UpdatedAt != nil {
		doc.UpdatedAt = a.UpdatedAt.Unix()
	}
	return doc
}

func (d clientAppDoc) toDomain() domain.ClientApp {
	app := domain.ClientApp{
		ID:            d.ID,
		AppID:         d.AppID,
		AppSecretHash: d.AppSecretHash,
		Name:          d.Name,
		Description:   d.Description,
		IsActive:      d.IsActive,
		CreatedAt:     unixToTime(d.CreatedAt),
	}
	if d.UpdatedAt != 0 {
		t := unixToTime(d.UpdatedAt)
		app.UpdatedAt = &t
	}
	return app
}

func (r *ClientAppRepository) List(ctx context.Context, skip, limit int) ([]domain.ClientApp, int, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count client apps: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list client apps: %w", err)
	}
	defer cur.Close(ctx)

	var apps []domain.ClientApp
	for cur.Next(ctx) {
		var doc clientAppDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode client app: %w", err)
		}
		apps = append(apps, doc.toDomain())
	}
	return apps, int(total), cur.Err()
}

func (r *ClientAppRepository) GetByID(ctx context.Context, id int) (*domain.ClientApp, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ClientAppRepository) GetByAppID(ctx context.Context, appID string) (*domain.ClientApp, error) {
	return r.findOne(ctx, bson.M{"app_id": appID})
}

func (r *ClientAppRepository) GetByName(ctx context.Context, name string) (*domain.ClientApp, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *ClientAppRepository) findOne(ctx context.Context, filter bson.M) (*domain.ClientApp, error) {
	var doc clientAppDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientAppNotFound
		}
		return nil, fmt.Errorf("find client app: %w", err)
	}
	app := doc.toDomain()
	return &app, nil
}

func (r *ClientAppRepository) Create(ctx context.Context, app *domain.ClientApp) (*domain.ClientApp, error) {
	id, err := nextID(ctx, r.db, clientAppsCollection)
	if err != nil {
		return nil, err
	}

	stored := *app
	stored.ID = id
	if _, err := r.coll.InsertOne(ctx, toClientAppDoc(&stored)); err != nil {
		return nil, fmt.Errorf("insert client app: %w", err)
	}
	return &stored, nil
}

func (r *ClientAppRepository) Update(ctx context.Context, app *domain.ClientApp) (*domain.ClientApp, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": app.ID}, toClientAppDoc(app))
	if err != nil {
		return nil, fmt.Errorf("update client app: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrClientAppNotFound
	}
	out := *app
	return &out, nil
}

func (r *ClientAppRepository) Delete(ctx context.Context, id int) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete client app: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientAppNotFound
	}
	return nil
}
