package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Products live in the "items" collection.
const (
	productsCollection = "items"
	reviewsCollection  = "reviews"
	usersCollection    = "users"
	ordersCollection   = "orders"
)

// Stores bundles the four collection handles the service works with.
type Stores struct {
	Products ProductStore
	Reviews  ReviewStore
	Users    UserStore
	Orders   OrderStore
}

func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

func NewMongo(db *mongo.Database) Stores {
	return Stores{
		Products: &mongoProducts{c: db.Collection(productsCollection)},
		Reviews:  &mongoReviews{c: db.Collection(reviewsCollection)},
		Users:    &mongoUsers{c: db.Collection(usersCollection)},
		Orders:   &mongoOrders{c: db.Collection(ordersCollection)},
	}
}

func oid(id string) (primitive.ObjectID, error) {
	v, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return v, nil
}

func hexID(v interface{}) string {
	if id, ok := v.(primitive.ObjectID); ok {
		return id.Hex()
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func toUpdateResult(res *mongo.UpdateResult) *UpdateResult {
	return &UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedID:    hexID(res.UpsertedID),
	}
}

func findAll(ctx context.Context, c *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]Document, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	docs := []Document{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ----- products -----

type mongoProducts struct {
	c *mongo.Collection
}

func (s *mongoProducts) List(ctx context.Context) ([]Document, error) {
	// Newest first: ObjectIDs embed the insertion timestamp.
	return findAll(ctx, s.c, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
}

func (s *mongoProducts) Insert(ctx context.Context, doc Document) (*InsertResult, error) {
	res, err := s.c.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &InsertResult{InsertedID: hexID(res.InsertedID)}, nil
}

func (s *mongoProducts) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return nil, err
	}
	return &DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func (s *mongoProducts) SetStock(ctx context.Context, id string, value int64) (*UpdateResult, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"stock": value}})
	if err != nil {
		return nil, err
	}
	return toUpdateResult(res), nil
}

func (s *mongoProducts) SetStockSold(ctx context.Context, id string, stock, sold int64) (*UpdateResult, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"stock": stock, "sold": sold}})
	if err != nil {
		return nil, err
	}
	return toUpdateResult(res), nil
}

// ----- reviews -----

type mongoReviews struct {
	c *mongo.Collection
}

func (s *mongoReviews) List(ctx context.Context) ([]Document, error) {
	return findAll(ctx, s.c, bson.M{})
}

func (s *mongoReviews) Insert(ctx context.Context, doc Document) (*InsertResult, error) {
	res, err := s.c.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &InsertResult{InsertedID: hexID(res.InsertedID)}, nil
}

// ----- users -----

type mongoUsers struct {
	c *mongo.Collection
}

func (s *mongoUsers) List(ctx context.Context) ([]Document, error) {
	return findAll(ctx, s.c, bson.M{})
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (Document, error) {
	var doc Document
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *mongoUsers) Upsert(ctx context.Context, email string, doc Document) (*UpdateResult, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return toUpdateResult(res), nil
}

func (s *mongoUsers) SetRole(ctx context.Context, email, role string) (*UpdateResult, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return nil, err
	}
	return toUpdateResult(res), nil
}

// ----- orders -----

type mongoOrders struct {
	c *mongo.Collection
}

func (s *mongoOrders) List(ctx context.Context) ([]Document, error) {
	return findAll(ctx, s.c, bson.M{})
}

func (s *mongoOrders) ListByEmail(ctx context.Context, email string) ([]Document, error) {
	return findAll(ctx, s.c, bson.M{"customerEmail": email})
}

func (s *mongoOrders) Get(ctx context.Context, id string) (Document, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var doc Document
	err = s.c.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *mongoOrders) Insert(ctx context.Context, doc Document) (*InsertResult, error) {
	res, err := s.c.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &InsertResult{InsertedID: hexID(res.InsertedID)}, nil
}

func (s *mongoOrders) SetPayment(ctx context.Context, id string, fields Document) (*UpdateResult, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": fields}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return toUpdateResult(res), nil
}

func (s *mongoOrders) SetStatus(ctx context.Context, id, status string) (*UpdateResult, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return nil, err
	}
	return toUpdateResult(res), nil
}

func (s *mongoOrders) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return nil, err
	}
	return &DeleteResult{DeletedCount: res.DeletedCount}, nil
}
