package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// Documents are open schema: clients decide what a product, review, user or
// order looks like beyond the handful of fields the server itself touches.
type Document = bson.M

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid document id")
)

// Write acknowledgments. Driver result shapes never leave the store layer;
// callers get these minimal counts instead.

type InsertResult struct {
	InsertedID string `json:"insertedId"`
}

type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

type ProductStore interface {
	// List returns all products, newest first.
	List(ctx context.Context) ([]Document, error)
	Insert(ctx context.Context, doc Document) (*InsertResult, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
	// SetStock overwrites the stock field with an absolute value.
	SetStock(ctx context.Context, id string, value int64) (*UpdateResult, error)
	// SetStockSold overwrites stock and sold together, as order placement
	// and cancellation do.
	SetStockSold(ctx context.Context, id string, stock, sold int64) (*UpdateResult, error)
}

type ReviewStore interface {
	List(ctx context.Context) ([]Document, error)
	Insert(ctx context.Context, doc Document) (*InsertResult, error)
}

type UserStore interface {
	List(ctx context.Context) ([]Document, error)
	// FindByEmail returns ErrNotFound when no user document matches.
	FindByEmail(ctx context.Context, email string) (Document, error)
	// Upsert replaces the fields of the user matching email, inserting
	// the document when absent.
	Upsert(ctx context.Context, email string, doc Document) (*UpdateResult, error)
	SetRole(ctx context.Context, email, role string) (*UpdateResult, error)
}

type OrderStore interface {
	List(ctx context.Context) ([]Document, error)
	ListByEmail(ctx context.Context, email string) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	Insert(ctx context.Context, doc Document) (*InsertResult, error)
	// SetPayment upserts status, paymentStatus and transactionID on the
	// order with the given id.
	SetPayment(ctx context.Context, id string, fields Document) (*UpdateResult, error)
	SetStatus(ctx context.Context, id, status string) (*UpdateResult, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}
