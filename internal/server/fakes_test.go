package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pcforge-backend/internal/auth"
	"pcforge-backend/internal/server"
	"pcforge-backend/internal/store"
)

// In-memory stand-ins for the mongo-backed stores. They honor the same
// contracts (newest-first product listing, ErrNotFound, upsert semantics)
// so handler tests run against the real router without a database.

type fakeProducts struct {
	docs []store.Document
	seq  int
}

func (f *fakeProducts) nextID() string {
	f.seq++
	return fmt.Sprintf("prod-%03d", f.seq)
}

func (f *fakeProducts) find(id string) store.Document {
	for _, d := range f.docs {
		if d["_id"] == id {
			return d
		}
	}
	return nil
}

func (f *fakeProducts) List(ctx context.Context) ([]store.Document, error) {
	out := make([]store.Document, 0, len(f.docs))
	for i := len(f.docs) - 1; i >= 0; i-- {
		out = append(out, f.docs[i])
	}
	return out, nil
}

func (f *fakeProducts) Insert(ctx context.Context, doc store.Document) (*store.InsertResult, error) {
	id := f.nextID()
	doc["_id"] = id
	f.docs = append(f.docs, doc)
	return &store.InsertResult{InsertedID: id}, nil
}

func (f *fakeProducts) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	for i, d := range f.docs {
		if d["_id"] == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return &store.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &store.DeleteResult{DeletedCount: 0}, nil
}

func (f *fakeProducts) SetStock(ctx context.Context, id string, value int64) (*store.UpdateResult, error) {
	doc := f.find(id)
	if doc == nil {
		return &store.UpdateResult{}, nil
	}
	doc["stock"] = value
	return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeProducts) SetStockSold(ctx context.Context, id string, stock, sold int64) (*store.UpdateResult, error) {
	doc := f.find(id)
	if doc == nil {
		return &store.UpdateResult{}, nil
	}
	doc["stock"] = stock
	doc["sold"] = sold
	return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

type fakeReviews struct {
	docs []store.Document
	seq  int
}

func (f *fakeReviews) List(ctx context.Context) ([]store.Document, error) {
	return append([]store.Document{}, f.docs...), nil
}

func (f *fakeReviews) Insert(ctx context.Context, doc store.Document) (*store.InsertResult, error) {
	f.seq++
	id := fmt.Sprintf("rev-%03d", f.seq)
	doc["_id"] = id
	f.docs = append(f.docs, doc)
	return &store.InsertResult{InsertedID: id}, nil
}

type fakeUsers struct {
	byEmail map[string]store.Document
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]store.Document{}}
}

func (f *fakeUsers) List(ctx context.Context) ([]store.Document, error) {
	out := []store.Document{}
	for _, d := range f.byEmail {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (store.Document, error) {
	doc, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return doc, nil
}

func (f *fakeUsers) Upsert(ctx context.Context, email string, doc store.Document) (*store.UpdateResult, error) {
	_, existed := f.byEmail[email]
	f.byEmail[email] = doc
	if existed {
		return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return &store.UpdateResult{UpsertedID: "user-" + email}, nil
}

func (f *fakeUsers) SetRole(ctx context.Context, email, role string) (*store.UpdateResult, error) {
	doc, ok := f.byEmail[email]
	if !ok {
		return &store.UpdateResult{}, nil
	}
	doc["role"] = role
	return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

type fakeOrders struct {
	docs []store.Document
	seq  int
}

func (f *fakeOrders) find(id string) store.Document {
	for _, d := range f.docs {
		if d["_id"] == id {
			return d
		}
	}
	return nil
}

func (f *fakeOrders) List(ctx context.Context) ([]store.Document, error) {
	return append([]store.Document{}, f.docs...), nil
}

func (f *fakeOrders) ListByEmail(ctx context.Context, email string) ([]store.Document, error) {
	out := []store.Document{}
	for _, d := range f.docs {
		if d["customerEmail"] == email {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeOrders) Get(ctx context.Context, id string) (store.Document, error) {
	if doc := f.find(id); doc != nil {
		return doc, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeOrders) Insert(ctx context.Context, doc store.Document) (*store.InsertResult, error) {
	f.seq++
	id := fmt.Sprintf("order-%03d", f.seq)
	doc["_id"] = id
	f.docs = append(f.docs, doc)
	return &store.InsertResult{InsertedID: id}, nil
}

func (f *fakeOrders) SetPayment(ctx context.Context, id string, fields store.Document) (*store.UpdateResult, error) {
	if doc := f.find(id); doc != nil {
		for k, v := range fields {
			doc[k] = v
		}
		return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	doc := store.Document{"_id": id}
	for k, v := range fields {
		doc[k] = v
	}
	f.docs = append(f.docs, doc)
	return &store.UpdateResult{UpsertedID: id}, nil
}

func (f *fakeOrders) SetStatus(ctx context.Context, id, status string) (*store.UpdateResult, error) {
	if doc := f.find(id); doc != nil {
		doc["status"] = status
		return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return &store.UpdateResult{}, nil
}

func (f *fakeOrders) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	for i, d := range f.docs {
		if d["_id"] == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return &store.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &store.DeleteResult{DeletedCount: 0}, nil
}

type fakePayments struct {
	amount   int64
	currency string
	calls    int
}

func (f *fakePayments) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	f.calls++
	f.amount = amount
	f.currency = currency
	return "pi_test_secret", nil
}

// env wires the real router to the fakes.
type env struct {
	router   *gin.Engine
	tokens   *auth.Manager
	products *fakeProducts
	reviews  *fakeReviews
	users    *fakeUsers
	orders   *fakeOrders
	payments *fakePayments
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{
		tokens:   auth.NewManager("test-secret"),
		products: &fakeProducts{},
		reviews:  &fakeReviews{},
		users:    newFakeUsers(),
		orders:   &fakeOrders{},
		payments: &fakePayments{},
	}
	srv := server.New(server.Deps{
		Stores: store.Stores{
			Products: e.products,
			Reviews:  e.reviews,
			Users:    e.users,
			Orders:   e.orders,
		},
		Tokens:   e.tokens,
		Payments: e.payments,
	})
	e.router = srv.Router()
	return e
}

func (e *env) tokenFor(t *testing.T, email string) string {
	t.Helper()
	tok, err := e.tokens.Issue(email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func (e *env) seedAdmin(email string) {
	e.users.byEmail[email] = store.Document{"email": email, "role": "admin"}
}

func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
