package repository

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"reliefsupply/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryDocumentRepo keeps one resource kind in process memory, in insertion order.
type MemoryDocumentRepo struct {
	Kind models.Kind

	mu    sync.RWMutex
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]models.Document
}

func NewMemoryDocumentRepo(kind models.Kind) *MemoryDocumentRepo {
	return &MemoryDocumentRepo{
		Kind: kind,
		docs: make(map[primitive.ObjectID]models.Document),
	}
}

func (r *MemoryDocumentRepo) Create(_ context.Context, doc models.Document) (*models.InsertAck, error) {
	record, err := insertFields(doc)
	if err != nil {
		return nil, err
	}
	oid := primitive.NewObjectID()
	record[idField] = oid

	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[oid] = record
	r.order = append(r.order, oid)

	return &models.InsertAck{Acknowledged: true, InsertedID: oid.Hex()}, nil
}

func (r *MemoryDocumentRepo) List(_ context.Context) ([]models.Document, error) {
	return r.filter(func(models.Document) bool { return true }), nil
}

func (r *MemoryDocumentRepo) ListBy(_ context.Context, field, value string) ([]models.Document, error) {
	return r.filter(func(doc models.Document) bool {
		v, ok := doc[field].(string)
		return ok && v == value
	}), nil
}

func (r *MemoryDocumentRepo) filter(keep func(models.Document) bool) []models.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Document{}
	for _, oid := range r.order {
		doc := r.docs[oid]
		if keep(doc) {
			out = append(out, copyDocument(doc))
		}
	}
	return out
}

func (r *MemoryDocumentRepo) Get(_ context.Context, id string) (models.Document, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[oid]
	if !ok {
		return nil, nil
	}
	return copyDocument(doc), nil
}

func (r *MemoryDocumentRepo) Update(_ context.Context, id string, patch models.Document) (*models.UpdateAck, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	fields, err := setFields(patch)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ack := &models.UpdateAck{Acknowledged: true}
	doc, ok := r.docs[oid]
	if !ok {
		return ack, nil
	}
	ack.MatchedCount = 1

	changed := false
	for k, v := range fields {
		if old, exists := doc[k]; !exists || !reflect.DeepEqual(old, v) {
			changed = true
		}
		doc[k] = v
	}
	if changed {
		ack.ModifiedCount = 1
	}
	return ack, nil
}

func (r *MemoryDocumentRepo) Delete(_ context.Context, id string) (*models.DeleteAck, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ack := &models.DeleteAck{Acknowledged: true}
	if _, ok := r.docs[oid]; !ok {
		return ack, nil
	}
	delete(r.docs, oid)
	for i, o := range r.order {
		if o == oid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	ack.DeletedCount = 1
	return ack, nil
}

// RankProviders applies the same grouping as the Mongo pipeline in Go.
func (r *MemoryDocumentRepo) RankProviders(ctx context.Context) ([]models.ProviderSummary, error) {
	docs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return rankProviders(docs), nil
}

func rankProviders(docs []models.Document) []models.ProviderSummary {
	index := make(map[string]int)
	out := []models.ProviderSummary{}

	// Non-string provider fields read as "", matching the Mongo pipeline.
	for _, doc := range docs {
		email, _ := doc[models.FieldProviderEmail].(string)
		i, seen := index[email]
		if !seen {
			name, _ := doc[models.FieldProviderName].(string)
			photo, _ := doc[models.FieldProviderPhoto].(string)
			out = append(out, models.ProviderSummary{
				ProviderEmail: email,
				ProviderName:  name,
				ProviderImage: photo,
			})
			i = len(out) - 1
			index[email] = i
		}
		out[i].TotalAmount += numericAmount(doc[models.FieldAmount])
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].TotalAmount != out[b].TotalAmount {
			return out[a].TotalAmount > out[b].TotalAmount
		}
		return out[a].ProviderEmail < out[b].ProviderEmail
	})
	return out
}

// numericAmount counts only numeric values; anything else contributes 0.
func numericAmount(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func copyDocument(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
