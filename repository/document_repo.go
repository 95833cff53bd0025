package repository

import (
	"context"
	"fmt"
	"strings"

	"reliefsupply/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentRepository is the CRUD contract shared by every resource kind.
type DocumentRepository interface {
	Create(ctx context.Context, doc models.Document) (*models.InsertAck, error)
	List(ctx context.Context) ([]models.Document, error)
	// ListBy returns the documents whose top-level field equals value.
	ListBy(ctx context.Context, field, value string) ([]models.Document, error)
	// Get returns nil, nil when id is well formed but matches nothing.
	Get(ctx context.Context, id string) (models.Document, error)
	Update(ctx context.Context, id string, patch models.Document) (*models.UpdateAck, error)
	Delete(ctx context.Context, id string) (*models.DeleteAck, error)
}

// ProviderRanker ranks supply providers by their summed contributions.
type ProviderRanker interface {
	RankProviders(ctx context.Context) ([]models.ProviderSummary, error)
}

// SupplyRepository is the supply collection: CRUD plus the provider ranking.
type SupplyRepository interface {
	DocumentRepository
	ProviderRanker
}

const idField = "_id"

// ParseID converts a path id into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q must be a 24 character hex string", ErrInvalidID, id)
	}
	return oid, nil
}

// withoutID copies doc, dropping any caller supplied _id.
func withoutID(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		if k == idField {
			continue
		}
		out[k] = v
	}
	return out
}

// checkFieldNames rejects names Mongo would treat as operators or paths,
// so both backends store exactly the keys they were given.
func checkFieldNames(doc models.Document) error {
	for k := range doc {
		if k == "" || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			return fmt.Errorf("%w: %q", ErrInvalidField, k)
		}
	}
	return nil
}

// insertFields returns the stored body for a new document.
func insertFields(doc models.Document) (models.Document, error) {
	fields := withoutID(doc)
	if err := checkFieldNames(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// setFields returns the $set body for patch.
func setFields(patch models.Document) (models.Document, error) {
	fields := withoutID(patch)
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}
	if err := checkFieldNames(fields); err != nil {
		return nil, err
	}
	return fields, nil
}
