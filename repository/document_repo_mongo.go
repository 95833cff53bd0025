package repository

import (
	"context"
	"errors"

	"reliefsupply/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDocumentRepo serves one resource kind from its own collection.
type MongoDocumentRepo struct {
	Kind models.Kind
	Coll *mongo.Collection
}

func NewMongoDocumentRepo(db *mongo.Database, kind models.Kind) *MongoDocumentRepo {
	return &MongoDocumentRepo{Kind: kind, Coll: db.Collection(kind.Collection)}
}

func (r *MongoDocumentRepo) Create(ctx context.Context, doc models.Document) (*models.InsertAck, error) {
	record, err := insertFields(doc)
	if err != nil {
		return nil, err
	}
	oid := primitive.NewObjectID()
	record[idField] = oid

	if _, err := r.Coll.InsertOne(ctx, record); err != nil {
		return nil, err
	}
	return &models.InsertAck{Acknowledged: true, InsertedID: oid.Hex()}, nil
}

func (r *MongoDocumentRepo) List(ctx context.Context) ([]models.Document, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoDocumentRepo) ListBy(ctx context.Context, field, value string) ([]models.Document, error) {
	return r.find(ctx, bson.M{field: value})
}

func (r *MongoDocumentRepo) find(ctx context.Context, filter bson.M) ([]models.Document, error) {
	cur, err := r.Coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Document{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoDocumentRepo) Get(ctx context.Context, id string) (models.Document, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc models.Document
	err = r.Coll.FindOne(ctx, bson.M{idField: oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

func (r *MongoDocumentRepo) Update(ctx context.Context, id string, patch models.Document) (*models.UpdateAck, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	fields, err := setFields(patch)
	if err != nil {
		return nil, err
	}

	res, err := r.Coll.UpdateOne(ctx, bson.M{idField: oid}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	return &models.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (r *MongoDocumentRepo) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	res, err := r.Coll.DeleteOne(ctx, bson.M{idField: oid})
	if err != nil {
		return nil, err
	}
	return &models.DeleteAck{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// RankProviders groups the collection by provider email and sums amounts server side.
func (r *MongoDocumentRepo) RankProviders(ctx context.Context) ([]models.ProviderSummary, error) {
	cur, err := r.Coll.Aggregate(ctx, providerRankingPipeline())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.ProviderSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// providerRankingPipeline: $sum skips missing and non-numeric amounts, $first keeps
// the first name/photo seen in natural order. Non-string provider fields read as "".
func providerRankingPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: stringOrEmpty(models.FieldProviderEmail)},
			{Key: "providerName", Value: bson.D{{Key: "$first", Value: stringOrEmpty(models.FieldProviderName)}}},
			{Key: "providerImage", Value: bson.D{{Key: "$first", Value: stringOrEmpty(models.FieldProviderPhoto)}}},
			{Key: "totalAmount", Value: bson.D{{Key: "$sum", Value: "$" + models.FieldAmount}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "totalAmount", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "providerEmail", Value: "$_id"},
			{Key: "providerName", Value: 1},
			{Key: "providerImage", Value: 1},
			{Key: "totalAmount", Value: 1},
		}}},
	}
}

// stringOrEmpty yields the field when it holds a string and "" otherwise.
func stringOrEmpty(field string) bson.D {
	return bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{bson.D{{Key: "$type", Value: "$" + field}}, "string"}}},
		"$" + field,
		"",
	}}}
}
