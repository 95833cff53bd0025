package repository

import (
	"context"
	"testing"

	"reliefsupply/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newDocumentRepo returns an empty store for kind.
type newDocumentRepo func(t *testing.T, kind models.Kind) SupplyRepository

// newUserRepo returns an empty user store.
type newUserRepo func(t *testing.T) UserRepository

// testDocumentRepository runs the behaviour every document backend must share.
func testDocumentRepository(t *testing.T, newRepo newDocumentRepo) {
	t.Run("create then get returns a superset", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.SupplyKind)

		payload := models.Document{
			"title":  "Rice",
			"amount": 10.0,
			"meta":   map[string]interface{}{"unit": "kg"},
		}
		ack, err := repo.Create(ctx, payload)
		require.NoError(t, err)
		assert.True(t, ack.Acknowledged)
		require.Len(t, ack.InsertedID, 24)

		got, err := repo.Get(ctx, ack.InsertedID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Rice", got["title"])
		assert.Equal(t, 10.0, got["amount"])
		assert.EqualValues(t, map[string]interface{}{"unit": "kg"}, got["meta"])
		assert.Equal(t, ack.InsertedID, got["_id"].(primitive.ObjectID).Hex())
	})

	t.Run("create ignores caller id", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.VolunteerKind)

		ack, err := repo.Create(ctx, models.Document{"_id": "mine", "name": "Ana"})
		require.NoError(t, err)
		assert.NotEqual(t, "mine", ack.InsertedID)

		got, err := repo.Get(ctx, ack.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, "Ana", got["name"])
	})

	t.Run("update merges fields", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.SupplyKind)

		ack, err := repo.Create(ctx, models.Document{"title": "Rice", "amount": 10.0})
		require.NoError(t, err)

		upd, err := repo.Update(ctx, ack.InsertedID, models.Document{"amount": 25.0, "unit": "kg"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), upd.MatchedCount)
		assert.Equal(t, int64(1), upd.ModifiedCount)

		got, err := repo.Get(ctx, ack.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, 25.0, got["amount"])
		assert.Equal(t, "kg", got["unit"])
		assert.Equal(t, "Rice", got["title"])
	})

	t.Run("update with same values modifies nothing", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.SupplyKind)

		ack, err := repo.Create(ctx, models.Document{"title": "Rice"})
		require.NoError(t, err)

		upd, err := repo.Update(ctx, ack.InsertedID, models.Document{"title": "Rice"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), upd.MatchedCount)
		assert.Equal(t, int64(0), upd.ModifiedCount)
	})

	t.Run("update of missing id matches nothing", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.SupplyKind)

		upd, err := repo.Update(ctx, primitive.NewObjectID().Hex(), models.Document{"title": "x"})
		require.NoError(t, err)
		assert.True(t, upd.Acknowledged)
		assert.Equal(t, int64(0), upd.MatchedCount)

		_, err = repo.Update(ctx, primitive.NewObjectID().Hex(), models.Document{"_id": "x"})
		assert.ErrorIs(t, err, ErrEmptyUpdate)
	})

	t.Run("operator and path field names are rejected", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.SupplyKind)

		ack, err := repo.Create(ctx, models.Document{"title": "Rice"})
		require.NoError(t, err)

		_, err = repo.Update(ctx, ack.InsertedID, models.Document{"meta.unit": "kg"})
		assert.ErrorIs(t, err, ErrInvalidField)
		_, err = repo.Update(ctx, ack.InsertedID, models.Document{"$inc": 1})
		assert.ErrorIs(t, err, ErrInvalidField)
		_, err = repo.Create(ctx, models.Document{"$where": "1"})
		assert.ErrorIs(t, err, ErrInvalidField)

		got, err := repo.Get(ctx, ack.InsertedID)
		require.NoError(t, err)
		assert.NotContains(t, got, "meta.unit")
		assert.NotContains(t, got, "meta")
	})

	t.Run("get of unknown id is nil", func(t *testing.T) {
		got, err := newRepo(t, models.GratitudeKind).Get(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete twice", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.TestimonialKind)

		ack, err := repo.Create(ctx, models.Document{"quote": "thanks"})
		require.NoError(t, err)

		del, err := repo.Delete(ctx, ack.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), del.DeletedCount)

		got, err := repo.Get(ctx, ack.InsertedID)
		require.NoError(t, err)
		assert.Nil(t, got)

		del, err = repo.Delete(ctx, ack.InsertedID)
		require.NoError(t, err)
		assert.True(t, del.Acknowledged)
		assert.Equal(t, int64(0), del.DeletedCount)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("invalid id", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.SupplyKind)

		_, err := repo.Get(ctx, "not-an-id")
		assert.ErrorIs(t, err, ErrInvalidID)
		_, err = repo.Update(ctx, "123", models.Document{"a": 1})
		assert.ErrorIs(t, err, ErrInvalidID)
		_, err = repo.Delete(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("list by supply id", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.GratitudeKind)

		for _, d := range []models.Document{
			{"supplyId": "s1", "text": "one"},
			{"supplyId": "s2", "text": "two"},
			{"supplyId": "s1", "text": "three"},
			{"text": "orphan"},
			{"supplyId": 1.0, "text": "numeric"},
		} {
			_, err := repo.Create(ctx, d)
			require.NoError(t, err)
		}

		got, err := repo.ListBy(ctx, models.FieldSupplyID, "s1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		texts := []interface{}{got[0]["text"], got[1]["text"]}
		assert.ElementsMatch(t, []interface{}{"one", "three"}, texts)

		none, err := repo.ListBy(ctx, models.FieldSupplyID, "missing")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("rank providers", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.SupplyKind)

		for _, d := range []models.Document{
			{"providerEmail": "a", "providerName": "Alice", "providerPhoto": "a.png", "amount": 10.0},
			{"providerEmail": "a", "providerName": "Alice B", "amount": 5.0},
			{"providerEmail": "b", "providerName": "Bob", "providerPhoto": "b.png", "amount": 20.0},
		} {
			_, err := repo.Create(ctx, d)
			require.NoError(t, err)
		}

		got, err := repo.RankProviders(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.ProviderSummary{
			{ProviderEmail: "b", ProviderName: "Bob", ProviderImage: "b.png", TotalAmount: 20},
			{ProviderEmail: "a", ProviderName: "Alice", ProviderImage: "a.png", TotalAmount: 15},
		}, got)
	})

	t.Run("rank providers with non-string provider fields", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.SupplyKind)

		for _, d := range []models.Document{
			{"providerEmail": 42.0, "providerName": map[string]interface{}{"first": "x"}, "amount": 5.0},
			{"providerEmail": "", "amount": 1.0},
			{"providerEmail": "a", "providerName": "A", "providerPhoto": 7.0, "amount": 2.0},
			{"amount": "lots"},
		} {
			_, err := repo.Create(ctx, d)
			require.NoError(t, err)
		}

		got, err := repo.RankProviders(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.ProviderSummary{
			{ProviderEmail: "", ProviderName: "", ProviderImage: "", TotalAmount: 6},
			{ProviderEmail: "a", ProviderName: "A", ProviderImage: "", TotalAmount: 2},
		}, got)
	})

	t.Run("rank providers ties order by email", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, models.SupplyKind)

		for _, email := range []string{"c", "a", "b"} {
			_, err := repo.Create(ctx, models.Document{"providerEmail": email, "amount": 3.0})
			require.NoError(t, err)
		}

		got, err := repo.RankProviders(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ProviderEmail, got[1].ProviderEmail, got[2].ProviderEmail})
	})

	t.Run("rank providers on empty collection", func(t *testing.T) {
		got, err := newRepo(t, models.SupplyKind).RankProviders(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

// testUserRepository runs the behaviour every user backend must share.
func testUserRepository(t *testing.T, newRepo newUserRepo) {
	t.Run("create and find by email", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		missing, err := repo.GetUserByEmail(ctx, "a@example.org")
		require.NoError(t, err)
		assert.Nil(t, missing)

		user := &models.AppUser{Name: "A", Email: "a@example.org", Password: "hash", Photo: "a.png"}
		require.NoError(t, repo.CreateUser(ctx, user))
		assert.False(t, user.ID.IsZero())
		assert.False(t, user.CreatedAt.IsZero())

		got, err := repo.GetUserByEmail(ctx, "a@example.org")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "hash", got.Password)
		assert.Equal(t, "a.png", got.Photo)
	})

	t.Run("duplicate email", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		require.NoError(t, repo.CreateUser(ctx, &models.AppUser{Name: "A", Email: "dup@example.org", Password: "x"}))
		err := repo.CreateUser(ctx, &models.AppUser{Name: "B", Email: "dup@example.org", Password: "y"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestMemoryDocumentRepo_Behaviour(t *testing.T) {
	testDocumentRepository(t, func(_ *testing.T, kind models.Kind) SupplyRepository {
		return NewMemoryDocumentRepo(kind)
	})
}

func TestMemoryUserRepo_Behaviour(t *testing.T) {
	testUserRepository(t, func(_ *testing.T) UserRepository {
		return NewMemoryUserRepo()
	})
}
