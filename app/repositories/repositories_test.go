package repositories_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/app/repositories"
	"github.com/shashiranjanraj/ventas/pkg/database"
	"github.com/shashiranjanraj/ventas/pkg/orm"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Sale{}))
	return db
}

func TestSaleRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewSaleRepository(newDB(t))

	sales, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)

	for _, total := range []float64{10.5, 20, 0} {
		require.NoError(t, repo.Create(ctx, &models.Sale{Seller: "Ana", Customer: "Luis", Payment: "Efectivo", Total: total}))
	}
	assert.ErrorIs(t, repo.Create(ctx, &models.Sale{Seller: "Ana", Customer: "Luis", Payment: "Efectivo", Total: -1}), models.ErrNegativeTotal)

	sales, err = repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Less(t, sales[0].ID, sales[1].ID)
	assert.Less(t, sales[1].ID, sales[2].ID)

	summary, err := repo.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Count)
	assert.InDelta(t, 30.5, summary.Total, 0.001)

	removed, err := repo.Delete(ctx, sales[0].ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, sales[0].ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = repo.Find(ctx, sales[0].ID)
	assert.ErrorIs(t, err, orm.ErrRecordNotFound)

	found, err := repo.Find(ctx, sales[1].ID)
	require.NoError(t, err)
	assert.Equal(t, sales[1].ID, found.ID)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewUserRepository(newDB(t))

	u := &models.User{Name: "Admin", Email: " Admin@Example.com ", Password: "hash", Role: models.RoleAdmin}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "admin@example.com", u.Email)

	found, err := repo.FindByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Admin", byID.Name)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, orm.ErrRecordNotFound)

	err = repo.Create(ctx, &models.User{Name: "X", Email: "x@example.com", Password: "h", Role: "owner"})
	assert.ErrorIs(t, err, models.ErrInvalidRole)

	member := &models.User{Name: "M", Email: "m@example.com", Password: "h"}
	require.NoError(t, repo.Create(ctx, member))
	assert.Equal(t, models.RoleMember, member.Role)
}
