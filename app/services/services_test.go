package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/app/receipts"
	"github.com/shashiranjanraj/ventas/app/repositories"
	"github.com/shashiranjanraj/ventas/app/services"
	"github.com/shashiranjanraj/ventas/database/factories"
	"github.com/shashiranjanraj/ventas/pkg/cache"
	"github.com/shashiranjanraj/ventas/pkg/database"
	"github.com/shashiranjanraj/ventas/pkg/storage"
	"github.com/shashiranjanraj/ventas/pkg/workerpool"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Sale{}))
	return db
}

func TestAttempt(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	svc := services.NewAuthService(repositories.NewUserRepository(db))

	u, err := factories.NewUserFactory(db).Create(ctx, factories.WithEmail("ana@example.com"))
	require.NoError(t, err)

	got, err := svc.Attempt(ctx, "ana@example.com", factories.DefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Attempt(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Attempt(ctx, "nobody@example.com", factories.DefaultPassword)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	resolved, err := svc.Retrieve(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, resolved.AuthID())

	_, err = svc.Retrieve(ctx, u.ID+100)
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := services.NewAuthService(repositories.NewUserRepository(newDB(t)))

	u, err := svc.Register(ctx, "Admin", "admin@example.com", "secret", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
	assert.NotEqual(t, "secret", u.Password)

	_, err = svc.Register(ctx, "Other", "ADMIN@example.com", "secret", models.RoleMember)
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	_, err = svc.Attempt(ctx, "admin@example.com", "secret")
	assert.NoError(t, err)
}

type saleFixture struct {
	db    *gorm.DB
	svc   *services.SaleService
	disk  *storage.LocalDisk
	admin *models.User
	user  *models.User
}

func newSaleFixture(t *testing.T, archive bool) saleFixture {
	t.Helper()
	ctx := context.Background()
	db := newDB(t)

	disk, err := storage.NewLocal(t.TempDir(), "http://localhost/storage")
	require.NoError(t, err)

	svc := services.NewSaleService(
		repositories.NewSaleRepository(db),
		cache.NewMemory(),
		receipts.NewRenderer("Ventas"),
		services.SaleOptions{Archive: archive, Disk: disk},
	)

	users := factories.NewUserFactory(db)
	admin, err := users.Create(ctx, factories.Admin)
	require.NoError(t, err)
	member, err := users.Create(ctx)
	require.NoError(t, err)

	return saleFixture{db: db, svc: svc, disk: disk, admin: admin, user: member}
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t, false)

	sales, err := factories.NewSaleFactory(f.db).CreateMany(ctx, 3)
	require.NoError(t, err)

	listing, err := f.svc.List(ctx, f.admin)
	require.NoError(t, err)
	assert.True(t, listing.IsAdmin)
	require.Len(t, listing.Sales, 3)

	listing, err = f.svc.List(ctx, f.user)
	require.NoError(t, err)
	assert.False(t, listing.IsAdmin)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.user, sales[0].ID), services.ErrForbidden)

	require.NoError(t, f.svc.Delete(ctx, f.admin, sales[0].ID))
	require.NoError(t, f.svc.Delete(ctx, f.admin, sales[0].ID), "deleting twice is a no-op")

	listing, err = f.svc.List(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, listing.Sales, 2)
	for _, s := range listing.Sales {
		assert.NotEqual(t, sales[0].ID, s.ID)
	}
}

func TestSummaryIsCachedUntilDelete(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t, false)

	sales, err := factories.NewSaleFactory(f.db).CreateMany(ctx, 2)
	require.NoError(t, err)

	summary, err := f.svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)

	// Written behind the service's back: the cached value is still served.
	_, err = factories.NewSaleFactory(f.db).Create(ctx)
	require.NoError(t, err)
	summary, err = f.svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)

	require.NoError(t, f.svc.Delete(ctx, f.admin, sales[0].ID))
	summary, err = f.svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, summaryOf(t, f), summary.Total, 0.001)
}

// summaryOf reads the total straight from the repository.
func summaryOf(t *testing.T, f saleFixture) float64 {
	t.Helper()
	s, err := repositories.NewSaleRepository(f.db).Summary(context.Background())
	require.NoError(t, err)
	return s.Total
}

func TestReceipt(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t, true)

	sale, err := factories.NewSaleFactory(f.db).Create(ctx)
	require.NoError(t, err)

	rec, err := f.svc.Receipt(ctx, f.admin, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, receipts.Filename(sale.ID), rec.Filename)
	assert.True(t, bytes.HasPrefix(rec.Content, []byte("%PDF-")))

	archived, err := f.disk.Get(ctx, receipts.ArchivePath(sale.ID))
	require.NoError(t, err)
	assert.Equal(t, rec.Content, archived)

	_, err = f.svc.Receipt(ctx, f.admin, sale.ID+100)
	assert.ErrorIs(t, err, services.ErrSaleNotFound)

	_, err = f.svc.Receipt(ctx, f.user, sale.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestReceiptArchivedInBackground(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t, true)

	pool := workerpool.New(1)
	svc := services.NewSaleService(
		repositories.NewSaleRepository(f.db),
		cache.NewMemory(),
		receipts.NewRenderer("Ventas"),
		services.SaleOptions{Archive: true, Disk: f.disk, Archiver: pool},
	)

	sale, err := factories.NewSaleFactory(f.db).Create(ctx)
	require.NoError(t, err)

	rec, err := svc.Receipt(ctx, f.admin, sale.ID)
	require.NoError(t, err)

	require.NoError(t, pool.Shutdown(ctx))
	archived, err := f.disk.Get(ctx, receipts.ArchivePath(sale.ID))
	require.NoError(t, err)
	assert.Equal(t, rec.Content, archived)
}
