package repo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/catalog"
	"github.com/Skotchmaster/shop_catalog/internal/models"
	"github.com/Skotchmaster/shop_catalog/internal/storage"
	"github.com/Skotchmaster/shop_catalog/internal/testutil"
)

type RepoSuite struct {
	suite.Suite
	db         *gorm.DB
	categories *GormStore[models.Category, *models.Category]
	products   *GormStore[models.Product, *models.Product]
	users      *UserRepo
	carts      *CartRepo
	ctx        context.Context
	now        time.Time
}

func (s *RepoSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	s.categories = NewGormStore[models.Category](s.db)
	s.products = NewGormStore[models.Product](s.db, "Category", "Brand")
	s.users = &UserRepo{DB: s.db}
	s.carts = &CartRepo{DB: s.db}
	s.ctx = context.Background()
	s.now = time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
}

func (s *RepoSuite) category(name string) *models.Category {
	c := &models.Category{Name: name}
	c.Touch(s.now)
	s.Require().NoError(s.categories.Insert(s.ctx, c))
	return c
}

func (s *RepoSuite) TestFindByIDAndName() {
	c := s.category("Tools")

	got, err := s.categories.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Tools", got.Name)

	got, err = s.categories.FindByName(s.ctx, "Tools")
	s.Require().NoError(err)
	s.Equal(c.ID, got.ID)

	_, err = s.categories.FindByID(s.ctx, 999)
	s.ErrorIs(err, storage.ErrNotFound)

	_, err = s.categories.FindByName(s.ctx, "tools")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *RepoSuite) TestInsertDuplicateName() {
	s.category("Tools")

	dup := &models.Category{Name: "Tools"}
	dup.Touch(s.now)
	err := s.categories.Insert(s.ctx, dup)
	s.ErrorIs(err, storage.ErrDuplicate)
}

func (s *RepoSuite) TestListKeywordDeletedAndOrder() {
	for _, n := range []string{"Power Tools", "Garden", "hand tools", "100%_cotton"} {
		s.category(n)
	}
	power, err := s.categories.FindByName(s.ctx, "Power Tools")
	s.Require().NoError(err)
	deletedAt := s.now.Add(time.Hour)
	power.DeletedAt = &deletedAt
	s.Require().NoError(s.categories.Update(s.ctx, power))

	rows, total, err := s.categories.List(s.ctx, catalog.Filter{Keyword: "TOOLS", Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(rows, 1)
	s.Equal("hand tools", rows[0].Name)

	rows, total, err = s.categories.List(s.ctx, catalog.Filter{Keyword: "tools", IncludeDeleted: true, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Less(rows[0].ID, rows[1].ID)

	// wildcards in the keyword are literal
	rows, _, err = s.categories.List(s.ctx, catalog.Filter{Keyword: "%_c", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("100%_cotton", rows[0].Name)

	rows, total, err = s.categories.List(s.ctx, catalog.Filter{Offset: 2, Limit: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(rows, 1)
}

func (s *RepoSuite) TestProductPreloadsRefs() {
	c := s.category("Tools")
	b := &models.Brand{Name: "Acme"}
	b.Touch(s.now)
	s.Require().NoError(s.db.Create(b).Error)

	p := &models.Product{Name: "Hammer", Price: 100, Stock: 3, CategoryID: c.ID, BrandID: b.ID}
	p.Touch(s.now)
	s.Require().NoError(s.products.Insert(s.ctx, p))

	got, err := s.products.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.Category)
	s.Require().NotNil(got.Brand)
	s.Equal("Tools", got.Category.Name)
	s.Equal("Acme", got.Brand.Name)
}

func (s *RepoSuite) TestUsers() {
	u := &models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"}
	s.Require().NoError(s.users.Create(s.ctx, u))

	ok, err := s.users.UserExists(s.ctx, u.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.users.UserExists(s.ctx, u.ID+1)
	s.Require().NoError(err)
	s.False(ok)

	got, err := s.users.FindByEmail(s.ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal("ada", got.Username)

	_, err = s.users.FindByUsername(s.ctx, "bob")
	s.ErrorIs(err, storage.ErrNotFound)

	err = s.users.Create(s.ctx, &models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"})
	s.ErrorIs(err, storage.ErrDuplicate)
}

func (s *RepoSuite) TestCartLines() {
	c := s.category("Tools")
	b := &models.Brand{Name: "Acme"}
	b.Touch(s.now)
	s.Require().NoError(s.db.Create(b).Error)
	p := &models.Product{Name: "Hammer", Price: 100, Stock: 3, CategoryID: c.ID, BrandID: b.ID}
	p.Touch(s.now)
	s.Require().NoError(s.products.Insert(s.ctx, p))
	u := &models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"}
	s.Require().NoError(s.users.Create(s.ctx, u))

	_, err := s.carts.FindLine(s.ctx, u.ID, p.ID)
	s.ErrorIs(err, storage.ErrNotFound)

	line := &models.CartLine{UserID: u.ID, ProductID: p.ID, Quantity: 1, CreatedAt: s.now, UpdatedAt: s.now}
	s.Require().NoError(s.carts.InsertLine(s.ctx, line))

	line.Quantity = 3
	line.UpdatedAt = s.now.Add(time.Minute)
	s.Require().NoError(s.carts.UpdateLine(s.ctx, line))

	dup := &models.CartLine{UserID: u.ID, ProductID: p.ID, Quantity: 1, CreatedAt: s.now, UpdatedAt: s.now}
	s.ErrorIs(s.carts.InsertLine(s.ctx, dup), storage.ErrDuplicate)

	lines, total, err := s.carts.ListLines(s.ctx, u.ID, 0, 10)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(lines, 1)
	s.Equal(int64(3), lines[0].Quantity)
	s.Require().NotNil(lines[0].Product)
	s.Require().NotNil(lines[0].Product.Category)
	s.Equal("Tools", lines[0].Product.Category.Name)
	s.Equal("Acme", lines[0].Product.Brand.Name)
}

func TestRepoSuite(t *testing.T) {
	suite.Run(t, new(RepoSuite))
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestGormStore_StoreFailureSurfacesAsInternal(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE "categories"."id" = $1`)).
		WillReturnError(errors.New("connection reset by peer"))

	engine := catalog.NewEngine[*models.Category](NewGormStore[models.Category](db), catalog.Errors{
		NotFound: apperr.ErrCategoryNotFound,
	})
	_, err := engine.SoftDelete(context.Background(), 1)

	require.ErrorIs(t, err, apperr.ErrStore)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_PostgresUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "categories"`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	c := &models.Category{Name: "Tools"}
	c.Touch(time.Now())
	err := NewGormStore[models.Category](db).Insert(context.Background(), c)

	require.ErrorIs(t, err, storage.ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
