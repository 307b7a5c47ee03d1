package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/shop_catalog/internal/catalog"
)

// GormStore is the gorm implementation of catalog.Store for any model E whose
// pointer satisfies catalog.Record.
type GormStore[E any, P interface {
	*E
	catalog.Record
}] struct {
	DB       *gorm.DB
	Preloads []string
}

func NewGormStore[E any, P interface {
	*E
	catalog.Record
}](db *gorm.DB, preloads ...string) *GormStore[E, P] {
	return &GormStore[E, P]{DB: db, Preloads: preloads}
}

func (s *GormStore[E, P]) withPreloads(db *gorm.DB) *gorm.DB {
	for _, p := range s.Preloads {
		db = db.Preload(p)
	}
	return db
}

func (s *GormStore[E, P]) FindByID(ctx context.Context, id uint) (P, error) {
	var rec E
	if err := s.withPreloads(s.DB.WithContext(ctx)).First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return P(&rec), nil
}

func (s *GormStore[E, P]) FindByName(ctx context.Context, name string) (P, error) {
	var rec E
	if err := s.DB.WithContext(ctx).Where("name = ?", name).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return P(&rec), nil
}

func (s *GormStore[E, P]) Insert(ctx context.Context, rec P) error {
	return translate(s.DB.WithContext(ctx).Omit(clause.Associations).Create(rec).Error)
}

func (s *GormStore[E, P]) Update(ctx context.Context, rec P) error {
	return translate(s.DB.WithContext(ctx).Omit(clause.Associations).Save(rec).Error)
}

func (s *GormStore[E, P]) List(ctx context.Context, f catalog.Filter) ([]P, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if !f.IncludeDeleted {
			db = db.Where("deleted_at IS NULL")
		}
		if kw := strings.TrimSpace(f.Keyword); kw != "" {
			db = db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(kw))+"%")
		}
		return db
	}

	var total int64
	if err := s.DB.WithContext(ctx).Model(new(E)).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []E
	if err := s.withPreloads(s.DB.WithContext(ctx)).
		Scopes(scope).
		Order("id ASC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]P, len(rows))
	for i := range rows {
		out[i] = P(&rows[i])
	}
	return out, total, nil
}
