// Package repository handles all interactions with the store.
//
// Store is one generic CRUD implementation shared by every entity. Each
// mutating call runs in its own transaction and commits before returning.
// Calls run to completion even if the caller's context is cancelled.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Row is the pointer form of a stored entity.
type Row[E any] interface {
	*E
	GetID() int
	TableName() string
}

// Patch changes the fields of a row it carries values for.
type Patch[E any] interface {
	ApplyTo(*E)
}

// Store provides CRUD for one table.
type Store[E any, R Row[E]] struct {
	db    *gorm.DB
	table string
}

// NewStore returns a store for the table backing E.
func NewStore[E any, R Row[E]](db *gorm.DB) *Store[E, R] {
	return &Store[E, R]{
		db:    db,
		table: R(new(E)).TableName(),
	}
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// notFound marks err with the table name; sqlerr.HandleError reads it to
// name the entity in the response.
func (s *Store[E, R]) notFound(err error) error {
	return fmt.Errorf("table:%s: %w", s.table, err)
}

// session binds ctx's values but not its cancellation to the store. A
// transaction cancelled mid-flight makes database/sql discard its
// connection, and with it the whole in-memory database.
func (s *Store[E, R]) session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(context.WithoutCancel(ctx))
}

// List returns every row ordered by primary key.
func (s *Store[E, R]) List(ctx context.Context) ([]E, error) {
	rows := make([]E, 0)
	if err := s.session(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table, err)
	}
	return rows, nil
}

// Get returns the row with the given id.
func (s *Store[E, R]) Get(ctx context.Context, id int) (*E, error) {
	return s.get(s.session(ctx), id)
}

func (s *Store[E, R]) get(tx *gorm.DB, id int) (*E, error) {
	row := new(E)
	if err := tx.First(row, id).Error; err != nil {
		if IsNotFound(err) {
			return nil, s.notFound(err)
		}
		return nil, fmt.Errorf("get %s %d: %w", s.table, id, err)
	}
	return row, nil
}

// Create inserts row and returns it as read back by primary key. A zero
// id is assigned by the store.
func (s *Store[E, R]) Create(ctx context.Context, row *E) (*E, error) {
	var created *E
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.table, err)
		}

		var err error
		created, err = s.get(tx, R(row).GetID())
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies patch to the row with the given id and returns the row
// as read back after the commit.
func (s *Store[E, R]) Update(ctx context.Context, id int, patch Patch[E]) (*E, error) {
	var updated *E
	err := s.session(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.get(tx, id)
		if err != nil {
			return err
		}

		patch.ApplyTo(current)
		if err := tx.Save(current).Error; err != nil {
			return fmt.Errorf("update %s %d: %w", s.table, id, err)
		}

		updated, err = s.get(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the row with the given id.
func (s *Store[E, R]) Delete(ctx context.Context, id int) error {
	return s.session(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.get(tx, id); err != nil {
			return err
		}
		if err := tx.Delete(new(E), id).Error; err != nil {
			return fmt.Errorf("delete %s %d: %w", s.table, id, err)
		}
		return nil
	})
}

// Count returns the number of rows.
func (s *Store[E, R]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.session(ctx).Model(new(E)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table, err)
	}
	return n, nil
}
