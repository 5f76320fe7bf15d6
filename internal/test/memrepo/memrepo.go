// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo is an internal helper for the test packages.
// It provides an in-memory reification of the repo.Pool, repo.Conn,
// repo.Tx, and repo.FoodItems interfaces, so use cases and REST
// resources may be tested without a PostgreSQL server.
// Transactions are emulated by taking a snapshot of the stored items
// and restoring it if the transaction handler fails.
package memrepo

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/momeni/fastfood/pkg/core/model"
	"github.com/momeni/fastfood/pkg/core/repo"
)

// ErrRawSQL is returned by Exec and Query methods because the
// in-memory store does not interpret SQL statements.
var ErrRawSQL = errors.New("raw SQL is not supported by memrepo")

// Store keeps the food items in memory. Its zero value is not usable;
// use the NewStore function.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.FoodItem

	// BeforeUpdate, if not nil, is called by the Update query right
	// before the stored version is compared with the expected one.
	// Tests may use it to delete or modify the item meanwhile,
	// emulating a concurrent request.
	BeforeUpdate func(s *Store, fi *model.FoodItem)
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{nextID: 1, items: make(map[int64]model.FoodItem)}
}

// Seed stores copies of the given items as new items (assigning them
// IDs and the first version) and returns the stored items.
func (s *Store) Seed(items ...model.FoodItem) []model.FoodItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]model.FoodItem, 0, len(items))
	for _, fi := range items {
		stored = append(stored, s.insert(fi))
	}
	return stored
}

// Remove deletes the id item (if it exists).
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Touch increases the version of the id item (if it exists), just like
// an update which was saved by another request.
func (s *Store) Touch(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fi, ok := s.items[id]; ok {
		fi.Version++
		s.items[id] = fi
	}
}

// Items returns a copy of all stored items ordered by their IDs.
func (s *Store) Items() []model.FoodItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted()
}

// PricePlaces matches the scale of the price column.
const PricePlaces = 2

func (s *Store) insert(fi model.FoodItem) model.FoodItem {
	fi.ID = s.nextID
	fi.Version = 1
	fi.Price = fi.Price.Round(PricePlaces)
	s.nextID++
	s.items[fi.ID] = fi
	return fi
}

func (s *Store) sorted() []model.FoodItem {
	items := make([]model.FoodItem, 0, len(s.items))
	for _, fi := range s.items {
		items = append(items, fi)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items
}

func (s *Store) snapshot() (int64, map[int64]model.FoodItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make(map[int64]model.FoodItem, len(s.items))
	for id, fi := range s.items {
		items[id] = fi
	}
	return s.nextID, items
}

func (s *Store) restore(nextID int64, items map[int64]model.FoodItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID, s.items = nextID, items
}

// Pool implements repo.Pool over a Store.
type Pool struct {
	Store *Store

	// Closed reports whether Close was called.
	Closed bool
}

// NewPool creates a Pool with a fresh empty Store.
func NewPool() *Pool {
	return &Pool{Store: NewStore()}
}

func (p *Pool) Conn(ctx context.Context, handler repo.ConnHandler) error {
	return handler(ctx, &Conn{store: p.Store})
}

func (p *Pool) Close() error {
	p.Closed = true
	return nil
}

// Conn implements repo.Conn over a Store.
type Conn struct {
	store *Store
}

func (c *Conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	nextID, items := c.store.snapshot()
	if err := handler(ctx, &Tx{store: c.store}); err != nil {
		c.store.restore(nextID, items)
		return err
	}
	return nil
}

func (c *Conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (c *Conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

func (c *Conn) IsConn() {
}

// Tx implements repo.Tx over a Store.
type Tx struct {
	store *Store
}

func (tx *Tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (tx *Tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

func (tx *Tx) IsTx() {
}

// Repo implements repo.FoodItems for the memrepo connections and
// transactions.
type Repo struct {
}

// New instantiates a food items Repo.
func New() *Repo {
	return &Repo{}
}

func (r *Repo) Conn(c repo.Conn) repo.FoodItemsConnQueryer {
	return queryer{store: c.(*Conn).store}
}

func (r *Repo) Tx(tx repo.Tx) repo.FoodItemsTxQueryer {
	return queryer{store: tx.(*Tx).store}
}

type queryer struct {
	store *Store
}

func (q queryer) List(context.Context) ([]model.FoodItem, error) {
	return q.store.Items(), nil
}

func (q queryer) Get(_ context.Context, id int64) (*model.FoodItem, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	fi, ok := q.store.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &fi, nil
}

func (q queryer) Create(_ context.Context, fi *model.FoodItem) (*model.FoodItem, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	stored := q.store.insert(*fi)
	return &stored, nil
}

func (q queryer) Update(_ context.Context, fi *model.FoodItem) (*model.FoodItem, error) {
	if h := q.store.BeforeUpdate; h != nil {
		h(q.store, fi)
	}
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	stored, ok := q.store.items[fi.ID]
	if !ok || stored.Version != fi.Version {
		return nil, repo.ErrConcurrentUpdate
	}
	stored.CopyMutable(fi)
	stored.Price = stored.Price.Round(PricePlaces)
	stored.Version++
	q.store.items[fi.ID] = stored
	return &stored, nil
}

func (q queryer) Delete(_ context.Context, id int64) error {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	if _, ok := q.store.items[id]; !ok {
		return repo.ErrNotFound
	}
	delete(q.store.items, id)
	return nil
}

func (q queryer) Exists(_ context.Context, id int64) (bool, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	_, ok := q.store.items[id]
	return ok, nil
}

func (q queryer) FoodTypes(context.Context) ([]string, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	seen := make(map[string]bool)
	types := make([]string, 0)
	for _, fi := range q.store.sorted() {
		if !seen[fi.FoodType] {
			seen[fi.FoodType] = true
			types = append(types, fi.FoodType)
		}
	}
	sort.Strings(types)
	return types, nil
}

func (q queryer) HasFoodType(_ context.Context, foodType string) (bool, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	for _, fi := range q.store.items {
		if fi.FoodType == foodType {
			return true, nil
		}
	}
	return false, nil
}
