// Package memory is a process-local store used for development runs and tests.
// Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository"
)

// Store holds every collection behind one lock, so batches are atomic.
type Store struct {
	mu     sync.RWMutex
	nextID int
	docs   map[string]map[string]any
}

func NewStore() *Store {
	return &Store{docs: make(map[string]map[string]any)}
}

func (s *Store) allocateLocked(collection string) string {
	s.nextID++
	return collection + "-" + strconv.Itoa(s.nextID)
}

func (s *Store) putLocked(collection, id string, record any) {
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]any)
	}
	s.docs[collection][id] = record
}

// QueryFirst implements repository.SeedStore.
func (s *Store) QueryFirst(ctx context.Context, collection string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.Classify(repository.ErrUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, limit)
	for id := range s.docs[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// AllocateID implements repository.SeedStore.
func (s *Store) AllocateID(collection string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocateLocked(collection)
}

// BatchWrite implements repository.SeedStore with create semantics.
func (s *Store) BatchWrite(ctx context.Context, writes []repository.Write) error {
	if err := ctx.Err(); err != nil {
		return repository.Classify(repository.ErrUnavailable, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		if _, ok := s.docs[w.Collection][w.ID]; ok {
			return repository.ErrAlreadyExists
		}
	}
	for _, w := range writes {
		s.putLocked(w.Collection, w.ID, copyRecord(w.Record))
	}
	return nil
}

// copyRecord stores values, not the caller's pointers.
func copyRecord(record any) any {
	switch r := record.(type) {
	case *domain.Category:
		c := *r
		return &c
	case *domain.Equipment:
		e := *r
		return &e
	case *domain.SeedMarker:
		m := *r
		return &m
	default:
		return record
	}
}

func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s} }

func (s *Store) Equipment() repository.EquipmentRepository { return &equipmentRepo{s} }

func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

func (s *Store) WorkoutHistory() repository.WorkoutHistoryRepository { return &historyRepo{s} }

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(_ context.Context, category *domain.Category) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *category
	c.ID = r.s.allocateLocked(repository.CategoriesCollection)
	r.s.putLocked(repository.CategoriesCollection, c.ID, &c)
	category.ID = c.ID
	return c.ID, nil
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.docs[repository.CategoriesCollection][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *rec.(*domain.Category)
	return &c, nil
}

func (r *categoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Category, 0, len(r.s.docs[repository.CategoriesCollection]))
	for _, rec := range r.s.docs[repository.CategoriesCollection] {
		out = append(out, *rec.(*domain.Category))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *categoryRepo) Update(_ context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.docs[repository.CategoriesCollection][category.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *category
	r.s.putLocked(repository.CategoriesCollection, c.ID, &c)
	return nil
}

func (r *categoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.docs[repository.CategoriesCollection][id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.docs[repository.CategoriesCollection], id)
	return nil
}

type equipmentRepo struct{ s *Store }

func (r *equipmentRepo) Create(_ context.Context, equipment *domain.Equipment) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e := *equipment
	e.ID = r.s.allocateLocked(repository.EquipmentCollection)
	r.s.putLocked(repository.EquipmentCollection, e.ID, &e)
	equipment.ID = e.ID
	return e.ID, nil
}

func (r *equipmentRepo) GetByID(_ context.Context, id string) (*domain.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.docs[repository.EquipmentCollection][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e := *rec.(*domain.Equipment)
	return &e, nil
}

func (r *equipmentRepo) filter(match func(*domain.Equipment) bool) []domain.Equipment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Equipment, 0)
	for _, rec := range r.s.docs[repository.EquipmentCollection] {
		if e := rec.(*domain.Equipment); match(e) {
			out = append(out, *e)
		}
	}
	return out
}

func (r *equipmentRepo) List(_ context.Context) ([]domain.Equipment, error) {
	return r.filter(func(*domain.Equipment) bool { return true }), nil
}

func (r *equipmentRepo) ListByCategory(_ context.Context, categoryID string) ([]domain.Equipment, error) {
	return r.filter(func(e *domain.Equipment) bool { return e.CategoryID == categoryID }), nil
}

func (r *equipmentRepo) Update(_ context.Context, equipment *domain.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.docs[repository.EquipmentCollection][equipment.ID]; !ok {
		return repository.ErrNotFound
	}
	e := *equipment
	r.s.putLocked(repository.EquipmentCollection, e.ID, &e)
	return nil
}

func (r *equipmentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.docs[repository.EquipmentCollection][id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.docs[repository.EquipmentCollection], id)
	return nil
}

func (r *equipmentRepo) RenameCategory(_ context.Context, categoryID, name string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, rec := range r.s.docs[repository.EquipmentCollection] {
		if e := rec.(*domain.Equipment); e.CategoryID == categoryID {
			e.CategoryName = name
			n++
		}
	}
	return n, nil
}

func (r *equipmentRepo) DeleteByCategory(_ context.Context, categoryID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, rec := range r.s.docs[repository.EquipmentCollection] {
		if rec.(*domain.Equipment).CategoryID == categoryID {
			delete(r.s.docs[repository.EquipmentCollection], id)
			n++
		}
	}
	return n, nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *domain.User) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.docs[repository.UsersCollection] {
		if strings.EqualFold(rec.(*domain.User).Email, user.Email) {
			return "", repository.ErrAlreadyExists
		}
	}
	u := *user
	u.ID = r.s.allocateLocked(repository.UsersCollection)
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.putLocked(repository.UsersCollection, u.ID, &u)
	user.ID, user.CreatedAt, user.UpdatedAt = u.ID, now, now
	return u.ID, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.docs[repository.UsersCollection] {
		if u := rec.(*domain.User); strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.docs[repository.UsersCollection][id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := *rec.(*domain.User)
	return &u, nil
}

// SetRole changes a user's role, the way an operator edits the store directly.
func (s *Store) SetRole(userID string, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.docs[repository.UsersCollection][userID]
	if !ok {
		return repository.ErrNotFound
	}
	rec.(*domain.User).Role = role
	return nil
}

type historyRepo struct{ s *Store }

func (r *historyRepo) Create(_ context.Context, session *domain.WorkoutSession) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ws := *session
	ws.Sets = append([]domain.SetData(nil), session.Sets...)
	ws.ID = r.s.allocateLocked(repository.WorkoutHistoryCollection)
	r.s.putLocked(repository.WorkoutHistoryCollection, ws.ID, &ws)
	session.ID = ws.ID
	return ws.ID, nil
}

func (r *historyRepo) ListByUser(_ context.Context, userID string) ([]domain.WorkoutSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.WorkoutSession, 0)
	for _, rec := range r.s.docs[repository.WorkoutHistoryCollection] {
		if ws := rec.(*domain.WorkoutSession); ws.UserID == userID {
			out = append(out, *ws)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt == out[j].CreatedAt {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}
