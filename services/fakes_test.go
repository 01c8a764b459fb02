package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"encuentros/db"
	"encuentros/models"
)

type memFriendship struct {
	id         int64
	relationID int64
	a, b       int64
}

type memState struct {
	nextID      int64
	relations   map[int64]db.RelationRecord
	targets     map[int64]int64
	friendships map[[2]int64]memFriendship
}

func (s memState) clone() memState {
	c := memState{
		nextID:      s.nextID,
		relations:   make(map[int64]db.RelationRecord, len(s.relations)),
		targets:     make(map[int64]int64, len(s.targets)),
		friendships: make(map[[2]int64]memFriendship, len(s.friendships)),
	}
	for k, v := range s.relations {
		c.relations[k] = v
	}
	for k, v := range s.targets {
		c.targets[k] = v
	}
	for k, v := range s.friendships {
		c.friendships[k] = v
	}
	return c
}

func pairKey(a, b int64) [2]int64 {
	low, high := models.OrderedPair(a, b)
	return [2]int64{low, high}
}

// memStore is an in-memory RelationshipStore. Uniqueness rules mirror the database
// indexes and fail with db.ErrDuplicate.
type memStore struct {
	mu    sync.Mutex
	state memState
	now   time.Time

	// duplicateOnce makes the next InsertRequest fail as if a concurrent transaction
	// had inserted first; commitConcurrent then runs after the rollback.
	duplicateOnce    bool
	commitConcurrent []func(*memState)
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{}.clone(),
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *memStore) snapshot() memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *memStore) restore(st memState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	for _, fn := range s.commitConcurrent {
		fn(&s.state)
	}
	s.commitConcurrent = nil
}

func (s *memStore) pendingLocked(origin, target int64) *int64 {
	for id, rel := range s.state.relations {
		if rel.OriginUserID == origin && rel.State == models.RelationPending && s.state.targets[id] == target {
			id := id
			return &id
		}
	}
	return nil
}

func (s *memStore) addRelationLocked(st *memState, origin, target int64, state models.RelationState) int64 {
	st.nextID++
	id := st.nextID
	rel := db.RelationRecord{ID: id, OriginUserID: origin, State: state, RequestedAt: s.tick()}
	if state == models.RelationAccepted {
		at := s.tick()
		rel.AcceptedAt = &at
	}
	st.relations[id] = rel
	st.targets[id] = target
	return id
}

// seedPending inserts a pending relation outside of any transaction.
func (s *memStore) seedPending(origin, target int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addRelationLocked(&s.state, origin, target, models.RelationPending)
}

func (s *memStore) LockPair(uow *db.UnitOfWork, a, b int64) error {
	return nil
}

func (s *memStore) InsertRequest(uow *db.UnitOfWork, origin, target int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.duplicateOnce {
		s.duplicateOnce = false
		return 0, fmt.Errorf("%w: injected", db.ErrDuplicate)
	}
	if s.pendingLocked(origin, target) != nil {
		return 0, fmt.Errorf("%w: pending %d:%d", db.ErrDuplicate, origin, target)
	}
	return s.addRelationLocked(&s.state, origin, target, models.RelationPending), nil
}

func (s *memStore) FindPending(uow *db.UnitOfWork, origin, target int64) (*int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingLocked(origin, target), nil
}

func (s *memStore) FindPendingReverse(uow *db.UnitOfWork, origin, target int64) (*int64, error) {
	return s.FindPending(uow, target, origin)
}

func (s *memStore) FindFriendship(uow *db.UnitOfWork, a, b int64) (*int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.state.friendships[pairKey(a, b)]
	if !ok {
		return nil, nil
	}
	return &f.id, nil
}

func (s *memStore) InsertFriendship(uow *db.UnitOfWork, relationID, a, b int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(a, b)
	if _, ok := s.state.friendships[key]; ok {
		return 0, fmt.Errorf("%w: friendship %v", db.ErrDuplicate, key)
	}
	s.state.nextID++
	s.state.friendships[key] = memFriendship{id: s.state.nextID, relationID: relationID, a: a, b: b}
	return s.state.nextID, nil
}

func (s *memStore) LoadRelation(uow *db.UnitOfWork, id int64) (db.RelationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel, ok := s.state.relations[id]
	if !ok {
		return db.RelationRecord{}, db.ErrNotFound
	}
	return rel, nil
}

// LockRelation is LoadRelation: memTx already serializes transactions.
func (s *memStore) LockRelation(uow *db.UnitOfWork, id int64) (db.RelationRecord, error) {
	return s.LoadRelation(uow, id)
}

func (s *memStore) LoadRequestTarget(uow *db.UnitOfWork, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.state.targets[id]
	if !ok {
		return 0, db.ErrNotFound
	}
	return target, nil
}

func (s *memStore) MarkAccepted(uow *db.UnitOfWork, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel, ok := s.state.relations[id]
	if !ok {
		return db.ErrNotFound
	}
	rel.State = models.RelationAccepted
	rel.AcceptedAt = &at
	s.state.relations[id] = rel
	return nil
}

func (s *memStore) DeleteRelationAndRequest(uow *db.UnitOfWork, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.relations[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.state.relations, id)
	delete(s.state.targets, id)
	return nil
}

func (s *memStore) ListFriends(uow *db.UnitOfWork, user int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	edges := make([]memFriendship, 0)
	for _, f := range s.state.friendships {
		if f.a == user || f.b == user {
			edges = append(edges, f)
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].id > edges[j].id })
	friends := make([]int64, 0, len(edges))
	for _, f := range edges {
		if f.a == user {
			friends = append(friends, f.b)
		} else {
			friends = append(friends, f.a)
		}
	}
	return friends, nil
}

func (s *memStore) ListPendingForTarget(uow *db.UnitOfWork, user int64) ([]db.PendingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]db.PendingRecord, 0)
	for id, rel := range s.state.relations {
		if rel.State == models.RelationPending && s.state.targets[id] == user {
			rows = append(rows, db.PendingRecord{RelationID: id, OriginUserID: rel.OriginUserID, RequestedAt: rel.RequestedAt})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RelationID > rows[j].RelationID })
	return rows, nil
}

func (s *memStore) listAccepted(match func(id int64, rel db.RelationRecord) (int64, bool)) []db.AcceptedRecord {
	rows := make([]db.AcceptedRecord, 0)
	for id, rel := range s.state.relations {
		if rel.State != models.RelationAccepted {
			continue
		}
		if other, ok := match(id, rel); ok {
			rows = append(rows, db.AcceptedRecord{RelationID: id, OtherUserID: other, AcceptedAt: *rel.AcceptedAt})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AcceptedAt.After(rows[j].AcceptedAt) })
	return rows
}

func (s *memStore) ListAcceptedOriginatedBy(uow *db.UnitOfWork, user int64) ([]db.AcceptedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listAccepted(func(id int64, rel db.RelationRecord) (int64, bool) {
		return s.state.targets[id], rel.OriginUserID == user
	}), nil
}

func (s *memStore) ListAcceptedTargetedAt(uow *db.UnitOfWork, user int64) ([]db.AcceptedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listAccepted(func(id int64, rel db.RelationRecord) (int64, bool) {
		return rel.OriginUserID, s.state.targets[id] == user
	}), nil
}

func (s *memStore) CountPendingForTarget(uow *db.UnitOfWork, user int64) (int64, error) {
	rows, _ := s.ListPendingForTarget(uow, user)
	return int64(len(rows)), nil
}

func (s *memStore) counts() (relations, requests, friendships int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.relations), len(s.state.targets), len(s.state.friendships)
}

func (s *memStore) relation(id int64) (db.RelationRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel, ok := s.state.relations[id]
	return rel, ok
}

// memTx serializes transactions and rolls the store back when fn fails.
type memTx struct {
	mu    sync.Mutex
	store *memStore
	runs  int
}

func (t *memTx) Transaction(ctx context.Context, fn func(uow *db.UnitOfWork) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.runs++
	snap := t.store.snapshot()
	if err := fn(db.NewUnitOfWork(ctx, nil)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

func (t *memTx) Read(ctx context.Context) *db.UnitOfWork {
	return db.NewUnitOfWork(ctx, nil)
}

type recordingCounter struct {
	mu     sync.Mutex
	deltas map[int64]int64
	values map[int64]int64
	getErr error
}

func newRecordingCounter() *recordingCounter {
	return &recordingCounter{deltas: map[int64]int64{}, values: map[int64]int64{}}
}

func (c *recordingCounter) Adjust(_ context.Context, userID int64, delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deltas[userID] += delta
	if v, ok := c.values[userID]; ok {
		c.values[userID] = v + delta
	}
}

func (c *recordingCounter) Get(_ context.Context, userID int64) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return 0, false, c.getErr
	}
	v, ok := c.values[userID]
	return v, ok, nil
}

func (c *recordingCounter) Set(_ context.Context, userID int64, value int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[userID] = value
	return nil
}

func (c *recordingCounter) CachedUsers(context.Context) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	users := make([]int64, 0, len(c.values))
	for id := range c.values {
		users = append(users, id)
	}
	return users, nil
}

func (c *recordingCounter) delta(userID int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deltas[userID]
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []FriendshipEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event FriendshipEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type stubDirectory struct {
	profiles map[int64]models.UserProfile
	found    []models.UserProfile
	err      error
}

func (d *stubDirectory) Profiles(_ context.Context, ids []int64) (map[int64]models.UserProfile, error) {
	if d.err != nil {
		return nil, d.err
	}
	out := make(map[int64]models.UserProfile, len(ids))
	for _, id := range ids {
		if p, ok := d.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (d *stubDirectory) SearchByName(_ context.Context, _ string, _ int) ([]models.UserProfile, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.found, nil
}

type fixture struct {
	store     *memStore
	tx        *memTx
	counter   *recordingCounter
	publisher *recordingPublisher
	requests  *FriendRequestService
	query     *FriendshipQuery
}

func newFixture() *fixture {
	store := newMemStore()
	tx := &memTx{store: store}
	counter := newRecordingCounter()
	publisher := &recordingPublisher{}
	requests := NewFriendRequestService(tx, store, counter, publisher, 3)
	requests.now = func() time.Time {
		store.mu.Lock()
		defer store.mu.Unlock()
		return store.tick()
	}
	return &fixture{
		store:     store,
		tx:        tx,
		counter:   counter,
		publisher: publisher,
		requests:  requests,
		query:     NewFriendshipQuery(store),
	}
}

func (f *fixture) status(a, b int64) FriendshipStatus {
	st, err := f.query.Status(f.tx.Read(context.Background()), a, b)
	if err != nil {
		panic(err)
	}
	return st
}
