package services

import (
	"context"
	"sort"
	"sync"

	"bikerental/internal/domain"
	"bikerental/internal/domain/models"
	"bikerental/internal/repositories"
)

// memDB is an in-memory stand-in for MySQL. Per-bike mutexes play the role of
// SELECT ... FOR UPDATE.
type memDB struct {
	mu           sync.Mutex
	nextID       domain.ID
	bikes        map[domain.ID]models.Bike
	reservations map[domain.ID]models.Reservation
	users        map[domain.ID]models.User
	locks        map[domain.ID]*sync.Mutex
	lockCalls    int
}

func newMemDB() *memDB {
	return &memDB{
		bikes:        map[domain.ID]models.Bike{},
		reservations: map[domain.ID]models.Reservation{},
		users:        map[domain.ID]models.User{},
		locks:        map[domain.ID]*sync.Mutex{},
	}
}

func (m *memDB) id() domain.ID {
	m.nextID++
	return m.nextID
}

func (m *memDB) addBike(b models.Bike) models.Bike {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.id()
	m.bikes[b.ID] = b
	return b
}

func (m *memDB) addReservation(r models.Reservation) models.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.id()
	m.reservations[r.ID] = r
	return r
}

func (m *memDB) reservationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reservations)
}

func (m *memDB) bike(id domain.ID) models.Bike {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bikes[id]
}

type memBikes struct{ db *memDB }

func (s memBikes) List(ctx context.Context) ([]models.Bike, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.Bike{}
	for _, b := range s.db.bikes {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memBikes) ListAvailable(ctx context.Context, rng domain.DateRange) ([]models.Bike, error) {
	all, _ := s.List(ctx)
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.Bike{}
	for _, b := range all {
		if !b.Available {
			continue
		}
		free := true
		for _, r := range s.db.reservations {
			if r.BikeID == b.ID && domain.Overlaps(r.Range(), rng) {
				free = false
				break
			}
		}
		if free {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s memBikes) GetByID(ctx context.Context, id domain.ID) (models.Bike, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	b, ok := s.db.bikes[id]
	if !ok {
		return models.Bike{}, domain.NotFoundError{Resource: "bike"}
	}
	return b, nil
}

func (s memBikes) Create(ctx context.Context, b models.Bike) (models.Bike, error) {
	return s.db.addBike(b), nil
}

func (s memBikes) Update(ctx context.Context, id domain.ID, u models.BikeUpdate) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	b, ok := s.db.bikes[id]
	if !ok {
		return domain.NotFoundError{Resource: "bike"}
	}
	s.db.bikes[id] = u.Apply(b)
	return nil
}

func (s memBikes) Delete(ctx context.Context, id domain.ID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.bikes[id]; !ok {
		return domain.NotFoundError{Resource: "bike"}
	}
	delete(s.db.bikes, id)
	for rid, r := range s.db.reservations {
		if r.BikeID == id {
			delete(s.db.reservations, rid)
		}
	}
	return nil
}

type memReservations struct{ db *memDB }

func (s memReservations) GetByID(ctx context.Context, id domain.ID) (models.Reservation, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r, ok := s.db.reservations[id]
	if !ok {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
	}
	return r, nil
}

func (s memReservations) Delete(ctx context.Context, id domain.ID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.reservations[id]; !ok {
		return domain.NotFoundError{Resource: "reservation"}
	}
	delete(s.db.reservations, id)
	return nil
}

func (s memReservations) byUser(userID domain.ID) []models.Reservation {
	out := []models.Reservation{}
	for _, r := range s.db.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s memReservations) ListByUser(ctx context.Context, userID domain.ID) ([]models.Reservation, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := s.byUser(userID)
	for i := range out {
		b := s.db.bikes[out[i].BikeID]
		out[i].Bike = &b
	}
	return out, nil
}

func (s memReservations) ListRentalsByUser(ctx context.Context, userID domain.ID) ([]models.RentalRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.RentalRecord{}
	for _, r := range s.byUser(userID) {
		b := s.db.bikes[r.BikeID]
		out = append(out, models.RentalRecord{BikeID: b.ID, Model: b.Model, Color: b.Color, FromDate: r.FromDate, ToDate: r.ToDate})
	}
	return out, nil
}

func (s memReservations) ListRentersByBike(ctx context.Context, bikeID domain.ID) ([]models.RenterRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.RenterRecord{}
	for _, r := range s.db.reservations {
		if r.BikeID == bikeID {
			out = append(out, models.RenterRecord{Username: s.db.users[r.UserID].Username, FromDate: r.FromDate, ToDate: r.ToDate})
		}
	}
	return out, nil
}

type memUsers struct{ db *memDB }

func (s memUsers) List(ctx context.Context) ([]models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.User{}
	for _, u := range s.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s memUsers) GetByID(ctx context.Context, id domain.ID) (models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

func (s memUsers) GetByUsername(ctx context.Context, username string) (models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

func (s memUsers) Create(ctx context.Context, u models.User) (models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.users {
		if existing.Username == u.Username {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "username already in use"}
		}
	}
	u.ID = s.db.id()
	s.db.users[u.ID] = u
	return u, nil
}

func (s memUsers) Update(ctx context.Context, id domain.ID, username, passwordHash, role string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	if username != "" {
		u.Username = username
	}
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}
	if role != "" {
		u.Role = role
	}
	s.db.users[id] = u
	return nil
}

func (s memUsers) Delete(ctx context.Context, id domain.ID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[id]; !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	delete(s.db.users, id)
	for rid, r := range s.db.reservations {
		if r.UserID == id {
			delete(s.db.reservations, rid)
		}
	}
	return nil
}

type memLedger struct{ db *memDB }

func (l memLedger) WithBikeLock(ctx context.Context, bikeID domain.ID, fn func(tx repositories.LedgerTx) error) error {
	l.db.mu.Lock()
	l.db.lockCalls++
	lock, ok := l.db.locks[bikeID]
	if !ok {
		lock = &sync.Mutex{}
		l.db.locks[bikeID] = lock
	}
	l.db.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	bike, err := memBikes{l.db}.GetByID(ctx, bikeID)
	if err != nil {
		return err
	}
	return fn(memTx{db: l.db, bike: bike})
}

type memTx struct {
	db   *memDB
	bike models.Bike
}

func (t memTx) Bike() models.Bike { return t.bike }

func (t memTx) ReservedRanges(ctx context.Context) ([]domain.DateRange, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	out := []domain.DateRange{}
	for _, r := range t.db.reservations {
		if r.BikeID == t.bike.ID {
			out = append(out, r.Range())
		}
	}
	return out, nil
}

func (t memTx) InsertReservation(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	res.BikeID = t.bike.ID
	return t.db.addReservation(res), nil
}

func (t memTx) SetReservationRating(ctx context.Context, reservationID domain.ID, rating int) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	r, ok := t.db.reservations[reservationID]
	if !ok {
		return domain.NotFoundError{Resource: "reservation"}
	}
	r.Rating = rating
	t.db.reservations[reservationID] = r
	return nil
}

func (t memTx) BikeRatings(ctx context.Context) ([]int, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	out := []int{}
	for _, r := range t.db.reservations {
		if r.BikeID == t.bike.ID {
			out = append(out, r.Rating)
		}
	}
	return out, nil
}

func (t memTx) SetBikeRating(ctx context.Context, rating float64) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	b := t.db.bikes[t.bike.ID]
	b.Rating = rating
	t.db.bikes[t.bike.ID] = b
	return nil
}

func day(s string) domain.Date { return domain.MustParseDate(s) }
