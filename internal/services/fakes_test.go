package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/drivent/hotel-booking/internal/database"
	"github.com/drivent/hotel-booking/internal/models"
	"github.com/sirupsen/logrus"
)

var errStoreDown = errors.New("connection refused")

// memStore is an in-memory stand-in for the relational store. The capacity
// aware writers hold the mutex for the whole check and write.
type memStore struct {
	mu          sync.Mutex
	rooms       map[int]models.Room
	bookings    []models.Booking
	enrollments map[int]models.Enrollment // by user id
	tickets     map[int]models.Ticket     // by enrollment id
	hotels      []models.Hotel
	nextID      int
	clock       time.Time
	err         error
}

func newMemStore() *memStore {
	return &memStore{
		rooms:       map[int]models.Room{},
		enrollments: map[int]models.Enrollment{},
		tickets:     map[int]models.Ticket{},
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) addRoom(id, hotelID, capacity int) {
	m.rooms[id] = models.Room{ID: id, Name: "Room", Capacity: capacity, HotelID: hotelID}
}

func (m *memStore) addBookings(userID, roomID, n int) {
	for i := 0; i < n; i++ {
		m.insert(userID, roomID)
	}
}

// addUser gives the user an enrollment and a ticket of the given shape
func (m *memStore) addUser(userID int, status models.TicketStatus, includesHotel, isRemote bool) {
	enrollmentID := userID + 1000
	m.enrollments[userID] = models.Enrollment{ID: enrollmentID, UserID: userID}
	m.tickets[enrollmentID] = models.Ticket{
		ID:           userID + 2000,
		EnrollmentID: enrollmentID,
		Status:       status,
		TicketType:   models.TicketType{IncludesHotel: includesHotel, IsRemote: isRemote},
	}
}

func (m *memStore) insert(userID, roomID int) models.Booking {
	m.nextID++
	m.clock = m.clock.Add(time.Second)
	b := models.Booking{ID: m.nextID, UserID: userID, RoomID: roomID, CreatedAt: m.clock, UpdatedAt: m.clock}
	m.bookings = append(m.bookings, b)
	return b
}

func (m *memStore) countLocked(roomID, excludeID int) int {
	n := 0
	for _, b := range m.bookings {
		if b.RoomID == roomID && b.ID != excludeID {
			n++
		}
	}
	return n
}

func (m *memStore) updateLocked(bookingID, roomID int) (*models.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == bookingID {
			m.clock = m.clock.Add(time.Second)
			m.bookings[i].RoomID = roomID
			m.bookings[i].UpdatedAt = m.clock
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, database.ErrBookingNotFound
}

func (m *memStore) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type memBookingStore struct{ *memStore }

func (s memBookingStore) Create(ctx context.Context, userID, roomID int) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	b := s.insert(userID, roomID)
	return &b, nil
}

func (s memBookingStore) CreateWithinCapacity(ctx context.Context, userID, roomID int) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, database.ErrRoomNotFound
	}
	if s.countLocked(roomID, 0) >= room.Capacity {
		return nil, database.ErrRoomFull
	}
	b := s.insert(userID, roomID)
	return &b, nil
}

func (s memBookingStore) FindByUserID(ctx context.Context, userID int) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for i := len(s.bookings) - 1; i >= 0; i-- {
		if s.bookings[i].UserID == userID {
			b := s.bookings[i]
			room := s.rooms[b.RoomID]
			b.Room = &room
			return &b, nil
		}
	}
	return nil, nil
}

func (s memBookingStore) FindByID(ctx context.Context, bookingID int) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, b := range s.bookings {
		if b.ID == bookingID {
			return &b, nil
		}
	}
	return nil, nil
}

func (s memBookingStore) CountByRoomID(ctx context.Context, roomID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return s.countLocked(roomID, 0), nil
}

func (s memBookingStore) UpdateRoom(ctx context.Context, bookingID, roomID int) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.updateLocked(bookingID, roomID)
}

func (s memBookingStore) UpdateRoomWithinCapacity(ctx context.Context, bookingID, roomID int) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, database.ErrRoomNotFound
	}
	if s.countLocked(roomID, bookingID) >= room.Capacity {
		return nil, database.ErrRoomFull
	}
	return s.updateLocked(bookingID, roomID)
}

type memRoomStore struct{ *memStore }

func (s memRoomStore) FindByID(ctx context.Context, roomID int) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, nil
	}
	return &room, nil
}

func (s memRoomStore) ListByHotelID(ctx context.Context, hotelID int) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	rooms := []models.Room{}
	for _, room := range s.rooms {
		if room.HotelID == hotelID {
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

type memEnrollmentStore struct{ *memStore }

func (s memEnrollmentStore) FindByUserID(ctx context.Context, userID int) (*models.Enrollment, error) {
	if s.err != nil {
		return nil, s.err
	}
	enrollment, ok := s.enrollments[userID]
	if !ok {
		return nil, nil
	}
	return &enrollment, nil
}

type memTicketStore struct{ *memStore }

func (s memTicketStore) FindByEnrollmentID(ctx context.Context, enrollmentID int) (*models.Ticket, error) {
	if s.err != nil {
		return nil, s.err
	}
	ticket, ok := s.tickets[enrollmentID]
	if !ok {
		return nil, nil
	}
	return &ticket, nil
}

type memHotelStore struct {
	*memStore
	calls int
}

func (s *memHotelStore) List(ctx context.Context) ([]models.Hotel, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.hotels, nil
}

func newTestEligibility(m *memStore) *EligibilityService {
	return NewEligibilityService(memEnrollmentStore{m}, memTicketStore{m})
}

func newTestBookingService(m *memStore, mode string) *BookingService {
	bookings := memBookingStore{m}
	return NewBookingService(
		bookings,
		NewRoomCapacityService(memRoomStore{m}, bookings),
		newTestEligibility(m),
		mode,
		testLogger(),
	)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type recordedEvent struct {
	kind           string
	bookingID      int
	roomID         int
	previousRoomID int
}

type recordingEvents struct {
	events []recordedEvent
	err    error
}

func (r *recordingEvents) BookingCreated(ctx context.Context, booking *models.Booking) error {
	r.events = append(r.events, recordedEvent{kind: EventBookingCreated, bookingID: booking.ID, roomID: booking.RoomID})
	return r.err
}

func (r *recordingEvents) RoomChanged(ctx context.Context, booking *models.Booking, previousRoomID int) error {
	r.events = append(r.events, recordedEvent{kind: EventBookingRoomChanged, bookingID: booking.ID, roomID: booking.RoomID, previousRoomID: previousRoomID})
	return r.err
}

type recordingAuditor struct {
	actions    []string
	rejections []*BookingError
	err        error
}

func (r *recordingAuditor) LogBookingCreated(ctx context.Context, booking *models.Booking) error {
	r.actions = append(r.actions, AuditBookingCreated)
	return r.err
}

func (r *recordingAuditor) LogBookingRoomChanged(ctx context.Context, booking *models.Booking, previousRoomID int) error {
	r.actions = append(r.actions, AuditBookingRoomChanged)
	return r.err
}

func (r *recordingAuditor) LogBookingRejected(ctx context.Context, userID int, operation string, bookingID, roomID int, rejection *BookingError) error {
	r.actions = append(r.actions, AuditBookingRejected)
	r.rejections = append(r.rejections, rejection)
	return r.err
}
