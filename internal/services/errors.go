package services

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of conditions a booking operation can fail with
type ErrorKind int

const (
	// KindNotFound means a referenced booking or room does not exist
	KindNotFound ErrorKind = iota + 1
	// KindEnrollmentNotFound means the user has no enrollment
	KindEnrollmentNotFound
	// KindTicketInvalid means the ticket is missing, remote, unpaid or without hotel
	KindTicketInvalid
	// KindRoomIDInvalid means the room is at capacity
	KindRoomIDInvalid
	// KindBookingIDInvalid means the supplied booking id is not positive
	KindBookingIDInvalid
	// KindBookingNotOwned means the booking belongs to another user
	KindBookingNotOwned
	// KindStoreUnavailable means the store could not be reached
	KindStoreUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindEnrollmentNotFound:
		return "enrollment_not_found"
	case KindTicketInvalid:
		return "ticket_invalid"
	case KindRoomIDInvalid:
		return "room_id_invalid"
	case KindBookingIDInvalid:
		return "booking_id_invalid"
	case KindBookingNotOwned:
		return "booking_not_owned"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Reasons refine a kind for logs, audit details and the hotel route mapping
const (
	ReasonBookingNotFound    = "booking_not_found"
	ReasonRoomNotFound       = "room_not_found"
	ReasonRoomFull           = "room_full"
	ReasonTicketNotFound     = "ticket_not_found"
	ReasonTicketRemote       = "ticket_remote"
	ReasonTicketWithoutHotel = "ticket_without_hotel"
	ReasonTicketUnpaid       = "ticket_unpaid"
)

// BookingError is the error returned for every booking and eligibility condition
type BookingError struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *BookingError) Error() string {
	msg := e.Kind.String()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, reason string) *BookingError {
	return &BookingError{Kind: kind, Reason: reason}
}

func storeUnavailable(err error) *BookingError {
	return &BookingError{Kind: KindStoreUnavailable, Err: err}
}

// AsBookingError unwraps err into a *BookingError
func AsBookingError(err error) (*BookingError, bool) {
	var be *BookingError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// KindOf returns the kind carried by err. Errors that are not a
// *BookingError report KindStoreUnavailable.
func KindOf(err error) ErrorKind {
	if be, ok := AsBookingError(err); ok {
		return be.Kind
	}
	return KindStoreUnavailable
}
