package services

import (
	"context"

	"github.com/drivent/hotel-booking/internal/models"
)

// EligibilityService decides whether a user may use the hotel features
type EligibilityService struct {
	enrollments EnrollmentStore
	tickets     TicketStore
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(enrollments EnrollmentStore, tickets TicketStore) *EligibilityService {
	return &EligibilityService{
		enrollments: enrollments,
		tickets:     tickets,
	}
}

// VerifyTicketOfUser succeeds only when the user's enrollment holds a paid,
// in-person ticket whose type includes the hotel.
func (s *EligibilityService) VerifyTicketOfUser(ctx context.Context, userID int) error {
	enrollment, err := s.enrollments.FindByUserID(ctx, userID)
	if err != nil {
		return storeUnavailable(err)
	}
	if enrollment == nil {
		return newError(KindEnrollmentNotFound, "")
	}

	ticket, err := s.tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return storeUnavailable(err)
	}
	if ticket == nil {
		return newError(KindTicketInvalid, ReasonTicketNotFound)
	}
	if !ticket.IsHotelEligible() {
		return newError(KindTicketInvalid, ineligibleReason(ticket))
	}

	return nil
}

func ineligibleReason(ticket *models.Ticket) string {
	switch {
	case ticket.TicketType.IsRemote:
		return ReasonTicketRemote
	case !ticket.TicketType.IncludesHotel:
		return ReasonTicketWithoutHotel
	default:
		return ReasonTicketUnpaid
	}
}
