package services

import "context"

// ExclusiveSessions ties the payment and ticket flows to one open modal:
// opening either closes the other's session first. A payment mid
// authorization cannot be closed, so a ticket session is refused until it
// settles.
func ExclusiveSessions(payments *paymentService, tickets *ticketService) {
	payments.closeOther = tickets.Close
	tickets.closeOther = payments.Close
}
