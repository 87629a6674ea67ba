package ports

// TicketIssuer signs join tickets for newly created tables.
type TicketIssuer interface {
	// Issue returns a ticket that lets userID join tableID.
	Issue(userID, tableID string) (string, error)
}

// TicketVerifier checks join tickets presented to a table.
type TicketVerifier interface {
	// Verify returns nil only when ticket was issued to userID for tableID
	// and has not expired.
	Verify(ticket, userID, tableID string) error
}
