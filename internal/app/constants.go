package app

import "time"

// TicketIssuer is the "iss" claim on every table ticket.
const TicketIssuer = "clue"

// DefaultTicketTTL bounds how long a freshly created table can be joined.
const DefaultTicketTTL = 10 * time.Minute
