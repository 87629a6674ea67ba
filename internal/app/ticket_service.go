package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// ErrInvalidTicket is returned for any ticket that fails verification.
var ErrInvalidTicket = errors.New("invalid table ticket")

// TicketService issues and checks the HS256 tickets that let a table's owner
// join the match created for them.
type TicketService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTicketService(secret string, ttl time.Duration) *TicketService {
	if ttl <= 0 {
		ttl = DefaultTicketTTL
	}
	return &TicketService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a ticket binding userID to tableID.
func (s *TicketService) Issue(userID, tableID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("ticket service is nil")
	}
	if len(s.secret) == 0 {
		return "", fmt.Errorf("ticket secret is not configured")
	}
	if userID == "" || tableID == "" {
		return "", fmt.Errorf("user and table are required")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss": TicketIssuer,
		"sub": userID,
		"tid": tableID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify accepts ticket only if it is unexpired, signed with our secret and
// issued to userID for tableID.
func (s *TicketService) Verify(ticket, userID, tableID string) error {
	if s == nil || len(s.secret) == 0 {
		return fmt.Errorf("%w: service not configured", ErrInvalidTicket)
	}
	if ticket == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTicket)
	}

	token, err := jwt.Parse(ticket, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("%w: bad claims", ErrInvalidTicket)
	}
	if !claims.VerifyIssuer(TicketIssuer, true) {
		return fmt.Errorf("%w: issuer", ErrInvalidTicket)
	}
	if sub, _ := claims["sub"].(string); sub != userID {
		return fmt.Errorf("%w: issued to another user", ErrInvalidTicket)
	}
	if tid, _ := claims["tid"].(string); tid != tableID {
		return fmt.Errorf("%w: issued for another table", ErrInvalidTicket)
	}
	return nil
}
