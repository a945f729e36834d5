package payments

// LineItem is one gateway line item; UnitAmount is in minor currency units
// (centavos).
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type SessionParams struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session is the gateway's ephemeral record of an in-progress payment.
type Session struct {
	ID       string
	Metadata map[string]string
}

// Event is a webhook notification after signature verification.
type Event struct {
	Type    string
	Session Session
}

// EventCheckoutCompleted is the only event type acted upon; everything else
// is acknowledged and dropped.
const EventCheckoutCompleted = "checkout.session.completed"

// Gateway abstracts the payment provider so handlers and services stay
// testable without network calls.
type Gateway interface {
	CreateSession(params *SessionParams) (*Session, error)
	GetSession(id string) (*Session, error)
	ConstructEvent(payload []byte, sigHeader string) (*Event, error)
}
