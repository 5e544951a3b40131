package gateway

import (
	"context"
	"fmt"
	"time"
)

// FailureKind classifies a delivery failure reported by the chat platform
type FailureKind string

const (
	// FailureRecipientUnreachable means the platform has no open channel with
	// the recipient. Recoverable once the user contacts the sender.
	FailureRecipientUnreachable FailureKind = "recipient_unreachable"
	// FailureItemUnavailable means the specific item can no longer be
	// transferred or issued (sold out, withdrawn). Needs operator attention.
	FailureItemUnavailable FailureKind = "item_unavailable"
	// FailureUnclassified covers everything the platform taxonomy does not
	// let us pin down
	FailureUnclassified FailureKind = "unclassified"
)

// DeliveryError is a classified failure from a gateway delivery call
type DeliveryError struct {
	Kind        FailureKind
	Code        int
	Description string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed (%s, code %d): %s", e.Kind, e.Code, e.Description)
}

// Recipient addresses a delivery target by account id or, when the id is
// unknown, by platform handle
type Recipient struct {
	AccountID int64
	Handle    string
}

func (r Recipient) String() string {
	if r.AccountID != 0 {
		return fmt.Sprintf("%d", r.AccountID)
	}
	return "@" + r.Handle
}

// Button is an optional mini-app button attached to a message
type Button struct {
	Text string
	URL  string
}

// GiftEvent is one entry of the upstream inventory feed
type GiftEvent struct {
	// Identifier is the stable upstream id of the collectible
	Identifier int64
	// Label is the collectible title
	Label string
	// Slug is the upstream short name
	Slug string
	// TransferPrice is the platform cost of transferring the item, nil if
	// the feed did not report one
	TransferPrice *int64
	// MessageRef is the feed message the item arrived in
	MessageRef int64
	// Raw is the untouched feed payload
	Raw []byte
}

// ContactEvent is a first-contact event from the platform update feed,
// optionally carrying a referrer token from the deep link
type ContactEvent struct {
	UpdateID      int64
	AccountID     int64
	Handle        string
	FirstName     string
	ReferrerToken string
	At            time.Time
}

// Gateway defines the delivery operations consumed from the chat platform
//
//go:generate mockgen -source=gateway.go -destination=../mocks/gateway.go -package=mocks -mock_names=Gateway=MockGateway
type Gateway interface {
	// SendMessage delivers a text message with an optional mini-app button
	SendMessage(ctx context.Context, to Recipient, text string, button *Button) error

	// TransferOwnedItem moves the inventory item received in the given feed
	// message to the recipient account. Failures are *DeliveryError.
	TransferOwnedItem(ctx context.Context, itemMessageRef int64, toAccountID int64) error

	// IssueSpecialItem issues a fresh platform item to the recipient.
	// Failures are *DeliveryError.
	IssueSpecialItem(ctx context.Context, to Recipient, platformItemID int64) error

	// ScanUpstreamFeed reads up to limit gift events from the source channel,
	// newest first
	ScanUpstreamFeed(ctx context.Context, sourceRef string, limit int) ([]GiftEvent, error)

	// PollContactEvents long-polls the update feed for first-contact events.
	// Returns the events and the offset to pass on the next call.
	PollContactEvents(ctx context.Context, offset int64, timeout time.Duration) ([]ContactEvent, int64, error)
}
