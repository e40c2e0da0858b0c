package peerrepo

import (
	"context"
	"errors"

	"libranet/model"
)

var (
	// ErrUnreachable: the peer could not be reached or did not answer in
	// time. Distinct from a peer that answered and said no.
	ErrUnreachable = errors.New("peer branch unreachable")
	// ErrDenied: the peer processed the request and refused it.
	ErrDenied = errors.New("peer branch denied the request")
)

// Client is one remote branch as seen from here. Borrow and return target
// items the remote branch owns; the remote never forwards further.
type Client interface {
	BorrowItem(ctx context.Context, userID, itemID string, days int) error
	ReturnItem(ctx context.Context, userID, itemID string) error
	ListAll(ctx context.Context) ([]model.Item, error)
	Search(ctx context.Context, title string) ([]model.Item, error)
}
