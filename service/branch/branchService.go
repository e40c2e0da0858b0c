package branchsvc

import (
	"context"
	"errors"
	"strings"

	"libranet/model"
	catalogrepo "libranet/repository/catalog"
	"libranet/repository/directory"
	peerrepo "libranet/repository/peer"
)

// errors used by controllers

type ErrCode string

const (
	ErrUnauthorized    ErrCode = "UNAUTHORIZED"
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrNoStock         ErrCode = "NO_STOCK"
	ErrTitleConflict   ErrCode = "TITLE_CONFLICT"
	ErrPeerUnreachable ErrCode = "PEER_UNREACHABLE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Service is one branch's RPC surface. Actor-scoped calls are gated on the
// actor id before anything else; a foreign item id routes the call to the
// owning branch through the directory, at most one hop.
type Service interface {
	AddItem(ctx context.Context, managerID, itemID, title string, qty int) error
	RemoveItem(ctx context.Context, managerID, itemID string, qty int) error
	ListItemAvailability(ctx context.Context, managerID string) ([]model.Item, error)

	BorrowItem(ctx context.Context, userID, itemID string, days int) error
	ReturnItem(ctx context.Context, userID, itemID string) error
	// BorrowLocal and ReturnLocal serve forwarded calls from peer branches.
	// They act only on locally-owned items and never forward again.
	BorrowLocal(ctx context.Context, userID, itemID string, days int) error
	ReturnLocal(ctx context.Context, userID, itemID string) error

	AddToWaitingList(ctx context.Context, userID, itemID string, days int) error
	CheckWaitingQueue(ctx context.Context, userID string) (*model.WaitingRequest, error)
	RemoveFromWaitingList(ctx context.Context, userID, itemID string) error

	ShowAllItems(ctx context.Context) ([]model.Item, error)
	FindItem(ctx context.Context, userID, title string) ([]model.Item, error)
}

type service struct {
	prefix  string
	catalog catalogrepo.Repo
	dir     directory.Directory
}

func New(prefix string, catalog catalogrepo.Repo, dir directory.Directory) Service {
	return &service{prefix: strings.ToUpper(prefix), catalog: catalog, dir: dir}
}

// authorize applies the uniform actor gate: the id must be long enough to
// carry a role marker, the marker at position 3 must match, and for
// branch-mutating calls the actor must belong to this branch.
func (s *service) authorize(actorID string, marker byte, ownBranchOnly bool) error {
	if len(actorID) < 4 || actorID[3] != marker {
		return makeErr(ErrUnauthorized)
	}
	if ownBranchOnly && !strings.EqualFold(actorID[:3], s.prefix) {
		return makeErr(ErrUnauthorized)
	}
	return nil
}

func (s *service) AddItem(ctx context.Context, managerID, itemID, title string, qty int) error {
	if err := s.authorize(managerID, 'M', true); err != nil {
		return err
	}
	return mapCatalogErr(s.catalog.AddOrRestock(itemID, title, qty))
}

func (s *service) RemoveItem(ctx context.Context, managerID, itemID string, qty int) error {
	if err := s.authorize(managerID, 'M', true); err != nil {
		return err
	}
	return mapCatalogErr(s.catalog.RemoveOrDeplete(itemID, qty))
}

func (s *service) ListItemAvailability(ctx context.Context, managerID string) ([]model.Item, error) {
	if err := s.authorize(managerID, 'M', true); err != nil {
		return nil, err
	}
	return s.catalog.ListAll(), nil
}

func (s *service) BorrowItem(ctx context.Context, userID, itemID string, days int) error {
	if err := s.authorize(userID, 'U', false); err != nil {
		return err
	}
	owner := strings.ToUpper(model.OwnerPrefix(itemID))
	if owner == s.prefix {
		return mapCatalogErr(s.catalog.RemoveOrDeplete(itemID, 1))
	}
	client, err := s.dir.Resolve(owner)
	if err != nil {
		return makeErr(ErrNotFound)
	}
	return mapPeerErr(client.BorrowItem(ctx, userID, itemID, days))
}

func (s *service) BorrowLocal(ctx context.Context, userID, itemID string, days int) error {
	if err := s.authorize(userID, 'U', false); err != nil {
		return err
	}
	if !strings.EqualFold(model.OwnerPrefix(itemID), s.prefix) {
		return makeErr(ErrNotFound)
	}
	return mapCatalogErr(s.catalog.RemoveOrDeplete(itemID, 1))
}

func (s *service) ReturnItem(ctx context.Context, userID, itemID string) error {
	if err := s.authorize(userID, 'U', false); err != nil {
		return err
	}
	owner := strings.ToUpper(model.OwnerPrefix(itemID))
	if owner == s.prefix {
		return mapCatalogErr(s.catalog.ReturnOne(itemID))
	}
	client, err := s.dir.Resolve(owner)
	if err != nil {
		return makeErr(ErrNotFound)
	}
	return mapPeerErr(client.ReturnItem(ctx, userID, itemID))
}

func (s *service) ReturnLocal(ctx context.Context, userID, itemID string) error {
	if err := s.authorize(userID, 'U', false); err != nil {
		return err
	}
	if !strings.EqualFold(model.OwnerPrefix(itemID), s.prefix) {
		return makeErr(ErrNotFound)
	}
	return mapCatalogErr(s.catalog.ReturnOne(itemID))
}

func (s *service) AddToWaitingList(ctx context.Context, userID, itemID string, days int) error {
	if err := s.authorize(userID, 'U', false); err != nil {
		return err
	}
	s.catalog.Enqueue(model.WaitingRequest{UserID: userID, ItemID: itemID, Days: days})
	return nil
}

func (s *service) CheckWaitingQueue(ctx context.Context, userID string) (*model.WaitingRequest, error) {
	req, ok := s.catalog.FirstReady(userID)
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (s *service) RemoveFromWaitingList(ctx context.Context, userID, itemID string) error {
	if !s.catalog.RemoveReady(userID, itemID) {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) ShowAllItems(ctx context.Context) ([]model.Item, error) {
	var out []model.Item
	for _, prefix := range s.dir.Prefixes() {
		if prefix == s.prefix {
			out = append(out, s.catalog.ListAll()...)
			continue
		}
		client, err := s.dir.Resolve(prefix)
		if err != nil {
			return nil, makeErr(ErrNotFound)
		}
		items, err := client.ListAll(ctx)
		if err != nil {
			return nil, mapPeerErr(err)
		}
		out = append(out, items...)
	}
	return out, nil
}

func (s *service) FindItem(ctx context.Context, userID, title string) ([]model.Item, error) {
	var out []model.Item
	for _, prefix := range s.dir.Prefixes() {
		if prefix == s.prefix {
			out = append(out, s.catalog.Search(title)...)
			continue
		}
		client, err := s.dir.Resolve(prefix)
		if err != nil {
			return nil, makeErr(ErrNotFound)
		}
		items, err := client.Search(ctx, title)
		if err != nil {
			return nil, mapPeerErr(err)
		}
		out = append(out, items...)
	}
	return out, nil
}

func mapCatalogErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalogrepo.ErrNotFound):
		return makeErr(ErrNotFound)
	case errors.Is(err, catalogrepo.ErrNotEnoughCopies):
		return makeErr(ErrNoStock)
	case errors.Is(err, catalogrepo.ErrTitleMismatch):
		return makeErr(ErrTitleConflict)
	default:
		return err
	}
}

// mapPeerErr keeps an unreachable peer distinguishable from a peer that
// answered and refused; a refusal stays an uncoded error so the boolean
// endpoints collapse it like any other denial.
func mapPeerErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, peerrepo.ErrUnreachable):
		return makeErr(ErrPeerUnreachable)
	default:
		return err
	}
}
