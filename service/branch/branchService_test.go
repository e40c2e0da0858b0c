package branchsvc_test

import (
	"context"
	"fmt"
	"testing"

	"libranet/model"
	catalogrepo "libranet/repository/catalog"
	"libranet/repository/directory"
	peerrepo "libranet/repository/peer"
	branchsvc "libranet/service/branch"

	"github.com/stretchr/testify/require"
)

type peerMock struct {
	borrowFn func(ctx context.Context, userID, itemID string, days int) error
	returnFn func(ctx context.Context, userID, itemID string) error
	listFn   func(ctx context.Context) ([]model.Item, error)
	searchFn func(ctx context.Context, title string) ([]model.Item, error)
}

var _ peerrepo.Client = (*peerMock)(nil)

func (m *peerMock) BorrowItem(ctx context.Context, userID, itemID string, days int) error {
	if m.borrowFn == nil {
		return nil
	}
	return m.borrowFn(ctx, userID, itemID, days)
}
func (m *peerMock) ReturnItem(ctx context.Context, userID, itemID string) error {
	if m.returnFn == nil {
		return nil
	}
	return m.returnFn(ctx, userID, itemID)
}
func (m *peerMock) ListAll(ctx context.Context) ([]model.Item, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}
func (m *peerMock) Search(ctx context.Context, title string) ([]model.Item, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, title)
}

type dirMock struct {
	clients  map[string]peerrepo.Client
	prefixes []string
}

var _ directory.Directory = (*dirMock)(nil)

func (m *dirMock) Resolve(prefix string) (peerrepo.Client, error) {
	c, ok := m.clients[prefix]
	if !ok {
		return nil, fmt.Errorf("%w: %s", directory.ErrUnknownBranch, prefix)
	}
	return c, nil
}
func (m *dirMock) Prefixes() []string { return m.prefixes }

func newBranch(t *testing.T, prefix string, dir directory.Directory) (branchsvc.Service, catalogrepo.Repo) {
	t.Helper()
	store := catalogrepo.New()
	require.NoError(t, catalogrepo.Seed(store, prefix))
	if dir == nil {
		dir = &dirMock{prefixes: []string{prefix}}
	}
	return branchsvc.New(prefix, store, dir), store
}

// --- authorization ---

func TestAuthorization(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBranch(t, "CON", nil)

	cases := []struct {
		name string
		call func() error
	}{
		{"manager cannot borrow", func() error { return svc.BorrowItem(ctx, "CONM0001", "CON0001", 7) }},
		{"manager cannot return", func() error { return svc.ReturnItem(ctx, "CONM0001", "CON0001") }},
		{"manager cannot enqueue", func() error { return svc.AddToWaitingList(ctx, "CONM0001", "CON0001", 7) }},
		{"user cannot add", func() error { return svc.AddItem(ctx, "CONU0001", "CON0006", "Dune", 1) }},
		{"user cannot remove", func() error { return svc.RemoveItem(ctx, "CONU0001", "CON0001", 1) }},
		{"user cannot list", func() error {
			_, err := svc.ListItemAvailability(ctx, "CONU0001")
			return err
		}},
		{"foreign manager cannot mutate", func() error { return svc.AddItem(ctx, "MCGM0001", "CON0006", "Dune", 1) }},
		{"empty actor", func() error { return svc.BorrowItem(ctx, "", "CON0001", 7) }},
		{"short actor", func() error { return svc.BorrowItem(ctx, "CO", "CON0001", 7) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			require.Equal(t, branchsvc.ErrUnauthorized, branchsvc.Code(err))
		})
	}

	// lowercase prefix on an own-branch manager still passes
	require.NoError(t, svc.AddItem(ctx, "conM0001", "CON0006", "Dune", 1))
}

// --- manager operations ---

func TestAddRemoveList(t *testing.T) {
	ctx := context.Background()
	svc, store := newBranch(t, "CON", nil)

	err := svc.AddItem(ctx, "CONM0001", "CON0001", "Wrong Title", 1)
	require.Equal(t, branchsvc.ErrTitleConflict, branchsvc.Code(err))

	err = svc.RemoveItem(ctx, "CONM0001", "CON0001", 99)
	require.Equal(t, branchsvc.ErrNoStock, branchsvc.Code(err))

	err = svc.RemoveItem(ctx, "CONM0001", "CON9999", 1)
	require.Equal(t, branchsvc.ErrNotFound, branchsvc.Code(err))

	require.NoError(t, svc.RemoveItem(ctx, "CONM0001", "CON0005", catalogrepo.QtyAll))
	_, ok := store.Get("CON0005")
	require.False(t, ok)

	rows, err := svc.ListItemAvailability(ctx, "CONM0001")
	require.NoError(t, err)
	require.Len(t, rows, 4)
}

// --- borrow routing ---

func TestBorrow_Local(t *testing.T) {
	ctx := context.Background()
	svc, store := newBranch(t, "CON", nil)

	require.NoError(t, svc.BorrowItem(ctx, "CONU0001", "CON0001", 7))
	item, _ := store.Get("CON0001")
	require.Equal(t, 0, item.Quantity)

	// no copies left: denied, state unchanged
	err := svc.BorrowItem(ctx, "CONU0002", "CON0001", 7)
	require.Equal(t, branchsvc.ErrNoStock, branchsvc.Code(err))
	item, _ = store.Get("CON0001")
	require.Equal(t, 0, item.Quantity)
}

func TestBorrow_Remote(t *testing.T) {
	ctx := context.Background()
	var got struct {
		userID, itemID string
		days           int
	}
	mcg := &peerMock{borrowFn: func(ctx context.Context, userID, itemID string, days int) error {
		got.userID, got.itemID, got.days = userID, itemID, days
		return nil
	}}
	dir := &dirMock{clients: map[string]peerrepo.Client{"MCG": mcg}, prefixes: []string{"CON", "MCG"}}
	svc, _ := newBranch(t, "CON", dir)

	require.NoError(t, svc.BorrowItem(ctx, "CONU0001", "MCG0001", 7))
	require.Equal(t, "CONU0001", got.userID)
	require.Equal(t, "MCG0001", got.itemID)
	require.Equal(t, 7, got.days)
}

func TestBorrow_RemoteFailures(t *testing.T) {
	ctx := context.Background()
	down := &peerMock{borrowFn: func(context.Context, string, string, int) error {
		return fmt.Errorf("%w: connection refused", peerrepo.ErrUnreachable)
	}}
	denying := &peerMock{borrowFn: func(context.Context, string, string, int) error {
		return peerrepo.ErrDenied
	}}
	dir := &dirMock{
		clients:  map[string]peerrepo.Client{"MCG": down, "MON": denying},
		prefixes: []string{"CON", "MCG", "MON"},
	}
	svc, _ := newBranch(t, "CON", dir)

	// dead peer is distinguishable
	err := svc.BorrowItem(ctx, "CONU0001", "MCG0001", 7)
	require.Equal(t, branchsvc.ErrPeerUnreachable, branchsvc.Code(err))

	// a refusal stays an anonymous denial
	err = svc.BorrowItem(ctx, "CONU0001", "MON0001", 7)
	require.Error(t, err)
	require.Equal(t, branchsvc.ErrCode(""), branchsvc.Code(err))

	// prefix nobody owns
	err = svc.BorrowItem(ctx, "CONU0001", "XYZ0001", 7)
	require.Equal(t, branchsvc.ErrNotFound, branchsvc.Code(err))
}

func TestBorrowLocal_NeverForwards(t *testing.T) {
	ctx := context.Background()
	forwarded := false
	mcg := &peerMock{borrowFn: func(context.Context, string, string, int) error {
		forwarded = true
		return nil
	}}
	dir := &dirMock{clients: map[string]peerrepo.Client{"MCG": mcg}, prefixes: []string{"CON", "MCG"}}
	svc, _ := newBranch(t, "CON", dir)

	err := svc.BorrowLocal(ctx, "MCGU0001", "MCG0001", 7)
	require.Equal(t, branchsvc.ErrNotFound, branchsvc.Code(err))
	require.False(t, forwarded, "a forwarded call must not hop again")
}

// --- return ---

func TestReturn(t *testing.T) {
	ctx := context.Background()
	returned := false
	mcg := &peerMock{returnFn: func(ctx context.Context, userID, itemID string) error {
		returned = true
		return nil
	}}
	dir := &dirMock{clients: map[string]peerrepo.Client{"MCG": mcg}, prefixes: []string{"CON", "MCG"}}
	svc, store := newBranch(t, "CON", dir)

	require.NoError(t, svc.BorrowItem(ctx, "CONU0001", "CON0001", 7))
	require.NoError(t, svc.ReturnItem(ctx, "CONU0001", "CON0001"))
	item, _ := store.Get("CON0001")
	require.Equal(t, 1, item.Quantity)

	require.NoError(t, svc.ReturnItem(ctx, "CONU0001", "MCG0001"))
	require.True(t, returned)

	err := svc.ReturnItem(ctx, "CONU0001", "XYZ0001")
	require.Equal(t, branchsvc.ErrNotFound, branchsvc.Code(err))
}

// --- fan-out reads ---

func TestShowAllItems_Order(t *testing.T) {
	ctx := context.Background()
	mcg := &peerMock{listFn: func(context.Context) ([]model.Item, error) {
		return []model.Item{{ItemID: "MCG0001", Title: "Don Quixote", Quantity: 1}}, nil
	}}
	mon := &peerMock{listFn: func(context.Context) ([]model.Item, error) {
		return []model.Item{{ItemID: "MON0001", Title: "Madame Bovary", Quantity: 1}}, nil
	}}
	dir := &dirMock{
		clients:  map[string]peerrepo.Client{"MCG": mcg, "MON": mon},
		prefixes: []string{"CON", "MCG", "MON"},
	}
	svc, _ := newBranch(t, "CON", dir)

	rows, err := svc.ShowAllItems(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	require.Equal(t, "CON0001", rows[0].ItemID)
	require.Equal(t, "MCG0001", rows[5].ItemID)
	require.Equal(t, "MON0001", rows[6].ItemID)
}

func TestShowAllItems_DeadPeer(t *testing.T) {
	ctx := context.Background()
	down := &peerMock{listFn: func(context.Context) ([]model.Item, error) {
		return nil, fmt.Errorf("%w: timeout", peerrepo.ErrUnreachable)
	}}
	dir := &dirMock{clients: map[string]peerrepo.Client{"MCG": down}, prefixes: []string{"CON", "MCG"}}
	svc, _ := newBranch(t, "CON", dir)

	_, err := svc.ShowAllItems(ctx)
	require.Equal(t, branchsvc.ErrPeerUnreachable, branchsvc.Code(err))
}

func TestFindItem(t *testing.T) {
	ctx := context.Background()
	var askedFor string
	mcg := &peerMock{searchFn: func(ctx context.Context, title string) ([]model.Item, error) {
		askedFor = title
		return []model.Item{{ItemID: "MCG0001", Title: "Hamlet by William Shakespeare", Quantity: 2}}, nil
	}}
	dir := &dirMock{clients: map[string]peerrepo.Client{"MCG": mcg}, prefixes: []string{"CON", "MCG"}}
	svc, _ := newBranch(t, "CON", dir)

	rows, err := svc.FindItem(ctx, "CONU0001", "hamlet")
	require.NoError(t, err)
	require.Equal(t, "hamlet", askedFor)
	require.Len(t, rows, 2)
	require.Equal(t, "CON0001", rows[0].ItemID)
	require.Equal(t, "MCG0001", rows[1].ItemID)
}

// --- waiting list ---

func TestWaitingListFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBranch(t, "CON", nil)

	require.NoError(t, svc.AddToWaitingList(ctx, "CONU0002", "CON0001", 7))

	entry, err := svc.CheckWaitingQueue(ctx, "CONU0002")
	require.NoError(t, err)
	require.Nil(t, entry, "queued is not ready")

	err = svc.RemoveFromWaitingList(ctx, "CONU0002", "CON0001")
	require.Equal(t, branchsvc.ErrNotFound, branchsvc.Code(err))
}

// Full walk through the cross-user contention scenario on branch CON.
func TestScenario_BorrowQueueRestockBorrow(t *testing.T) {
	ctx := context.Background()
	svc, store := newBranch(t, "CON", nil)

	// CON0001 "Hamlet..." seeded with one copy
	require.NoError(t, svc.BorrowItem(ctx, "CONU0001", "CON0001", 7))
	item, _ := store.Get("CON0001")
	require.Equal(t, 0, item.Quantity)

	err := svc.BorrowItem(ctx, "CONU0002", "CON0001", 7)
	require.Equal(t, branchsvc.ErrNoStock, branchsvc.Code(err))

	require.NoError(t, svc.AddToWaitingList(ctx, "CONU0002", "CON0001", 7))

	require.NoError(t, svc.AddItem(ctx, "CONM0001", "CON0001", "Hamlet by William Shakespeare", 1))
	item, _ = store.Get("CON0001")
	require.Equal(t, 1, item.Quantity)

	entry, err := svc.CheckWaitingQueue(ctx, "CONU0002")
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "CON0001", entry.ItemID)
	require.Equal(t, 7, entry.Days)

	require.NoError(t, svc.BorrowItem(ctx, "CONU0002", "CON0001", 7))
	item, _ = store.Get("CON0001")
	require.Equal(t, 0, item.Quantity)

	require.NoError(t, svc.RemoveFromWaitingList(ctx, "CONU0002", "CON0001"))
	entry, err = svc.CheckWaitingQueue(ctx, "CONU0002")
	require.NoError(t, err)
	require.Nil(t, entry)
}
