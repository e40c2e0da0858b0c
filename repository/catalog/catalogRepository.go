package catalogrepo

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"libranet/model"
)

// QtyAll is the sentinel quantity meaning "every copy of this item".
const QtyAll = -1

var (
	ErrNotFound        = errors.New("no such item in this branch")
	ErrNotEnoughCopies = errors.New("not enough copies of this item")
	ErrTitleMismatch   = errors.New("item id exists with a different title")
)

type Repo interface {
	AddOrRestock(itemID, title string, qty int) error
	RemoveOrDeplete(itemID string, qty int) error
	ReturnOne(itemID string) error
	Get(itemID string) (model.Item, bool)
	ListAll() []model.Item
	Search(title string) []model.Item

	Enqueue(req model.WaitingRequest)
	FirstReady(userID string) (model.WaitingRequest, bool)
	RemoveReady(userID, itemID string) bool
}

// repo holds one branch's authoritative state. A single mutex covers the item
// map, the waiting list and the ready set so that a restock and the queue
// promotion it triggers are one atomic step, and no interleaving of borrow,
// restock and return can drive a quantity negative.
type repo struct {
	mu      sync.Mutex
	items   map[string]model.Item
	waiting []model.WaitingRequest // FIFO, insertion order
	ready   []model.WaitingRequest
}

func New() Repo {
	return &repo{items: map[string]model.Item{}}
}

func (r *repo) AddOrRestock(itemID, title string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[itemID]
	switch {
	case !ok:
		r.items[itemID] = model.Item{ItemID: itemID, Title: title, Quantity: qty}
	case existing.Title == title:
		existing.Quantity += qty
		r.items[itemID] = existing
	default:
		return ErrTitleMismatch
	}
	r.promoteOldest(itemID)
	return nil
}

func (r *repo) RemoveOrDeplete(itemID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[itemID]
	if !ok {
		return ErrNotFound
	}
	if qty == QtyAll {
		delete(r.items, itemID)
		return nil
	}
	if existing.Quantity < qty {
		return ErrNotEnoughCopies
	}
	existing.Quantity -= qty
	r.items[itemID] = existing
	return nil
}

// ReturnOne restocks a single copy under the item's current title. Goes
// through the same promotion path as a manager restock.
func (r *repo) ReturnOne(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[itemID]
	if !ok {
		return ErrNotFound
	}
	existing.Quantity++
	r.items[itemID] = existing
	r.promoteOldest(itemID)
	return nil
}

func (r *repo) Get(itemID string) (model.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	return item, ok
}

func (r *repo) ListAll() []model.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (r *repo) Search(title string) []model.Item {
	needle := strings.ToLower(title)
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Item
	for _, item := range r.items {
		if strings.Contains(strings.ToLower(item.Title), needle) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (r *repo) Enqueue(req model.WaitingRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waiting = append(r.waiting, req)
}

func (r *repo) FirstReady(userID string) (model.WaitingRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.ready {
		if req.UserID == userID {
			return req, true
		}
	}
	return model.WaitingRequest{}, false
}

// RemoveReady drops exactly one ready entry matching (userID, itemID).
// Absent entries are a no-op reported as false.
func (r *repo) RemoveReady(userID, itemID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, req := range r.ready {
		if req.UserID == userID && req.ItemID == itemID {
			r.ready = append(r.ready[:i], r.ready[i+1:]...)
			return true
		}
	}
	return false
}

// promoteOldest moves the oldest queued request for itemID to the ready set.
// One promotion per successful restock; callers hold r.mu.
func (r *repo) promoteOldest(itemID string) {
	for i, req := range r.waiting {
		if req.ItemID == itemID {
			r.waiting = append(r.waiting[:i], r.waiting[i+1:]...)
			r.ready = append(r.ready, req)
			return
		}
	}
}
