// Package directory maps a branch prefix to a live peer handle. Adding a
// branch to the federation is a new table entry, not a routing change.
package directory

import (
	"errors"
	"fmt"
	"sort"

	peerrepo "libranet/repository/peer"
)

var ErrUnknownBranch = errors.New("no branch registered for prefix")

type Directory interface {
	// Resolve returns the handle for a peer branch. Side-effect free, safe
	// to call repeatedly.
	Resolve(prefix string) (peerrepo.Client, error)
	// Prefixes lists every registered branch in a fixed, deterministic order.
	Prefixes() []string
}

type static struct {
	order   []string
	clients map[string]peerrepo.Client
}

func NewStatic(clients map[string]peerrepo.Client) Directory {
	order := make([]string, 0, len(clients))
	for prefix := range clients {
		order = append(order, prefix)
	}
	sort.Strings(order)
	return &static{order: order, clients: clients}
}

func (d *static) Resolve(prefix string) (peerrepo.Client, error) {
	c, ok := d.clients[prefix]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBranch, prefix)
	}
	return c, nil
}

func (d *static) Prefixes() []string {
	return d.order
}
