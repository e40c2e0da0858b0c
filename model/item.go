// model/item.go
package model

// Item is one catalog entry as held by its owning branch. The three-letter
// prefix of ItemID names that branch; only the owner mutates Quantity.
type Item struct {
	ItemID   string `json:"item_id"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// WaitingRequest is a patron waiting for an item that had no copies left.
// It starts queued and becomes ready once a restock of the same item
// promotes it; readiness reserves nothing, the patron still has to borrow.
type WaitingRequest struct {
	UserID string `json:"user_id"`
	ItemID string `json:"item_id"`
	Days   int    `json:"days"`
}

// OwnerPrefix extracts the owning branch prefix from an item or actor id.
// Returns "" when the id is too short to carry one.
func OwnerPrefix(id string) string {
	if len(id) < 3 {
		return ""
	}
	return id[:3]
}
