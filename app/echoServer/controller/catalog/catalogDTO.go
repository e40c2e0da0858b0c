package catalog

type AddItemReq struct {
	ItemID   string `json:"item_id" validate:"required,itemid"`
	Title    string `json:"title" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type RemoveItemReq struct {
	// -1 removes every copy and the entry itself.
	Quantity int `json:"quantity" validate:"required,gte=-1,ne=0"`
}
