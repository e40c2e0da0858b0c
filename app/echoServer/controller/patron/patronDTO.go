package patron

type NewIdentityReq struct {
	Role string `json:"role" validate:"required,oneof=user manager"`
}

type BorrowReq struct {
	Days int `json:"days" validate:"required,gt=0"`
}

type WaitlistAddReq struct {
	ItemID string `json:"item_id" validate:"required,itemid"`
	Days   int    `json:"days" validate:"required,gt=0"`
}

type WaitlistRemoveReq struct {
	ItemID string `json:"item_id" validate:"required,itemid"`
}
