package models

// Mill is a buyer that receives delivered bales and pays against contracts.
type Mill struct {
	MillID    string `json:"mill_id"`
	MillName  string `json:"mill_name"`
	Address   string `json:"address"`
	OwnerName string `json:"owner_name"`
}
