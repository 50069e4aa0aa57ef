package models

// Ginner is a supplier that presses raw cotton into bales and sells under
// contracts. NTN/STN are the national and sales tax registration numbers.
type Ginner struct {
	GinnerID      string `json:"ginner_id"`
	GinnerName    string `json:"ginner_name"`
	Contact       string `json:"contact"`
	IBAN          string `json:"iban"`
	Address       string `json:"address"`
	NTN           string `json:"ntn"`
	STN           string `json:"stn"`
	BankAddress   string `json:"bank_address"`
	ContactPerson string `json:"contact_person"`
	Station       string `json:"station"`
}
