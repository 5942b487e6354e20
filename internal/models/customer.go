package models

type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	StoreName   string `json:"storeName"`
	Note        string `json:"note"`
}
