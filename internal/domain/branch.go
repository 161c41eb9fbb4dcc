package domain

type Branch struct {
	ID             int32  `json:"id"`
	Name           string `json:"name"`
	CommercialName string `json:"commercial_name"` // name printed on contracts and receipts
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	IsMain         bool   `json:"is_main"`
}

type Client struct {
	ID      int32  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}
