package models

// ProviderSummary is one row of the donor ranking.
type ProviderSummary struct {
	ProviderEmail string  `json:"providerEmail" bson:"providerEmail"`
	ProviderName  string  `json:"providerName" bson:"providerName"`
	ProviderImage string  `json:"providerImage" bson:"providerImage"`
	TotalAmount   float64 `json:"totalAmount" bson:"totalAmount"`
}
