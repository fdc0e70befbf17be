package model

// Product is a catalog record as returned by the storefront collaborator.
// Price keeps the storefront's "<amount> <currency>" string form, e.g.
// "47.00 USD". Products are never fabricated downstream of the catalog.
type Product struct {
	Title     string `json:"title"`
	Handle    string `json:"handle"`
	Available bool   `json:"available"`
	Price     string `json:"price"`
	URL       string `json:"url"`
}
