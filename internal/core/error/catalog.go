package errx

import "net/http"

// WrapCatalog wraps a catalog collaborator failure with a consistent status and message.
func WrapCatalog(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, CatalogErrorMessage)
}
