package utils

// MaxCatalogPage is the last page TMDb will serve for list endpoints.
const MaxCatalogPage = 500

// NormalizePage clamps a requested page into [1, MaxCatalogPage].
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxCatalogPage {
		return MaxCatalogPage
	}
	return page
}
