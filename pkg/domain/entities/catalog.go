package entities

// CatalogKind identifies one of the reference lists the editor resolves
// labels against.
type CatalogKind int

const (
	CatalogSupplies CatalogKind = iota
	CatalogWorkTypes
	CatalogPaintTypes
	CatalogHourlyRates
)

// String method for CatalogKind enum
func (k CatalogKind) String() string {
	switch k {
	case CatalogSupplies:
		return "Supplies"
	case CatalogWorkTypes:
		return "WorkTypes"
	case CatalogPaintTypes:
		return "PaintTypes"
	case CatalogHourlyRates:
		return "HourlyRates"
	default:
		return "Unknown"
	}
}

// Slug returns the path segment the REST API uses for the catalog.
func (k CatalogKind) Slug() string {
	switch k {
	case CatalogSupplies:
		return "supplies"
	case CatalogWorkTypes:
		return "work-types"
	case CatalogPaintTypes:
		return "paint-types"
	case CatalogHourlyRates:
		return "hourly-rates"
	default:
		return "unknown"
	}
}

// CatalogEntry is one selectable option of a catalog. The editor treats
// entries as read-only lookup data.
type CatalogEntry struct {
	ID     int64
	Label  string
	Code   string
	Active bool
}

// CatalogFilter narrows a catalog page fetch.
type CatalogFilter struct {
	Query    string
	Page     int
	PageSize int
}
