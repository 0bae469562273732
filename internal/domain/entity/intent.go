package entity

import "fmt"

// Category is the kind of product fact a message asks for.
type Category string

const (
	CategoryNone   Category = "none"
	CategoryPrice  Category = "price"
	CategoryStock  Category = "stock"
	CategoryDetail Category = "detail"
)

// Lookup service wire names.
const (
	WirePrice  = "harga"
	WireStock  = "stok"
	WireDetail = "detail"
)

// WireName returns the name the lookup service uses for c.
func (c Category) WireName() string {
	switch c {
	case CategoryPrice:
		return WirePrice
	case CategoryStock:
		return WireStock
	case CategoryDetail:
		return WireDetail
	default:
		return ""
	}
}

// Lookupable reports whether c can be sent to the lookup service.
func (c Category) Lookupable() bool {
	return c == CategoryPrice || c == CategoryStock || c == CategoryDetail
}

// ParseWireCategory converts a lookup service "tipe" into a Category.
func ParseWireCategory(s string) (Category, error) {
	switch s {
	case WirePrice:
		return CategoryPrice, nil
	case WireStock:
		return CategoryStock, nil
	case WireDetail:
		return CategoryDetail, nil
	default:
		return CategoryNone, fmt.Errorf("unknown category %q", s)
	}
}

// NotifyKind tells whether (and how) a message asks for a notification.
type NotifyKind string

const (
	NotifyNone    NotifyKind = "none"
	NotifyUrgent  NotifyKind = "urgent"
	NotifyForward NotifyKind = "forward"
)

// Intent is what the classifier derives from one user message.
type Intent struct {
	Term     string
	Category Category
	Notify   NotifyKind
	// Cleaned is the lowercased message with notification triggers removed.
	Cleaned string
}

// NeedsLookup reports whether the lookup service has to be asked.
func (i Intent) NeedsLookup() bool {
	return i.Term != "" && i.Category.Lookupable()
}
