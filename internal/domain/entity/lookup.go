package entity

// NotFoundSentinel is the lookup answer when no product matches.
const NotFoundSentinel = "No relevant data found in the database."

// LookupStatus tags a LookupResult.
type LookupStatus int

const (
	LookupSkipped LookupStatus = iota
	LookupFound
	LookupNotFound
	LookupTransportError
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	case LookupTransportError:
		return "transport_error"
	default:
		return "skipped"
	}
}

// LookupResult is the outcome of asking the lookup service.
// Data holds the fact when Found, the sentinel when NotFound and a
// human readable error when TransportError.
type LookupResult struct {
	Status LookupStatus
	Data   string
}

func Found(data string) LookupResult {
	return LookupResult{Status: LookupFound, Data: data}
}

func NotFound() LookupResult {
	return LookupResult{Status: LookupNotFound, Data: NotFoundSentinel}
}

func TransportError(msg string) LookupResult {
	return LookupResult{Status: LookupTransportError, Data: msg}
}

func (r LookupResult) IsFound() bool {
	return r.Status == LookupFound
}

// Unavailable reports whether the lookup was attempted but gave no usable fact.
func (r LookupResult) Unavailable() bool {
	return r.Status == LookupNotFound || r.Status == LookupTransportError
}
