package repository

import "errors"

// ErrProductNotFound is returned when no product matches a search term.
var ErrProductNotFound = errors.New("product not found")
