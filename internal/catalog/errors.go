package catalog

import "errors"

var (
	ErrNotFound     = errors.New("product not found")
	ErrEmptyCatalog = errors.New("catalog is empty")
)
