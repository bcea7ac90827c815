package models

import "errors"

var (
	ErrInvalidQuery     = errors.New("invalid query")
	ErrContractNotFound = errors.New("option contract not found")
)
