package services

import "errors"

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrParentsOff    = errors.New("all parent assets are off")
	ErrInvalidLoad   = errors.New("load must be a non-negative number")
)
