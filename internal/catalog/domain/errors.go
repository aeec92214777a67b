package domain

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNotOwner        = errors.New("project not owned by user")
)
