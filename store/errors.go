package store

import "errors"

var (
	ErrRead   = errors.New("unable to read record from host store")
	ErrWrite  = errors.New("unable to write record to host store")
	ErrDelete = errors.New("unable to delete record from host store")
)
