package app

import "github.com/cockroachdb/errors"

var errSourceRemoved = errors.New("source file removed")
