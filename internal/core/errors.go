package core

import "errors"

// ErrNotFound reports that a record the caller asked for does not exist
// (or does not belong to the requesting owner). Services wrap it so the
// web adapter can map missing records to 404 without inspecting messages.
var ErrNotFound = errors.New("not found")
