package domain

import "errors"

var (
	ErrStreamNotFound   = errors.New("stream not found")
	ErrStreamNotActive  = errors.New("stream not active")
	ErrStreamerNotFound = errors.New("streamer not found")
)
