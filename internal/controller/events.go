package controller

import (
	"errors"
	"net/url"

	"golang.org/x/net/html"
)

// EventType is the kind of DOM event being dispatched.
type EventType string

const (
	EventClick  EventType = "click"
	EventSubmit EventType = "submit"
)

// Event is a DOM event aimed at a node in the document.
type Event struct {
	Type   EventType
	Target *html.Node
	// Form carries submitted values for submit events.
	Form url.Values
}

var (
	// ErrNoTarget means the clicked or submitted element is not in the document.
	ErrNoTarget = errors.New("controller: target not in document")
	// ErrUnhandled means no listener on the target's path handles the event.
	ErrUnhandled = errors.New("controller: no listener for event")
)
