package tui

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")

// ErrMissingVideoID is returned when no video is selected for the session.
var ErrMissingVideoID = errors.New("tui: video id is required")
