// Package model defines the chat frames exchanged with the server and the
// display form of a received message.
//
// Conventions:
//   - Frames are JSON text messages
//   - Sender identity is the user's email address, compared verbatim
//   - Timestamps on replayed history are RFC 3339
package model
