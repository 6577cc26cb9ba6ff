// Package connection implements the chat Connection Manager.
//
// The Connection Manager:
//   - Owns one live WebSocket connection to the chat endpoint at a time
//   - Renders incoming chat frames into the page's message list
//   - Sends the input field's text as a chat frame on submit
//   - Reconnects after a close with capped backoff, up to a fixed number of attempts
//   - Mirrors connection state into the page's status element
//
// All state is owned by a single dispatch goroutine. Transport goroutines and
// timers only enqueue events, so events are handled one at a time in arrival order.
package connection
