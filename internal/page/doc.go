// Package page reads the chat page of the web application.
//
// The page carries the DOM contract the chat client depends on: a
// .chat-container element whose data-user-email attribute names the
// logged-in user. Discover fetches the page with the user's session cookie,
// reads that identity and derives the chat WebSocket endpoint from the page URL.
package page
