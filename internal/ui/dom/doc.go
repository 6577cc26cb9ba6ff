// Package dom binds the chat client to a browser page when compiled to
// WebAssembly. View implements the ui interfaces over the page's elements and
// Dial opens connections with the browser's WebSocket.
//
// Page contract:
//
//	.chat-container[data-user-email]  current user identity
//	#chat-message-input               message input
//	#chat-message-submit              send button
//	#connection-status                status label
//	#chat-messages                    message list
package dom
