// Package render turns classified chat messages into display output.
//
// Sender identity and message body are untrusted. HTML output is built from
// text nodes so the serializer escapes them; terminal output has escape and
// control sequences removed.
package render
