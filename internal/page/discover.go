package page

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/socialconnect/chat-client/internal/connection"
)

// Discover fetches the chat page and reads the user's identity from it.
// The endpoint is derived from pageURL and the fixed chat path.
func (c *Client) Discover(ctx context.Context, pageURL, path string) (Page, error) {
	endpoint, err := connection.EndpointURL(pageURL, path)
	if err != nil {
		return Page{}, err
	}

	body, err := c.fetchWithRetry(ctx, pageURL)
	if err != nil {
		return Page{}, fmt.Errorf("fetch chat page: %w", err)
	}

	identity, err := ReadIdentity(body)
	if err != nil {
		return Page{}, err
	}

	c.logger.Info("chat page discovered",
		"url", pageURL,
		"identity", identity,
		"endpoint", endpoint,
	)

	return Page{URL: pageURL, Identity: identity, Endpoint: endpoint}, nil
}

// ReadIdentity returns the data-user-email of the first chat container in an
// HTML document.
func ReadIdentity(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse chat page: %w", err)
	}

	container := doc.Find(ContainerSelector).First()
	if container.Length() == 0 {
		return "", ErrNoChatContainer
	}

	identity, _ := container.Attr(IdentityAttr)
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "", ErrMissingIdentity
	}

	return identity, nil
}
