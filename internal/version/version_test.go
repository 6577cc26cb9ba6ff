package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "1.2.0", "abc1234"
	assert.Equal(t, "1.2.0 (abc1234)", String())
	assert.Equal(t, "chat-client/1.2.0", UserAgent())
}
