package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/u/chats", expandHome("~/chats", "/home/u"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path", "/home/u"))
	assert.Equal(t, "~", expandHome("~", "/home/u"))
	assert.Equal(t, "relative", expandHome("relative", "/home/u"))
}
