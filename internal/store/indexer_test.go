package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvale/chatscope/internal/analyze"
)

const sampleExport = "19/08/2019, 17:00 - Addy: pizza night tonight?\n" +
	"19/08/2019, 17:01 - Em: pizza night sounds great\n" +
	"19/08/2019, 17:02 - Addy: see you at eight\n"

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestChatKey(t *testing.T) {
	assert.Equal(t, "WhatsApp Chat with Em", ChatKey("/exports", "/exports/WhatsApp Chat with Em.txt"))
	assert.Equal(t, "family/group", ChatKey("/exports", "/exports/family/group.txt"))
}

func TestChatTitle(t *testing.T) {
	assert.Equal(t, "Em", ChatTitle("/exports/WhatsApp Chat with Em.txt"))
	assert.Equal(t, "group", ChatTitle("/exports/family/group.txt"))
}

func TestIndexAllRoundtrip(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "WhatsApp Chat with Em.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o644))

	db := newTestDB(t)
	logger := log.New(io.Discard)

	stats, err := IndexAll(db, root, analyze.New(), 50, 20, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 1, stats.Updated)

	row, err := db.GetChatByKey("WhatsApp Chat with Em")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "Em", row.Title)
	assert.Equal(t, 3, row.TotalMessages)
	assert.Equal(t, "2019-08-19", row.FirstDay)
	assert.Equal(t, "2019-08-19", row.LastDay)
	assert.Contains(t, row.Summary, "\"total_messages\":3")

	msgs, err := db.GetMessages("WhatsApp Chat with Em")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "Addy", msgs[0].Sender)
	assert.Equal(t, "pizza night tonight?", msgs[0].Text)
	assert.Equal(t, 1, msgs[0].LineNumber)

	// unchanged file is skipped on a second run
	stats, err = IndexAll(db, root, analyze.New(), 50, 20, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Updated)

	// removed file is pruned
	require.NoError(t, os.Remove(path))
	stats, err = IndexAll(db, root, analyze.New(), 50, 20, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pruned)

	n, err := db.ChatCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestIndexAllSkipsNonChatFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("just some notes\nno headers"), 0o644))

	db := newTestDB(t)
	stats, err := IndexAll(db, root, analyze.New(), 50, 20, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)

	// the file parsed to zero messages, so no chat row was written
	n, err := db.ChatCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestGetMessagesWindow(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o644))

	db := newTestDB(t)
	_, err := IndexAll(db, root, analyze.New(), 50, 20, log.New(io.Discard))
	require.NoError(t, err)

	msgs, hitIdx, startPos, total, err := db.GetMessagesWindow("chat", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 0, startPos)
	assert.Equal(t, 1, hitIdx)
	require.Len(t, msgs, 3)
	assert.Equal(t, "Em", msgs[1].Sender)

	// no hit loads the whole chat
	msgs, hitIdx, startPos, total, err = db.GetMessagesWindow("chat", -1, 1)
	require.NoError(t, err)
	assert.Equal(t, -1, hitIdx)
	assert.Equal(t, 0, startPos)
	assert.Len(t, msgs, total)
}
