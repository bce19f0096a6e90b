package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/marcus/stickies/internal/pluginstore"
	"github.com/marcus/stickies/internal/stickynotes"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlers(t *testing.T) handlers {
	t.Helper()
	storage := pluginstore.NewFileStorage(afero.NewMemMapFs(), "/data", stickynotes.PluginID)
	return handlers{store: stickynotes.NewNoteStore(storage), logger: slog.New(slog.DiscardHandler)}
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text
}

func TestNewServer(t *testing.T) {
	h := newHandlers(t)
	assert.NotNil(t, NewServer(h.store, nil, "test"))
}

func TestAddListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)

	res, err := h.addNote(ctx, call(map[string]any{"title": " Reminder ", "body": " Buy milk "}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var added stickynotes.Note
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &added))
	assert.Len(t, added.ID, stickynotes.IDLength)
	assert.Equal(t, "Reminder", added.Title)
	assert.Equal(t, "Buy milk", added.Body)

	res, err = h.updateNote(ctx, call(map[string]any{"id": added.ID, "title": "Reminder", "body": "Buy almond milk"}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	res, err = h.listNotes(ctx, call(nil))
	require.NoError(t, err)
	var listed []stickynotes.Note
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Buy almond milk", listed[0].Body)

	res, err = h.deleteNote(ctx, call(map[string]any{"id": added.ID}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+added.ID+`","remaining":0}`, resultText(t, res))
}

func TestAddRejectsBlankBody(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)

	for _, args := range []map[string]any{
		{"title": "only a title"},
		{"body": "   \n\t"},
	} {
		res, err := h.addNote(ctx, call(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "args %v", args)
	}

	notes, err := h.store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestUpdateUnknownIDIsToolError(t *testing.T) {
	h := newHandlers(t)

	res, err := h.updateNote(context.Background(), call(map[string]any{"id": "nope", "title": "", "body": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "nope")
}

func TestDeleteUnknownIDReportsCount(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)
	_, err := h.store.Add(ctx, "", "keep me")
	require.NoError(t, err)

	res, err := h.deleteNote(ctx, call(map[string]any{"id": "missing"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"id":"missing","remaining":1}`, resultText(t, res))
}

func TestMissingArguments(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)

	res, err := h.updateNote(ctx, call(map[string]any{"id": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.deleteNote(ctx, call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestListEmpty(t *testing.T) {
	h := newHandlers(t)
	res, err := h.listNotes(context.Background(), call(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, resultText(t, res))
}
