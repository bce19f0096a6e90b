// Package mcpserver exposes the sticky notes as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/marcus/stickies/internal/stickynotes"
)

// NewServer creates an MCP server with tools for sticky note operations.
func NewServer(store *stickynotes.NoteStore, logger *slog.Logger, version string) *server.MCPServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := handlers{store: store, logger: logger}

	s := server.NewMCPServer(
		"stickies",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("list_notes",
			mcp.WithDescription("List all sticky notes in display order. Each note has an id, a title and a body."),
		),
		h.listNotes,
	)

	s.AddTool(
		mcp.NewTool("add_note",
			mcp.WithDescription("Append a sticky note. Title and body are trimmed; the body must not be blank. Returns the new note with its id."),
			mcp.WithString("title",
				mcp.Description("Optional short heading"),
			),
			mcp.WithString("body",
				mcp.Required(),
				mcp.Description("Note text, may span several lines"),
			),
		),
		h.addNote,
	)

	s.AddTool(
		mcp.NewTool("update_note",
			mcp.WithDescription("Replace the title and body of an existing note. The note keeps its id and position."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The note id (16 letters and digits)"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("New title, may be empty"),
			),
			mcp.WithString("body",
				mcp.Required(),
				mcp.Description("New body"),
			),
		),
		h.updateNote,
	)

	s.AddTool(
		mcp.NewTool("delete_note",
			mcp.WithDescription("Delete a note by id. Deleting an unknown id is not an error. Returns the number of notes left."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The note id"),
			),
		),
		h.deleteNote,
	)

	return s
}

type handlers struct {
	store  *stickynotes.NoteStore
	logger *slog.Logger
}

// deleteResult is returned by delete_note.
type deleteResult struct {
	ID        string `json:"id"`
	Remaining int    `json:"remaining"`
}

func (h handlers) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("mcp: list notes", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to list notes: %v", err)), nil
	}
	return jsonResult(notes)
}

func (h handlers) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body, err := req.RequireString("body")
	if err != nil {
		return mcp.NewToolResultError("body is required"), nil
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return mcp.NewToolResultError("body must not be blank"), nil
	}
	title := strings.TrimSpace(req.GetString("title", ""))

	note, err := h.store.Add(ctx, title, body)
	if err != nil {
		h.logger.Error("mcp: add note", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to add note: %v", err)), nil
	}
	h.logger.Debug("mcp: added note", "id", note.ID)
	return jsonResult(note)
}

func (h handlers) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil
	}
	body, err := req.RequireString("body")
	if err != nil {
		return mcp.NewToolResultError("body is required"), nil
	}

	ok, err := h.store.Update(ctx, id, title, body)
	if err != nil {
		h.logger.Error("mcp: update note", "id", id, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to update note: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no note with id %q", id)), nil
	}
	return jsonResult(stickynotes.Note{ID: id, Title: title, Body: body})
}

func (h handlers) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	remaining, err := h.store.Delete(ctx, id)
	if err != nil {
		h.logger.Error("mcp: delete note", "id", id, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete note: %v", err)), nil
	}
	return jsonResult(deleteResult{ID: id, Remaining: remaining})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
