package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/marcus/stickies/internal/stickynotes"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newListCmd(opts *options) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all notes in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withStore(cmd, func(store *stickynotes.NoteStore) error {
				notes, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), notes)
				}
				printNotes(cmd.OutOrStdout(), notes)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print notes as a JSON array")
	return cmd
}

func newAddCmd(opts *options) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add [--title TITLE] BODY...",
		Short: "Append a note",
		Long:  "Append a note. The body is the remaining arguments joined by spaces; title and body are trimmed.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := strings.TrimSpace(strings.Join(args, " "))
			if body == "" {
				return errors.New("note body must not be blank")
			}
			return opts.withStore(cmd, func(store *stickynotes.NoteStore) error {
				note, err := store.Add(cmd.Context(), strings.TrimSpace(title), body)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), note.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	return cmd
}

func newEditCmd(opts *options) *cobra.Command {
	var title, body string

	cmd := &cobra.Command{
		Use:   "edit ID [--title TITLE] [--body BODY]",
		Short: "Change the title or body of a note",
		Long:  "Change the title or body of a note. Values are stored as given; omitted flags keep the current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			titleSet := cmd.Flags().Changed("title")
			bodySet := cmd.Flags().Changed("body")
			if !titleSet && !bodySet {
				return errors.New("nothing to change: pass --title and/or --body")
			}

			return opts.withStore(cmd, func(store *stickynotes.NoteStore) error {
				// Omitted fields keep their current value. Whether the note
				// exists is decided by Update alone.
				if !titleSet || !bodySet {
					notes, err := store.List(cmd.Context())
					if err != nil {
						return err
					}
					if current, ok := findNote(notes, id); ok {
						if !titleSet {
							title = current.Title
						}
						if !bodySet {
							body = current.Body
						}
					}
				}

				ok, err := store.Update(cmd.Context(), id, title, body)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no note with id %q", id)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "new body")
	return cmd
}

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"delete"},
		Short:   "Delete notes by id",
		Long:    "Delete notes by id. Unknown ids are ignored. Prints the number of notes left.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(store *stickynotes.NoteStore) error {
				var remaining int
				for _, id := range args {
					n, err := store.Delete(cmd.Context(), id)
					if err != nil {
						return err
					}
					remaining = n
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d notes left\n", remaining)
				return nil
			})
		},
	}
}

// exportDocument is the layout written by export, matching the stored file.
type exportDocument struct {
	Notes []stickynotes.Note `json:"notes" yaml:"notes"`
}

func newExportCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all notes to stdout as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			return opts.withStore(cmd, func(store *stickynotes.NoteStore) error {
				notes, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				doc := exportDocument{Notes: notes}
				if format == "yaml" {
					enc := yaml.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent(2)
					if err := enc.Encode(doc); err != nil {
						return fmt.Errorf("encode yaml: %w", err)
					}
					return enc.Close()
				}
				return writeJSON(cmd.OutOrStdout(), doc)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// printNotes writes a plain listing: id and title, then the indented body.
func printNotes(w io.Writer, notes []stickynotes.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes.")
		return
	}
	for i, n := range notes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if n.Title != "" {
			fmt.Fprintf(w, "%s  %s\n", n.ID, n.Title)
		} else {
			fmt.Fprintln(w, n.ID)
		}
		for _, line := range strings.Split(n.Body, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

func findNote(notes []stickynotes.Note, id string) (stickynotes.Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return stickynotes.Note{}, false
}
