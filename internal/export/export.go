// Package export writes the task list as YAML or JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/balkashynov/hwk/internal/models"
)

// Formats accepted by Marshal
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Document is the exported file
type Document struct {
	ExportedAt time.Time `yaml:"exported_at" json:"exported_at"`
	Count      int       `yaml:"count" json:"count"`
	Tasks      []Entry   `yaml:"tasks" json:"tasks"`
}

// Entry is one task with its deadline as a plain date
type Entry struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Subject     string `yaml:"subject" json:"subject"`
	Priority    string `yaml:"priority" json:"priority"`
	Deadline    string `yaml:"deadline" json:"deadline"`
	Completed   bool   `yaml:"completed" json:"completed"`
	Source      string `yaml:"source" json:"source"`
}

// NewDocument builds a document from tasks
func NewDocument(tasks []models.Task, exportedAt time.Time) Document {
	entries := make([]Entry, 0, len(tasks))
	for _, t := range tasks {
		entries = append(entries, Entry{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Subject:     string(t.Subject),
			Priority:    string(t.Priority),
			Deadline:    t.Deadline.Format(time.DateOnly),
			Completed:   t.Completed,
			Source:      string(t.Source),
		})
	}
	return Document{
		ExportedAt: exportedAt.UTC().Truncate(time.Second),
		Count:      len(entries),
		Tasks:      entries,
	}
}

// Marshal encodes doc in the given format
func Marshal(doc Document, format string) ([]byte, error) {
	switch format {
	case "", FormatYAML:
		content, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("yaml marshal: %w", err)
		}
		return content, nil
	case FormatJSON:
		content, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("json marshal: %w", err)
		}
		return append(content, '\n'), nil
	default:
		return nil, fmt.Errorf("invalid format '%s'. Use: yaml, json", format)
	}
}

// Write encodes doc to w
func Write(w io.Writer, doc Document, format string) error {
	content, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}

// WriteFile encodes doc and replaces path atomically: the content goes to a
// temp file in the same directory which is then renamed over path.
func WriteFile(path string, doc Document, format string) error {
	content, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	return AtomicWriteRaw(path, content)
}

// AtomicWriteRaw writes content to path via temp file and rename
func AtomicWriteRaw(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".hwk-export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		// No-ops once the rename succeeded
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
