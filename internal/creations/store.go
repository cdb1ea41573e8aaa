// Package creations persists generated design sets so they can be listed,
// reopened and exported later.
package creations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/themegen/internal/db"
	"github.com/ziadkadry99/themegen/internal/theme"
)

// Creation is one saved generation.
type Creation struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Prompt         string       `json:"prompt,omitempty"`
	AttachmentName string       `json:"attachmentName,omitempty"`
	AttachmentType string       `json:"attachmentType,omitempty"`
	Provider       string       `json:"provider,omitempty"`
	Model          string       `json:"model,omitempty"`
	InputTokens    int          `json:"inputTokens"`
	OutputTokens   int          `json:"outputTokens"`
	Source         theme.Source `json:"-"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// Result resolves the stored source into its canonical result.
func (c *Creation) Result() (theme.Result, error) {
	return c.Source.Resolve(c.Name)
}

// Summary is a Creation without its documents, for listings.
type Summary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Prompt     string    `json:"prompt,omitempty"`
	Model      string    `json:"model,omitempty"`
	ThemeNames []string  `json:"themeNames"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Store provides persistence for creations.
type Store struct {
	db *db.DB
}

// NewStore creates a new creations store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// Save inserts c, assigning an ID and timestamp when missing.
func (s *Store) Save(ctx context.Context, c *Creation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	sourceJSON, err := encodeSource(c.Source)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO creations (id, name, prompt, attachment_name, attachment_type, provider, model, input_tokens, output_tokens, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Prompt, c.AttachmentName, c.AttachmentType, c.Provider, c.Model,
		c.InputTokens, c.OutputTokens, sourceJSON, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving creation: %w", err)
	}
	return nil
}

// Get returns the creation with the given id, or nil if none exists.
func (s *Store) Get(ctx context.Context, id string) (*Creation, error) {
	c := &Creation{}
	var sourceJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, prompt, attachment_name, attachment_type, provider, model, input_tokens, output_tokens, source, created_at
		 FROM creations WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Prompt, &c.AttachmentName, &c.AttachmentType, &c.Provider, &c.Model,
		&c.InputTokens, &c.OutputTokens, &sourceJSON, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting creation: %w", err)
	}

	c.Source, err = theme.DecodeSource([]byte(sourceJSON))
	if err != nil {
		return nil, fmt.Errorf("creation %s: %w", id, err)
	}
	return c, nil
}

// List returns the newest creations first. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	query := `SELECT id, name, prompt, model, source, created_at FROM creations ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing creations: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		var sourceJSON string
		if err := rows.Scan(&sm.ID, &sm.Name, &sm.Prompt, &sm.Model, &sourceJSON, &sm.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning creation: %w", err)
		}
		sm.ThemeNames = themeNames(sourceJSON, sm.Name)
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Delete removes a creation. Deleting a missing id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM creations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting creation: %w", err)
	}
	return nil
}

func encodeSource(src theme.Source) (string, error) {
	var v any
	switch src.Kind {
	case theme.SourceVersions:
		if len(src.Versions) == 0 {
			return "", errors.New("saving creation: no designs")
		}
		v = map[string]any{"versions": src.Versions}
	case theme.SourceLegacy:
		v = map[string]any{"html": src.HTML}
	default:
		return "", fmt.Errorf("saving creation: unknown source kind %s", src.Kind)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling designs: %w", err)
	}
	return string(data), nil
}

func themeNames(sourceJSON, creationName string) []string {
	src, err := theme.DecodeSource([]byte(sourceJSON))
	if err != nil {
		return []string{}
	}
	result, err := src.Resolve(creationName)
	if err != nil {
		return []string{}
	}
	names := make([]string, 0, result.Len())
	for _, v := range result.Variants() {
		names = append(names, v.Name)
	}
	return names
}
