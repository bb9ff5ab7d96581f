package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind is the type of a recorded link.
type Kind string

const (
	KindTable  Kind = "table"
	KindSearch Kind = "search"
	KindRows   Kind = "rows"
)

// Link is one recorded link.
type Link struct {
	Seq       int64     `json:"seq"`
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Entity    string    `json:"entity"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOptions narrows List results.
type ListOptions struct {
	Entity string // only this entity (empty = all)
	Limit  int    // at most this many (<= 0 = all)
}

// Record stores link and returns it with ID, Seq and CreatedAt filled in.
// A caller-supplied ID is kept; otherwise a UUIDv7 is assigned.
func (s *Store) Record(ctx context.Context, link Link) (Link, error) {
	if link.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return Link{}, fmt.Errorf("record link: generate id: %w", err)
		}
		link.ID = id.String()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = s.now()
	}
	link.CreatedAt = link.CreatedAt.UTC().Truncate(time.Millisecond)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO links (id, kind, entity, url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		link.ID,
		string(link.Kind),
		link.Entity,
		link.URL,
		link.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Link{}, fmt.Errorf("record link: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return Link{}, fmt.Errorf("record link: read seq: %w", err)
	}
	link.Seq = seq
	return link, nil
}

// List returns recorded links, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Link, error) {
	query := `SELECT seq, id, kind, entity, url, created_at FROM links`
	var args []any
	if opts.Entity != "" {
		query += ` WHERE entity = ?`
		args = append(args, opts.Entity)
	}
	query += ` ORDER BY seq DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var (
			l         Link
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&l.Seq, &l.ID, &kind, &l.Entity, &l.URL, &createdAt); err != nil {
			return nil, fmt.Errorf("list links: scan: %w", err)
		}
		l.Kind = Kind(kind)
		l.CreatedAt = time.UnixMilli(createdAt).UTC()
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}
