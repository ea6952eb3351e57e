// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/review-forms/pkg/types"
)

// QueryOptions holds the filters for field queries.
type QueryOptions struct {
	// Artifact filters by artifact name.
	Artifact string

	// Holder filters by the role that fills the field in.
	Holder types.Role

	// Kind filters by field kind (text or checkbox).
	Kind types.FieldKind
}

// IsEmpty reports whether no filter is set.
func (o QueryOptions) IsEmpty() bool {
	return o.Artifact == "" && o.Holder == "" && o.Kind == ""
}

// FieldEntry is one manifest row: a form field with the artifact it belongs
// to and its position within that artifact.
type FieldEntry struct {
	Artifact string `json:"artifact" yaml:"artifact"`
	Position int    `json:"position" yaml:"position"`
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
	Prompt   string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Holder   string `json:"holder,omitempty" yaml:"holder,omitempty"`
}

// Query returns manifest rows matching the filters, ordered by artifact and
// position.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]FieldEntry, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT artifact, position, name, kind, prompt, holder FROM fields WHERE 1=1`)

	if opts.Artifact != "" {
		qb.WriteString(` AND artifact = ?`)
		args = append(args, opts.Artifact)
	}
	if opts.Holder != "" {
		qb.WriteString(` AND holder = ?`)
		args = append(args, string(opts.Holder))
	}
	if opts.Kind != "" {
		qb.WriteString(` AND kind = ?`)
		args = append(args, string(opts.Kind))
	}

	qb.WriteString(` ORDER BY artifact, position`)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying manifest: %w", err)
	}
	defer rows.Close()

	var entries []FieldEntry
	for rows.Next() {
		var (
			e      FieldEntry
			prompt sql.NullString
			holder sql.NullString
		)
		if err := rows.Scan(&e.Artifact, &e.Position, &e.Name, &e.Kind, &prompt, &holder); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if prompt.Valid {
			e.Prompt = prompt.String
		}
		if holder.Valid {
			e.Holder = holder.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
