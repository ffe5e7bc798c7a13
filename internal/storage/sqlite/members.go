package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/splitbill/internal/models"
)

// AddMember inserts a new member into an existing group.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if _, err := s.GetGroup(ctx, member.GroupID); err != nil {
		return err
	}

	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, group_id, name, created_at) VALUES (?, ?, ?, ?)",
		member.ID, member.GroupID, member.Name, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

// ListMembers retrieves a group's members in the order they were added.
func (s *SQLiteStore) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, name, created_at
		 FROM members WHERE group_id = ? ORDER BY created_at, rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		if err := rows.Scan(&member.ID, &member.GroupID, &member.Name, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// RemoveMember deletes a member from a group. Expenses that reference the
// member keep its ID.
func (s *SQLiteStore) RemoveMember(ctx context.Context, groupID, memberID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM members WHERE group_id = ? AND id = ?",
		groupID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	return expectAffected(result, "member", memberID)
}
