package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
)

const defaultGroupName = "Split group"

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group, optionally with initial members.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	names := make([]string, 0, len(req.Msg.Members))
	for _, name := range req.Msg.Members {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("member name cannot be empty"))
		}
		names = append(names, name)
	}

	group := &models.Group{Name: strings.TrimSpace(req.Msg.Name)}
	if group.Name == "" {
		group.Name = defaultGroupName
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, storeError(err)
	}

	members := make([]*models.Member, 0, len(names))
	for _, name := range names {
		member := &models.Member{GroupID: group.ID, Name: name}
		if err := s.store.AddMember(ctx, member); err != nil {
			slog.Error("CreateGroup failed to add member", "group_id", group.ID, "error", err)
			return nil, storeError(err)
		}
		members = append(members, member)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&CreateGroupResponse{
		Group: toGroupMessage(group, members),
	}), nil
}

// GetGroup retrieves a group by ID together with its members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	members, err := s.store.ListMembers(ctx, group.ID)
	if err != nil {
		slog.Error("GetGroup failed to list members", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&GetGroupResponse{
		Group: toGroupMessage(group, members),
	}), nil
}

// ListGroups retrieves all groups, without members.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, storeError(err)
	}

	msgs := make([]*Group, len(groups))
	for i, group := range groups {
		msgs[i] = toGroupMessage(group, nil)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&ListGroupsResponse{Groups: msgs}), nil
}

// UpdateGroup renames an existing group.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error) {
	slog.Info("UpdateGroup request received",
		"group_id", req.Msg.GroupID,
		"name", req.Msg.Name,
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group name cannot be empty"))
	}

	if err := s.store.UpdateGroup(ctx, &models.Group{ID: req.Msg.GroupID, Name: name}); err != nil {
		slog.Error("UpdateGroup failed", "error", err)
		return nil, storeError(err)
	}

	// Fetch updated group to get CreatedAt
	updated, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("Failed to fetch updated group", "error", err)
		return nil, storeError(err)
	}
	members, err := s.store.ListMembers(ctx, updated.ID)
	if err != nil {
		return nil, storeError(err)
	}

	slog.Info("Group updated", "group_id", updated.ID)

	return connect.NewResponse(&UpdateGroupResponse{
		Group: toGroupMessage(updated, members),
	}), nil
}

// DeleteGroup removes a group with all its members and expenses.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)

	return connect.NewResponse(&DeleteGroupResponse{}), nil
}

// AddMember adds a person to a group. Names need not be unique.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupID)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("member name cannot be empty"))
	}

	member := &models.Member{GroupID: req.Msg.GroupID, Name: name}
	if err := s.store.AddMember(ctx, member); err != nil {
		slog.Error("AddMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Member added", "group_id", member.GroupID, "member_id", member.ID)

	return connect.NewResponse(&AddMemberResponse{Member: toMemberMessage(member)}), nil
}

// ListMembers returns a group's members in the order they were added.
func (s *GroupService) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, storeError(err)
	}

	members, err := s.store.ListMembers(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListMembers failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	msgs := make([]*Member, len(members))
	for i, m := range members {
		msgs[i] = toMemberMessage(m)
	}

	return connect.NewResponse(&ListMembersResponse{Members: msgs}), nil
}

// RemoveMember deletes a member. Expenses recorded with the member stay, and
// the settlement simply leaves the removed member out.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	slog.Info("RemoveMember request received",
		"group_id", req.Msg.GroupID,
		"member_id", req.Msg.MemberID,
	)

	if err := s.store.RemoveMember(ctx, req.Msg.GroupID, req.Msg.MemberID); err != nil {
		slog.Error("RemoveMember failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Member removed", "group_id", req.Msg.GroupID, "member_id", req.Msg.MemberID)

	return connect.NewResponse(&RemoveMemberResponse{}), nil
}
