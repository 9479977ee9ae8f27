package api

import (
	"context"
	"net/http"
)

// Group is one role: a named bundle of permission strings.
type Group struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// GroupInput is the create/update payload for a group.
type GroupInput struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// PermissionEntry is one assignable permission as listed by the roles
// screen, grouped by its application label.
type PermissionEntry struct {
	ID       int    `json:"id"`
	App      string `json:"app_label"`
	Codename string `json:"codename"`
	Name     string `json:"name"`
}

// GroupsService manages the roles and permissions screen.
type GroupsService struct {
	crud[Group, GroupInput]
}

// Groups returns the groups service.
func (c *Client) Groups() GroupsService {
	return GroupsService{crud[Group, GroupInput]{c: c, path: "/api/groups/"}}
}

// Permissions lists every assignable permission.
func (s GroupsService) Permissions(ctx context.Context) ([]PermissionEntry, error) {
	var out []PermissionEntry
	if err := s.c.do(ctx, http.MethodGet, "/api/permissions/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
