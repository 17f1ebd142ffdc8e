// Package groups implements the read-only Group resource.
package groups

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/gamerack-go/apperror"
	"github.com/user/gamerack-go/auth"
)

// Group represents a named user group.
type Group struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GroupService lists groups.
type GroupService interface {
	ListGroups(ctx context.Context) ([]Group, error)
}

type groupServiceImpl struct {
	db *pgxpool.Pool
}

// NewGroupService creates a GroupService backed by the given pool.
func NewGroupService(db *pgxpool.Pool) GroupService {
	return &groupServiceImpl{db: db}
}

func (s *groupServiceImpl) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM groups ORDER BY id`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list groups", err)
	}
	defer rows.Close()

	groups := []Group{}
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan group", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read groups", err)
	}
	return groups, nil
}

// GroupHandlers handles HTTP requests for groups.
type GroupHandlers struct {
	service GroupService
}

// NewGroupHandlers creates new GroupHandlers.
func NewGroupHandlers(service GroupService) *GroupHandlers {
	return &GroupHandlers{service: service}
}

// HandleListGroups godoc
// @Summary List groups
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Success 200 {array} groups.Group
// @Failure 401 {object} apperror.ErrorResponse
// @Router /groups [get]
func (h *GroupHandlers) HandleListGroups() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.ListGroups(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, list)
	}
}
