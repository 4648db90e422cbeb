// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/kicks-cli/internal/domain"
	"github.com/xvierd/kicks-cli/internal/ports"
)

const (
	defaultHistoryDays = 7
	defaultUserLimit   = 20
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server   *server.MCPServer
	provider ports.MCPKickProvider
	ctx      context.Context
	cancel   context.CancelFunc
	now      func() time.Time
}

// NewServer creates a new MCP server instance.
func NewServer(provider ports.MCPKickProvider, version string) *Server {
	s := &Server{
		provider: provider,
		now:      time.Now,
	}

	s.server = server.NewMCPServer(
		"kicks",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: get_daily_kicks
	dailyTool := mcp.NewTool(
		"get_daily_kicks",
		mcp.WithDescription("Fetch today's baby kick count for a user, with progress toward the daily goal and an activity message"),
		mcp.WithString(
			"user_id",
			mcp.Required(),
			mcp.Description("Numeric user id"),
		),
	)
	s.server.AddTool(dailyTool, s.handleGetDailyKicks)

	// Tool: get_kick_history
	historyTool := mcp.NewTool(
		"get_kick_history",
		mcp.WithDescription("List locally recorded kick count snapshots for a user"),
		mcp.WithString(
			"user_id",
			mcp.Required(),
			mcp.Description("Numeric user id"),
		),
		mcp.WithNumber(
			"days",
			mcp.Description("How many days back to include (default: 7)"),
		),
	)
	s.server.AddTool(historyTool, s.handleGetKickHistory)

	// Tool: list_known_users
	usersTool := mcp.NewTool(
		"list_known_users",
		mcp.WithDescription("List users whose kick counts were viewed before, most recent first"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of users (default: 20)"),
		),
	)
	s.server.AddTool(usersTool, s.handleListKnownUsers)
}

// Start begins serving MCP requests over stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// handleGetDailyKicks handles the get_daily_kicks tool.
func (s *Server) handleGetDailyKicks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, errResult := requireUser(request)
	if errResult != nil {
		return errResult, nil
	}

	state := s.provider.Lookup(ctx, user)
	return jsonResult(DailyKicksPayload(state))
}

// handleGetKickHistory handles the get_kick_history tool.
func (s *Server) handleGetKickHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, errResult := requireUser(request)
	if errResult != nil {
		return errResult, nil
	}

	days := int(request.GetFloat("days", defaultHistoryDays))
	if days <= 0 {
		days = defaultHistoryDays
	}
	since := domain.StartOfDay(s.now()).AddDate(0, 0, -(days - 1))

	snaps, err := s.provider.History(ctx, user, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get kick history: %w", err)
	}

	entries := make([]map[string]interface{}, 0, len(snaps))
	for _, snap := range snaps {
		entry := map[string]interface{}{
			"id":          snap.ID,
			"day":         snap.Day.Format("2006-01-02"),
			"total_kicks": int(snap.TotalKicks),
			"outcome":     string(snap.Outcome),
			"fetched_at":  snap.FetchedAt.Format(time.RFC3339),
		}
		if snap.Error != "" {
			entry["error"] = snap.Error
		}
		entries = append(entries, entry)
	}

	return jsonResult(map[string]interface{}{
		"user_id":   user.String(),
		"since":     since.Format("2006-01-02"),
		"snapshots": entries,
		"total":     len(entries),
	})
}

// handleListKnownUsers handles the list_known_users tool.
func (s *Server) handleListKnownUsers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", defaultUserLimit))
	if limit <= 0 {
		limit = defaultUserLimit
	}

	users, err := s.provider.KnownUsers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	list := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		list = append(list, map[string]interface{}{
			"user_id":   u.ID.String(),
			"label":     u.Label,
			"last_seen": u.LastSeen.Format(time.RFC3339),
		})
	}

	return jsonResult(map[string]interface{}{
		"users": list,
		"total": len(list),
	})
}

// DailyKicksPayload is the JSON shape shared by the MCP tool and
// `kicks today --json`.
func DailyKicksPayload(state domain.FetchState) map[string]interface{} {
	p := state.Proportion()
	payload := map[string]interface{}{
		"user_id":     state.Identity.String(),
		"total_kicks": int(state.Count),
		"goal":        domain.DailyGoal,
		"achieved":    p.Achieved,
		"remaining":   p.Remaining,
		"message":     state.Message().OneLine(),
		"caption":     state.Count.Caption(),
		"outcome":     string(state.Outcome()),
	}
	if state.Err != nil {
		payload["error"] = state.Err.Error()
	}
	return payload
}

func requireUser(request mcp.CallToolRequest) (domain.UserIdentity, *mcp.CallToolResult) {
	raw, err := request.RequireString("user_id")
	if err != nil {
		return "", mcp.NewToolResultError("user_id is required: " + err.Error())
	}
	user, err := domain.ParseUserIdentity(raw)
	if err != nil {
		return "", mcp.NewToolResultError(fmt.Sprintf("invalid user_id %q: %v", raw, err))
	}
	return user, nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
