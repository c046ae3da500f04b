// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the Lumen session engine as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/lumen-labs/lumen/internal/core"
	"github.com/lumen-labs/lumen/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the session engine and exposes it as MCP tools.
type Server struct {
	server *gomcp.Server
	engine core.SessionEngine
}

// NewServer creates a new MCP server around the given session engine.
func NewServer(engine core.SessionEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{engine: engine}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "lumen", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type emptyInput struct{}

type sessionOutput struct {
	ID                 string  `json:"id"`
	StartedAt          string  `json:"started_at"`
	EndedAt            string  `json:"ended_at,omitempty"`
	DurationMinutes    int     `json:"duration_minutes,omitempty"`
	Origin             string  `json:"origin"`
	InMorningPrime     bool    `json:"in_morning_prime"`
	InEveningPrime     bool    `json:"in_evening_prime"`
	QualifiesForStreak bool    `json:"qualifies_for_streak,omitempty"`
	Lat                float64 `json:"lat,omitempty"`
	Lon                float64 `json:"lon,omitempty"`
}

type logSessionInput struct {
	Date string `json:"date" jsonschema:"required,session date in YYYY-MM-DD format"`
	From string `json:"from" jsonschema:"required,start time in HH:MM format"`
	To   string `json:"to" jsonschema:"required,end time in HH:MM format"`
}

type statsOutput struct {
	DayStreak             int `json:"day_streak"`
	TodayMinutes          int `json:"today_minutes"`
	WeeklyMinutes         int `json:"weekly_minutes"`
	LastWeekMinutes       int `json:"last_week_minutes"`
	YesterdayPrimeMinutes int `json:"yesterday_prime_minutes"`
	TotalSessions         int `json:"total_sessions"`
}

type activeSessionOutput struct {
	Active  bool           `json:"active"`
	Session *sessionOutput `json:"session,omitempty"`
}

type historyInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of sessions to return (default 20)"`
}

type historyOutput struct {
	Sessions []sessionOutput `json:"sessions"`
	Count    int             `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "start_session",
		Description: "Start tracking an outdoor light session now. Fails if a session is already active.",
	}, s.handleStartSession)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "end_session",
		Description: "End the active light session and return its duration and prime-window classification.",
	}, s.handleEndSession)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "log_session",
		Description: "Record a past light session with an explicit date and time range. Classified against the prime windows of its own date.",
	}, s.handleLogSession)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_stats",
		Description: "Get the current streak, today's minutes, weekly totals, and session count.",
	}, s.handleGetStats)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_active_session",
		Description: "Get the currently running session, if any.",
	}, s.handleGetActiveSession)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_history",
		Description: "List recent completed sessions, newest first.",
	}, s.handleGetHistory)
}

// --- Tool handlers ---

func (s *Server) handleStartSession(ctx context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, sessionOutput, error) {
	snap, err := s.engine.StartAutomaticSession(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("starting session: %s", err)), sessionOutput{}, nil
	}
	return nil, sessionOutput{
		ID:             snap.ID,
		StartedAt:      snap.StartedAt.Format(time.RFC3339),
		Origin:         string(snap.Origin),
		InMorningPrime: snap.InMorningPrime,
		InEveningPrime: snap.InEveningPrime,
	}, nil
}

func (s *Server) handleEndSession(ctx context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, sessionOutput, error) {
	session, err := s.engine.EndSession(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("ending session: %s", err)), sessionOutput{}, nil
	}
	return nil, completedToOutput(*session), nil
}

func (s *Server) handleLogSession(ctx context.Context, _ *gomcp.CallToolRequest, input logSessionInput) (*gomcp.CallToolResult, sessionOutput, error) {
	day, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		return errorResult(fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", input.Date)), sessionOutput{}, nil
	}
	start, err := combine(day, input.From)
	if err != nil {
		return errorResult(fmt.Sprintf("invalid from time %q: expected HH:MM", input.From)), sessionOutput{}, nil
	}
	end, err := combine(day, input.To)
	if err != nil {
		return errorResult(fmt.Sprintf("invalid to time %q: expected HH:MM", input.To)), sessionOutput{}, nil
	}

	session, err := s.engine.AddManualSession(ctx, start, end)
	if err != nil {
		return errorResult(fmt.Sprintf("logging session: %s", err)), sessionOutput{}, nil
	}
	return nil, completedToOutput(*session), nil
}

func (s *Server) handleGetStats(ctx context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, statsOutput, error) {
	stats, err := s.engine.GetStats(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("computing stats: %s", err)), statsOutput{}, nil
	}
	return nil, statsOutput{
		DayStreak:             stats.DayStreak,
		TodayMinutes:          stats.TodayMinutes,
		WeeklyMinutes:         stats.WeeklyMinutes,
		LastWeekMinutes:       stats.LastWeekMinutes,
		YesterdayPrimeMinutes: stats.YesterdayPrimeMinutes,
		TotalSessions:         stats.TotalSessions,
	}, nil
}

func (s *Server) handleGetActiveSession(_ context.Context, _ *gomcp.CallToolRequest, _ emptyInput) (*gomcp.CallToolResult, activeSessionOutput, error) {
	snap := s.engine.GetActiveSession()
	if snap == nil {
		return nil, activeSessionOutput{Active: false}, nil
	}
	out := sessionOutput{
		ID:             snap.ID,
		StartedAt:      snap.StartedAt.Format(time.RFC3339),
		Origin:         string(snap.Origin),
		InMorningPrime: snap.InMorningPrime,
		InEveningPrime: snap.InEveningPrime,
	}
	return nil, activeSessionOutput{Active: true, Session: &out}, nil
}

func (s *Server) handleGetHistory(ctx context.Context, _ *gomcp.CallToolRequest, input historyInput) (*gomcp.CallToolResult, historyOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	sessions, err := s.engine.GetSessionHistory(ctx, limit)
	if err != nil {
		return errorResult(fmt.Sprintf("reading history: %s", err)), historyOutput{}, nil
	}

	out := historyOutput{Count: len(sessions)}
	for _, session := range sessions {
		out.Sessions = append(out.Sessions, completedToOutput(session))
	}
	return nil, out, nil
}

// --- Helpers ---

func completedToOutput(s models.Session) sessionOutput {
	out := sessionOutput{
		ID:                 s.ID,
		StartedAt:          s.StartedAt.Format(time.RFC3339),
		EndedAt:            s.EndedAt.Format(time.RFC3339),
		DurationMinutes:    s.DurationMinutes,
		Origin:             string(s.Origin),
		InMorningPrime:     s.InMorningPrime,
		InEveningPrime:     s.InEveningPrime,
		QualifiesForStreak: s.QualifiesForStreak,
	}
	if s.Location != nil {
		out.Lat = s.Location.Lat
		out.Lon = s.Location.Lon
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func combine(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
