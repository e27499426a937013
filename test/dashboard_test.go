package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/2beens/fitnessdash/internal/dashboard"
	"github.com/2beens/fitnessdash/internal/spreadsheet"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var noRedirectClient = &http.Client{
	Timeout: 10 * time.Second,
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func (s *IntegrationTestSuite) getSummary() dashboard.SummaryResponse {
	resp, err := noRedirectClient.Get(serverEndpoint + "/api/summary")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var summary dashboard.SummaryResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&summary))
	return summary
}

func (s *IntegrationTestSuite) TestSummary_CachedInRedis() {
	first := s.getSummary()
	s.False(first.Cached)
	s.Equal(3, first.Summary.TotalSessions)
	s.Equal(2, first.Summary.UniqueWorkouts)
	s.Equal(6, first.Summary.TotalMovements)

	keys, err := s.redisClient.Keys(context.Background(), "fitnessdash::*").Result()
	s.Require().NoError(err)
	s.NotEmpty(keys)

	second := s.getSummary()
	s.True(second.Cached)
	s.Equal(first.Summary.TotalSessions, second.Summary.TotalSessions)
}

func (s *IntegrationTestSuite) TestRefresh_PicksUpNewRows() {
	s.Equal(3, s.getSummary().Summary.TotalSessions)

	rows := append(slices.Clone(initialRows), []any{"2024-01-05", "Leg Day", 70, "Squat", 225, 5, 5, "", "", "", ""})
	s.Require().NoError(writeWorkbook(s.workbookPath, rows))

	// still served from the cache
	s.Equal(3, s.getSummary().Summary.TotalSessions)

	resp, err := noRedirectClient.Post(serverEndpoint+"/api/refresh", "application/json", nil)
	s.Require().NoError(err)
	var refreshed dashboard.RefreshResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&refreshed))
	_ = resp.Body.Close()
	s.True(refreshed.Refreshed)

	summary := s.getSummary()
	s.False(summary.Cached)
	s.Equal(4, summary.Summary.TotalSessions)
	s.Equal(3, summary.Summary.UniqueWorkouts)
}

func (s *IntegrationTestSuite) TestRefresh_RateLimited() {
	form := url.Values{"return": {"/summary"}}

	// the page and the api refresh share one limit
	for i := 0; i < refreshAllowedPerMin; i++ {
		var resp *http.Response
		var err error
		if i%2 == 0 {
			resp, err = noRedirectClient.PostForm(serverEndpoint+"/refresh", form)
		} else {
			resp, err = noRedirectClient.Post(serverEndpoint+"/api/refresh", "application/json", nil)
		}
		s.Require().NoError(err)
		_ = resp.Body.Close()
		s.Less(resp.StatusCode, http.StatusBadRequest, "refresh #%d", i+1)
	}

	resp, err := noRedirectClient.PostForm(serverEndpoint+"/refresh", form)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusTooEarly, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestPages() {
	for _, path := range []string{"/", "/summary", "/workouts", "/workouts/Push%20Day?tab=trends", "/progress"} {
		resp, err := noRedirectClient.Get(serverEndpoint + path)
		s.Require().NoError(err)
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		s.Require().NoError(err)

		s.Equal(http.StatusOK, resp.StatusCode, path)
		s.True(strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"), path)
		s.NotContains(string(body), "Something went wrong", path)
	}

	resp, err := noRedirectClient.Get(serverEndpoint + "/workouts/Leg%20Day")
	s.Require().NoError(err)
	_ = resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestConnection() {
	resp, err := noRedirectClient.Get(serverEndpoint + "/api/connection")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var status spreadsheet.ConnectionStatus
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&status))
	s.True(status.OK)
	s.Equal(11, status.Columns)
}

func (s *IntegrationTestSuite) TestMCP_OverHTTP() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "integration-test", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: serverEndpoint + "/mcp"}, nil)
	s.Require().NoError(err)
	defer func() { _ = session.Close() }()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "list_workout_types",
		Arguments: map[string]any{},
	})
	s.Require().NoError(err)
	s.Require().False(res.IsError)
	s.Require().NotEmpty(res.Content)

	text, ok := res.Content[0].(*mcp.TextContent)
	s.Require().True(ok)
	s.Contains(text.Text, "Push Day")
	s.Contains(text.Text, "Pull Day")
}
