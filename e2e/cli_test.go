package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibingo/aibingo-go/internal/api"
	"github.com/aibingo/aibingo-go/internal/factory"
	"github.com/aibingo/aibingo-go/internal/services/auth"
	"github.com/aibingo/aibingo-go/internal/services/card"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "aibingo-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/aibingo")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	app      *factory.App
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	authCfg := auth.DefaultConfig()
	authCfg.TokenSecret = []byte("e2e-secret")

	app, err := factory.New(factory.Config{AuthConfig: authCfg})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:             testLogger(),
		AuthService:        app.AuthService,
		SessionController:  app.SessionController,
		ProgressController: app.ProgressController,
		LeaderboardService: app.LeaderboardService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		app:  app,
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

// loginToken mints a magic-link token server-side, standing in for the
// emailed link
func (ts *testServer) loginToken(t *testing.T, email string) string {
	t.Helper()
	token, err := ts.app.AuthService.IssueLoginToken(email)
	require.NoError(t, err)
	return token
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Participant struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	} `json:"participant"`
	SessionToken string `json:"session_token"`
}

type sessionResponse struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	FacilitatorEmail string `json:"facilitator_email"`
	BonusEnabled     bool   `json:"bonus_enabled"`
}

type sessionStateResponse struct {
	Session sessionResponse `json:"session"`
	Roster  []struct {
		DisplayName   string `json:"display_name"`
		CompletedCore int    `json:"completed_core"`
		BingoLines    int    `json:"bingo_lines"`
	} `json:"roster"`
}

type gameStateResponse struct {
	CardLayout  []string          `json:"card_layout"`
	Statuses    map[string]string `json:"statuses"`
	BingoLines  int               `json:"bingo_lines"`
	BonusPoints int               `json:"bonus_points"`
}

type completionResponse struct {
	Tier string `json:"tier"`
	Core *struct {
		CompletedCount int `json:"completed_count"`
	} `json:"core"`
}

type leaderboardResponse struct {
	SessionCode string `json:"session_code"`
	Entries     []struct {
		Rank  int    `json:"rank"`
		Name  string `json:"name"`
		Score int    `json:"score"`
	} `json:"entries"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AuthCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Verify a magic-link token; the CLI saves the session token
	output, err := cli.run("auth", "verify", "--token", ts.loginToken(t, "jane@example.com"))
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "jane@example.com", authResp.Participant.Email)
	assert.Equal(t, "jane", authResp.Participant.DisplayName)
	assert.NotEmpty(t, authResp.SessionToken)

	// Me uses the saved token
	output, err = cli.run("auth", "me")
	require.NoError(t, err, "output: %s", output)

	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, "jane@example.com", me.Email)

	// Logout clears the token; me fails afterwards
	_, err = cli.run("auth", "logout")
	require.NoError(t, err)

	output, err = cli.run("auth", "me")
	require.Error(t, err, "output: %s", output)
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Facilitator and participant log in with separate tokens
	output, err := cli.runWithToken("", "auth", "verify", "--token", ts.loginToken(t, "teach@example.com"))
	require.NoError(t, err, "output: %s", output)
	var facilitator authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &facilitator))

	output, err = cli.runWithToken("", "auth", "verify", "--token", ts.loginToken(t, "jane@example.com"))
	require.NoError(t, err, "output: %s", output)
	var participant authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &participant))

	// Facilitator creates a session
	output, err = cli.runWithToken(facilitator.SessionToken, "session", "create")
	require.NoError(t, err, "output: %s", output)
	var sess sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sess))
	assert.Len(t, sess.Code, 6)

	// Participant joins and reads their card
	output, err = cli.runWithToken(participant.SessionToken, "session", "join", sess.Code)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.runWithToken(participant.SessionToken, "game", "state")
	require.NoError(t, err, "output: %s", output)
	var game gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	require.Len(t, game.CardLayout, card.CardSize)

	target := game.CardLayout[0]

	// Completing before unlock fails
	output, err = cli.runWithToken(participant.SessionToken, "game", "complete", target)
	require.Error(t, err, "output: %s", output)

	// Facilitator unlocks, participant completes
	output, err = cli.runWithToken(facilitator.SessionToken, "session", "unlock", sess.ID, target)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.runWithToken(participant.SessionToken, "game", "complete", target)
	require.NoError(t, err, "output: %s", output)
	var completion completionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &completion))
	assert.Equal(t, "core", completion.Tier)
	require.NotNil(t, completion.Core)
	assert.Equal(t, 1, completion.Core.CompletedCount)

	// Facilitator dashboard shows the progress
	output, err = cli.runWithToken(facilitator.SessionToken, "session", "state", sess.ID)
	require.NoError(t, err, "output: %s", output)
	var state sessionStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &state))
	require.Len(t, state.Roster, 1)
	assert.Equal(t, 1, state.Roster[0].CompletedCore)

	// Leaderboard ranks the participant
	output, err = cli.runWithToken(participant.SessionToken, "leaderboard")
	require.NoError(t, err, "output: %s", output)
	var board leaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	assert.Equal(t, sess.Code, board.SessionCode)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, 1, board.Entries[0].Score)

	// Facilitator terminates the session
	output, err = cli.runWithToken(facilitator.SessionToken, "session", "terminate", sess.ID)
	require.NoError(t, err, "output: %s", output)
}
