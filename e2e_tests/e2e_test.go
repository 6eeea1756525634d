// End-to-end flow against a locally running API (cmd/api) backed by a local
// MongoDB instance. Start the server on :8080 before running these.
package e2etests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"testing"
	"time"
)

const (
	baseURL   = "http://localhost:8080"
	timeout   = 5 * time.Second
	waitReady = 20 * time.Second
)

var httpClient = &http.Client{Timeout: timeout}

func TestE2E_SessionFlow(t *testing.T) {
	waitUntilReady(t)

	code := uniqCode("flow")

	t.Run("create_session", func(t *testing.T) {
		status, body := postJSON(t, "/sessions", map[string]any{
			"sessionCode": code,
			"initialFee":  10,
			"players": []map[string]any{
				{"name": "Alice", "budget": 100},
				{"name": "Bob", "budget": 80},
			},
		})
		if status != http.StatusOK {
			t.Fatalf("create: want 200, got %d (%v)", status, body)
		}
		if body["sessionId"] == nil {
			t.Fatalf("create: missing sessionId: %v", body)
		}

		session := sessionDoc(t, body)
		if session["bankBalance"] != float64(20) {
			t.Fatalf("bankBalance: want 20, got %v", session["bankBalance"])
		}
	})

	t.Run("get_after_create", func(t *testing.T) {
		status, body := getJSON(t, "/sessions/"+code)
		if status != http.StatusOK {
			t.Fatalf("get: want 200, got %d", status)
		}

		session := sessionDoc(t, body)
		players, _ := session["players"].([]any)
		if len(players) != 2 {
			t.Fatalf("players: want 2, got %d", len(players))
		}

		alice, _ := players[0].(map[string]any)
		if alice["budget"] != float64(90) || alice["initialBudget"] != float64(100) {
			t.Fatalf("alice after fee: %v", alice)
		}
	})

	t.Run("win_bet_moves_budget_and_bank", func(t *testing.T) {
		status, body := postJSON(t, "/sessions/"+code+"/bet", map[string]any{
			"playerName": "Alice",
			"amount":     15,
			"bankChange": -15,
		})
		if status != http.StatusOK {
			t.Fatalf("bet: want 200, got %d (%v)", status, body)
		}

		_, body = getJSON(t, "/sessions/"+code)
		session := sessionDoc(t, body)

		players, _ := session["players"].([]any)
		alice, _ := players[0].(map[string]any)
		if alice["budget"] != float64(105) {
			t.Fatalf("alice budget: want 105, got %v", alice["budget"])
		}
		if session["bankBalance"] != float64(5) {
			t.Fatalf("bank: want 5, got %v", session["bankBalance"])
		}

		txns, _ := session["transactions"].([]any)
		last, _ := txns[len(txns)-1].(map[string]any)
		if last["type"] != "WIN" {
			t.Fatalf("last txn type: want WIN, got %v", last["type"])
		}
	})

	t.Run("zero_amount_bet_is_loss", func(t *testing.T) {
		status, _ := postJSON(t, "/sessions/"+code+"/bet", map[string]any{
			"playerName": "Bob",
			"amount":     0,
			"bankChange": 0,
		})
		if status != http.StatusOK {
			t.Fatalf("bet: want 200, got %d", status)
		}

		_, body := getJSON(t, "/sessions/"+code)
		txns, _ := sessionDoc(t, body)["transactions"].([]any)
		last, _ := txns[len(txns)-1].(map[string]any)
		if last["type"] != "LOSS" {
			t.Fatalf("zero bet type: want LOSS, got %v", last["type"])
		}
	})

	t.Run("bet_unknown_player_404", func(t *testing.T) {
		status, _ := postJSON(t, "/sessions/"+code+"/bet", map[string]any{
			"playerName": "Ghost",
			"amount":     5,
			"bankChange": -5,
		})
		if status != http.StatusNotFound {
			t.Fatalf("bet miss: want 404, got %d", status)
		}
	})

	t.Run("continue_round_replaces_players", func(t *testing.T) {
		status, _ := postJSON(t, "/sessions/"+code+"/continue", map[string]any{
			"initialFee":  20,
			"bankBalance": 45,
			"players": []map[string]any{
				{"name": "Alice", "budget": 105, "initialBudget": 100},
			},
		})
		if status != http.StatusOK {
			t.Fatalf("continue: want 200, got %d", status)
		}

		_, body := getJSON(t, "/sessions/"+code)
		session := sessionDoc(t, body)

		players, _ := session["players"].([]any)
		if len(players) != 1 {
			t.Fatalf("players after continue: want 1, got %d", len(players))
		}

		alice, _ := players[0].(map[string]any)
		if alice["budget"] != float64(85) {
			t.Fatalf("alice after new fee: want 85, got %v", alice["budget"])
		}

		if session["bankBalance"] != float64(45) {
			t.Fatalf("bank after continue: want 45, got %v", session["bankBalance"])
		}

		// Prior log preserved: 2 fees + 2 bets + 1 new fee.
		txns, _ := session["transactions"].([]any)
		if len(txns) != 5 {
			t.Fatalf("transactions after continue: want 5, got %d", len(txns))
		}
	})

	t.Run("end_session", func(t *testing.T) {
		status, _ := postJSON(t, "/sessions/"+code+"/end", nil)
		if status != http.StatusOK {
			t.Fatalf("end: want 200, got %d", status)
		}

		_, body := getJSON(t, "/sessions/"+code)
		session := sessionDoc(t, body)
		if session["status"] != "completed" {
			t.Fatalf("status: want completed, got %v", session["status"])
		}
		if session["endedAt"] == nil {
			t.Fatalf("endedAt missing")
		}
	})

	t.Run("recent_returns_at_most_two", func(t *testing.T) {
		status, body := getJSON(t, "/sessions/recent")
		if status != http.StatusOK {
			t.Fatalf("recent: want 200, got %d", status)
		}

		list, _ := body["sessions"].([]any)
		if len(list) > 2 {
			t.Fatalf("recent: want at most 2, got %d", len(list))
		}
	})
}

func TestE2E_Validation(t *testing.T) {
	waitUntilReady(t)

	t.Run("create_without_players", func(t *testing.T) {
		status, _ := postJSON(t, "/sessions", map[string]any{
			"sessionCode": uniqCode("empty"),
			"initialFee":  10,
			"players":     []map[string]any{},
		})
		if status != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", status)
		}
	})

	t.Run("bet_without_amount", func(t *testing.T) {
		status, _ := postJSON(t, "/sessions/whatever/bet", map[string]any{
			"playerName": "Alice",
			"bankChange": 0,
		})
		if status != http.StatusBadRequest {
			t.Fatalf("want 400, got %d", status)
		}
	})

	t.Run("get_unknown_session", func(t *testing.T) {
		status, _ := getJSON(t, "/sessions/"+uniqCode("missing"))
		if status != http.StatusNotFound {
			t.Fatalf("want 404, got %d", status)
		}
	})
}

// --- helpers ---

func waitUntilReady(t *testing.T) {
	t.Helper()

	deadline := time.Now().Add(waitReady)
	for time.Now().Before(deadline) {
		resp, err := httpClient.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}

		time.Sleep(250 * time.Millisecond)
	}

	t.Fatalf("server not ready at %s after %v", baseURL, waitReady)
}

func postJSON(t *testing.T, path string, payload any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if payload != nil {
		err := json.NewEncoder(&buf).Encode(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}

	resp, err := httpClient.Post(baseURL+path, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp)
}

func getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	resp, err := httpClient.Get(baseURL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var body map[string]any

	err := json.NewDecoder(resp.Body).Decode(&body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}

	return body
}

func sessionDoc(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	s, ok := body["session"].(map[string]any)
	if !ok {
		t.Fatalf("session missing in response: %v", body)
	}

	return s
}

func uniqCode(prefix string) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().UnixNano(), rand.Intn(10000))
}
