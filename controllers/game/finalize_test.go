package game

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"chipbook/services"
	"chipbook/settlement"

	"github.com/gofiber/fiber/v2"
)

func TestFinalizeErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "players still seated",
			err:     &services.PlayersRemainingError{Names: []string{"Alice Adams"}},
			status:  fiber.StatusConflict,
			message: "PLAYERS_STILL_SEATED",
		},
		{
			name:    "incomplete players",
			err:     &settlement.IncompletePlayersError{UserIDs: []int64{3, 8}},
			status:  fiber.StatusConflict,
			message: "INCOMPLETE_PLAYERS",
		},
		{
			name:    "pot mismatch",
			err:     &settlement.BalanceMismatchError{Pot: 2000, Delta: 100},
			status:  fiber.StatusConflict,
			message: "POT_MISMATCH",
		},
		{
			name:    "not active",
			err:     services.ErrNoActiveGame,
			status:  fiber.StatusConflict,
			message: "GAME_NOT_ACTIVE",
		},
		{
			name:    "no mvp",
			err:     services.ErrNoMvpFound,
			status:  fiber.StatusConflict,
			message: "NO_MVP_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/finalize", func(c *fiber.Ctx) error {
				return finalizeError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("POST", "/finalize", nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}

			body, _ := io.ReadAll(resp.Body)
			var envelope map[string]any
			if err := json.Unmarshal(body, &envelope); err != nil {
				t.Fatalf("bad JSON body %q: %v", body, err)
			}
			if envelope["message"] != tt.message {
				t.Fatalf("message = %v, want %s", envelope["message"], tt.message)
			}
		})
	}
}

func TestFinalizeErrorIncompletePlayersCarriesIDs(t *testing.T) {
	app := fiber.New()
	app.Post("/finalize", func(c *fiber.Ctx) error {
		return finalizeError(c, &settlement.IncompletePlayersError{UserIDs: []int64{3, 8}})
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/finalize", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var envelope struct {
		UserIDs []int64 `json:"user_ids"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("bad JSON body %q: %v", body, err)
	}
	if len(envelope.UserIDs) != 2 || envelope.UserIDs[0] != 3 || envelope.UserIDs[1] != 8 {
		t.Fatalf("user_ids = %v, want [3 8]", envelope.UserIDs)
	}
}
