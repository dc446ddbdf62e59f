package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchRequest optionally selects the table size for a created match.
type QuickMatchRequest struct {
	Seats int `json:"seats,omitempty"`
}

// QuickMatchResponse is the payload returned to clients when requesting an open table.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	request := QuickMatchRequest{Seats: 1}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &request); err != nil {
			return "", runtime.NewError("invalid quick match request", 3)
		}
	}
	if request.Seats != 1 && request.Seats != 2 {
		return "", runtime.NewError("seats must be 1 or 2", 3)
	}

	// Find a public table of the requested size with an open seat.
	query := fmt.Sprintf("+label.game:blackjack +label.seats:%d +label.open:>=1 -label.private:T", request.Seats)

	limit := 10
	authoritative := true
	minSize := 0
	maxSize := request.Seats

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcQuickMatch: MatchList error: %v", err)
		return "", err
	}

	if len(matches) > 0 {
		resp := QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		return string(b), nil
	}

	// Create new match; seat assignment happens in MatchJoin (server-authoritative).
	matchID, err := nk.MatchCreate(ctx, MatchNameBlackjack, map[string]interface{}{
		"seats": float64(request.Seats),
	})
	if err != nil {
		logger.Error("rpcQuickMatch: MatchCreate error: %v", err)
		return "", err
	}

	resp := QuickMatchResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
