package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"blackjack/internal/app/invite"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InviteTokenRequest asks for a private-table invite on behalf of a seated
// host. InviteeID is the user the token admits.
type InviteTokenRequest struct {
	MatchID   string `json:"match_id"`
	InviteeID string `json:"invitee_id"`
}

// InviteTokenResponse carries the signed invite token back to the host.
type InviteTokenResponse struct {
	Token string `json:"token"`
}

func rpcInviteToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var request InviteTokenRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		return "", runtime.NewError("invalid invite request", 3)
	}
	if request.MatchID == "" || request.InviteeID == "" {
		return "", runtime.NewError("match_id and invitee_id are required", 3)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["blackjack_invite_secret"]
	if secret == "" {
		logger.Error("rpcInviteToken: blackjack_invite_secret is not configured")
		return "", runtime.NewError("invites are not enabled", 13)
	}

	token, err := invite.NewService(secret, "blackjack").GenerateToken(request.MatchID, request.InviteeID, time.Hour)
	if err != nil {
		logger.Error("rpcInviteToken: Failed to sign token: %v", err)
		return "", runtime.NewError("failed to create invite", 13)
	}

	b, _ := json.Marshal(InviteTokenResponse{Token: token})
	return string(b), nil
}
