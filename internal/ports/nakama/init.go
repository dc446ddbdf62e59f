package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"blackjack/internal/bot"
)

// InitModule wires RPCs, hooks and the match handler into the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameBlackjack, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(), nil
	}); err != nil {
		return err
	}

	// Bot accounts are provisioned once at startup so their user IDs exist
	// before any match seats them.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if env["blackjack_bots_enabled"] == "true" {
		if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
			logger.Warn("InitModule: Bot identities unavailable: %v", err)
		} else if err := bot.ProvisionBots(ctx, nk, logger); err != nil {
			logger.Warn("InitModule: Bot provisioning incomplete: %v", err)
		}
	}

	logger.Info("Blackjack Go module loaded.")
	return nil
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcInviteToken, rpcInviteToken)
}
