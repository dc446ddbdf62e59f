package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"blackjack/internal/app"
	"blackjack/internal/app/invite"
	"blackjack/internal/bot"
	"blackjack/internal/config"
	"blackjack/internal/domain"
	"blackjack/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     []string                    `json:"seats"` // user ID per seat, empty string means open
	Tick      int64                       `json:"tick"`
	Private   bool                        `json:"private"`
	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Table     *domain.Table               `json:"-"`
	Invites   *invite.Service             `json:"-"`

	BotsEnabled      bool                  `json:"bots_enabled"`
	BotMinDelay      int                   `json:"bot_min_delay"`
	BotMaxDelay      int                   `json:"bot_max_delay"`
	BotAutoFillDelay int                   `json:"bot_auto_fill_delay"`
	BotWaitUntil     int64                 `json:"bot_wait_until"`
	LastSoloTick     int64                 `json:"last_solo_tick"`
	Bots             map[string]*bot.Agent `json:"-"`

	Economy ports.EconomyPort `json:"-"`
}

// MatchLabel is the JSON label advertised for match listing queries.
type MatchLabel struct {
	Open    int    `json:"open"`
	Game    string `json:"game"`
	Phase   string `json:"phase"`
	Seats   int    `json:"seats"`
	Private bool   `json:"private"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// seatOf returns the seat index occupied by the user, or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserId := range ms.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	for _, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return false
		}
	}
	return true
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	seatCount := 1
	if v, ok := params["seats"].(float64); ok && int(v) == 2 {
		seatCount = 2
	}
	private := false
	if v, ok := params["private"].(bool); ok {
		private = v
	}

	state := &MatchState{
		Seats:     make([]string, seatCount),
		Tick:      time.Now().Unix(),
		Private:   private,
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(newConfiguredShoe()),
		Table:     domain.NewTable(seatCount),
		Bots:      make(map[string]*bot.Agent),
		Economy:   NewNakamaEconomyAdapter(nk),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["blackjack_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["blackjack_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["blackjack_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["blackjack_invite_secret"]; ok && private {
		state.Invites = invite.NewService(val, "blackjack")
	}

	state.BotMinDelay, state.BotMaxDelay = normalizeBotDelays(state.BotMinDelay, state.BotMaxDelay)
	state.BotAutoFillDelay = 5
	if cfg := config.GetGameConfig(); cfg != nil && cfg.BotAutoFillDelaySeconds > 0 {
		state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds
	}

	labelBytes, err := marshalLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, labelBytes
}

// normalizeBotDelays fills in default bot action delays and orders the
// bounds so the random delay pick never sees an inverted range.
func normalizeBotDelays(min, max int) (int, int) {
	if min == 0 {
		min = 1
	}
	if max == 0 {
		max = 3
	}
	if min > max {
		min, max = max, min
	}
	return min, max
}

// newConfiguredShoe builds the dealing shoe selected by config. The finite
// deck is built once per match and reshuffled when it runs dry.
func newConfiguredShoe() domain.Shoe {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if cfg := config.GetGameConfig(); cfg != nil && cfg.Shoe == "deck" {
		return domain.NewDeckShoe(rng)
	}
	return domain.NewInfiniteShoe(rng)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Private {
		if matchState.Invites == nil {
			return state, false, "private table is not accepting joins"
		}
		token := metadata["invite_token"]
		if token == "" {
			return state, false, "invite token required"
		}
		matchID, userID, err := matchState.Invites.VerifyToken(token)
		if err != nil {
			logger.Warn("MatchJoinAttempt: Invalid invite token from %s: %v", presence.GetUserId(), err)
			return state, false, "invalid invite token"
		}
		if ctxMatchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ctxMatchID != "" && matchID != ctxMatchID {
			return state, false, "invite is for a different table"
		}
		if userID != presence.GetUserId() {
			return state, false, "invite was issued to a different user"
		}
	}

	// Allow join if there is an empty seat OR a bot to replace between rounds.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Table.CurrentPhase() == domain.PhaseIdle || matchState.Table.CurrentPhase() == domain.PhaseSettled {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Table full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		seat := -1
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				seat = i
				break
			}
		}
		if seat < 0 {
			// Replace a bot between rounds.
			phase := matchState.Table.CurrentPhase()
			if phase == domain.PhaseIdle || phase == domain.PhaseSettled {
				for i, seatUserId := range matchState.Seats {
					if isBotUserId(seatUserId) {
						logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
						delete(matchState.Bots, seatUserId)
						delete(matchState.Table.Accounts, i)
						seat = i
						break
					}
				}
			}
		}
		if seat < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
			continue
		}

		matchState.Seats[seat] = p.GetUserId()
		mh.seatAccount(ctx, matchState, logger, seat, p.GetUserId())

		acct := matchState.Table.Accounts[seat]
		mh.dispatchEvents(ctx, matchState, dispatcher, logger, []app.Event{{
			Kind: app.EventWelcome,
			Payload: app.WelcomePayload{
				Seat:    seat,
				Money:   acct.Balance,
				Message: "Welcome to the blackjack table. Place your bet.",
			},
			Recipients: []string{p.GetUserId()},
		}})
	}

	mh.maybeStartRound(matchState, logger)
	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

// seatAccount creates the table account for a newly seated user, funded from
// the Nakama wallet when reachable.
func (mh *matchHandler) seatAccount(ctx context.Context, state *MatchState, logger runtime.Logger, seat int, userID string) {
	balance := config.GetStartingChips()
	if state.Economy != nil && !isBotUserId(userID) {
		if b, err := state.Economy.GetBalance(ctx, userID); err != nil {
			logger.Warn("seatAccount: Could not read wallet for %s, using starting chips: %v", userID, err)
		} else if b > 0 {
			balance = b
		}
	}
	state.Table.Accounts[seat] = &domain.Account{
		UserID:  userID,
		Seat:    seat,
		Balance: balance,
	}
}

// maybeStartRound opens a betting cycle when the table is idle or the last
// round has settled and a funded seat remains.
func (mh *matchHandler) maybeStartRound(state *MatchState, logger runtime.Logger) {
	phase := state.Table.CurrentPhase()
	if phase != domain.PhaseIdle && phase != domain.PhaseSettled {
		return
	}
	if err := state.App.StartRound(state.Table); err != nil {
		if !errors.Is(err, app.ErrNoFundedSeats) {
			logger.Error("maybeStartRound: %v", err)
		}
		return
	}
	logger.Debug("maybeStartRound: Betting open, seat %d engaged.", state.Table.Round.Turn)
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		seat := matchState.seatOf(p.GetUserId())
		if seat < 0 {
			continue
		}
		logger.Debug("MatchLeave: User %s left, abandoning seat %d.", p.GetUserId(), seat)

		balancesBefore := snapshotBalances(matchState.Table)
		events := matchState.App.Abandon(matchState.Table, seat)
		mh.settleWallets(ctx, matchState, logger, balancesBefore, "opponent_left")
		mh.dispatchEvents(ctx, matchState, dispatcher, logger, events)

		matchState.Seats[seat] = ""
		delete(matchState.Table.Accounts, seat)
	}

	if shouldTerminateNoHumans(matchState.Seats) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.maybeStartRound(matchState, logger)
	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpPlaceBet:
			mh.handleBet(ctx, matchState, dispatcher, logger, msg)
		case OpAction:
			mh.handleAction(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
			mh.sendError(matchState, dispatcher, logger, msg.GetUserId(), "unknown opcode")
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	if mh.retireBrokeSeats(matchState, dispatcher, logger) {
		logger.Info("MatchLoop: No funded human seats remain, terminating.")
		return nil
	}

	mh.maybeStartRound(matchState, logger)
	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

// handleBet validates sender, decodes and applies a bet message.
func (mh *matchHandler) handleBet(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)
	if senderSeat < 0 {
		logger.Warn("handleBet: Message from unseated user %s.", senderID)
		return
	}

	bet, err := DecodeBet(msg.GetData())
	if err != nil {
		logger.Warn("handleBet: Rejected message from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err.Error())
		return
	}
	if bet.Player != 0 && bet.Player != senderSeat+1 {
		mh.sendError(state, dispatcher, logger, senderID, "cannot bet for another player")
		return
	}
	if min, max := config.GetBetLimits(); bet.Amount < min || (max > 0 && bet.Amount > max) {
		mh.sendError(state, dispatcher, logger, senderID, "bet is outside table limits")
		return
	}

	balancesBefore := snapshotBalances(state.Table)
	events, err := state.App.PlaceBet(state.Table, senderSeat, bet.Amount)
	if err != nil {
		logger.Warn("handleBet: User %s (seat %d) bet rejected: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, err.Error())
		return
	}
	mh.settleWallets(ctx, state, logger, balancesBefore, "round_settlement")
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// handleAction validates sender, decodes and applies a turn action.
func (mh *matchHandler) handleAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)
	if senderSeat < 0 {
		logger.Warn("handleAction: Message from unseated user %s.", senderID)
		return
	}

	action, err := DecodeAction(msg.GetData())
	if err != nil {
		logger.Warn("handleAction: Rejected message from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err.Error())
		return
	}
	if action.Player != 0 && action.Player != senderSeat+1 {
		mh.sendError(state, dispatcher, logger, senderID, "cannot act for another player")
		return
	}

	balancesBefore := snapshotBalances(state.Table)
	events, err := state.App.Apply(state.Table, senderSeat, action.Action)
	if err != nil {
		logger.Warn("handleAction: User %s (seat %d) action %q rejected: %v", senderID, senderSeat, action.Action, err)
		mh.sendError(state, dispatcher, logger, senderID, err.Error())
		return
	}
	mh.settleWallets(ctx, state, logger, balancesBefore, "round_settlement")
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill the second seat when one human has waited alone.
	if state.GetOpenSeatsCount() > 0 && state.GetHumanPlayerCount() == 1 {
		if state.LastSoloTick == 0 {
			state.LastSoloTick = state.Tick
			logger.Debug("processBots: Solo player detected, starting auto-fill timer.")
		}
		if state.Tick-state.LastSoloTick >= int64(state.BotAutoFillDelay) {
			for i, seat := range state.Seats {
				if seat != "" {
					continue
				}
				identity := bot.GetBotIdentity(i)
				brain, err := bot.NewBrain(bot.LevelFromString(identity.Difficulty))
				if err != nil {
					logger.Error("processBots: Failed to create brain for %s: %v", identity.UserID, err)
					continue
				}
				state.Seats[i] = identity.UserID
				state.Bots[identity.UserID] = &bot.Agent{
					ID:       identity.UserID,
					Name:     identity.DisplayName,
					Seat:     i,
					Strategy: brain,
				}
				state.Table.Accounts[i] = &domain.Account{
					UserID:  identity.UserID,
					Seat:    i,
					Balance: config.GetStartingChips(),
				}
				logger.Info("processBots: Added bot %s to seat %d", identity.DisplayName, i)
			}
			state.LastSoloTick = 0
			mh.maybeStartRound(state, logger)
			mh.updateLabel(state, dispatcher, logger)
		}
	} else {
		state.LastSoloTick = 0
	}

	// 2. Play the bot's turn after a human-feeling delay.
	round := state.Table.Round
	if round == nil || (round.Phase != domain.PhaseAwaitingBet && round.Phase != domain.PhasePlayerTurn) {
		state.BotWaitUntil = 0
		return
	}
	currentUserID := ""
	if round.Turn >= 0 && round.Turn < len(state.Seats) {
		currentUserID = state.Seats[round.Turn]
	}
	if !isBotUserId(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent := state.Bots[currentUserID]
	if agent == nil {
		logger.Error("processBots: No agent for bot %s", currentUserID)
		return
	}

	balancesBefore := snapshotBalances(state.Table)
	var events []app.Event
	var err error
	if round.Phase == domain.PhaseAwaitingBet {
		bet := config.GetBaseBet("")
		// A short-stacked bot goes all in rather than stalling the table on a
		// bet it cannot cover.
		if acct := state.Table.Accounts[agent.Seat]; acct != nil && acct.Balance < bet {
			bet = acct.Balance
		}
		events, err = state.App.PlaceBet(state.Table, agent.Seat, bet)
	} else {
		var move bot.Move
		move, err = agent.Play(state.Table)
		if err == nil {
			events, err = state.App.Apply(state.Table, agent.Seat, move.Action)
			if errors.Is(err, app.ErrInsufficientChips) {
				// Cannot cover the raise, play the hand straight instead.
				events, err = state.App.Hit(state.Table, agent.Seat)
			}
		}
	}
	if err != nil {
		logger.Error("processBots: Bot %s failed to act: %v", currentUserID, err)
		return
	}
	mh.settleWallets(ctx, state, logger, balancesBefore, "round_settlement")
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// retireBrokeSeats frees seats whose balance is exhausted and reports whether
// the match should terminate because no funded human remains.
func (mh *matchHandler) retireBrokeSeats(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) bool {
	if state.Table.CurrentPhase() != domain.PhaseSettled && state.Table.CurrentPhase() != domain.PhaseIdle {
		return false
	}

	retiredHuman := false
	for seat, acct := range state.Table.Accounts {
		if !acct.Out || acct.Balance > 0 {
			continue
		}
		userID := acct.UserID
		logger.Info("retireBrokeSeats: Seat %d (%s) is out of chips.", seat, userID)
		if p, ok := state.Presences[userID]; ok {
			if err := dispatcher.MatchKick([]runtime.Presence{p}); err != nil {
				logger.Warn("retireBrokeSeats: Failed to kick %s: %v", userID, err)
			}
		}
		if !isBotUserId(userID) {
			retiredHuman = true
		}
		delete(state.Bots, userID)
		state.Seats[seat] = ""
		delete(state.Table.Accounts, seat)
	}

	return retiredHuman && state.GetHumanPlayerCount() == 0
}

// snapshotBalances records table balances so wallet deltas can be derived
// after the engine applies a charge.
func snapshotBalances(t *domain.Table) map[int]int64 {
	out := make(map[int]int64, len(t.Accounts))
	for seat, acct := range t.Accounts {
		out[seat] = acct.Balance
	}
	return out
}

// settleWallets pushes any table-balance change since the snapshot to the
// Nakama wallet. Bots never touch real wallets.
func (mh *matchHandler) settleWallets(ctx context.Context, state *MatchState, logger runtime.Logger, before map[int]int64, reason string) {
	if state.Economy == nil {
		return
	}
	var updates []ports.WalletUpdate
	for seat, acct := range state.Table.Accounts {
		prev, ok := before[seat]
		if !ok || acct.Balance == prev || isBotUserId(acct.UserID) {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: acct.UserID,
			Amount: acct.Balance - prev,
			Metadata: map[string]interface{}{
				"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"reason":   reason,
			},
		})
	}
	if len(updates) == 0 {
		return
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("settleWallets: Failed to update balances: %v", err)
	}
}

// dispatchEvents encodes engine events and sends them to their recipients.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, data, err := EncodeEvent(ev)
		if err != nil {
			logger.Error("dispatchEvents: %v", err)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, uid := range ev.Recipients {
				if p, ok := state.Presences[uid]; ok {
					recipients = append(recipients, p)
				}
			}
			// If the intended recipients are all disconnected or bots, the
			// event must not leak to everyone else.
			if len(recipients) == 0 {
				continue
			}
		}

		if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
			logger.Error("dispatchEvents: Broadcast failed for %s: %v", ev.Kind, err)
		}
	}
}

// sendError sends a non-fatal error record to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("sendError: Cannot send error to %s: presence not found", userID)
		return
	}
	if err := dispatcher.BroadcastMessage(OpError, EncodeError(message), []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendError: Broadcast failed: %v", err)
	}
}

func marshalLabel(state *MatchState) (string, error) {
	phase := string(state.Table.CurrentPhase())
	label := MatchLabel{
		Open:    state.GetOpenSeatsCount(),
		Game:    "blackjack",
		Phase:   phase,
		Seats:   len(state.Seats),
		Private: state.Private,
	}
	b, err := json.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := marshalLabel(state)
	if err != nil {
		logger.Error("updateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(labelBytes); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d seconds grace.", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
