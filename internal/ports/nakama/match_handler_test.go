package nakama

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"blackjack/internal/app"
	"blackjack/internal/bot"
	"blackjack/internal/domain"
	"blackjack/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// testPresence is a minimal runtime.Presence for seeding match state.
type testPresence struct {
	userID   string
	username string
}

func (p testPresence) GetUserId() string                 { return p.userID }
func (p testPresence) GetSessionId() string              { return "session-" + p.userID }
func (p testPresence) GetNodeId() string                 { return "node" }
func (p testPresence) GetHidden() bool                   { return false }
func (p testPresence) GetPersistence() bool              { return true }
func (p testPresence) GetUsername() string               { return p.username }
func (p testPresence) GetStatus() string                 { return "" }
func (p testPresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonJoin }

// testMatchData wraps a presence with an opcode and payload.
type testMatchData struct {
	testPresence
	opCode int64
	data   []byte
}

func (d testMatchData) GetOpCode() int64      { return d.opCode }
func (d testMatchData) GetData() []byte       { return d.data }
func (d testMatchData) GetReliable() bool     { return true }
func (d testMatchData) GetReceiveTime() int64 { return 0 }

type sentMessage struct {
	opCode     int64
	data       []byte
	recipients int
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	messages     []sentMessage
	labelUpdates int
	kicked       []string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.messages = append(md.messages, sentMessage{
		opCode:     opCode,
		data:       append([]byte(nil), data...),
		recipients: len(presences),
	})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return md.BroadcastMessage(opCode, data, presences, sender, reliable)
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	for _, p := range presences {
		md.kicked = append(md.kicked, p.GetUserId())
	}
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

func (md *mockDispatcher) lastOp(opCode int64) (sentMessage, bool) {
	for i := len(md.messages) - 1; i >= 0; i-- {
		if md.messages[i].opCode == opCode {
			return md.messages[i], true
		}
	}
	return sentMessage{}, false
}

type mockEconomy struct {
	balances map[string]int64
	updates  []ports.WalletUpdate
}

func (me *mockEconomy) GetBalance(ctx context.Context, userID string) (int64, error) {
	return me.balances[userID], nil
}

func (me *mockEconomy) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	me.updates = append(me.updates, updates...)
	return nil
}

// scriptShoe deals a fixed card sequence.
type scriptShoe struct {
	cards []domain.Card
}

func (s *scriptShoe) Draw() domain.Card {
	c := s.cards[0]
	s.cards = s.cards[1:]
	return c
}

func newTestState(shoe domain.Shoe, economy ports.EconomyPort, seatCount int) *MatchState {
	return &MatchState{
		Seats:       make([]string, seatCount),
		Presences:   make(map[string]runtime.Presence),
		App:         app.NewService(shoe),
		Table:       domain.NewTable(seatCount),
		Bots:        make(map[string]*bot.Agent),
		BotMinDelay: 1,
		BotMaxDelay: 1,
		Economy:     economy,
	}
}

func TestShouldTerminateNoHumans(t *testing.T) {
	tests := []struct {
		name  string
		seats []string
		want  bool
	}{
		{"AllEmpty", []string{"", ""}, true},
		{"HumanPresent", []string{"user-1", ""}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := shouldTerminateNoHumans(test.seats); got != test.want {
				t.Fatalf("shouldTerminateNoHumans() = %t, want %t", got, test.want)
			}
		})
	}
}

func TestMarshalLabel(t *testing.T) {
	state := newTestState(nil, nil, 2)
	state.Seats[0] = "user-1"

	labelStr, err := marshalLabel(state)
	if err != nil {
		t.Fatalf("marshalLabel: %v", err)
	}

	var label MatchLabel
	if err := json.Unmarshal([]byte(labelStr), &label); err != nil {
		t.Fatalf("label is not JSON: %v", err)
	}
	if label.Open != 1 || label.Game != "blackjack" || label.Seats != 2 {
		t.Fatalf("label = %+v", label)
	}
	if label.Phase != string(domain.PhaseIdle) {
		t.Fatalf("phase = %s, want idle", label.Phase)
	}
}

func TestMatchJoinSeatsAccountAndWelcomes(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	economy := &mockEconomy{balances: map[string]int64{"user-1": 2500}}
	state := newTestState(&scriptShoe{cards: []domain.Card{10, 9, 10, 7}}, economy, 1)

	result := handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.Presence{testPresence{userID: "user-1", username: "Player"}})
	if result == nil {
		t.Fatal("MatchJoin terminated the match")
	}

	if state.Seats[0] != "user-1" {
		t.Fatalf("seat 0 = %q, want user-1", state.Seats[0])
	}
	acct := state.Table.Accounts[0]
	if acct == nil || acct.Balance != 2500 {
		t.Fatalf("account = %+v, want wallet-funded balance 2500", acct)
	}

	welcome, ok := dispatcher.lastOp(OpWelcome)
	if !ok {
		t.Fatal("expected welcome message")
	}
	if welcome.recipients != 1 {
		t.Fatalf("welcome recipients = %d, want targeted send", welcome.recipients)
	}
	var wire welcomeWire
	if err := json.Unmarshal(welcome.data, &wire); err != nil {
		t.Fatalf("welcome payload: %v", err)
	}
	if wire.Money != 2500 {
		t.Fatalf("welcome money = %d, want 2500", wire.Money)
	}

	if state.Table.CurrentPhase() != domain.PhaseAwaitingBet {
		t.Fatalf("phase = %s, want awaiting_bet after join", state.Table.CurrentPhase())
	}
}

func TestMatchLoopPlaysFullRound(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	economy := &mockEconomy{balances: map[string]int64{"user-1": 1000}}
	state := newTestState(&scriptShoe{cards: []domain.Card{10, 9, 10, 7}}, economy, 1)

	handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.Presence{testPresence{userID: "user-1"}})

	bet := testMatchData{
		testPresence: testPresence{userID: "user-1"},
		opCode:       OpPlaceBet,
		data:         []byte(`{"type":"bet","amount":100}`),
	}
	result := handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{bet})
	if result == nil {
		t.Fatal("MatchLoop terminated after bet")
	}
	if _, ok := dispatcher.lastOp(OpGameState); !ok {
		t.Fatal("expected game_state after bet")
	}

	stand := testMatchData{
		testPresence: testPresence{userID: "user-1"},
		opCode:       OpAction,
		data:         []byte(`{"action":"stand"}`),
	}
	result = handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{stand})
	if result == nil {
		t.Fatal("MatchLoop terminated after stand")
	}

	res, ok := dispatcher.lastOp(OpResult)
	if !ok {
		t.Fatal("expected result after stand")
	}
	var wire resultWire
	if err := json.Unmarshal(res.data, &wire); err != nil {
		t.Fatalf("result payload: %v", err)
	}
	if wire.Result != "win" || wire.Money != 1100 {
		t.Fatalf("result = %+v, want win at 1100", wire)
	}

	// winnings reach the wallet
	if len(economy.updates) != 1 || economy.updates[0].Amount != 100 {
		t.Fatalf("wallet updates = %+v, want single +100", economy.updates)
	}

	// the loop reopens betting for the next round
	if state.Table.CurrentPhase() != domain.PhaseAwaitingBet {
		t.Fatalf("phase = %s, want awaiting_bet for next round", state.Table.CurrentPhase())
	}
}

func TestMatchLoopRejectsMalformedBet(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	economy := &mockEconomy{balances: map[string]int64{"user-1": 1000}}
	state := newTestState(&scriptShoe{cards: []domain.Card{10, 9, 10, 7}}, economy, 1)

	handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.Presence{testPresence{userID: "user-1"}})

	bad := testMatchData{
		testPresence: testPresence{userID: "user-1"},
		opCode:       OpPlaceBet,
		data:         []byte(`{"type":"bet","amount":100,"cheat":true}`),
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{bad})

	errMsg, ok := dispatcher.lastOp(OpError)
	if !ok {
		t.Fatal("expected error message for malformed bet")
	}
	if errMsg.recipients != 1 {
		t.Fatalf("error recipients = %d, want targeted send", errMsg.recipients)
	}
	if state.Table.CurrentPhase() != domain.PhaseAwaitingBet {
		t.Fatalf("phase = %s, rejected bet must not advance the round", state.Table.CurrentPhase())
	}
	if got := state.Table.Accounts[0].Balance; got != 1000 {
		t.Fatalf("balance = %d, rejected bet must not charge", got)
	}
}

func TestDispatchEventsSkipsDisconnectedRecipients(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(nil, nil, 1)

	handler.dispatchEvents(context.Background(), state, dispatcher, noopLogger{}, []app.Event{{
		Kind:       app.EventGameOver,
		Payload:    app.GameOverPayload{Seat: 0, Message: "gone"},
		Recipients: []string{"nobody-here"},
	}})

	if len(dispatcher.messages) != 0 {
		t.Fatalf("targeted event leaked to %d broadcasts", len(dispatcher.messages))
	}
}

func TestRetireBrokeSeats(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	state := newTestState(nil, nil, 1)
	state.Seats[0] = "user-1"
	state.Presences["user-1"] = testPresence{userID: "user-1"}
	state.Table.Accounts[0] = &domain.Account{UserID: "user-1", Balance: 0, Out: true}

	terminate := handler.retireBrokeSeats(state, dispatcher, noopLogger{})
	if !terminate {
		t.Fatal("expected termination once the only human is broke")
	}
	if state.Seats[0] != "" {
		t.Fatalf("seat 0 = %q, want freed", state.Seats[0])
	}
	if len(dispatcher.kicked) != 1 || dispatcher.kicked[0] != "user-1" {
		t.Fatalf("kicked = %v, want [user-1]", dispatcher.kicked)
	}
}

func TestTwoPlayerTurnGatingOverWire(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	economy := &mockEconomy{balances: map[string]int64{"user-1": 1000, "user-2": 1000}}
	state := newTestState(&scriptShoe{cards: []domain.Card{10, 9, 10, 7, 10, 8}}, economy, 2)

	handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{
		testPresence{userID: "user-1"},
		testPresence{userID: "user-2"},
	})

	// seat 1 tries to bet out of turn
	early := testMatchData{
		testPresence: testPresence{userID: "user-2"},
		opCode:       OpPlaceBet,
		data:         []byte(`{"type":"bet","amount":100,"player":2}`),
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{early})
	if _, ok := dispatcher.lastOp(OpError); !ok {
		t.Fatal("expected error for out-of-turn bet")
	}

	// seat 0 plays out, handing over to seat 1
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{
		testMatchData{testPresence: testPresence{userID: "user-1"}, opCode: OpPlaceBet, data: []byte(`{"type":"bet","amount":100,"player":1}`)},
		testMatchData{testPresence: testPresence{userID: "user-1"}, opCode: OpAction, data: []byte(`{"action":"stand","player":1}`)},
	})
	done, ok := dispatcher.lastOp(OpPlayerDone)
	if !ok {
		t.Fatal("expected player1_done broadcast")
	}
	if done.recipients != 0 {
		t.Fatalf("player1_done recipients = %d, want broadcast", done.recipients)
	}

	// seat 1 plays, the round settles with a combined record
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 4, state, []runtime.MatchData{
		testMatchData{testPresence: testPresence{userID: "user-2"}, opCode: OpPlaceBet, data: []byte(`{"type":"bet","amount":100,"player":2}`)},
		testMatchData{testPresence: testPresence{userID: "user-2"}, opCode: OpAction, data: []byte(`{"action":"stand","player":2}`)},
	})
	settlement, ok := dispatcher.lastOp(OpSettlement)
	if !ok {
		t.Fatal("expected combined settlement")
	}
	var wire settlementWire
	if err := json.Unmarshal(settlement.data, &wire); err != nil {
		t.Fatalf("settlement payload: %v", err)
	}
	if len(wire.Players) != 2 || wire.DealerValue != 17 {
		t.Fatalf("settlement = %+v", wire)
	}
}

// seatBot registers a bot identity in the pool and seats it with the given
// chip stack. Identity loading is process-wide, so every test shares the pool.
func seatBot(t *testing.T, state *MatchState, seat int, userID string, chips int64) {
	t.Helper()
	identities := `[{"device_id":"","user_id":"` + userID + `","username":"TestBot","display_name":"Test Bot","difficulty":"dealer","avatar_index":1}]`
	path := filepath.Join(t.TempDir(), "bot_identities.json")
	if err := os.WriteFile(path, []byte(identities), 0o600); err != nil {
		t.Fatalf("write identities: %v", err)
	}
	if err := bot.LoadIdentities(path); err != nil {
		t.Fatalf("load identities: %v", err)
	}
	if !bot.IsBot(userID) {
		t.Fatalf("%s not recognized as a bot after loading identities", userID)
	}

	brain, err := bot.NewBrain(bot.BotLevelDealer)
	if err != nil {
		t.Fatalf("new brain: %v", err)
	}
	state.Seats[seat] = userID
	state.Bots[userID] = &bot.Agent{ID: userID, Name: "Test Bot", Seat: seat, Strategy: brain}
	state.Table.Accounts[seat] = &domain.Account{UserID: userID, Seat: seat, Balance: chips}
}

func TestShortStackedBotBetsRemainingChips(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	economy := &mockEconomy{balances: map[string]int64{"user-1": 1000}}
	// human 19 vs dealer 17, then bot 19 vs the same dealer
	state := newTestState(&scriptShoe{cards: []domain.Card{10, 9, 10, 7, 10, 9}}, economy, 2)
	state.BotsEnabled = true

	handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.Presence{testPresence{userID: "user-1"}})
	// 50 chips cannot cover the 100-chip base bet
	seatBot(t, state, 1, "bot-shortstack", 50)

	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{
		testMatchData{testPresence: testPresence{userID: "user-1"}, opCode: OpPlaceBet, data: []byte(`{"type":"bet","amount":100,"player":1}`)},
		testMatchData{testPresence: testPresence{userID: "user-1"}, opCode: OpAction, data: []byte(`{"action":"stand","player":1}`)},
	})
	if state.Table.Round.Turn != 1 {
		t.Fatalf("turn = %d after human stood, want bot seat 1", state.Table.Round.Turn)
	}

	// The bot must be able to act within a few ticks and play the round out.
	for tick := int64(3); tick <= 12; tick++ {
		if result := handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, tick, state, nil); result == nil {
			t.Fatalf("MatchLoop terminated at tick %d", tick)
		}
	}

	if phase := state.Table.CurrentPhase(); phase == domain.PhaseAwaitingBet && state.Table.Round.Turn == 1 {
		t.Fatal("bot still holds the betting turn: table is stalled")
	}
	// All in at 50 and a 19 beats the dealer's 17.
	if got := state.Table.Accounts[1].Balance; got != 100 {
		t.Fatalf("bot balance = %d, want 100 after an all-in win", got)
	}
	if len(economy.updates) != 1 || economy.updates[0].Amount != 100 {
		t.Fatalf("wallet updates = %+v, want single +100 for the human", economy.updates)
	}
}

func TestUnknownOpcodeGetsErrorRecord(t *testing.T) {
	handler := &matchHandler{}
	dispatcher := &mockDispatcher{}
	economy := &mockEconomy{balances: map[string]int64{"user-1": 1000}}
	state := newTestState(&scriptShoe{cards: []domain.Card{10, 9, 10, 7}}, economy, 1)

	handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state,
		[]runtime.Presence{testPresence{userID: "user-1"}})

	unknown := testMatchData{
		testPresence: testPresence{userID: "user-1"},
		opCode:       999,
		data:         []byte(`{}`),
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{unknown})

	errMsg, ok := dispatcher.lastOp(OpError)
	if !ok {
		t.Fatal("expected error message for unknown opcode")
	}
	if errMsg.recipients != 1 {
		t.Fatalf("error recipients = %d, want targeted send", errMsg.recipients)
	}
	if state.Table.CurrentPhase() != domain.PhaseAwaitingBet {
		t.Fatalf("phase = %s, unknown opcode must not advance the round", state.Table.CurrentPhase())
	}
}

func TestNormalizeBotDelays(t *testing.T) {
	tests := []struct {
		name             string
		min, max         int
		wantMin, wantMax int
	}{
		{name: "defaults", min: 0, max: 0, wantMin: 1, wantMax: 3},
		{name: "kept in order", min: 2, max: 5, wantMin: 2, wantMax: 5},
		{name: "inverted env swapped", min: 7, max: 2, wantMin: 2, wantMax: 7},
		{name: "equal bounds", min: 4, max: 4, wantMin: 4, wantMax: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := normalizeBotDelays(tt.min, tt.max)
			if min != tt.wantMin || max != tt.wantMax {
				t.Fatalf("normalizeBotDelays(%d, %d) = %d, %d, want %d, %d", tt.min, tt.max, min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}
