package nakama

import (
	"encoding/json"
	"strings"
	"testing"

	"blackjack/internal/app"
	"blackjack/internal/domain"
)

func TestDecodeBet(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    BetMessage
		wantErr string
	}{
		{
			name: "Valid",
			data: `{"type":"bet","amount":100}`,
			want: BetMessage{Type: "bet", Amount: 100},
		},
		{
			name: "ValidWithPlayer",
			data: `{"type":"bet","amount":50,"player":2}`,
			want: BetMessage{Type: "bet", Amount: 50, Player: 2},
		},
		{
			name:    "UnknownField",
			data:    `{"type":"bet","amount":100,"lucky":true}`,
			wantErr: "malformed",
		},
		{
			name:    "WrongType",
			data:    `{"type":"raise","amount":100}`,
			wantErr: "unexpected message type",
		},
		{
			name:    "BadPlayer",
			data:    `{"type":"bet","amount":100,"player":3}`,
			wantErr: "player must be",
		},
		{
			name:    "NotJSON",
			data:    `bet 100`,
			wantErr: "malformed",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := DecodeBet([]byte(test.data))
			if test.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), test.wantErr) {
					t.Fatalf("DecodeBet() err = %v, want containing %q", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeBet() err = %v", err)
			}
			if got != test.want {
				t.Fatalf("DecodeBet() = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestDecodeAction(t *testing.T) {
	for _, action := range []string{"hit", "stand", "double", "split"} {
		msg, err := DecodeAction([]byte(`{"action":"` + action + `"}`))
		if err != nil {
			t.Fatalf("DecodeAction(%s) err = %v", action, err)
		}
		if msg.Action != action {
			t.Fatalf("DecodeAction(%s) = %+v", action, msg)
		}
	}

	if _, err := DecodeAction([]byte(`{"action":"surrender"}`)); err == nil {
		t.Fatal("expected rejection of unknown action token")
	}
	if _, err := DecodeAction([]byte(`{"action":"hit","extra":1}`)); err == nil {
		t.Fatal("expected rejection of unknown field")
	}
	if _, err := DecodeAction([]byte(`{}`)); err == nil {
		t.Fatal("expected rejection of missing action")
	}
}

func TestEncodeEventSingleHandResult(t *testing.T) {
	opCode, data, err := EncodeEvent(app.Event{
		Kind: app.EventResult,
		Payload: app.ResultPayload{
			Seat: 0,
			Results: []app.HandResult{{
				Hand:    []domain.Card{10, 9},
				Value:   19,
				Outcome: domain.OutcomeWin,
			}},
			DealerHand:  []domain.Card{10, 7},
			DealerValue: 17,
			Message:     "You win!",
			Money:       1100,
		},
	})
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}
	if opCode != OpResult {
		t.Fatalf("opcode = %d, want %d", opCode, OpResult)
	}

	var wire map[string]interface{}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if wire["type"] != "result" || wire["result"] != "win" {
		t.Fatalf("unexpected wire shape: %s", data)
	}
	if _, ok := wire["player_hand"]; !ok {
		t.Fatalf("single-hand result must use flat player_hand shape: %s", data)
	}
	if _, ok := wire["results"]; ok {
		t.Fatalf("single-hand result must not carry a results list: %s", data)
	}
}

func TestEncodeEventSplitResultList(t *testing.T) {
	_, data, err := EncodeEvent(app.Event{
		Kind: app.EventResult,
		Payload: app.ResultPayload{
			Seat: 0,
			Results: []app.HandResult{
				{Hand: []domain.Card{8, 3, 10}, Value: 21, Outcome: domain.OutcomeWin},
				{Hand: []domain.Card{8, 10}, Value: 18, Outcome: domain.OutcomeLose},
			},
			DealerHand:  []domain.Card{10, 7},
			DealerValue: 17,
			Message:     "hand 1: win, hand 2: lose",
			Money:       1000,
		},
	})
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}

	var wire struct {
		Results []handResultWire `json:"results"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if len(wire.Results) != 2 {
		t.Fatalf("results = %d, want 2: %s", len(wire.Results), data)
	}
	if wire.Results[0].Result != "win" || wire.Results[1].Result != "lose" {
		t.Fatalf("unexpected per-hand results: %s", data)
	}
}

func TestEncodeEventOpcodes(t *testing.T) {
	tests := []struct {
		event app.Event
		want  int64
	}{
		{app.Event{Kind: app.EventWelcome, Payload: app.WelcomePayload{Money: 1000}}, OpWelcome},
		{app.Event{Kind: app.EventGameState, Payload: app.GameStatePayload{}}, OpGameState},
		{app.Event{Kind: app.EventHitResult, Payload: app.HitResultPayload{}}, OpHitResult},
		{app.Event{Kind: app.EventSplitAck, Payload: app.SplitAckPayload{}}, OpSplitAck},
		{app.Event{Kind: app.EventNextHand, Payload: app.NextHandPayload{}}, OpNextHand},
		{app.Event{Kind: app.EventPlayerDone, Payload: app.PlayerDonePayload{}}, OpPlayerDone},
		{app.Event{Kind: app.EventSettlement, Payload: app.SettlementPayload{}}, OpSettlement},
		{app.Event{Kind: app.EventGameOver, Payload: app.GameOverPayload{}}, OpGameOver},
	}
	for _, test := range tests {
		opCode, _, err := EncodeEvent(test.event)
		if err != nil {
			t.Fatalf("EncodeEvent(%s): %v", test.event.Kind, err)
		}
		if opCode != test.want {
			t.Fatalf("EncodeEvent(%s) opcode = %d, want %d", test.event.Kind, opCode, test.want)
		}
	}

	if _, _, err := EncodeEvent(app.Event{Kind: "mystery"}); err == nil {
		t.Fatal("expected error for unknown event kind")
	}
}
