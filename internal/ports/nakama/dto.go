package nakama

import (
	"bytes"
	"encoding/json"
	"fmt"

	"blackjack/internal/app"
	"blackjack/internal/domain"
)

// Client -> Server messages. Decoding is strict: unknown fields and missing
// required fields are rejected so client/protocol drift surfaces immediately.

// BetMessage asks to open a round at the given stake. Player is 1 or 2 on a
// two-seat table and may be omitted on a solo table.
type BetMessage struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
	Player int    `json:"player,omitempty"`
}

// ActionMessage plays one turn action on the sender's active hand.
type ActionMessage struct {
	Action string `json:"action"`
	Player int    `json:"player,omitempty"`
}

func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("malformed message: %w", err)
	}
	return nil
}

// DecodeBet parses and validates a bet message.
func DecodeBet(data []byte) (BetMessage, error) {
	var msg BetMessage
	if err := decodeStrict(data, &msg); err != nil {
		return BetMessage{}, err
	}
	if msg.Type != "bet" {
		return BetMessage{}, fmt.Errorf("unexpected message type %q", msg.Type)
	}
	if msg.Player < 0 || msg.Player > 2 {
		return BetMessage{}, fmt.Errorf("player must be 1 or 2")
	}
	return msg, nil
}

// DecodeAction parses and validates an action message.
func DecodeAction(data []byte) (ActionMessage, error) {
	var msg ActionMessage
	if err := decodeStrict(data, &msg); err != nil {
		return ActionMessage{}, err
	}
	switch msg.Action {
	case app.ActionHit, app.ActionStand, app.ActionDouble, app.ActionSplit:
	default:
		return ActionMessage{}, fmt.Errorf("unknown action %q", msg.Action)
	}
	if msg.Player < 0 || msg.Player > 2 {
		return ActionMessage{}, fmt.Errorf("player must be 1 or 2")
	}
	return msg, nil
}

// Server -> Client wire records. Cards travel as their integer values.

type welcomeWire struct {
	Type    string `json:"type"`
	Money   int64  `json:"money"`
	Message string `json:"message"`
}

type gameStateWire struct {
	Type          string        `json:"type"`
	Player        int           `json:"player,omitempty"`
	PlayerHand    []domain.Card `json:"player_hand"`
	PlayerValue   int           `json:"player_value"`
	DealerVisible []domain.Card `json:"dealer_visible"`
	Bet           int64         `json:"bet"`
}

type hitResultWire struct {
	Type        string        `json:"type"`
	Player      int           `json:"player,omitempty"`
	Card        domain.Card   `json:"card"`
	PlayerHand  []domain.Card `json:"player_hand"`
	PlayerValue int           `json:"player_value"`
}

type splitAckWire struct {
	Type         string          `json:"type"`
	Hands        [][]domain.Card `json:"hands"`
	CurrentIndex int             `json:"current_index"`
}

type nextHandWire struct {
	Type         string `json:"type"`
	CurrentIndex int    `json:"current_index"`
}

type playerDoneWire struct {
	Type        string        `json:"type"`
	Player      int           `json:"player"`
	PlayerHand  []domain.Card `json:"player_hand"`
	PlayerValue int           `json:"player_value"`
}

type handResultWire struct {
	PlayerHand  []domain.Card `json:"player_hand"`
	PlayerValue int           `json:"player_value"`
	Result      string        `json:"result"`
}

type resultWire struct {
	Type        string           `json:"type"`
	Player      int              `json:"player,omitempty"`
	PlayerHand  []domain.Card    `json:"player_hand,omitempty"`
	Results     []handResultWire `json:"results,omitempty"`
	DealerHand  []domain.Card    `json:"dealer_hand,omitempty"`
	DealerValue int              `json:"dealer_value,omitempty"`
	Result      string           `json:"result,omitempty"`
	Message     string           `json:"message"`
	Money       int64            `json:"money"`
}

type seatSettlementWire struct {
	Player  int              `json:"player"`
	Results []handResultWire `json:"results"`
	Money   int64            `json:"money"`
}

type settlementWire struct {
	Type        string               `json:"type"`
	DealerHand  []domain.Card        `json:"dealer_hand"`
	DealerValue int                  `json:"dealer_value"`
	Players     []seatSettlementWire `json:"players"`
}

type errorWire struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type gameOverWire struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func toWireResults(results []app.HandResult) []handResultWire {
	out := make([]handResultWire, len(results))
	for i, r := range results {
		out[i] = handResultWire{
			PlayerHand:  r.Hand,
			PlayerValue: r.Value,
			Result:      string(r.Outcome),
		}
	}
	return out
}

// EncodeEvent maps an engine event onto its opcode and JSON wire payload.
func EncodeEvent(ev app.Event) (int64, []byte, error) {
	var opCode int64
	var wire interface{}

	switch ev.Kind {
	case app.EventWelcome:
		p := ev.Payload.(app.WelcomePayload)
		opCode = OpWelcome
		wire = welcomeWire{Type: string(ev.Kind), Money: p.Money, Message: p.Message}
	case app.EventGameState:
		p := ev.Payload.(app.GameStatePayload)
		opCode = OpGameState
		wire = gameStateWire{
			Type:          string(ev.Kind),
			Player:        p.Seat + 1,
			PlayerHand:    p.Hand,
			PlayerValue:   p.Value,
			DealerVisible: p.DealerVisible,
			Bet:           p.Bet,
		}
	case app.EventHitResult:
		p := ev.Payload.(app.HitResultPayload)
		opCode = OpHitResult
		wire = hitResultWire{
			Type:        string(ev.Kind),
			Player:      p.Seat + 1,
			Card:        p.Card,
			PlayerHand:  p.Hand,
			PlayerValue: p.Value,
		}
	case app.EventSplitAck:
		p := ev.Payload.(app.SplitAckPayload)
		opCode = OpSplitAck
		wire = splitAckWire{Type: string(ev.Kind), Hands: p.Hands, CurrentIndex: p.CurrentIndex}
	case app.EventNextHand:
		p := ev.Payload.(app.NextHandPayload)
		opCode = OpNextHand
		wire = nextHandWire{Type: string(ev.Kind), CurrentIndex: p.CurrentIndex}
	case app.EventPlayerDone:
		p := ev.Payload.(app.PlayerDonePayload)
		opCode = OpPlayerDone
		wire = playerDoneWire{
			Type:        string(ev.Kind),
			Player:      p.Seat + 1,
			PlayerHand:  p.Hand,
			PlayerValue: p.Value,
		}
	case app.EventResult:
		p := ev.Payload.(app.ResultPayload)
		opCode = OpResult
		w := resultWire{
			Type:        string(ev.Kind),
			Player:      p.Seat + 1,
			DealerHand:  p.DealerHand,
			DealerValue: p.DealerValue,
			Message:     p.Message,
			Money:       p.Money,
		}
		// A single unsplit hand keeps the flat shape; split hands report a
		// per-hand result list.
		if len(p.Results) == 1 {
			w.PlayerHand = p.Results[0].Hand
			w.Result = string(p.Results[0].Outcome)
		} else {
			w.Results = toWireResults(p.Results)
		}
		wire = w
	case app.EventSettlement:
		p := ev.Payload.(app.SettlementPayload)
		opCode = OpSettlement
		players := make([]seatSettlementWire, len(p.Seats))
		for i, seat := range p.Seats {
			players[i] = seatSettlementWire{
				Player:  seat.Seat + 1,
				Results: toWireResults(seat.Results),
				Money:   seat.Money,
			}
		}
		wire = settlementWire{
			Type:        string(ev.Kind),
			DealerHand:  p.DealerHand,
			DealerValue: p.DealerValue,
			Players:     players,
		}
	case app.EventGameOver:
		p := ev.Payload.(app.GameOverPayload)
		opCode = OpGameOver
		wire = gameOverWire{Type: string(ev.Kind), Message: p.Message}
	default:
		return 0, nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal %s event: %w", ev.Kind, err)
	}
	return opCode, data, nil
}

// EncodeError builds the non-fatal error record sent for rejected input.
func EncodeError(message string) []byte {
	data, _ := json.Marshal(errorWire{Type: "error", Message: message})
	return data
}
