package nakama

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// quickMatchNakama stubs match listing and creation for the RPC.
type quickMatchNakama struct {
	runtime.NakamaModule
	listQuery    string
	matches      []*api.Match
	createParams map[string]interface{}
}

func (q *quickMatchNakama) MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error) {
	q.listQuery = query
	return q.matches, nil
}

func (q *quickMatchNakama) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	q.createParams = params
	return "match-new", nil
}

func TestQuickMatchFiltersBySeatCount(t *testing.T) {
	nk := &quickMatchNakama{}

	out, err := rpcQuickMatch(context.Background(), noopLogger{}, nil, nk, `{"seats":2}`)
	if err != nil {
		t.Fatalf("rpcQuickMatch: %v", err)
	}

	// A two-seat request must never route into a solo table, and vice versa.
	if !strings.Contains(nk.listQuery, "+label.seats:2") {
		t.Fatalf("query %q does not filter on table size", nk.listQuery)
	}
	if !strings.Contains(nk.listQuery, "+label.open:>=1") || !strings.Contains(nk.listQuery, "-label.private:T") {
		t.Fatalf("query %q lost open-seat or private filtering", nk.listQuery)
	}

	var resp QuickMatchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("response: %v", err)
	}
	if !resp.IsNew || resp.MatchID != "match-new" {
		t.Fatalf("response = %+v, want a newly created match", resp)
	}
	if seats, ok := nk.createParams["seats"].(float64); !ok || seats != 2 {
		t.Fatalf("create params = %+v, want seats 2", nk.createParams)
	}
}

func TestQuickMatchJoinsExistingTable(t *testing.T) {
	nk := &quickMatchNakama{matches: []*api.Match{{MatchId: "match-open"}}}

	out, err := rpcQuickMatch(context.Background(), noopLogger{}, nil, nk, `{"seats":1}`)
	if err != nil {
		t.Fatalf("rpcQuickMatch: %v", err)
	}
	if !strings.Contains(nk.listQuery, "+label.seats:1") {
		t.Fatalf("query %q does not filter on table size", nk.listQuery)
	}

	var resp QuickMatchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("response: %v", err)
	}
	if resp.IsNew || resp.MatchID != "match-open" {
		t.Fatalf("response = %+v, want the listed match", resp)
	}
	if nk.createParams != nil {
		t.Fatal("MatchCreate called despite an open table")
	}
}

func TestQuickMatchRejectsBadSeatCount(t *testing.T) {
	nk := &quickMatchNakama{}
	if _, err := rpcQuickMatch(context.Background(), noopLogger{}, nil, nk, `{"seats":3}`); err == nil {
		t.Fatal("expected error for unsupported seat count")
	}
}
