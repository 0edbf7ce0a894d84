package graph

import (
	"context"
	"errors"
	"testing"
)

type named string

func (n named) String() string { return string(n) }

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"name":    "Tom Shelby",
		"alias":   named("Tommy"),
		"raw":     []byte("bytes"),
		"amount":  int64(430),
		"ratio":   float32(0.5),
		"solved":  true,
		"issueId": int64(7),
		"float":   float64(12.9),
		"nothing": nil,
	}

	if got := rec.String("name"); got != "Tom Shelby" {
		t.Errorf("String(name) = %q", got)
	}
	if got := rec.String("alias"); got != "Tommy" {
		t.Errorf("String(alias) = %q", got)
	}
	if got := rec.String("raw"); got != "bytes" {
		t.Errorf("String(raw) = %q", got)
	}
	if got := rec.String("nothing"); got != "" {
		t.Errorf("String(nothing) = %q", got)
	}
	if got := rec.Float64("amount"); got != 430 {
		t.Errorf("Float64(amount) = %v", got)
	}
	if got := rec.Float64("ratio"); got != 0.5 {
		t.Errorf("Float64(ratio) = %v", got)
	}
	if got := rec.Int64("issueId"); got != 7 {
		t.Errorf("Int64(issueId) = %v", got)
	}
	if got := rec.Int64("float"); got != 12 {
		t.Errorf("Int64(float) = %v", got)
	}
	if !rec.Bool("solved") || rec.Bool("nothing") || rec.Bool("missing") {
		t.Errorf("unexpected Bool results")
	}
}

func TestMemoryClient_QueuesAndCalls(t *testing.T) {
	mem := NewMemoryClient()
	mem.PushReadResult(Result{Records: []Record{{"n": int64(1)}}})

	params := map[string]any{"seq": 1}
	res, err := mem.ExecuteRead(context.Background(), "MATCH (n) RETURN n", params)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("expected queued record, got %+v", res)
	}
	params["seq"] = 2

	calls := mem.ReadCalls()
	if len(calls) != 1 || calls[0].Params["seq"] != 1 {
		t.Fatalf("expected params snapshot, got %+v", calls)
	}

	res, _ = mem.ExecuteRead(context.Background(), "MATCH (n) RETURN n", nil)
	if len(res.Records) != 0 {
		t.Errorf("expected empty result once queue drained")
	}

	errDown := errors.New("down")
	mem.WithError(errDown)
	if _, err := mem.ExecuteWrite(context.Background(), "CREATE (n)", nil); !errors.Is(err, errDown) {
		t.Errorf("expected configured error, got %v", err)
	}
	if len(mem.WriteCalls()) != 0 {
		t.Errorf("failed writes must not be recorded")
	}

	if err := mem.Close(context.Background()); err != nil || !mem.Closed() {
		t.Errorf("expected client to be closed")
	}
}
