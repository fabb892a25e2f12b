package event

import (
	"encoding/json"
	"testing"

	"acrunner/internal/judge/result"
	"acrunner/internal/testutil"
)

func TestProgressJSONOmitsIndexWhenIdle(t *testing.T) {
	data, err := json.Marshal(NewProgress(ScopeAll, false, 0))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(data), `{"type":"run/progress","scope":"all","progress":{"running":false}}`)

	data, err = json.Marshal(NewProgress(ScopeOne, true, 3))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(data), `{"type":"run/progress","scope":"one","progress":{"running":true,"currentIndex":3}}`)
}

func TestNoticeJSON(t *testing.T) {
	data, err := json.Marshal(NewNotice(LevelWarning, "busy"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(data), `{"type":"notice","notice":{"level":"warning","message":"busy"}}`)
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()
	first, cancelFirst := hub.Subscribe(4)
	second, cancelSecond := hub.Subscribe(4)
	defer cancelSecond()
	testutil.AssertEqual(t, hub.Subscribers(), 2)

	hub.Publish(NewResult(ScopeOne, result.RunResult{Index: 1, Status: result.StatusPass}))

	ev := <-first
	testutil.AssertEqual(t, ev.Kind, KindResult)
	testutil.AssertEqual(t, ev.Result.Index, 1)
	ev = <-second
	testutil.AssertEqual(t, ev.Result.Status, result.StatusPass)

	cancelFirst()
	cancelFirst()
	_, open := <-first
	testutil.AssertFalse(t, open, "cancelled subscription should be closed")
	testutil.AssertEqual(t, hub.Subscribers(), 1)
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(1)
	defer cancel()

	hub.Publish(NewNotice(LevelInfo, "first"))
	hub.Publish(NewNotice(LevelInfo, "second"))

	ev := <-ch
	testutil.AssertEqual(t, ev.Notice.Message, "first")
	select {
	case extra := <-ch:
		t.Fatalf("unexpected event %+v", extra)
	default:
	}
}

func TestHubDeliversToEverySubscriber(t *testing.T) {
	hub := NewHub()
	a, cancelA := hub.Subscribe(1)
	defer cancelA()
	b, cancelB := hub.Subscribe(1)
	defer cancelB()

	hub.Publish(NewComplete(ScopeAll, result.RunSummary{Total: 2, Passed: 2}))

	testutil.AssertEqual(t, (<-a).Summary.Total, 2)
	testutil.AssertEqual(t, (<-b).Summary.Passed, 2)
}
