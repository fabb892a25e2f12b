package state

import (
	"testing"

	"acrunner/internal/problem/model"
	"acrunner/internal/testutil"
)

func TestHolderLifecycle(t *testing.T) {
	h := NewHolder()
	_, ok := h.Get()
	testutil.AssertFalse(t, ok, "new holder should be empty")

	sample := model.ProblemRecord{
		Name:      "Test",
		Group:     "G",
		URL:       "https://example.com",
		TimeLimit: 1000,
		ContestID: "c",
		TaskID:    "t",
		TestsDir:  "tests",
		Cases:     []model.TestCaseFile{{Index: 1, InputPath: "1.in", OutputPath: "1.out"}},
	}
	h.Set(sample)

	got, ok := h.Get()
	testutil.AssertTrue(t, ok, "holder should report a problem after Set")
	testutil.AssertEqual(t, got.Name, "Test")
	testutil.AssertEqual(t, len(got.Cases), 1)

	h.Clear()
	_, ok = h.Get()
	testutil.AssertFalse(t, ok, "holder should be empty after Clear")
}

func TestHolderSetReplaces(t *testing.T) {
	h := NewHolder()
	h.Set(model.ProblemRecord{Name: "first"})
	h.Set(model.ProblemRecord{Name: "second"})

	got, _ := h.Get()
	testutil.AssertEqual(t, got.Name, "second")
}

func TestHolderReturnsCopies(t *testing.T) {
	h := NewHolder()
	cases := []model.TestCaseFile{{Index: 1}}
	h.Set(model.ProblemRecord{Name: "p", Cases: cases})

	cases[0].Index = 42
	got, _ := h.Get()
	testutil.AssertEqual(t, got.Cases[0].Index, 1)

	got.Cases[0].Index = 7
	again, _ := h.Get()
	testutil.AssertEqual(t, again.Cases[0].Index, 1)
}

func TestHolderUpdate(t *testing.T) {
	h := NewHolder()
	called := false
	ok := h.Update(func(*model.ProblemRecord) { called = true })
	testutil.AssertFalse(t, ok, "Update on an empty holder should report false")
	testutil.AssertFalse(t, called, "fn should not run without a problem")

	current := model.ProblemRecord{Name: "Next", ContestID: "abc301", TaskID: "b", TestsDir: "tests"}
	h.Set(current)
	stale := model.ProblemRecord{Name: "Old", ContestID: "abc300", TaskID: "a", TestsDir: "tests"}
	ok = h.Update(func(p *model.ProblemRecord) {
		if p.SameTask(stale) {
			p.Cases = []model.TestCaseFile{{Index: 1}}
		}
	})
	testutil.AssertTrue(t, ok, "Update should report true when a problem is set")
	got, _ := h.Get()
	testutil.AssertEqual(t, got.Name, "Next")
	testutil.AssertEqual(t, len(got.Cases), 0)

	h.Update(func(p *model.ProblemRecord) {
		if p.SameTask(current) {
			p.Cases = []model.TestCaseFile{{Index: 1}, {Index: 2}}
		}
	})
	got, _ = h.Get()
	testutil.AssertEqual(t, len(got.Cases), 2)
}
