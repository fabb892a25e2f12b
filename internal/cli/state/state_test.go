package state

import (
	"path/filepath"
	"testing"

	"acrunner/internal/problem/model"
	"acrunner/internal/testutil"
)

func TestSnapshotLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".acrunner", "state.json")

	_, ok, err := Load(path)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, ok, "missing file should report no snapshot")

	problem := model.ProblemRecord{Name: "A", ContestID: "abc300", TaskID: "a", TimeLimit: 2000, TestsDir: "tests"}
	testutil.AssertNoError(t, Save(path, problem))

	snap, ok, err := Load(path)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok, "saved snapshot should load")
	testutil.AssertEqual(t, snap.Problem.TaskID, "a")
	testutil.AssertEqual(t, snap.Problem.TimeLimit, int64(2000))
	testutil.AssertFalse(t, snap.SavedAt.IsZero(), "saved_at should be set")

	testutil.AssertNoError(t, Clear(path))
	testutil.AssertNoError(t, Clear(path))
	_, ok, _ = Load(path)
	testutil.AssertFalse(t, ok, "cleared snapshot should be gone")
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	testutil.WriteFile(t, path, "{")
	_, _, err := Load(path)
	testutil.AssertTrue(t, err != nil, "corrupt file should fail")
}
