package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(RunRecord{Mode: "classic", Score: 75, Outcome: "destroyed"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Open() second time failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 75 {
		t.Errorf("HighScore() = %d, expected 75", high)
	}
}

func TestSaveRunAssignsUUID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{Mode: "modern", Score: 150, Outcome: "victory", Ticks: 2700, Destroyed: 3, Seed: 9})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id = %q, expected a uuid: %v", id, err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() = nil, expected the saved run")
	}
	if got.Mode != "modern" || got.Score != 150 || got.Outcome != "victory" || got.Ticks != 2700 || got.Destroyed != 3 || got.Seed != 9 {
		t.Errorf("RunByID() = %+v, expected the saved fields", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	given := uuid.NewString()

	id, err := store.SaveRun(RunRecord{RunID: given, Mode: "classic", Outcome: "destroyed"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != given {
		t.Errorf("SaveRun() = %q, expected %q", id, given)
	}
	if _, err := store.SaveRun(RunRecord{RunID: given, Mode: "classic", Outcome: "destroyed"}); err == nil {
		t.Error("SaveRun() with a duplicate run id should fail")
	}
}

func TestSaveRunRequiresMode(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(RunRecord{Score: 10}); err == nil {
		t.Error("SaveRun() without a mode should fail")
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTestStore(t)
	got, err := store.RunByID("missing")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RunByID() = %+v, expected nil", got)
	}
}

func TestTopScores(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{Mode: "classic", Score: 100, Outcome: "destroyed"},
		{Mode: "classic", Score: 50, Outcome: "destroyed"},
		{Mode: "classic", Score: 200, Outcome: "victory"},
		{Mode: "modern", Score: 500, Outcome: "swallowed"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	expected := []int{200, 100, 50}
	if len(scores) != len(expected) {
		t.Fatalf("TopScores() returned %d runs, expected %d", len(scores), len(expected))
	}
	for i, s := range scores {
		if s.Score != expected[i] {
			t.Errorf("TopScores()[%d] = %d, expected %d", i, s.Score, expected[i])
		}
	}

	limited, err := store.TopScores("classic", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("TopScores(limit 2) returned %d runs", len(limited))
	}

	modern, err := store.TopScores("modern", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(modern) != 1 || modern[0].Score != 500 {
		t.Errorf("TopScores(modern) = %+v, expected one run of 500", modern)
	}
}

func TestHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)
	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0", high)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(RunRecord{Mode: "classic", Score: 100, Outcome: "destroyed"})
	store.SaveRun(RunRecord{Mode: "modern", Score: 300, Outcome: "destroyed"})

	if err := store.ClearScores("classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("classic", 10)
	if len(classic) != 0 {
		t.Errorf("TopScores(classic) = %d runs after clear, expected 0", len(classic))
	}
	modern, _ := store.TopScores("modern", 10)
	if len(modern) != 1 {
		t.Errorf("TopScores(modern) = %d runs, expected 1", len(modern))
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)
	for i, mode := range []string{"classic", "modern", "classic"} {
		store.SaveRun(RunRecord{Mode: mode, Score: i, Outcome: "destroyed"})
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentRuns() returned %d runs, expected 2", len(recent))
	}
	if recent[0].Score != 2 || recent[1].Score != 1 {
		t.Errorf("RecentRuns() scores = %d, %d, expected newest first", recent[0].Score, recent[1].Score)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(RunRecord{Mode: "classic", Score: 100, Outcome: "victory"})
	store.SaveRun(RunRecord{Mode: "classic", Score: 300, Outcome: "destroyed"})
	store.SaveRun(RunRecord{Mode: "modern", Score: 50, Outcome: "swallowed"})

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	classic, ok := stats["classic"]
	if !ok {
		t.Fatal("Stats() missing classic")
	}
	if classic.Runs != 2 || classic.HighScore != 300 || classic.AvgScore != 200 || classic.Victories != 1 {
		t.Errorf("Stats()[classic] = %+v", classic)
	}
	if modern := stats["modern"]; modern == nil || modern.Runs != 1 || modern.Victories != 0 {
		t.Errorf("Stats()[modern] = %+v", modern)
	}
}

func TestConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.SaveRun(RunRecord{Mode: "classic", Score: i, Outcome: "destroyed"}); err != nil {
				t.Errorf("SaveRun() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	runs, err := store.TopScores("classic", 100)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(runs) != 20 {
		t.Errorf("TopScores() returned %d runs, expected 20", len(runs))
	}
}
