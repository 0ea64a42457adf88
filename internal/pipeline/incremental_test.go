package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/store"

	"github.com/rs/zerolog"
)

const csvHeader = "Fakultas,jenis_selfreward,preferensi_selfreward,freq_selfreward,keinginan_selfreward,budget_selfreward,durasi_selfreward,kepentingan_selfreward\n"

func writeSurvey(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "survey.csv")
	if err := os.WriteFile(path, []byte(csvHeader+body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func openCache(t *testing.T) *store.Cache {
	t.Helper()
	cache, err := store.Open(filepath.Join(t.TempDir(), "survey.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestLoadWithCache_MissThenHit(t *testing.T) {
	path := writeSurvey(t, t.TempDir(),
		"A,Makanan,Materi,2,4,100000,1,5\nB,Gadget,Materi,3,5,300000,2,4\n")
	cache := openCache(t)

	first, err := LoadWithCache(path, cache, zerolog.Nop())
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first.CacheHit {
		t.Error("first load should miss the cache")
	}

	second, err := LoadWithCache(path, cache, zerolog.Nop())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !second.CacheHit {
		t.Error("second load should hit the cache")
	}
	if len(second.Dataset.Respondents) != 2 || second.Dataset.Respondents[1] != first.Dataset.Respondents[1] {
		t.Errorf("cached rows differ: %+v vs %+v", second.Dataset.Respondents, first.Dataset.Respondents)
	}
	if len(second.Faculties) != 2 {
		t.Errorf("Faculties = %v", second.Faculties)
	}
}

func TestLoadWithCache_ChangedFileReparses(t *testing.T) {
	dir := t.TempDir()
	path := writeSurvey(t, dir, "A,Makanan,Materi,2,4,100000,1,5\n")
	cache := openCache(t)

	if _, err := LoadWithCache(path, cache, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	writeSurvey(t, dir, "A,Makanan,Materi,2,4,100000,1,5\nC,Liburan,Non-Materi,1,2,50000,4,2\n")
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	res, err := LoadWithCache(path, cache, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("modified file should not be served from cache")
	}
	if res.Dataset.Len() != 2 {
		t.Errorf("rows = %d, want 2", res.Dataset.Len())
	}
}

func TestLoadWithCache_MissingFile(t *testing.T) {
	_, err := LoadWithCache(filepath.Join(t.TempDir(), "missing.csv"), openCache(t), zerolog.Nop())
	if !errors.Is(err, model.ErrDataUnavailable) {
		t.Fatalf("error = %v, want ErrDataUnavailable", err)
	}
}

func TestLoadAuto_Uncached(t *testing.T) {
	path := writeSurvey(t, t.TempDir(), "A,Makanan,Materi,2,4,100000,1,5\n")
	res, err := LoadAuto(path, false, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit || res.Dataset.Len() != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestCachePath_XDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if got := CachePath(); got != filepath.Join("/tmp/xdg", "rewardscope", "survey.db") {
		t.Errorf("CachePath = %q", got)
	}
}

func TestInspectAndClearCache(t *testing.T) {
	path := writeSurvey(t, t.TempDir(),
		"A,Makanan,Materi,2,4,100000,1,5\nB,Gadget,Materi,3,5,300000,2,4\n")
	cache := openCache(t)

	st, err := InspectCache(path, cache)
	if err != nil {
		t.Fatal(err)
	}
	if st.Tracked || st.TotalRows != 0 {
		t.Fatalf("fresh cache status = %+v", st)
	}

	if _, err := LoadWithCache(path, cache, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	st, err = InspectCache(path, cache)
	if err != nil {
		t.Fatal(err)
	}
	if !st.Tracked || st.File.RowCount != 2 || st.TotalRows != 2 {
		t.Errorf("after load status = %+v, want tracked with 2 rows", st)
	}

	if err := ClearCache(path, cache); err != nil {
		t.Fatal(err)
	}
	st, err = InspectCache(path, cache)
	if err != nil {
		t.Fatal(err)
	}
	if st.Tracked || st.TotalRows != 0 {
		t.Errorf("after clear status = %+v, want empty", st)
	}

	r, err := LoadWithCache(path, cache, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if r.CacheHit {
		t.Error("load after clear should reparse")
	}
}
