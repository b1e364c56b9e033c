package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"streamtasks/internal/testutil"
)

func TestUpdateEnv(t *testing.T) {
	if testutil.UpdateEnv != "STREAMTASKS_GOLDEN_UPDATE" {
		t.Errorf("unexpected update env %q", testutil.UpdateEnv)
	}
}

func TestGolden_UpdateThenCompare(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv(testutil.UpdateEnv, "1")
	testutil.GoldenString(t, "sample", "<div>x</div>\n")

	got, err := os.ReadFile(filepath.Join("testdata", "sample.golden"))
	if err != nil {
		t.Fatalf("expected golden file to be written: %v", err)
	}
	if string(got) != "<div>x</div>\n" {
		t.Errorf("unexpected golden contents %q", got)
	}

	t.Setenv(testutil.UpdateEnv, "")
	testutil.GoldenString(t, "sample", "<div>x</div>\n")
}
