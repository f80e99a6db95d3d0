package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestResumeSkipsFinishedGames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selfplay.csv")
	var sb strings.Builder
	sb.WriteString(strings.Join(csvHeader, ",") + "\n")
	// 多 worker 乱序完成：10 还没写完就被中断
	for _, id := range []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "11"} {
		sb.WriteString(id + ",A,20,0,0,1.50\n")
	}
	complete := sb.String()
	sb.WriteString("12,B,3") // 半行
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatal(err)
	}

	lines, finished := repairCSV(path, len(csvHeader))
	if lines != 12 {
		t.Errorf("complete lines = %d, want 12", lines)
	}
	if len(finished) != 11 || finished[10] || !finished[11] {
		t.Errorf("finished ids = %v", finished)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != complete {
		t.Errorf("partial row not truncated:\n%s", got)
	}

	if todo := pendingGames(13, finished); !reflect.DeepEqual(todo, []int{10, 12}) {
		t.Errorf("pending games = %v, want [10 12]", todo)
	}
}

func TestRepairEmptyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selfplay.csv")
	lines, finished := repairCSV(path, len(csvHeader))
	if lines != 0 || len(finished) != 0 {
		t.Errorf("new file: lines=%d finished=%v", lines, finished)
	}
	if todo := pendingGames(3, finished); !reflect.DeepEqual(todo, []int{0, 1, 2}) {
		t.Errorf("pending games = %v", todo)
	}
}
