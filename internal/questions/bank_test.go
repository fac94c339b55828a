package questions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/quizzer/internal/quiz"
)

func TestEmbedded(t *testing.T) {
	qs, err := Embedded{}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(qs) != 15 {
		t.Fatalf("len = %d, want 15", len(qs))
	}
	total := 0
	for _, q := range qs {
		total += q.Points
	}
	if total != 280 {
		t.Errorf("max points = %d, want 280", total)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
		fails   bool
	}{
		{
			name:  "bare array",
			input: `[{"question":"q","options":["a","b"],"correctOption":1,"points":10}]`,
			want:  1,
		},
		{
			name:  "versioned",
			input: `{"version":"1.2.0","questions":[{"question":"q","options":["a","b"],"correctOption":0,"points":10}]}`,
			want:  1,
		},
		{
			name:  "unversioned object",
			input: `{"questions":[{"question":"q","options":["a","b"],"correctOption":0,"points":10}]}`,
			want:  1,
		},
		{
			name:    "future major",
			input:   `{"version":"2.0.0","questions":[]}`,
			wantErr: ErrUnsupportedVersion,
		},
		{name: "bad version", input: `{"version":"one","questions":[]}`, fails: true},
		{name: "empty", input: "  ", fails: true},
		{name: "empty array", input: `[]`, fails: true},
		{name: "not json", input: `questions`, fails: true},
		{
			name:  "correct option out of range",
			input: `[{"question":"q","options":["a","b"],"correctOption":2,"points":10}]`,
			fails: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := Parse([]byte(tt.input))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			case tt.fails:
				if err == nil {
					t.Fatal("expected error")
				}
			default:
				if err != nil {
					t.Fatalf("Parse: %v", err)
				}
				if len(qs) != tt.want {
					t.Errorf("len = %d, want %d", len(qs), tt.want)
				}
			}
		})
	}
}

func TestMarshalParses(t *testing.T) {
	qs := []quiz.Question{
		{Text: "Which hook?", Options: []string{"useState", "useMemo"}, CorrectOption: 0, Points: 10},
	}
	data, err := Marshal(qs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got[0].Text != qs[0].Text || got[0].Options[1] != "useMemo" {
		t.Errorf("got %+v", got[0])
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.json")
	if err := os.WriteFile(path, reactBank, 0o644); err != nil {
		t.Fatal(err)
	}

	qs, err := File{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(qs) != 15 {
		t.Errorf("len = %d, want 15", len(qs))
	}

	if _, err := (File{Path: filepath.Join(dir, "missing.json")}).Load(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}
