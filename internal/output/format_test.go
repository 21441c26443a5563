package output_test

import (
	"bytes"
	"testing"
	"time"

	"tareas/internal/output"
	"tareas/internal/service"
	"tareas/internal/testutil"
)

func sampleTasks() []service.Task {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []service.Task{
		{ID: 2, Descripcion: "Walk dog", FechaCreacion: created.Add(time.Minute)},
		{ID: 1, Descripcion: "Buy milk", Completada: true, FechaCreacion: created},
	}
}

func TestFormatList_Plain(t *testing.T) {
	var buf bytes.Buffer
	output.FormatList(&buf, sampleTasks(), false)
	testutil.Golden(t, "list_plain", buf.Bytes())
}

func TestFormatList_Color(t *testing.T) {
	var buf bytes.Buffer
	output.FormatList(&buf, sampleTasks(), true)
	testutil.Golden(t, "list_color", buf.Bytes())
}

func TestFormatList_Empty(t *testing.T) {
	var buf bytes.Buffer
	output.FormatList(&buf, nil, true)
	testutil.Golden(t, "list_empty", buf.Bytes())
}

func TestFormatTask_MultilineDescription(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTask(&buf, 12, service.Task{ID: 7, Descripcion: "line one\nline two"}, false)

	expected := "  12  [ ] line one line two (#7)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Buy milk", "Buy milk", false},
		{"  Buy milk \n", "Buy milk", false},
		{"", "", true},
		{"   ", "", true},
		{"\t\n", "", true},
	}
	for _, tt := range tests {
		got, err := output.NormalizeDescription(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeDescription(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeDescription(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
