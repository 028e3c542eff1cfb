package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alexmuntean1/freshfridge/internal/domain"
)

func sample() []domain.GroceryItem {
	return []domain.GroceryItem{
		domain.NewGroceryItem("Apples", 3),
		{Name: "creme fraiche"},
		domain.NewGroceryItem("Bread", 1),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := "#,Name,Quantity\n1,Apples,3\n2,creme fraiche,\n3,Bread,1\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "#,Name,Quantity\n" {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d: %v", len(rows), rows)
	}
	if rows[0][1] != "Name" || rows[1][1] != "Apples" || rows[1][2] != "3" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	merged := rows[2]
	if len(merged) < 2 || merged[1] != "creme fraiche" || (len(merged) > 2 && merged[2] != "") {
		t.Fatalf("expected blank quantity for merged item, got %v", merged)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"list.xlsx", FormatXLSX, false},
		{"LIST.CSV", FormatCSV, false},
		{"list.txt", 0, true},
		{"list", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"groceries.csv", "groceries.xlsx"} {
		path := filepath.Join(dir, name)
		if err := ToFile(path, sample()); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		st, err := os.Stat(path)
		if err != nil || st.Size() == 0 {
			t.Fatalf("%s: expected non-empty file (err=%v)", name, err)
		}
	}

	if err := ToFile(filepath.Join(dir, "groceries.pdf"), sample()); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
