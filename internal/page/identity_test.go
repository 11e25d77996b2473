package page

import "testing"

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		wantID  int64
		wantErr bool
	}{
		{name: "default pattern", path: "/data/pdfs/SCAN00012345.pdf", wantID: 12345},
		{name: "prefixed pattern", pattern: `SCAN(\d{8})`, path: "SCAN00000042.pdf", wantID: 42},
		{name: "digits in extension ignored", pattern: `SCAN(\d{8})`, path: "SCAN00000001_copy2.pdf", wantID: 1},
		{name: "no digits", path: "cover.pdf", wantErr: true},
		{name: "prefix missing", pattern: `SCAN(\d{8})`, path: "IMG00000042.pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewParser(tt.pattern)
			if err != nil {
				t.Fatalf("NewParser: %v", err)
			}
			got, err := p.Parse(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %+v, want error", tt.path, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.path, err)
			}
			if got.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestNewParserRejectsBadGroups(t *testing.T) {
	if _, err := NewParser(`\d+`); err == nil {
		t.Error("pattern without capture group accepted")
	}
	if _, err := NewParser(`(\d+)-(\d+)`); err == nil {
		t.Error("pattern with two capture groups accepted")
	}
}

func TestFormatFileID(t *testing.T) {
	if got := FormatFileID(42); got != "P00000042" {
		t.Errorf("FormatFileID(42) = %q", got)
	}
}
