package wm

import "testing"

func TestParseClientLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Window
		ok   bool
	}{
		{
			name: "regular client",
			line: "0x01400003  2 navigator.Zen-browser  host Mozilla Zen Browser",
			want: Window{ID: "0x01400003", Class: "Zen-browser", Title: "Mozilla Zen Browser", Desktop: 2},
			ok:   true,
		},
		{
			name: "sticky window reports desktop -1",
			line: "0x00a00004 -1 polybar.Polybar host polybar-main",
			want: Window{ID: "0x00a00004", Class: "Polybar", Title: "polybar-main", Desktop: -1},
			ok:   true,
		},
		{
			name: "missing class",
			line: "0x01600003  0 N/A host some popup",
			ok:   false,
		},
		{
			name: "no title",
			line: "0x01800005  1 konsole.konsole host",
			want: Window{ID: "0x01800005", Class: "konsole", Title: "(untitled)", Desktop: 1},
			ok:   true,
		},
		{
			name: "blank line",
			line: "",
			ok:   false,
		},
		{
			name: "short line",
			line: "0x01800005 1",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseClientLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("parsed %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWindowIDRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0x01400003", "0x01400003"},
		{"20971523", "0x01400003"}, // xdotool prints decimal IDs
		{"0xffffffff", "0xffffffff"},
	}
	for _, tt := range tests {
		id, err := ParseWindowID(tt.in)
		if err != nil {
			t.Fatalf("ParseWindowID(%q) failed: %v", tt.in, err)
		}
		if got := FormatWindowID(id); got != tt.want {
			t.Errorf("FormatWindowID(ParseWindowID(%q)) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseWindowID("not-a-window"); err == nil {
		t.Fatalf("expected error for malformed ID")
	}
}
