// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import "testing"

func TestPipeTable(t *testing.T) {
	tests := []struct {
		name   string
		rows   [][]string
		header bool
		want   string
	}{
		{
			name:   "two rows with header",
			rows:   [][]string{{"A", "B"}, {"1", "2"}},
			header: true,
			want:   "| A | B |\n| - | - |\n| 1 | 2 |\n",
		},
		{
			name:   "separator dashes match header cell lengths",
			rows:   [][]string{{"Name", "Qty"}, {"ink", "3"}},
			header: true,
			want:   "| Name | Qty |\n| ---- | --- |\n| ink | 3 |\n",
		},
		{
			name:   "no header promotion",
			rows:   [][]string{{"only", "row"}},
			header: false,
			want:   "| only | row |\n",
		},
		{
			name:   "ragged rows render raggedly",
			rows:   [][]string{{"a", "b"}, {"1"}},
			header: true,
			want:   "| a | b |\n| - | - |\n| 1 |\n",
		},
		{
			name: "empty",
			rows: nil,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PipeTable(tt.rows, tt.header); got != tt.want {
				t.Errorf("PipeTable() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFence(t *testing.T) {
	if got := Fence("line one\nline two"); got != "```\nline one\nline two\n```\n" {
		t.Errorf("Fence() = %q", got)
	}
	// Empty page text still produces a block.
	if got := Fence(""); got != "```\n\n```\n" {
		t.Errorf("Fence(\"\") = %q", got)
	}
}

func TestImage(t *testing.T) {
	got := Image("Image page 1 - 2", "https://b.s3.amazonaws.com/x.png")
	want := "![Image page 1 - 2](https://b.s3.amazonaws.com/x.png)"
	if got != want {
		t.Errorf("Image() = %q, want %q", got, want)
	}
}

func TestLinkBullet(t *testing.T) {
	if got := LinkBullet("https://x.com/about"); got != "- [https://x.com/about](https://x.com/about)\n" {
		t.Errorf("LinkBullet() = %q", got)
	}
}
