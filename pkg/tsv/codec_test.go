package tsv

import (
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want [][]string
	}{
		{
			name: "simple block",
			in:   "1\t2\r\n3\t4\r\n",
			want: [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name: "no trailing newline",
			in:   "a\tb",
			want: [][]string{{"a", "b"}},
		},
		{
			name: "quoted tab newline and quotes",
			in:   "\"c\td\"\t\"say \"\"hi\"\"\"\r\n\"two\r\nlines\"\tx\r\n",
			want: [][]string{{"c\td", `say "hi"`}, {"two\r\nlines", "x"}},
		},
		{
			name: "blank border rows and columns trimmed",
			in:   "\t\t\r\n\ta\tb\t\r\n\tc\t\t\r\n\t\t\r\n",
			want: [][]string{{"a", "b"}, {"c", ""}},
		},
		{
			name: "ragged rows padded",
			in:   "a\r\nb\tc\td\r\n",
			want: [][]string{{"a", "", ""}, {"b", "c", "d"}},
		},
		{
			name: "unquoted fields trimmed",
			in:   "  x \t y\r\n",
			want: [][]string{{"x", "y"}},
		},
		{
			name: "unterminated quote runs to end",
			in:   "a\t\"open\tstill\r\nopen",
			want: [][]string{{"a", "open\tstill\r\nopen"}},
		},
		{
			name: "bare newlines",
			in:   "a\nb\n",
			want: [][]string{{"a"}, {"b"}},
		},
		{
			name: "only blanks",
			in:   "\t\r\n \r\n",
			want: nil,
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Decode(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Decode(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	got := Encode([][]string{{"x", "y"}})
	if got != "x\ty\r\n" {
		t.Fatalf("encode = %q", got)
	}
	got = Encode([][]string{{"a\tb", `q"uote`, `"lead`}, {"line\nbreak", " pad", ""}})
	want := "\"a\tb\"\tq\"uote\t\"\"\"lead\"\r\n\"line\nbreak\"\t\" pad\"\t\r\n"
	if got != want {
		t.Fatalf("encode = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := [][][]string{
		{{"a", "b"}, {"c\td", "e"}},
		{{"multi\r\nline", `"quoted"`}, {"x", "y"}},
		{{" spaced ", "ok"}},
	}
	for _, rows := range inputs {
		if got := Decode(Encode(rows)); !reflect.DeepEqual(got, rows) {
			t.Fatalf("round trip %q -> %q", rows, got)
		}
	}
}
