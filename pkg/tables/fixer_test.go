package tables_test

import (
	"testing"

	"github.com/yaklabco/gomdtables/pkg/tables"
)

func TestFixCanonicalRendering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "pads narrow cells",
			input: "| A | B |\n|---|---|\n| longer | 1 |",
			want:  "| A      | B   |\n| ------ | --- |\n| longer | 1   |",
		},
		{
			name:  "emoji measured as two columns",
			input: "| App | OK |\n| --- | --- |\n| web | ✅ |",
			want:  "| App | OK  |\n| --- | --- |\n| web | ✅  |",
		},
		{
			name:  "cjk measured as two columns each",
			input: "| 名前 | x |\n| --- | --- |\n| ab | y |",
			want:  "| 名前 | x   |\n| ---- | --- |\n| ab   | y   |",
		},
		{
			name:  "alignment markers preserved",
			input: "| L | R | C |\n| :-- | --: | :-: |\n| aaaa | b | c |",
			want:  "| L    |   R |  C  |\n| :--- | --: | :-: |\n| aaaa |   b |  c  |",
		},
		{
			name:  "no outer pipes keeps style",
			input: "A | B\n--- | ---\nx | yy",
			want:  "A   | B\n--- | ---\nx   | yy",
		},
		{
			name:  "rows adopt header pipe style",
			input: "| A | B |\n| --- | --- |\n1 | 2",
			want:  "| A   | B   |\n| --- | --- |\n| 1   | 2   |",
		},
		{
			name:  "extra cells kept with minimal padding",
			input: "| A | B |\n| --- | --- |\n| 1 | 2 | 3 |",
			want:  "| A   | B   |\n| --- | --- |\n| 1   | 2   | 3 |",
		},
		{
			name:  "short row padded with empty cell",
			input: "| A | B |\n| --- | --- |\n| 1 |",
			want:  "| A   | B   |\n| --- | --- |\n| 1   |     |",
		},
		{
			name:  "escaped pipe width counts the backslash",
			input: "| a \\| b | c |\n| --- | --- |",
			want:  "| a \\| b | c   |\n| ------ | --- |",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := parseOne(t, tt.input)

			rep, ok := tables.Fix(b)
			if !ok {
				t.Fatalf("Fix() reported no change for %q", tt.input)
			}
			if rep.Text != tt.want {
				t.Errorf("Fix() text =\n%s\nwant:\n%s", rep.Text, tt.want)
			}
			if rep.StartLine != b.StartLine || rep.EndLine != b.EndLine {
				t.Errorf("replacement range = [%d, %d], want [%d, %d]",
					rep.StartLine, rep.EndLine, b.StartLine, b.EndLine)
			}
		})
	}
}

func TestFixNoOpOnCanonicalInput(t *testing.T) {
	t.Parallel()

	content := "| A   | B   |\n| --- | --- |\n| 1   | 2   |"
	b := parseOne(t, content)
	if rep, ok := tables.Fix(b); ok {
		t.Errorf("Fix() proposed a change for canonical input:\n%s", rep.Text)
	}
}

func TestFixIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"| A | B |\n|---|---|\n| longer | 1 |",
		"| App | OK |\n| --- | --- |\n| web | ✅ |",
		"| L | R | C |\n| :-- | --: | :-: |\n| aaaa | b | c |",
		"A | B\n--- | ---\nx | yy",
		"| A | B |\n| --- | --- |\n| 1 | 2 | 3 |",
	}

	for _, input := range inputs {
		b := parseOne(t, input)
		rep, ok := tables.Fix(b)
		if !ok {
			t.Fatalf("Fix() reported no change for %q", input)
		}

		again := parseOne(t, rep.Text)
		if rep2, ok := tables.Fix(again); ok {
			t.Errorf("second Fix() not a no-op for %q:\n%s", input, rep2.Text)
		}
	}
}

func TestFixedTableValidatesClean(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"| A | B |\n|---|---|\n| longer | 1 |",
		"|A | B|\n| ---- | --- |\n|  1   | 2 |",
		"| App | OK |\n| --- | --- |\n| web | ✅ |",
		"1 | 2\n--- | ---\n| mixed | style |",
	}

	for _, input := range inputs {
		b := parseOne(t, input)
		rep, ok := tables.Fix(b)
		if !ok {
			continue
		}
		fixed := parseOne(t, rep.Text)
		if violations := tables.Validate(fixed); len(violations) != 0 {
			t.Errorf("fixed table still has violations for %q: %v", input, violations)
		}
	}
}

func TestFixKeepsColumnCountMismatch(t *testing.T) {
	t.Parallel()

	b := parseOne(t, "| A | B |\n| --- | --- |\n| 1 | 2 | 3 |")
	rep, ok := tables.Fix(b)
	if !ok {
		t.Fatal("Fix() reported no change")
	}

	fixed := parseOne(t, rep.Text)
	got := kindSet(tables.Validate(fixed))
	if len(got) != 1 || got[tables.ColumnCountMismatch] != 1 {
		t.Errorf("kinds after fix = %v, want exactly one column-count-mismatch", got)
	}
}

func TestFixCanonicalCRLFIsNoOp(t *testing.T) {
	t.Parallel()

	b := parseOne(t, "| Foo | Bar |\r\n| --- | --- |\r\n| a   | b   |\r\n")
	if rep, ok := tables.Fix(b); ok {
		t.Errorf("Fix() = %q, want no change for canonical CRLF table", rep.Text)
	}
}

func TestFixPreservesCRLF(t *testing.T) {
	t.Parallel()

	b := parseOne(t, "| A | B |\r\n|---|---|\r\n| longer | 1 |\r\n")
	rep, ok := tables.Fix(b)
	if !ok {
		t.Fatal("Fix() reported no change")
	}

	want := "| A      | B   |\r\n| ------ | --- |\r\n| longer | 1   |"
	if rep.Text != want {
		t.Errorf("Fix() text = %q, want %q", rep.Text, want)
	}
}
