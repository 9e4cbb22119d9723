package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/daylog/pkg/glyph"
)

func TestKeyListsEveryGlyph(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	if err := (&Key{Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("key: %v", err)
	}
	for _, g := range glyph.DefaultGlyphs() {
		if !strings.Contains(out.String(), g.Meaning) {
			t.Fatalf("legend is missing %q:\n%s", g.Meaning, out.String())
		}
	}
}
