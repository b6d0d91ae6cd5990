package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hola", 10) != "hola" {
		t.Error("short string unchanged")
	}
	if got := Truncate("hola mundo", 4); got != "hola..." {
		t.Errorf("got %s", got)
	}
	if got := Truncate("compañero", 6); got != "compañ..." {
		t.Errorf("multibyte runes must stay whole, got %q", got)
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
}

func TestPreview(t *testing.T) {
	in := "\n        Ayer bine a la escuela\n        y no havia nadie."
	if got := Preview(in, 0); got != "Ayer bine a la escuela y no havia nadie." {
		t.Errorf("got %q", got)
	}
	if got := Preview(in, 9); got != "Ayer bine..." {
		t.Errorf("got %q", got)
	}
}
