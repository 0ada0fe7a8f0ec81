package render

import (
	"os"
	"testing"
)

func TestDecodeOverrideMissing(t *testing.T) {
	if _, err := os.Stat("assets"); err == nil {
		t.Skip("assets directory present in the package dir")
	}
	if _, err := decodeOverride("coin"); err == nil {
		t.Fatalf("expected an error without an assets directory")
	}
}

func TestRegistry(t *testing.T) {
	if GetImage("missing") != nil {
		t.Fatalf("expected nil for an unknown key")
	}
	RegisterImage("", nil)
	RegisterImage("nil-image", nil)
	if GetImage("nil-image") != nil {
		t.Fatalf("nil images must not be registered")
	}
	ForgetImages()
}

func TestLoadImageEmptyKey(t *testing.T) {
	if _, err := LoadImage(""); err == nil {
		t.Fatalf("expected an error for an empty key")
	}
}
