package bech32

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func TestBech32EncodeDecode(t *testing.T) {
	payload, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	raw, err := Encode("tranche", payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if !strings.HasPrefix(string(raw), "tranche1") {
		t.Fatalf("missing human readable part: %q", raw)
	}

	hrp, got, err := Decode(string(raw))
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if hrp != "tranche" {
		t.Fatalf("invalid human readable part: %q", hrp)
	}
	if !bytes.Equal(payload, got) {
		t.Logf("want %d", payload)
		t.Logf("got  %d", got)
		t.Fatal("invalid decode")
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, _, err := Decode("tranche1notavalidchecksum"); err == nil {
		t.Fatal("decoded a string with a broken checksum")
	}
}
