package helpers

import "testing"

func TestIsMintAddress(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"wrapped sol mint", "So11111111111111111111111111111111111111112", true},
		{"usdc mint", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", true},
		{"too short", "So1111111", false},
		{"contains zero", "0PjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", false},
		{"contains capital O", "OPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", false},
		{"contains lowercase l", "lPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", false},
		{"plain chatter", "hello there", false},
		{"decimal amount", "0.5", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMintAddress(tt.text); got != tt.want {
				t.Fatalf("IsMintAddress(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsDecimalAmount(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"0.1", true},
		{"1", true},
		{"1500", true},
		{"12.5", true},
		{"0", true}, // shape is valid; positivity is enforced downstream
		{"-1", false},
		{".5", false},
		{"1.", false},
		{"1,5", false},
		{"0.1 sol", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsDecimalAmount(tt.text); got != tt.want {
			t.Errorf("IsDecimalAmount(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParseMint(t *testing.T) {
	pk, err := ParseMint("So11111111111111111111111111111111111111112")
	if err != nil {
		t.Fatalf("ParseMint(wrapped sol): %v", err)
	}
	if pk.String() != "So11111111111111111111111111111111111111112" {
		t.Fatalf("round-trip mismatch: %s", pk)
	}

	if _, err := ParseMint("not-a-mint"); err == nil {
		t.Fatal("ParseMint accepted garbage")
	}
}

func TestShortMint(t *testing.T) {
	got := ShortMint("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	if got != "EPjF...Dt1v" {
		t.Fatalf("ShortMint = %q", got)
	}
	if got := ShortMint("short"); got != "short" {
		t.Fatalf("ShortMint(short) = %q", got)
	}
}

func TestSolscanTxURL(t *testing.T) {
	if got := SolscanTxURL("abc123"); got != "https://solscan.io/tx/abc123" {
		t.Fatalf("SolscanTxURL = %q", got)
	}
}
