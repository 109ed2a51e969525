package gralloc

import "testing"

func TestIsUsageEligible(t *testing.T) {
	tests := []struct {
		name  string
		usage Usage
		want  bool
	}{
		{"hw fb", HWFB, true},
		{"hw fb with sw read", HWFB | SWReadOften, true},
		{"hw fb with sw write", HWFB | SWWriteRarely | HWComposer, true},
		{"no sw access", HWTexture | HWComposer, true},
		{"zero", 0, true},
		{"sw read often", SWReadOften, false},
		{"sw read rarely", SWReadRarely | HWComposer, false},
		{"sw write often", SWWriteOften | HWTexture, false},
		{"sw write rarely", SWWriteRarely, false},
		{"sw read and write", SWReadOften | SWWriteOften | HWRender, false},
		{"odd read value", Usage(0x1) | HWComposer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUsageEligible(tt.usage); got != tt.want {
				t.Errorf("IsUsageEligible(%v) = %v, want %v", tt.usage, got, tt.want)
			}
		})
	}
}

// Every software access value other than NEVER disqualifies a buffer
// unless it is a framebuffer target.
func TestIsUsageEligibleExhaustiveAccessFields(t *testing.T) {
	for r := Usage(0); r <= SWReadMask; r++ {
		for w := Usage(0); w <= SWWriteMask; w += 0x10 {
			u := r | w | HWComposer
			want := r == SWReadNever && w == SWWriteNever
			if got := IsUsageEligible(u); got != want {
				t.Errorf("IsUsageEligible(%v) = %v, want %v", u, got, want)
			}
			if !IsUsageEligible(u | HWFB) {
				t.Errorf("IsUsageEligible(%v|HW_FB) = false, want true", u)
			}
		}
	}
}

func TestUsageString(t *testing.T) {
	tests := []struct {
		usage Usage
		want  string
	}{
		{0, "SW_READ_NEVER|SW_WRITE_NEVER"},
		{SWReadOften | HWFB, "SW_READ_OFTEN|SW_WRITE_NEVER|HW_FB"},
		{SWWriteRarely | HWTexture | HWComposer, "SW_READ_NEVER|SW_WRITE_RARELY|HW_TEXTURE|HW_COMPOSER"},
		{Usage(0x80000000), "SW_READ_NEVER|SW_WRITE_NEVER|0x80000000"},
	}

	for _, tt := range tests {
		if got := tt.usage.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
