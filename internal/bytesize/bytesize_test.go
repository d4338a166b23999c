package bytesize

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		{"plain zero", "0", 0, false},
		{"plain bytes", "1024", 1024, false},
		{"bytes suffix", "1024B", 1024, false},
		{"kibibytes", "64Ki", 64 * 1024, false},
		{"kibibytes long", "64KiB", 64 * 1024, false},
		{"mebibytes", "256Mi", 256 * 1024 * 1024, false},
		{"gibibytes", "1GiB", 1024 * 1024 * 1024, false},
		{"tebibytes", "1Ti", 1024 * 1024 * 1024 * 1024, false},
		{"kilobytes", "1KB", 1000, false},
		{"megabytes", "100M", 100 * 1000 * 1000, false},
		{"gigabytes", "1GB", 1000 * 1000 * 1000, false},
		{"case insensitive", "1gi", 1024 * 1024 * 1024, false},
		{"whitespace", "  1 Gi  ", 1024 * 1024 * 1024, false},
		{"float", "1.5Mi", ByteSize(1.5 * 1024 * 1024), false},

		{"empty", "", 0, true},
		{"blank", "   ", 0, true},
		{"negative", "-1Mi", 0, true},
		{"unknown unit", "10XB", 0, true},
		{"no number", "Mi", 0, true},
		{"overflow", "99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseByteSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseByteSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseByteSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestByteSize_Exact(t *testing.T) {
	tests := []struct {
		in   ByteSize
		want string
	}{
		{0, "0"},
		{1000, "1000"},
		{4 * KiB, "4Ki"},
		{256 * MiB, "256Mi"},
		{3 * GiB, "3Gi"},
		{2 * TiB, "2Ti"},
		{1536 * KiB, "1536Ki"},
	}
	for _, tt := range tests {
		if got := tt.in.Exact(); got != tt.want {
			t.Errorf("ByteSize(%d).Exact() = %q, want %q", uint64(tt.in), got, tt.want)
		}
	}
}

func TestByteSize_YAMLRoundTrip(t *testing.T) {
	type doc struct {
		MaxFileSize ByteSize `yaml:"max_file_size"`
	}

	out, err := yaml.Marshal(doc{MaxFileSize: 256 * MiB})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != "max_file_size: 256Mi\n" {
		t.Fatalf("Marshal = %q", out)
	}

	var back doc
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.MaxFileSize != 256*MiB {
		t.Errorf("round trip = %d, want %d", back.MaxFileSize, 256*MiB)
	}
}

func TestByteSize_UnmarshalTextError(t *testing.T) {
	var b ByteSize = 7
	if err := b.UnmarshalText([]byte("lots")); err == nil {
		t.Fatal("expected error")
	}
	if b != 7 {
		t.Errorf("value changed on error: %d", b)
	}
}

func TestByteSize_String(t *testing.T) {
	tests := []struct {
		in   ByteSize
		want string
	}{
		{512, "512B"},
		{KiB, "1.00KiB"},
		{1536 * KiB, "1.50MiB"},
		{GiB, "1.00GiB"},
		{TiB, "1.00TiB"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("ByteSize(%d).String() = %q, want %q", uint64(tt.in), got, tt.want)
		}
	}
}

func TestByteSize_Int64Saturates(t *testing.T) {
	if got := ByteSize(1<<64 - 1).Int64(); got != 1<<63-1 {
		t.Errorf("Int64() = %d", got)
	}
	if got := (2 * GiB).Int64(); got != 2<<30 {
		t.Errorf("Int64() = %d", got)
	}
}
