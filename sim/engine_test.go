package sim

import (
	"math"
	"testing"
)

func TestDispatchGroups(t *testing.T) {
	tests := []struct {
		count, workgroup, want uint32
	}{
		{131072, 64, 2048},
		{16384, 64, 256},
		{4096, 64, 64},
		{1, 64, 1},
		{65, 64, 2},
		{64, 64, 1},
	}

	for _, tt := range tests {
		if got := DispatchGroups(tt.count, tt.workgroup); got != tt.want {
			t.Errorf("DispatchGroups(%d, %d) = %d, want %d", tt.count, tt.workgroup, got, tt.want)
		}
	}
}

func TestClampDT(t *testing.T) {
	tests := []struct {
		name string
		dt   float32
		want float32
	}{
		{"stalled frame clamps", 1.0, 0.033},
		{"normal frame passes", 0.016, 0.016},
		{"boundary passes", 0.033, 0.033},
		{"tab stall clamps", 5.0, 0.033},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDT(tt.dt, 0.033); got != tt.want {
				t.Errorf("ClampDT(%f) = %f, want %f", tt.dt, got, tt.want)
			}
		})
	}
}

func TestParamsPack(t *testing.T) {
	p := Params{DT: 0.016, GM: 40000, Count: 131072}
	packed := p.pack()

	if math.Float32frombits(packed[0]) != 0.016 {
		t.Errorf("dt slot = %f, want 0.016", math.Float32frombits(packed[0]))
	}
	if math.Float32frombits(packed[1]) != 40000 {
		t.Errorf("gm slot = %f, want 40000", math.Float32frombits(packed[1]))
	}
	if packed[2] != 131072 {
		t.Errorf("count slot = %d, want 131072", packed[2])
	}
	if packed[3] != 0 {
		t.Errorf("padding slot = %d, want 0", packed[3])
	}
}
