package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Right3.Cross(Up3)
	if got != Forward3 {
		t.Errorf("Vec3.Cross() = %v, want %v", got, Forward3)
	}
}

func TestVec3Length(t *testing.T) {
	got := Vec3{2, 3, 6}.Length()
	if got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"axis", Vec3{0, 0, 4}, Vec3{0, 0, 1}},
		{"diagonal", Vec3{3, 4, 0}, Vec3{0.6, 0.8, 0}},
		{"zero stays zero", Vec3{}, Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !got.ApproxEqual(tt.want, 1e-6) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVec3Distance(t *testing.T) {
	a := Vec3{1, 1, 1}
	b := Vec3{1, 1, 1.1}
	d := a.Distance(b)
	if d < 0.0999 || d > 0.1001 {
		t.Errorf("Distance = %v, want ~0.1", d)
	}
}

func TestLerp(t *testing.T) {
	got := Lerp(Vec3{0, 0, 0}, Vec3{10, 20, 30}, 0.5)
	want := Vec3{5, 10, 15}
	if got != want {
		t.Errorf("Lerp = %v, want %v", got, want)
	}
}
