package polyedit

import (
	"slices"
	"testing"
)

func TestFindSelfIntersections(t *testing.T) {
	tests := []struct {
		name   string
		points []Vec2
		want   []int
	}{
		{"empty", nil, nil},
		{"triangle", triangle, nil},
		{"square", []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, nil},
		{"bow-tie", []Vec2{{0, 0}, {1, 1}, {1, 0}, {0, 1}}, []int{0, 2}},
		{"concave", []Vec2{{0, 0}, {2, 0}, {2, 2}, {1, 1}, {0, 2}}, nil},
		{"touching vertex", []Vec2{{0, 0}, {2, 0}, {1, 1}, {2, 2}, {0, 2}, {1, 1}}, []int{1, 2, 4, 5}},
		{"vertex on edge", []Vec2{{0, 0}, {3, 0}, {3, 1}, {1, 0}, {2, -1}}, []int{0, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSelfIntersections(tt.points)
			if !slices.Equal(got, tt.want) {
				t.Errorf("FindSelfIntersections = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d Vec2
		want       bool
	}{
		{"cross", Vec2{0, 0}, Vec2{2, 2}, Vec2{0, 2}, Vec2{2, 0}, true},
		{"parallel", Vec2{0, 0}, Vec2{2, 0}, Vec2{0, 1}, Vec2{2, 1}, false},
		{"collinear apart", Vec2{0, 0}, Vec2{1, 0}, Vec2{2, 0}, Vec2{3, 0}, false},
		{"collinear overlap", Vec2{0, 0}, Vec2{2, 0}, Vec2{1, 0}, Vec2{3, 0}, true},
		{"T junction", Vec2{0, 0}, Vec2{2, 0}, Vec2{1, 0}, Vec2{1, 5}, true},
		{"near miss", Vec2{0, 0}, Vec2{2, 0}, Vec2{1, 0.01}, Vec2{1, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentsIntersect(tt.a, tt.b, tt.c, tt.d); got != tt.want {
				t.Errorf("segmentsIntersect = %v, want %v", got, tt.want)
			}
		})
	}
}
