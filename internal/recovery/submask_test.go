package recovery

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestIncr32MaskEnumeratesSubmasksInOrder(t *testing.T) {
	var got []uint32
	forEachSubmask(0b10110, func(v uint32) {
		got = append(got, v)
	})

	want := []uint32{0, 2, 4, 6, 16, 18, 20, 22}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestIncr32MaskZeroMask(t *testing.T) {
	var got []uint32
	forEachSubmask(0, func(v uint32) {
		got = append(got, v)
	})
	qt.Assert(t, qt.DeepEquals(got, []uint32{0}))
}

func TestIncr32MaskFullMask(t *testing.T) {
	var count int
	forEachSubmask(0xff, func(uint32) { count++ })
	qt.Assert(t, qt.Equals(count, 256))
}
