package lumen

import "testing"

func TestLabelMeasuresItsText(t *testing.T) {
	caches := NewCaches()
	l := NewLabel("hello").Size(10)

	w, h := l.FillBounds(nil, nil, nil, nil, caches, 1)
	if w == nil || h == nil {
		t.Fatal("a non-empty label should resolve both axes")
	}
	if *w != 30 {
		t.Errorf("five runes at size 10 should be 30 wide, got %v", *w)
	}
	if *h != 12 {
		t.Errorf("one line should be 12 tall, got %v", *h)
	}
}

func TestLabelInLayout(t *testing.T) {
	caches := NewCaches()
	label := NewNode(NewLabel("hello").Size(10))
	root := boxNode().Width(300).Height(300).Push(label)
	root.CalculateLayout(caches, 1)

	if w, h := sizeOf(label); w != 30 || h != 12 {
		t.Errorf("the label should size to its text, got %vx%v", w, h)
	}
}

func TestLabelWrapsUnderMaxWidth(t *testing.T) {
	caches := NewCaches()
	l := NewLabel("hello world").Size(10)

	max := 40.0
	_, h := l.FillBounds(nil, nil, &max, nil, caches, 1)
	if h == nil || *h != 24 {
		t.Errorf("a constrained label should wrap to two lines, got %v", h)
	}
}

func TestLabelFillBoundsCachesMeasurement(t *testing.T) {
	caches := NewCaches()
	l := NewLabel("hello").Size(10)

	w1, _ := l.FillBounds(nil, nil, nil, nil, caches, 1)
	w2, _ := l.FillBounds(nil, nil, nil, nil, caches, 1)
	if w1 != w2 {
		t.Error("a repeated measurement should return the cached pointer")
	}

	// New constraints invalidate the cache.
	width := 20.0
	w3, _ := l.FillBounds(&width, nil, nil, nil, caches, 1)
	if w3 == nil || *w3 != 20 {
		t.Errorf("an explicit width should pass through, got %v", w3)
	}
}

func TestLabelScaleFactorRoundTrip(t *testing.T) {
	caches := NewCaches()
	l := NewLabel("hello").Size(10)

	// Measurement happens in physical pixels and is reported logical.
	w, _ := l.FillBounds(nil, nil, nil, nil, caches, 2)
	if w == nil || *w != 30 {
		t.Errorf("logical bounds should be scale-invariant, got %v", w)
	}
}
