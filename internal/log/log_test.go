package log

import "testing"

func TestNewDefaultsToInfoOnUnknownLevel(t *testing.T) {
	l := New("not-a-real-level")
	if l == nil {
		t.Fatal("New returned nil")
	}
	// Exercise every method; none should panic.
	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)
}

func TestWithFieldReturnsDistinctLogger(t *testing.T) {
	l := Noop()
	child := l.WithField("name", "resolver")
	if child == nil {
		t.Fatal("WithField returned nil")
	}
	child.Infof("hello")
}

func TestNoopDiscardsOutput(t *testing.T) {
	l := Noop()
	l.Errorf("this should not be written anywhere visible")
}
