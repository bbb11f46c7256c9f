package logger

import "testing"

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debugf("x %d", 1)
	l.Debugw("x", map[string]any{"k": 1})
	l.Infof("x")
	l.Infow("x", nil)
	l.Warnf("x")
	l.Errorf("x")
}
