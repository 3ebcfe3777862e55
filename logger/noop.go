package logger

// Noop discards every message. It is the default when no logger is
// configured on the client.
type Noop struct{}

var _ Logger = Noop{}

func (Noop) Debugf(string, ...any) {}

func (Noop) Infof(string, ...any) {}

func (Noop) Warnf(string, ...any) {}

func (Noop) Errorf(string, ...any) {}
