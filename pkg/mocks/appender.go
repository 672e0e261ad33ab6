package mocks

import "github.com/user/gifpipe/pkg/ports"

// FrameAppender is a mock implementation of ports.FrameAppender.
type FrameAppender struct {
	BeginFunc  func(opts ports.AppenderOptions) error
	AppendFunc func(frame *ports.Frame) error
	CloseFunc  func() error

	// Recorded calls for verification
	BeginCalled bool
	BeginOpts   ports.AppenderOptions
	Appends     int
	CloseCalled bool
}

func (m *FrameAppender) Begin(opts ports.AppenderOptions) error {
	m.BeginCalled = true
	m.BeginOpts = opts
	if m.BeginFunc != nil {
		return m.BeginFunc(opts)
	}
	return nil
}

func (m *FrameAppender) Append(frame *ports.Frame) error {
	m.Appends++
	if m.AppendFunc != nil {
		return m.AppendFunc(frame)
	}
	return nil
}

func (m *FrameAppender) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.FrameAppender = (*FrameAppender)(nil)
