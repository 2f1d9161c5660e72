package mocks

import (
	"context"
	"fmt"

	"github.com/npmparser/npmparser/pkg/runner"
	"github.com/stretchr/testify/mock"
)

// Mock for runner.Invoker. Expectations match on the argument list as a
// single []string, e.g. On("Invoke", mock.Anything, []string{"--version"}).
type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, args ...string) (runner.Output, error) {
	ret := m.Called(ctx, args)

	out, ok := ret.Get(0).(runner.Output)
	if !ok {
		return runner.Output{}, fmt.Errorf("type assertion to runner.Output failed")
	}

	return out, ret.Error(1)
}

// OnInvoke registers the output npm returns for args.
func (m *MockInvoker) OnInvoke(out runner.Output, err error, args ...string) *mock.Call {
	return m.On("Invoke", mock.Anything, args).Return(out, err)
}
