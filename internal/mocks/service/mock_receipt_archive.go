package service

import (
	context "context"

	entity "supermarket/internal/domain/entity"

	mock "github.com/stretchr/testify/mock"
)

// MockReceiptArchive is a mock type for the ReceiptArchive type
type MockReceiptArchive struct {
	mock.Mock
}

type MockReceiptArchive_Expecter struct {
	mock *mock.Mock
}

func (_m *MockReceiptArchive) EXPECT() *MockReceiptArchive_Expecter {
	return &MockReceiptArchive_Expecter{mock: &_m.Mock}
}

// NewMockReceiptArchive creates a new instance of MockReceiptArchive.
func NewMockReceiptArchive(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReceiptArchive {
	mock := &MockReceiptArchive{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// Save provides a mock function with given fields: ctx, order
func (_m *MockReceiptArchive) Save(ctx context.Context, order *entity.Order) (string, error) {
	ret := _m.Called(ctx, order)

	if len(ret) == 0 {
		panic("no return value specified for Save")
	}

	return ret.String(0), ret.Error(1)
}

// MockReceiptArchive_Save_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Save'
type MockReceiptArchive_Save_Call struct {
	*mock.Call
}

// Save is a helper method to define mock.On call
func (_e *MockReceiptArchive_Expecter) Save(ctx interface{}, order interface{}) *MockReceiptArchive_Save_Call {
	return &MockReceiptArchive_Save_Call{Call: _e.mock.On("Save", ctx, order)}
}

func (_c *MockReceiptArchive_Save_Call) Return(_a0 string, _a1 error) *MockReceiptArchive_Save_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}
