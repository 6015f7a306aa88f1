package service

import (
	mock "github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock type for the PasswordHasher type
type MockPasswordHasher struct {
	mock.Mock
}

type MockPasswordHasher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockPasswordHasher) EXPECT() *MockPasswordHasher_Expecter {
	return &MockPasswordHasher_Expecter{mock: &_m.Mock}
}

// Check provides a mock function with given fields: password, hash
func (_m *MockPasswordHasher) Check(password string, hash string) bool {
	ret := _m.Called(password, hash)

	if len(ret) == 0 {
		panic("no return value specified for Check")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func(string, string) bool); ok {
		r0 = rf(password, hash)
	} else {
		r0 = ret.Get(0).(bool)
	}

	return r0
}

// MockPasswordHasher_Check_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Check'
type MockPasswordHasher_Check_Call struct {
	*mock.Call
}

// Check is a helper method to define mock.On call
func (_e *MockPasswordHasher_Expecter) Check(password interface{}, hash interface{}) *MockPasswordHasher_Check_Call {
	return &MockPasswordHasher_Check_Call{Call: _e.mock.On("Check", password, hash)}
}

func (_c *MockPasswordHasher_Check_Call) Return(_a0 bool) *MockPasswordHasher_Check_Call {
	_c.Call.Return(_a0)
	return _c
}

// Hash provides a mock function with given fields: password
func (_m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := _m.Called(password)

	if len(ret) == 0 {
		panic("no return value specified for Hash")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(string) (string, error)); ok {
		return rf(password)
	}
	r0 = ret.Get(0).(string)
	r1 = ret.Error(1)

	return r0, r1
}

// MockPasswordHasher_Hash_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Hash'
type MockPasswordHasher_Hash_Call struct {
	*mock.Call
}

// Hash is a helper method to define mock.On call
func (_e *MockPasswordHasher_Expecter) Hash(password interface{}) *MockPasswordHasher_Hash_Call {
	return &MockPasswordHasher_Hash_Call{Call: _e.mock.On("Hash", password)}
}

func (_c *MockPasswordHasher_Hash_Call) Return(_a0 string, _a1 error) *MockPasswordHasher_Hash_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// ValidatePasswordStrength provides a mock function with given fields: password
func (_m *MockPasswordHasher) ValidatePasswordStrength(password string) error {
	ret := _m.Called(password)

	if len(ret) == 0 {
		panic("no return value specified for ValidatePasswordStrength")
	}

	return ret.Error(0)
}

// MockPasswordHasher_ValidatePasswordStrength_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ValidatePasswordStrength'
type MockPasswordHasher_ValidatePasswordStrength_Call struct {
	*mock.Call
}

// ValidatePasswordStrength is a helper method to define mock.On call
func (_e *MockPasswordHasher_Expecter) ValidatePasswordStrength(password interface{}) *MockPasswordHasher_ValidatePasswordStrength_Call {
	return &MockPasswordHasher_ValidatePasswordStrength_Call{Call: _e.mock.On("ValidatePasswordStrength", password)}
}

func (_c *MockPasswordHasher_ValidatePasswordStrength_Call) Return(_a0 error) *MockPasswordHasher_ValidatePasswordStrength_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewMockPasswordHasher creates a new instance of MockPasswordHasher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	mock := &MockPasswordHasher{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
