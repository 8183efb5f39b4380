// Package mocks provides centralized mock implementations for testing.
//
// Store mocks embed testify's mock.Mock so tests can set expectations with
// On/Return and verify them with AssertExpectations. Smaller collaborators
// use function fields with a recorded-call history.
//
//	userStore := new(mocks.UserStore)
//	userStore.On("GetByID", mock.Anything, int64(1)).Return(user, nil)
//	...
//	userStore.AssertExpectations(t)
package mocks
