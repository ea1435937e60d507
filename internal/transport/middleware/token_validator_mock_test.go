package middleware

import (
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

var _ tokenValidator = &tokenValidatorMock{}

type tokenValidatorMock struct {
	ValidateFunc func(token string) (uuid.UUID, domain.Role, error)

	calls struct {
		Validate []struct {
			Token string
		}
	}
	lockValidate sync.RWMutex
}

func (mock *tokenValidatorMock) Validate(token string) (uuid.UUID, domain.Role, error) {
	if mock.ValidateFunc == nil {
		panic("tokenValidatorMock.ValidateFunc: method is nil but tokenValidator.Validate was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, callInfo)
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(token)
}

func (mock *tokenValidatorMock) ValidateCalls() []struct {
	Token string
} {
	mock.lockValidate.RLock()
	calls := mock.calls.Validate
	mock.lockValidate.RUnlock()
	return calls
}
