package xviper

import "github.com/stretchr/testify/mock"

type mockDefaulter struct {
	mock.Mock
}

func (m *mockDefaulter) SetDefault(k string, v interface{}) {
	m.Called(k, v)
}
