package registry

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/betpay/betpay-wallet/internal/data"
)

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) LoadCatalog(ctx context.Context) (*Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Catalog), args.Error(1)
}

func (m *MockRegistry) LoadMerchantConfig(ctx context.Context) (data.MerchantConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(data.MerchantConfig), args.Error(1)
}

var _ RegistryInterface = (*MockRegistry)(nil)
