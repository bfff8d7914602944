package betapi

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/betpay/betpay-wallet/internal/data"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) ListPlatforms(ctx context.Context) ([]data.Platform, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]data.Platform), args.Error(1)
}

func (m *MockClient) ListNetworks(ctx context.Context) ([]data.Network, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]data.Network), args.Error(1)
}

func (m *MockClient) ListUserPhones(ctx context.Context) ([]data.UserPhone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]data.UserPhone), args.Error(1)
}

func (m *MockClient) ListUserAppIDs(ctx context.Context) ([]data.UserAppID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]data.UserAppID), args.Error(1)
}

func (m *MockClient) GetSettings(ctx context.Context) (*data.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.Settings), args.Error(1)
}

func (m *MockClient) CreateDeposit(ctx context.Context, req data.CreateTransactionRequest) (*data.CreateTransactionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.CreateTransactionResponse), args.Error(1)
}

func (m *MockClient) CreateWithdrawal(ctx context.Context, req data.CreateTransactionRequest) (*data.CreateTransactionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.CreateTransactionResponse), args.Error(1)
}

var _ ClientInterface = (*MockClient)(nil)
