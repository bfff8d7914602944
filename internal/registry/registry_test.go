package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/betpay/betpay-wallet/internal/betapi"
	"github.com/betpay/betpay-wallet/internal/data"
)

var (
	testPlatforms = []data.Platform{{ID: "1xbet", Name: "1xBet"}, {ID: "melbet", Name: "Melbet"}}
	testNetworks  = []data.Network{
		{ID: 1, Name: "Moov", PublicName: "Moov Money", CountryCode: "CI", DepositAPI: "connect"},
		{ID: 2, Name: "orange", PublicName: "Orange Money", CountryCode: "bf", DepositAPI: "connect", PaymentByLink: true},
		{ID: 3, Name: "wave", CountryCode: "sn", DepositAPI: "feexpay"},
	}
	testPhones = []data.UserPhone{
		{ID: 10, Phone: "+2250700000000", Network: 1},
		{ID: 11, Phone: "+22670000000", Network: 2},
		{ID: 12, Phone: "+2250100000000", Network: 1},
	}
	testAppIDs = []data.UserAppID{
		{ID: 20, UserAppID: "12345", App: "1xbet"},
		{ID: 21, UserAppID: "99999", App: "melbet"},
	}
)

func mockCatalogCalls(clientMock *betapi.MockClient, catalogTimes, userTimes int) {
	clientMock.On("ListPlatforms", mock.Anything).Return(append([]data.Platform{}, testPlatforms...), nil).Times(catalogTimes)
	clientMock.On("ListNetworks", mock.Anything).Return(append([]data.Network{}, testNetworks...), nil).Times(catalogTimes)
	clientMock.On("ListUserPhones", mock.Anything).Return(testPhones, nil).Times(userTimes)
	clientMock.On("ListUserAppIDs", mock.Anything).Return(testAppIDs, nil).Times(userTimes)
}

func Test_Registry_LoadCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies networks at the boundary", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)
		mockCatalogCalls(clientMock, 1, 1)

		catalog, err := NewRegistry(clientMock, 0).LoadCatalog(ctx)
		require.NoError(t, err)

		require.Len(t, catalog.Networks, 3)
		assert.Equal(t, data.CarrierMoov, catalog.Networks[0].Carrier)
		assert.Equal(t, data.DepositChannelConnect, catalog.Networks[0].DepositChannel)
		assert.Equal(t, "ci", catalog.Networks[0].CountryCode)
		assert.Equal(t, data.CarrierOrange, catalog.Networks[1].Carrier)
		assert.Equal(t, data.CarrierOther, catalog.Networks[2].Carrier)
		assert.Equal(t, data.DepositChannelOther, catalog.Networks[2].DepositChannel)
		assert.Equal(t, testPlatforms, catalog.Platforms)
		assert.Equal(t, testPhones, catalog.UserPhones)
		assert.Equal(t, testAppIDs, catalog.UserAppIDs)
	})

	t.Run("caches platforms and networks but not user data", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)
		mockCatalogCalls(clientMock, 1, 3)

		reg := NewRegistry(clientMock, time.Minute)
		first, err := reg.LoadCatalog(ctx)
		require.NoError(t, err)
		second, err := reg.LoadCatalog(ctx)
		require.NoError(t, err)

		assert.Equal(t, first.Networks, second.Networks)
		assert.Equal(t, data.CarrierMoov, second.Networks[0].Carrier)

		// Sessions must not share the cached slice.
		second.Networks[0].Name = "mutated"
		third, err := reg.LoadCatalog(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Moov", third.Networks[0].Name)
	})

	t.Run("invalidate forces a reload", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)
		mockCatalogCalls(clientMock, 2, 2)

		reg := NewRegistry(clientMock, time.Minute)
		_, err := reg.LoadCatalog(ctx)
		require.NoError(t, err)
		reg.Invalidate()
		_, err = reg.LoadCatalog(ctx)
		require.NoError(t, err)
	})

	t.Run("propagates errors", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)
		clientMock.On("ListPlatforms", mock.Anything).Return(nil, errors.New("boom")).Once()

		catalog, err := NewRegistry(clientMock, time.Minute).LoadCatalog(ctx)
		assert.EqualError(t, err, "loading platforms: boom")
		assert.Nil(t, catalog)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)
		clientMock.On("ListPlatforms", mock.Anything).Return(testPlatforms, nil).Once()
		clientMock.On("ListNetworks", mock.Anything).Return(nil, errors.New("boom")).Once()
		clientMock.On("ListNetworks", mock.Anything).Return(append([]data.Network{}, testNetworks...), nil).Once()
		clientMock.On("ListUserPhones", mock.Anything).Return(testPhones, nil).Once()
		clientMock.On("ListUserAppIDs", mock.Anything).Return(testAppIDs, nil).Once()

		reg := NewRegistry(clientMock, time.Minute)
		_, err := reg.LoadCatalog(ctx)
		assert.EqualError(t, err, "loading networks: boom")

		catalog, err := reg.LoadCatalog(ctx)
		require.NoError(t, err)
		assert.Len(t, catalog.Networks, 3)
	})
}

func Test_Registry_LoadMerchantConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches settings on every call", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)
		clientMock.On("GetSettings", mock.Anything).Return(&data.Settings{MoovMarchandPhone: "0102030405"}, nil).Once()
		clientMock.On("GetSettings", mock.Anything).Return(&data.Settings{MoovMarchandPhone: "0600000000"}, nil).Once()

		reg := NewRegistry(clientMock, time.Minute)

		cfg, err := reg.LoadMerchantConfig(ctx)
		require.NoError(t, err)
		phone, _ := cfg.MerchantPhone(data.CarrierMoov, "ci")
		assert.Equal(t, "0102030405", phone)

		cfg, err = reg.LoadMerchantConfig(ctx)
		require.NoError(t, err)
		phone, _ = cfg.MerchantPhone(data.CarrierMoov, "ci")
		assert.Equal(t, "0600000000", phone)
	})

	t.Run("error", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)
		clientMock.On("GetSettings", mock.Anything).Return(nil, errors.New("boom")).Once()

		_, err := NewRegistry(clientMock, time.Minute).LoadMerchantConfig(ctx)
		assert.EqualError(t, err, "loading merchant config: boom")
	})
}

func Test_Registry_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("no-op without a cache", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)

		require.NoError(t, NewRegistry(clientMock, 0).Refresh(ctx))
	})

	t.Run("warms the cache for the next load", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)
		mockCatalogCalls(clientMock, 1, 1)

		reg := NewRegistry(clientMock, time.Minute)
		require.NoError(t, reg.Refresh(ctx))

		catalog, err := reg.LoadCatalog(ctx)
		require.NoError(t, err)
		assert.Equal(t, data.CarrierMoov, catalog.Networks[0].Carrier)
	})

	t.Run("replaces stale entries", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)
		mockCatalogCalls(clientMock, 2, 1)

		reg := NewRegistry(clientMock, time.Minute)
		_, err := reg.LoadCatalog(ctx)
		require.NoError(t, err)
		require.NoError(t, reg.Refresh(ctx))
	})

	t.Run("propagates errors", func(t *testing.T) {
		clientMock := &betapi.MockClient{}
		defer clientMock.AssertExpectations(t)
		clientMock.On("ListPlatforms", mock.Anything).Return(testPlatforms, nil).Once()
		clientMock.On("ListNetworks", mock.Anything).Return(nil, errors.New("boom")).Once()

		err := NewRegistry(clientMock, time.Minute).Refresh(ctx)
		assert.EqualError(t, err, "refreshing networks: boom")
	})
}
