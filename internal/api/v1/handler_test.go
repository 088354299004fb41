package v1_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AleksSoft/Lykke.Service.Balances/internal/api"
	v1 "github.com/AleksSoft/Lykke.Service.Balances/internal/api/v1"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/config"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/constants"
	middleware "github.com/AleksSoft/Lykke.Service.Balances/internal/error"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/mocks"
	"github.com/AleksSoft/Lykke.Service.Balances/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestApp(resolver *mocks.BalanceResolver, snapshots *mocks.SnapshotService,
	updates *mocks.UpdatePublisher) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler := v1.NewHandler(zap.NewNop(), resolver, snapshots, updates)
	api.SetupRoutes(app, handler, &config.Config{API: config.API{Debug: true}})
	return app
}

func TestHandler_GetBalanceAtMoment(t *testing.T) {
	timestamp := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	path := "/wallets/wallet-1/BTC/" + timestamp.Format(time.RFC3339)

	t.Run("returns the resolved snapshot", func(t *testing.T) {
		resolver := &mocks.BalanceResolver{}
		app := newTestApp(resolver, &mocks.SnapshotService{}, &mocks.UpdatePublisher{})

		resolver.On("Resolve", mock.Anything, service.GetBalanceAtMomentQuery{
			WalletID:  "wallet-1",
			AssetID:   "BTC",
			Timestamp: timestamp,
		}).Return(service.BalanceSnapshotResult{
			WalletID:  "wallet-1",
			AssetID:   "BTC",
			Balance:   decimal.NewFromInt(100),
			Reserved:  decimal.NewFromInt(10),
			Timestamp: timestamp,
		}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var snapshot map[string]interface{}
		assert.NoError(t, json.Unmarshal(body, &snapshot))
		assert.Equal(t, "wallet-1", snapshot["walletId"])
		assert.Equal(t, "BTC", snapshot["assetId"])
		assert.Equal(t, timestamp.Format(time.RFC3339), snapshot["timestamp"])

		resolver.AssertExpectations(t)
	})

	t.Run("maps out of window to 400", func(t *testing.T) {
		resolver := &mocks.BalanceResolver{}
		app := newTestApp(resolver, &mocks.SnapshotService{}, &mocks.UpdatePublisher{})

		resolver.On("Resolve", mock.Anything, mock.Anything).
			Return(service.BalanceSnapshotResult{},
				service.NewServiceError(constants.ErrCodeOutOfWindow, service.ErrOutOfWindow))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("maps unknown wallet to 404", func(t *testing.T) {
		resolver := &mocks.BalanceResolver{}
		app := newTestApp(resolver, &mocks.SnapshotService{}, &mocks.UpdatePublisher{})

		resolver.On("Resolve", mock.Anything, mock.Anything).
			Return(service.BalanceSnapshotResult{},
				service.NewServiceError(constants.ErrCodeWalletNotFound, service.ErrWalletNotFound))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("decodes percent-encoded wallet and asset identifiers", func(t *testing.T) {
		resolver := &mocks.BalanceResolver{}
		app := newTestApp(resolver, &mocks.SnapshotService{}, &mocks.UpdatePublisher{})

		resolver.On("Resolve", mock.Anything, service.GetBalanceAtMomentQuery{
			WalletID:  "wallet one",
			AssetID:   "BTC/USD",
			Timestamp: timestamp,
		}).Return(service.BalanceSnapshotResult{
			WalletID:  "wallet one",
			AssetID:   "BTC/USD",
			Balance:   decimal.NewFromInt(1),
			Timestamp: timestamp,
		}, nil)

		encoded := "/wallets/wallet%20one/BTC%2FUSD/" + timestamp.Format(time.RFC3339)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, encoded, nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resolver.AssertExpectations(t)
	})

	t.Run("rejects a malformed timestamp without resolving", func(t *testing.T) {
		resolver := &mocks.BalanceResolver{}
		app := newTestApp(resolver, &mocks.SnapshotService{}, &mocks.UpdatePublisher{})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/wallets/wallet-1/BTC/yesterday", nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resolver.AssertNotCalled(t, "Resolve")
	})
}

func TestHandler_UpdateBalance(t *testing.T) {
	t.Run("publishes the command and accepts", func(t *testing.T) {
		updates := &mocks.UpdatePublisher{}
		app := newTestApp(&mocks.BalanceResolver{}, &mocks.SnapshotService{}, updates)

		updates.On("PublishUpdate", mock.Anything, mock.MatchedBy(func(cmd service.UpdateTotalBalanceCommand) bool {
			return cmd.WalletID == "wallet-1" &&
				cmd.AssetID == "BTC" &&
				cmd.Balance.Equal(decimal.RequireFromString("42.5")) &&
				cmd.Reserved.Equal(decimal.RequireFromString("2"))
		})).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/wallets/wallet-1/BTC",
			strings.NewReader(`{"balance":"42.5","reserved":"2"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		updates.AssertExpectations(t)
	})

	t.Run("rejects an unparseable body", func(t *testing.T) {
		updates := &mocks.UpdatePublisher{}
		app := newTestApp(&mocks.BalanceResolver{}, &mocks.SnapshotService{}, updates)

		req := httptest.NewRequest(http.MethodPost, "/wallets/wallet-1/BTC",
			strings.NewReader(`{"balance":`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		updates.AssertNotCalled(t, "PublishUpdate")
	})
}

func TestHandler_AddSnapshot(t *testing.T) {
	timestamp := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	path := "/wallets/wallet-1/BTC/" + timestamp.Format(time.RFC3339)

	t.Run("inserts a snapshot via the debug route", func(t *testing.T) {
		snapshots := &mocks.SnapshotService{}
		app := newTestApp(&mocks.BalanceResolver{}, snapshots, &mocks.UpdatePublisher{})

		snapshots.On("AddSnapshot", mock.Anything, mock.MatchedBy(func(cmd service.AddSnapshotCommand) bool {
			return cmd.WalletID == "wallet-1" &&
				cmd.AssetID == "BTC" &&
				cmd.RequestedAt.Equal(timestamp) &&
				cmd.Balance.Equal(decimal.NewFromInt(100))
		})).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, path,
			strings.NewReader(`{"balance":"100","reserved":"10"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		snapshots.AssertExpectations(t)
	})
}
