//	mockgen -source=internal/adapter/http/handler/economy_handler.go -destination=internal/adapter/http/handler/mocks/mock_economy.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	domain "github.com/iho/coinbank/internal/domain"
	usecase "github.com/iho/coinbank/internal/usecase"
)

// MockEconomyService is a mock of EconomyService interface.
type MockEconomyService struct {
	ctrl     *gomock.Controller
	recorder *MockEconomyServiceMockRecorder
	isgomock struct{}
}

// MockEconomyServiceMockRecorder is the mock recorder for MockEconomyService.
type MockEconomyServiceMockRecorder struct {
	mock *MockEconomyService
}

// NewMockEconomyService creates a new mock instance.
func NewMockEconomyService(ctrl *gomock.Controller) *MockEconomyService {
	mock := &MockEconomyService{ctrl: ctrl}
	mock.recorder = &MockEconomyServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEconomyService) EXPECT() *MockEconomyServiceMockRecorder {
	return m.recorder
}

// EnsureAccount mocks base method.
func (m *MockEconomyService) EnsureAccount(ctx context.Context, userID, displayName string) (*usecase.EnsureAccountResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnsureAccount", ctx, userID, displayName)
	ret0, _ := ret[0].(*usecase.EnsureAccountResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EnsureAccount indicates an expected call of EnsureAccount.
func (mr *MockEconomyServiceMockRecorder) EnsureAccount(ctx, userID, displayName any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnsureAccount", reflect.TypeOf((*MockEconomyService)(nil).EnsureAccount), ctx, userID, displayName)
}

// GetBalance mocks base method.
func (m *MockEconomyService) GetBalance(ctx context.Context, userID string) (*domain.BalanceView, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBalance", ctx, userID)
	ret0, _ := ret[0].(*domain.BalanceView)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBalance indicates an expected call of GetBalance.
func (mr *MockEconomyServiceMockRecorder) GetBalance(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBalance", reflect.TypeOf((*MockEconomyService)(nil).GetBalance), ctx, userID)
}

// TransactionHistory mocks base method.
func (m *MockEconomyService) TransactionHistory(ctx context.Context, userID string, limit, offset int) ([]*domain.TransactionRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TransactionHistory", ctx, userID, limit, offset)
	ret0, _ := ret[0].([]*domain.TransactionRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TransactionHistory indicates an expected call of TransactionHistory.
func (mr *MockEconomyServiceMockRecorder) TransactionHistory(ctx, userID, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TransactionHistory", reflect.TypeOf((*MockEconomyService)(nil).TransactionHistory), ctx, userID, limit, offset)
}

// Transfer mocks base method.
func (m *MockEconomyService) Transfer(ctx context.Context, fromID, toID, amountStr string) usecase.TransferResult {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Transfer", ctx, fromID, toID, amountStr)
	ret0, _ := ret[0].(usecase.TransferResult)
	return ret0
}

// Transfer indicates an expected call of Transfer.
func (mr *MockEconomyServiceMockRecorder) Transfer(ctx, fromID, toID, amountStr any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Transfer", reflect.TypeOf((*MockEconomyService)(nil).Transfer), ctx, fromID, toID, amountStr)
}
