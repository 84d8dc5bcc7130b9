package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"zipcode-api/internal/models"
	"zipcode-api/internal/zipcloud"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAddressLookup is a mock implementation of the AddressLookup interface
type MockAddressLookup struct {
	mock.Mock
}

// Lookup implements AddressLookup.
func (m *MockAddressLookup) Lookup(ctx context.Context, postalCode string) (*models.Address, error) {
	args := m.Called(ctx, postalCode)
	return args.Get(0).(*models.Address), args.Error(1)
}

// MockHistoryRepository is a mock implementation of the HistoryRepository interface
type MockHistoryRepository struct {
	mock.Mock
}

// RecordLookup implements HistoryRepository.
func (m *MockHistoryRepository) RecordLookup(ctx context.Context, record models.LookupRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// ListRecentLookups implements HistoryRepository.
func (m *MockHistoryRepository) ListRecentLookups(ctx context.Context, zipcode string, limit int) ([]models.LookupRecord, error) {
	args := m.Called(ctx, zipcode, limit)
	return args.Get(0).([]models.LookupRecord), args.Error(1)
}

var (
	tokyo = &models.Address{
		Address1: "東京都",
		Address2: "千代田区",
		Kana1:    "ﾄｳｷｮｳﾄ",
		Kana2:    "ﾁﾖﾀﾞｸ",
		PrefCode: "13",
		ZipCode:  "1000000",
	}
	fixedNow = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
)

func TestAddressService_Lookup(t *testing.T) {
	tests := []struct {
		name           string
		zipcode        string
		mockAddress    *models.Address
		mockError      error
		expected       *models.Address
		expectError    bool
		expectOutcome  models.Outcome
		expectedStatus int
	}{
		{
			name:        "empty zipcode",
			zipcode:     "",
			expectError: true,
		},
		{
			name:           "address found",
			zipcode:        "100-0000",
			mockAddress:    tokyo,
			expected:       tokyo,
			expectOutcome:  models.OutcomeFound,
			expectedStatus: 200,
		},
		{
			name:           "address not found",
			zipcode:        "999-9999",
			expectOutcome:  models.OutcomeNotFound,
			expectedStatus: 200,
		},
		{
			name:           "gateway error",
			zipcode:        "100-0000",
			mockError:      &zipcloud.GatewayError{StatusCode: 503, Reason: "maintenance"},
			expectError:    true,
			expectOutcome:  models.OutcomeGatewayError,
			expectedStatus: 503,
		},
		{
			name:           "decode error",
			zipcode:        "100-0000",
			mockError:      &zipcloud.DecodeError{Err: errors.New("unexpected end of JSON input")},
			expectError:    true,
			expectOutcome:  models.OutcomeDecodeError,
			expectedStatus: 200,
		},
		{
			name:          "transport error",
			zipcode:       "100-0000",
			mockError:     &zipcloud.TransportError{Err: errors.New("connection reset by peer")},
			expectError:   true,
			expectOutcome: models.OutcomeTransportError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockClient := new(MockAddressLookup)
			mockRepo := new(MockHistoryRepository)
			service := NewAddressService(mockClient, mockRepo, time.Second)
			service.now = func() time.Time { return fixedNow }

			if tt.zipcode != "" {
				mockClient.On("Lookup", mock.Anything, tt.zipcode).Return(tt.mockAddress, tt.mockError)
				mockRepo.On("RecordLookup", mock.Anything, models.LookupRecord{
					ZipCode:    tt.zipcode,
					Outcome:    tt.expectOutcome,
					StatusCode: tt.expectedStatus,
					Address:    tt.mockAddress,
					LookedUpAt: fixedNow,
				}).Return(nil)
			}

			// Execute
			result, err := service.Lookup(context.Background(), tt.zipcode)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				if tt.mockError != nil {
					assert.ErrorIs(t, err, tt.mockError)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			if tt.zipcode != "" {
				mockClient.AssertExpectations(t)
				mockRepo.AssertExpectations(t)
			}
		})
	}
}

func TestAddressService_Lookup_PreservesErrorType(t *testing.T) {
	mockClient := new(MockAddressLookup)
	mockClient.On("Lookup", mock.Anything, "100-0000").
		Return((*models.Address)(nil), &zipcloud.GatewayError{StatusCode: 500, Reason: "boom"})
	service := NewAddressService(mockClient, nil, 0)

	_, err := service.Lookup(context.Background(), "100-0000")

	var gwErr *zipcloud.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, 500, gwErr.StatusCode)
	assert.Equal(t, "boom", gwErr.Reason)
}

func TestAddressService_Lookup_AppliesTimeout(t *testing.T) {
	mockClient := new(MockAddressLookup)
	mockClient.On("Lookup", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= 5*time.Second
	}), "100-0000").Return(tokyo, nil)
	service := NewAddressService(mockClient, nil, 5*time.Second)

	result, err := service.Lookup(context.Background(), "100-0000")

	require.NoError(t, err)
	assert.Equal(t, tokyo, result)
	mockClient.AssertExpectations(t)
}

func TestAddressService_Lookup_HistoryFailureIsNotReturned(t *testing.T) {
	mockClient := new(MockAddressLookup)
	mockClient.On("Lookup", mock.Anything, "100-0000").Return(tokyo, nil)
	mockRepo := new(MockHistoryRepository)
	mockRepo.On("RecordLookup", mock.Anything, mock.Anything).Return(assert.AnError)
	service := NewAddressService(mockClient, mockRepo, 0)

	result, err := service.Lookup(context.Background(), "100-0000")

	require.NoError(t, err)
	assert.Equal(t, tokyo, result)
	mockRepo.AssertExpectations(t)
}

func TestAddressService_History(t *testing.T) {
	records := []models.LookupRecord{
		{ID: 2, ZipCode: "100-0000", Outcome: models.OutcomeFound, StatusCode: 200, Address: tokyo, LookedUpAt: fixedNow},
		{ID: 1, ZipCode: "999-9999", Outcome: models.OutcomeNotFound, StatusCode: 200, LookedUpAt: fixedNow},
	}

	tests := []struct {
		name        string
		zipcode     string
		limit       int
		repoLimit   int
		mockRecords []models.LookupRecord
		mockError   error
		expectError bool
	}{
		{name: "default limit", limit: 0, repoLimit: 20, mockRecords: records},
		{name: "explicit limit", zipcode: "100-0000", limit: 5, repoLimit: 5, mockRecords: records[:1]},
		{name: "limit clamped", limit: 1000, repoLimit: 100, mockRecords: records},
		{name: "repository error", limit: 10, repoLimit: 10, mockRecords: nil, mockError: assert.AnError, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockHistoryRepository)
			mockRepo.On("ListRecentLookups", mock.Anything, tt.zipcode, tt.repoLimit).Return(tt.mockRecords, tt.mockError)
			service := NewAddressService(new(MockAddressLookup), mockRepo, 0)

			// Execute
			result, err := service.History(context.Background(), tt.zipcode, tt.limit)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.mockRecords, result)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAddressService_History_Disabled(t *testing.T) {
	service := NewAddressService(new(MockAddressLookup), nil, 0)

	_, err := service.History(context.Background(), "", 10)

	assert.ErrorIs(t, err, ErrHistoryDisabled)
}
