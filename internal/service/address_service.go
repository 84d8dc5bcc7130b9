package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"zipcode-api/internal/models"
	"zipcode-api/internal/zipcloud"

	"github.com/rs/zerolog/log"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ErrHistoryDisabled is returned by History when no repository is configured.
var ErrHistoryDisabled = errors.New("service: lookup history is disabled")

// AddressService contains the business logic for postal code lookups
type AddressService struct {
	client  AddressLookup
	repo    HistoryRepository
	timeout time.Duration
	now     func() time.Time
}

// AddressLookup is implemented by *zipcloud.Client
type AddressLookup interface {
	Lookup(ctx context.Context, postalCode string) (*models.Address, error)
}

// HistoryRepository interface for dependency injection
type HistoryRepository interface {
	RecordLookup(ctx context.Context, record models.LookupRecord) error
	ListRecentLookups(ctx context.Context, zipcode string, limit int) ([]models.LookupRecord, error)
}

// NewAddressService creates a new address service. repo may be nil to disable history,
// a zero timeout leaves deadlines to the caller.
func NewAddressService(client AddressLookup, repo HistoryRepository, timeout time.Duration) *AddressService {
	return &AddressService{
		client:  client,
		repo:    repo,
		timeout: timeout,
		now:     time.Now,
	}
}

// Lookup resolves a postal code to its first registered address. A nil address with a
// nil error means the code is unknown.
func (s *AddressService) Lookup(ctx context.Context, zipcode string) (*models.Address, error) {
	if zipcode == "" {
		return nil, fmt.Errorf("service: zipcode cannot be empty")
	}

	lookupCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	address, err := s.client.Lookup(lookupCtx, zipcode)
	s.record(ctx, zipcode, address, err)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up zipcode: %w", err)
	}

	return address, nil
}

// History lists the most recent lookups, newest first. An empty zipcode lists all codes.
func (s *AddressService) History(ctx context.Context, zipcode string, limit int) ([]models.LookupRecord, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}

	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	records, err := s.repo.ListRecentLookups(ctx, zipcode, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list lookups: %w", err)
	}

	return records, nil
}

func (s *AddressService) record(ctx context.Context, zipcode string, address *models.Address, lookupErr error) {
	if s.repo == nil {
		return
	}

	record := models.LookupRecord{
		ZipCode:    zipcode,
		Address:    address,
		LookedUpAt: s.now().UTC(),
	}
	record.Outcome, record.StatusCode = classify(address, lookupErr)

	if err := s.repo.RecordLookup(ctx, record); err != nil {
		log.Warn().Err(err).Str("zipcode", zipcode).Msg("failed to record lookup")
	}
}

func classify(address *models.Address, err error) (models.Outcome, int) {
	var (
		gwErr  *zipcloud.GatewayError
		decErr *zipcloud.DecodeError
	)
	switch {
	case err == nil && address != nil:
		return models.OutcomeFound, http.StatusOK
	case err == nil:
		return models.OutcomeNotFound, http.StatusOK
	case errors.As(err, &gwErr):
		return models.OutcomeGatewayError, gwErr.StatusCode
	case errors.As(err, &decErr):
		return models.OutcomeDecodeError, http.StatusOK
	default:
		return models.OutcomeTransportError, 0
	}
}
