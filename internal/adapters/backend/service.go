package backend

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
	"github.com/superhedge/listingctl/internal/usecase"
)

// Service implements usecase.ListingService on top of Client. Failures are
// logged and reported as absent or empty; prices are converted into minor
// units of the network's settlement currency.
type Service struct {
	client   *Client
	decimals int32
	chainID  uint64 // 0 accepts records of any chain
	log      *slog.Logger
}

// NewService creates the degrading listing service
func NewService(cfg *config.RuntimeConfig, log *slog.Logger) *Service {
	decimals := domain.DefaultCurrencyDecimals
	var chainID uint64
	if cfg.Network != nil {
		chainID = cfg.Network.ChainID
		if cfg.Network.Currency.Decimals > 0 {
			decimals = cfg.Network.Currency.Decimals
		}
	}
	return &Service{
		client:   NewClient(cfg.Backend.URL, cfg.Backend.Timeout, log),
		decimals: decimals,
		chainID:  chainID,
		log:      log.With("component", "listings"),
	}
}

// Client returns the raw client
func (s *Service) Client() *Client {
	return s.client
}

// GetListing returns the listing record, nil when unavailable
func (s *Service) GetListing(ctx context.Context, listingID string) *models.ListingRecord {
	dto, err := s.client.GetListing(ctx, listingID)
	if err != nil {
		s.log.Warn("listing unavailable", "listingId", listingID, "error", err)
		return nil
	}
	record, ok := s.toListing(*dto)
	if !ok {
		return nil
	}
	return record
}

// GetListedItems returns the user's listings on a chain, empty when unavailable
func (s *Service) GetListedItems(ctx context.Context, address common.Address, chainID uint64) []*models.ListingRecord {
	items, err := s.client.GetListedItems(ctx, address, chainID)
	if err != nil {
		s.log.Warn("listed items unavailable", "address", address.Hex(), "chainId", chainID, "error", err)
		return []*models.ListingRecord{}
	}
	return lo.FilterMap(items, func(dto ListingDTO, _ int) (*models.ListingRecord, bool) {
		return s.toListing(dto)
	})
}

// GetUserInfo returns the user record, nil when unavailable
func (s *Service) GetUserInfo(ctx context.Context, address common.Address) *models.UserInfo {
	dto, err := s.client.GetUserInfo(ctx, address)
	if err != nil {
		s.log.Warn("user unavailable", "address", address.Hex(), "error", err)
		return nil
	}
	return &models.UserInfo{Address: address, ProductIDs: dto.ProductIDs}
}

// GetPositions returns the user's positions, empty when unavailable
func (s *Service) GetPositions(ctx context.Context, address common.Address) []*models.Position {
	products, err := s.client.GetPositions(ctx, address)
	if err != nil {
		s.log.Warn("positions unavailable", "address", address.Hex(), "error", err)
		return []*models.Position{}
	}
	return lo.FilterMap(products, func(dto ProductDTO, _ int) (*models.Position, bool) {
		if !common.IsHexAddress(dto.Address) {
			s.log.Warn("skipping position with bad address", "address", dto.Address)
			return nil, false
		}
		maxCapacity, err := domain.DecimalToMinorUnits(dto.MaxCapacity, s.decimals)
		if err != nil {
			s.log.Warn("skipping position with bad capacity", "address", dto.Address, "error", err)
			return nil, false
		}
		currentCapacity, err := domain.DecimalToMinorUnits(dto.CurrentCapacity, s.decimals)
		if err != nil {
			s.log.Warn("skipping position with bad capacity", "address", dto.Address, "error", err)
			return nil, false
		}
		return &models.Position{
			Address:          common.HexToAddress(dto.Address),
			Name:             dto.Name,
			Underlying:       dto.Underlying,
			Status:           models.ProductStatus(dto.Status),
			MaxCapacity:      maxCapacity,
			CurrentCapacity:  currentCapacity,
			IssuanceImageURI: dto.IssuanceCycle.ImageURI,
		}, true
	})
}

// GetHistory returns the user's history, empty when unavailable
func (s *Service) GetHistory(ctx context.Context, address common.Address, order models.HistoryOrder) []*models.HistoryEntry {
	history, err := s.client.GetHistory(ctx, address, int(order))
	if err != nil {
		s.log.Warn("history unavailable", "address", address.Hex(), "error", err)
		return []*models.HistoryEntry{}
	}
	return lo.FilterMap(history, func(dto HistoryDTO, _ int) (*models.HistoryEntry, bool) {
		amount, err := domain.DecimalToMinorUnits(dto.Amount, s.decimals)
		if err != nil {
			s.log.Warn("skipping history entry with bad amount", "txHash", dto.TxHash, "error", err)
			return nil, false
		}
		return &models.HistoryEntry{
			TxHash:         common.HexToHash(dto.TxHash),
			ProductAddress: common.HexToAddress(dto.ProductAddress),
			ProductName:    dto.ProductName,
			Type:           dto.Type,
			AmountMinor:    amount,
			Lots:           dto.Lots,
			CreatedAt:      dto.CreatedAt,
		}, true
	})
}

func (s *Service) toListing(dto ListingDTO) (*models.ListingRecord, bool) {
	if dto.ListingID == "" || !common.IsHexAddress(dto.ProductAddress) {
		s.log.Warn("skipping malformed listing", "listingId", dto.ListingID, "product", dto.ProductAddress)
		return nil, false
	}
	if dto.ChainID != 0 && s.chainID != 0 && dto.ChainID != s.chainID {
		s.log.Warn("skipping listing of another chain", "listingId", dto.ListingID, "chainId", dto.ChainID, "want", s.chainID)
		return nil, false
	}
	price, err := domain.DecimalToMinorUnits(dto.OfferPrice, s.decimals)
	if err != nil {
		s.log.Warn("skipping listing with bad price", "listingId", dto.ListingID, "error", err)
		return nil, false
	}
	return &models.ListingRecord{
		ListingID:            dto.ListingID,
		ProductAddress:       common.HexToAddress(dto.ProductAddress),
		Seller:               common.HexToAddress(dto.Seller),
		OfferPriceMinorUnits: price,
		Lots:                 dto.Quantity,
		StartingTime:         dto.StartingTime,
		IssuanceImageURI:     dto.IssuanceCycle.ImageURI,
	}, true
}

var _ usecase.ListingService = (*Service)(nil)
