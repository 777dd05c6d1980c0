package usecase

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// ValidateMutation checks a request against the merged view it was built
// from. It performs no I/O. A product that is not issued yields a
// *domain.BlockedError; field problems yield *domain.ValidationError, or
// domain.ValidationErrors when more than one field is wrong.
func ValidateMutation(req models.MutationRequest, view models.MergedListingView) error {
	if view.Loading {
		return &domain.PreconditionError{Op: "validate", Err: errors.New("listing view is still loading")}
	}

	switch req.Kind {
	case models.MutationUpdate, models.MutationCancel:
		if req.ListingID == "" {
			return &domain.ValidationError{Field: "listing", Message: "listing id is required"}
		}
		if view.Key.ListingID != req.ListingID {
			return &domain.ValidationError{
				Field:   "listing",
				Value:   req.ListingID,
				Message: fmt.Sprintf("view belongs to %s", view.Key),
			}
		}
	case models.MutationCreate:
	default:
		return &domain.ValidationError{Field: "kind", Value: string(req.Kind), Message: "unknown mutation"}
	}

	if req.Kind == models.MutationCancel {
		if view.Record == nil {
			return &domain.ValidationError{Field: "listing", Value: req.ListingID, Message: "no listing record found"}
		}
		return nil
	}

	if !view.Product.IsIssued() {
		blocked := &domain.BlockedError{Product: view.ProductAddress()}
		if view.Product != nil {
			blocked.Status = view.Product.Status.String()
		}
		return blocked
	}

	var errs domain.ValidationErrors
	if err := validateLots(req.Lots, view.Balance); err != nil {
		errs = append(errs, err)
	}
	if err := validatePrice(req.PriceMinorUnits); err != nil {
		errs = append(errs, err)
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errs
	}
}

func validateLots(lots uint64, balance *big.Int) *domain.ValidationError {
	if lots == 0 {
		return &domain.ValidationError{Field: "lots", Value: "0", Message: "must be at least 1"}
	}

	held := new(big.Int)
	if balance != nil {
		held.Set(balance)
	}
	if new(big.Int).SetUint64(lots).Cmp(held) > 0 {
		return &domain.ValidationError{
			Field:   "lots",
			Value:   fmt.Sprint(lots),
			Message: fmt.Sprintf("exceeds the %s lots held", held),
		}
	}
	return nil
}

func validatePrice(price *big.Int) *domain.ValidationError {
	if price == nil {
		return &domain.ValidationError{Field: "price", Message: "price is required"}
	}
	if price.Sign() < 0 {
		return &domain.ValidationError{Field: "price", Value: price.String(), Message: "must not be negative"}
	}
	if price.BitLen() > domain.MaxUint256Bits {
		return &domain.ValidationError{Field: "price", Value: price.String(), Message: "exceeds the uint256 range"}
	}
	return nil
}
