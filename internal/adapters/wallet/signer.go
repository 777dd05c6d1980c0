package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/bindings"
	"github.com/superhedge/listingctl/internal/usecase"
)

// KeySigner signs for one key on one chain
type KeySigner struct {
	key       *ecdsa.PrivateKey
	address   common.Address
	chainID   uint64
	confirmer usecase.Confirmer
}

func (s *KeySigner) Address() common.Address { return s.address }
func (s *KeySigner) ChainID() uint64         { return s.chainID }

// SignTx asks the confirmer, when there is one, and signs. A declined
// confirmation returns domain.ErrUserRejected.
func (s *KeySigner) SignTx(ctx context.Context, tx *types.Transaction) (*types.Transaction, error) {
	if id := tx.ChainId(); id != nil && id.Sign() != 0 && id.Uint64() != s.chainID {
		return nil, fmt.Errorf("%w: transaction for chain %s, signer on %d", domain.ErrNetworkMismatch, id, s.chainID)
	}

	if s.confirmer != nil {
		ok, err := s.confirmer.ConfirmSignature(ctx, s.request(tx))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrUserRejected
		}
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(new(big.Int).SetUint64(s.chainID)), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}

func (s *KeySigner) request(tx *types.Transaction) usecase.SignatureRequest {
	req := usecase.SignatureRequest{
		From:    s.address,
		ChainID: s.chainID,
		Method:  "unknown",
		Summary: fmt.Sprintf("nonce %d, gas %d", tx.Nonce(), tx.Gas()),
	}
	if to := tx.To(); to != nil {
		req.To = *to
	}
	if name, args, ok := decodeMarketplaceCall(tx.Data()); ok {
		req.Method = name
		req.Summary = args + ", " + req.Summary
	}
	return req
}

// decodeMarketplaceCall names a marketplace call and renders its arguments
func decodeMarketplaceCall(data []byte) (string, string, bool) {
	if len(data) < 4 {
		return "", "", false
	}
	parsed, err := bindings.MarketplaceDescriptor.Parse()
	if err != nil {
		return "", "", false
	}
	method, err := parsed.MethodById(data[:4])
	if err != nil {
		return "", "", false
	}
	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return method.Name, "", true
	}

	var args string
	for i, v := range values {
		if i > 0 {
			args += ", "
		}
		args += fmt.Sprintf("%s=%v", method.Inputs[i].Name, v)
	}
	return method.Name, args, true
}

var _ usecase.Signer = (*KeySigner)(nil)
