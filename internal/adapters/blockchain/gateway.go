package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/bindings"
	"github.com/superhedge/listingctl/internal/domain/models"
	"github.com/superhedge/listingctl/internal/usecase"
)

// Gateway reads positions and sends marketplace transactions through bound
// contract handles.
type Gateway struct {
	client  *Client
	product *bindings.Product
	nft     *bindings.NFT
	log     *slog.Logger
}

// NewGateway creates a new chain gateway
func NewGateway(client *Client, log *slog.Logger) *Gateway {
	return &Gateway{
		client:  client,
		product: bindings.NewProduct(),
		nft:     bindings.NewNFT(),
		log:     log.With("component", "chain"),
	}
}

// ReadProduct reads status and current token id of a product contract
func (g *Gateway) ReadProduct(ctx context.Context, handle *models.ContractHandle) (*models.ProductSnapshot, error) {
	opts := &bind.CallOpts{Context: ctx}

	status, err := bind.Call(handle.Contract, opts, g.product.PackStatus(), g.product.UnpackStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to read status of %s: %w", handle.Address.Hex(), err)
	}
	tokenID, err := bind.Call(handle.Contract, opts, g.product.PackCurrentTokenId(), g.product.UnpackCurrentTokenId)
	if err != nil {
		return nil, fmt.Errorf("failed to read current token id of %s: %w", handle.Address.Hex(), err)
	}

	return &models.ProductSnapshot{
		Address:        handle.Address,
		Status:         models.ProductStatus(status),
		CurrentTokenID: tokenID,
	}, nil
}

// BalanceOf reads the owner's balance of tokenID
func (g *Gateway) BalanceOf(ctx context.Context, handle *models.ContractHandle, owner common.Address, tokenID *big.Int) (*big.Int, error) {
	balance, err := bind.Call(handle.Contract, &bind.CallOpts{Context: ctx}, g.nft.PackBalanceOf(owner, tokenID), g.nft.UnpackBalanceOf)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance of %s: %w", owner.Hex(), err)
	}
	return balance, nil
}

// Transact estimates, signs and sends calldata to the handle's contract
func (g *Gateway) Transact(ctx context.Context, handle *models.ContractHandle, calldata []byte, signer usecase.Signer) (*types.Transaction, error) {
	from := signer.Address()
	opts := &bind.TransactOpts{
		From:    from,
		Context: ctx,
		Signer: func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if addr != from {
				return nil, fmt.Errorf("signer %s cannot sign for %s", from.Hex(), addr.Hex())
			}
			return signer.SignTx(ctx, tx)
		},
	}

	tx, err := bind.Transact(handle.Contract, opts, calldata)
	if err != nil {
		return nil, err
	}
	g.log.Debug("transaction sent", "tx", tx.Hash().Hex(), "to", handle.Address.Hex(), "nonce", tx.Nonce())
	return tx, nil
}

// WaitMined blocks until the transaction has a receipt or ctx is done
func (g *Gateway) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	eth, err := g.client.Eth()
	if err != nil {
		return nil, err
	}
	return bind.WaitMined(ctx, eth, tx.Hash())
}

// RevertReason replays a failed transaction at its block to recover the
// revert reason.
func (g *Gateway) RevertReason(ctx context.Context, tx *types.Transaction, receipt *types.Receipt) string {
	eth, err := g.client.Eth()
	if err != nil {
		return domain.UnknownRevertReason
	}

	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		g.log.Debug("failed to recover sender", "tx", tx.Hash().Hex(), "error", err)
	}

	msg := ethereum.CallMsg{
		From:  from,
		To:    tx.To(),
		Gas:   tx.Gas(),
		Value: tx.Value(),
		Data:  tx.Data(),
	}
	var block *big.Int
	if receipt != nil {
		block = receipt.BlockNumber
	}

	if _, err := eth.CallContract(ctx, msg, block); err != nil {
		return domain.RevertReason(err)
	}
	return domain.UnknownRevertReason
}

var (
	_ usecase.PositionReader    = (*Gateway)(nil)
	_ usecase.ListingTransactor = (*Gateway)(nil)
)
