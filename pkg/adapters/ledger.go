package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/railpath-hq/railrouter/pkg/logger"
)

// erc20TransferABI is the minimal ABI needed to move a stablecoin.
const erc20TransferABI = `[{"constant":false,"inputs":[{"name":"recipient","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"}]`

// LedgerAdapter settles transfers as ERC-20 stablecoin movements on an EVM
// ledger. For ledger rails the destination endpoint's AccountID is the
// on-chain recipient address.
type LedgerAdapter struct {
	client        *ethclient.Client
	auth          *bind.TransactOpts
	token         *bind.BoundContract
	tokenAddress  common.Address
	tokenDecimals int32
	logger        logger.Logger
}

var _ RailAdapter = (*LedgerAdapter)(nil)

// NewLedgerAdapter dials the ledger RPC and prepares a keyed transactor for
// the custody account.
func NewLedgerAdapter(rpcURL, privateKey, tokenAddress string, tokenDecimals int32, log logger.Logger) (*LedgerAdapter, error) {
	if log == nil {
		log = &logger.EmptyLogger{}
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ledger RPC: %v", err)
	}

	auth, err := createAuthenticator(client, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %v", err)
	}

	parsed, err := abi.JSON(strings.NewReader(erc20TransferABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC20 ABI: %v", err)
	}

	addr := common.HexToAddress(tokenAddress)
	return &LedgerAdapter{
		client:        client,
		auth:          auth,
		token:         bind.NewBoundContract(addr, parsed, client, client, client),
		tokenAddress:  addr,
		tokenDecimals: tokenDecimals,
		logger:        log,
	}, nil
}

// Transfer moves req.Amount of the stablecoin to the destination address and
// returns the transaction hash as the provider reference.
func (a *LedgerAdapter) Transfer(ctx context.Context, req TransferRequest) (*TransferReceipt, error) {
	if !common.IsHexAddress(req.Destination.AccountID) {
		return nil, fmt.Errorf("destination %q is not a valid ledger address", req.Destination.AccountID)
	}
	recipient := common.HexToAddress(req.Destination.AccountID)

	// Token base units, e.g. 6 decimals for USDC.
	amount := req.Amount.Shift(a.tokenDecimals)
	if !amount.IsInteger() || !amount.IsPositive() {
		return nil, fmt.Errorf("amount %s cannot be represented in token units", req.Amount)
	}

	opts := *a.auth
	opts.Context = ctx

	tx, err := a.token.Transact(&opts, "transfer", recipient, amount.BigInt())
	if err != nil {
		return nil, fmt.Errorf("token transfer failed: %v", err)
	}

	a.logger.DebugWithRail("ledger_asset", "Submitted ledger transfer %s for intent %s (token: %s, recipient: %s)",
		tx.Hash().Hex(), req.IntentID, a.tokenAddress.Hex(), recipient.Hex())

	return &TransferReceipt{
		Reference:  tx.Hash().Hex(),
		AcceptedAt: tx.Time(),
	}, nil
}

// createAuthenticator builds a keyed transactor for the custody account.
func createAuthenticator(client *ethclient.Client, privateKey string) (*bind.TransactOpts, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %v", err)
	}

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %v", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %v", err)
	}
	return auth, nil
}
