package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/signature"
)

// SignApprovalResult is a signed KYC approval
type SignApprovalResult struct {
	Kind   string
	Fields [][2]string
	Signed *domain.SignedMessage
}

// SignApproval produces the KYC signer approvals checked by the auction
// house (bids) and the pieces contract (purchases).
type SignApproval struct {
	signer MessageSigner
}

// NewSignApproval creates a new SignApproval use case
func NewSignApproval(signer MessageSigner) *SignApproval {
	return &SignApproval{signer: signer}
}

// Bid signs the bidder address right-padded to 32 bytes
func (uc *SignApproval) Bid(ctx context.Context, keyEnv, bidder string) (*SignApprovalResult, error) {
	if !domain.IsValidAddress(bidder) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, bidder)
	}
	addr := common.HexToAddress(bidder)

	signed, err := uc.signer.SignPersonal(ctx, keyEnv, signature.BidMessage(addr))
	if err != nil {
		return nil, err
	}
	return &SignApprovalResult{
		Kind:   "bid",
		Fields: [][2]string{{"Bidder", addr.Hex()}},
		Signed: signed,
	}, nil
}

// Purchase signs keccak256(uint256 tokenId, uint256 price, uint40 expire)
func (uc *SignApproval) Purchase(ctx context.Context, keyEnv, tokenID, priceEth, expire string) (*SignApprovalResult, error) {
	id, err := domain.ParseUint256(tokenID)
	if err != nil {
		return nil, fmt.Errorf("token id: %w", err)
	}
	price, err := domain.ParseEther(priceEth)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	exp, err := strconv.ParseUint(expire, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("expire: %w", err)
	}

	digest, err := signature.PurchaseDigest(id, price, exp)
	if err != nil {
		return nil, err
	}
	signed, err := uc.signer.SignPersonal(ctx, keyEnv, digest.Bytes())
	if err != nil {
		return nil, err
	}
	return &SignApprovalResult{
		Kind: "purchase",
		Fields: [][2]string{
			{"Token ID", id.String()},
			{"Price (wei)", price.String()},
			{"Expire", strconv.FormatUint(exp, 10)},
		},
		Signed: signed,
	}, nil
}

// Pieces signs the chained digest of lots given as "id:priceEth"
func (uc *SignApproval) Pieces(ctx context.Context, keyEnv string, lots []string, deadline string) (*SignApprovalResult, error) {
	if len(lots) == 0 {
		return nil, fmt.Errorf("at least one lot is required")
	}

	parsed := make([]signature.Lot, 0, len(lots))
	fields := make([][2]string, 0, len(lots)+1)
	for _, raw := range lots {
		lot, err := ParsePiecesLot(raw)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, lot)
		fields = append(fields, [2]string{"Lot " + lot.TokenID.String(), lot.Price.String() + " wei"})
	}

	dl, err := domain.ParseUint256(deadline)
	if err != nil {
		return nil, fmt.Errorf("deadline: %w", err)
	}
	fields = append(fields, [2]string{"Deadline", dl.String()})

	digest, err := signature.PiecesDigest(parsed, dl)
	if err != nil {
		return nil, err
	}
	signed, err := uc.signer.SignPersonal(ctx, keyEnv, digest.Bytes())
	if err != nil {
		return nil, err
	}
	return &SignApprovalResult{Kind: "pieces", Fields: fields, Signed: signed}, nil
}

// ParsePiecesLot parses "id:priceEth"
func ParsePiecesLot(raw string) (signature.Lot, error) {
	idStr, priceStr, ok := strings.Cut(raw, ":")
	if !ok {
		return signature.Lot{}, fmt.Errorf("lot %q must be id:price", raw)
	}
	id, err := domain.ParseUint256(idStr)
	if err != nil {
		return signature.Lot{}, fmt.Errorf("lot %q id: %w", raw, err)
	}
	price, err := domain.ParseEther(priceStr)
	if err != nil {
		return signature.Lot{}, fmt.Errorf("lot %q price: %w", raw, err)
	}
	return signature.Lot{TokenID: id, Price: new(big.Int).Set(price)}, nil
}
