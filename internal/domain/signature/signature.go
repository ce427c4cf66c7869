// Package signature builds the messages the KYC signer approves. The
// auction house and pieces contracts recover the signer from an EIP-191
// personal signature over these bytes.
package signature

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

const maxUint40 = 1<<40 - 1

// Lot is a single token priced in a pieces purchase.
type Lot struct {
	TokenID *big.Int
	Price   *big.Int
}

// BidMessage returns the bidder address right-padded to 32 bytes.
func BidMessage(bidder common.Address) []byte {
	return common.RightPadBytes(bidder.Bytes(), 32)
}

// PurchaseDigest is keccak256(uint256 tokenId, uint256 price, uint40 expire)
// in packed encoding.
func PurchaseDigest(tokenID, price *big.Int, expire uint64) (common.Hash, error) {
	if err := checkUint256(tokenID, "token id"); err != nil {
		return common.Hash{}, err
	}
	if err := checkUint256(price, "price"); err != nil {
		return common.Hash{}, err
	}
	if expire > maxUint40 {
		return common.Hash{}, fmt.Errorf("expire %d does not fit uint40", expire)
	}

	packed := make([]byte, 0, 32+32+5)
	packed = append(packed, math.U256Bytes(new(big.Int).Set(tokenID))...)
	packed = append(packed, math.U256Bytes(new(big.Int).Set(price))...)
	packed = append(packed, uint40Bytes(expire)...)
	return crypto.Keccak256Hash(packed), nil
}

// PiecesDigest chains every lot into one hash starting from the zero hash:
// h = keccak256(h, uint256 id, uint256 price, uint256 deadline).
func PiecesDigest(lots []Lot, deadline *big.Int) (common.Hash, error) {
	if len(lots) == 0 {
		return common.Hash{}, fmt.Errorf("at least one lot is required")
	}
	if err := checkUint256(deadline, "deadline"); err != nil {
		return common.Hash{}, err
	}
	deadlineBytes := math.U256Bytes(new(big.Int).Set(deadline))

	var h common.Hash
	for i, lot := range lots {
		if err := checkUint256(lot.TokenID, fmt.Sprintf("lot %d token id", i)); err != nil {
			return common.Hash{}, err
		}
		if err := checkUint256(lot.Price, fmt.Sprintf("lot %d price", i)); err != nil {
			return common.Hash{}, err
		}
		h = crypto.Keccak256Hash(
			h.Bytes(),
			math.U256Bytes(new(big.Int).Set(lot.TokenID)),
			math.U256Bytes(new(big.Int).Set(lot.Price)),
			deadlineBytes,
		)
	}
	return h, nil
}

func checkUint256(v *big.Int, name string) error {
	if v == nil {
		return fmt.Errorf("%s is required", name)
	}
	if v.Sign() < 0 || v.BitLen() > 256 {
		return fmt.Errorf("%s out of uint256 range", name)
	}
	return nil
}

func uint40Bytes(v uint64) []byte {
	b := make([]byte, 5)
	for i := 4; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}
