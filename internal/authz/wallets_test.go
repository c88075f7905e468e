package authz_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chorusnet/discovery-indexer/internal/authz"
	"github.com/chorusnet/discovery-indexer/internal/domain"
)

func TestVerifyEVMWalletProof(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()

	const userID int32 = 3_000_001
	hash := accounts.TextHash([]byte(fmt.Sprintf("ChorusUserID:%d", userID)))
	sig, err := crypto.Sign(hash, key)
	require.NoError(t, err)

	assert.NoError(t, authz.VerifyEVMWalletProof(wallet, userID, hexutil.Encode(sig)))

	// personal_sign wallets report the recovery id as 27/28
	offset := append([]byte(nil), sig...)
	offset[crypto.RecoveryIDOffset] += 27
	assert.NoError(t, authz.VerifyEVMWalletProof(wallet, userID, hexutil.Encode(offset)))

	// signature over a different user id recovers another address
	err = authz.VerifyEVMWalletProof(wallet, userID+1, hexutil.Encode(sig))
	rej, ok := domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectInvalidField, rej.Code)

	err = authz.VerifyEVMWalletProof(wallet, userID, "0xdeadbeef")
	rej, ok = domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectInvalidField, rej.Code)
}

func TestVerifySolWalletProof(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	wallet := base58.Encode(pub)

	const userID int32 = 3_000_001
	sig := ed25519.Sign(priv, []byte(fmt.Sprintf("ChorusUserID:%d", userID)))

	assert.NoError(t, authz.VerifySolWalletProof(wallet, userID, base58.Encode(sig)))

	err = authz.VerifySolWalletProof(wallet, userID+1, base58.Encode(sig))
	rej, ok := domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectInvalidField, rej.Code)

	err = authz.VerifySolWalletProof("not-a-key", userID, base58.Encode(sig))
	rej, ok = domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectInvalidField, rej.Code)

	err = authz.VerifySolWalletProof(wallet, userID, "short")
	rej, ok = domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectInvalidField, rej.Code)
}
